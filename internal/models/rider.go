package models

import "gorm.io/gorm"

// Rider is the role-extension row for rider accounts.
type Rider struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`
}
