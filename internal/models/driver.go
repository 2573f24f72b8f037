package models

import "gorm.io/gorm"

// Driver is the role-extension row for driver accounts.
type Driver struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex;not null"`
	IsActive bool `json:"is_active" gorm:"default:false"`
}
