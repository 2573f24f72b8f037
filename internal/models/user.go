package models

import "gorm.io/gorm"

const (
	RoleDriver = "driver"
	RoleRider  = "rider"
)

// User is the base identity record. The phone number is the login
// identifier and is unique across the table. Exactly one of Driver or
// Rider exists per user, created in the same transaction as the user.
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Number   string `json:"number" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`

	Driver *Driver `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"driver,omitempty"`
	Rider  *Rider  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"rider,omitempty"`
}

// Role derives the user's role from which child record is present.
// The role is never stored redundantly on the user row.
func (u *User) Role() string {
	if u.Driver != nil {
		return RoleDriver
	}
	return RoleRider
}

// ValidRole reports whether role names a known role.
func ValidRole(role string) bool {
	return role == RoleDriver || role == RoleRider
}
