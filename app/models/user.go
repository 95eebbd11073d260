package models

import "gorm.io/gorm"

// User is the primary user model. The Role column is the single source of
// truth for authorization; token claims only prove identity.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Role     string `gorm:"size:50;not null;default:USER" json:"role"`
}
