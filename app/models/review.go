package models

import "gorm.io/gorm"

// Review is a customer rating for a vehicle. At most one review exists per
// (user, vehicle), and creation requires a delivered order containing the
// vehicle.
type Review struct {
	gorm.Model
	UserID    uint   `gorm:"not null;uniqueIndex:idx_review_user_vehicle" json:"user_id"`
	VehicleID uint   `gorm:"not null;uniqueIndex:idx_review_user_vehicle" json:"vehicle_id"`
	Rating    int    `gorm:"not null" json:"rating"` // 1..5
	Comment   string `gorm:"type:text" json:"comment"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
