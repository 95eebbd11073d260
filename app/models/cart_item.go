package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is one open cart line. At most one line exists per (user, vehicle);
// Price is the vehicle's unit price captured when the line was added.
type CartItem struct {
	gorm.Model
	UserID    uint            `gorm:"not null;uniqueIndex:idx_cart_user_vehicle" json:"user_id"`
	VehicleID uint            `gorm:"not null;uniqueIndex:idx_cart_user_vehicle" json:"vehicle_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`

	Vehicle Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}
