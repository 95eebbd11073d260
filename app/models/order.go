package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses.
const (
	OrderPending   = "PENDING"
	OrderConfirmed = "CONFIRMED"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

// Payment statuses.
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentFailed   = "FAILED"
	PaymentRefunded = "REFUNDED"
)

// orderTransitions is the legal status edge set. CANCELLED is reachable only
// through Cancel, which also restores stock, so it is not listed here.
var orderTransitions = map[string][]string{
	OrderPending:   {OrderConfirmed},
	OrderConfirmed: {OrderShipped},
	OrderShipped:   {OrderDelivered},
}

// ValidOrderTransition reports whether from can legally move to to.
func ValidOrderTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in the given status may be cancelled.
func Cancellable(status string) bool {
	return status == OrderPending || status == OrderConfirmed
}

// ValidPaymentStatus reports whether s is one of the payment statuses.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Order is a placed order. Orders are never physically deleted; terminal
// states are DELIVERED and CANCELLED.
type Order struct {
	gorm.Model
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status        string          `gorm:"size:20;not null;default:PENDING" json:"status"`
	PaymentStatus string          `gorm:"size:20;not null;default:PENDING" json:"payment_status"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method"`
	ShippingName  string          `gorm:"size:255" json:"shipping_name"`
	ShippingPhone string          `gorm:"size:50" json:"shipping_phone"`
	ShippingAddr  string          `gorm:"type:text" json:"shipping_address"`
	Note          string          `gorm:"type:text" json:"note"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem snapshots one cart line at placement time. Quantity and Price are
// immutable and independent of later vehicle price changes.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	VehicleID uint            `gorm:"not null;index" json:"vehicle_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`

	Vehicle Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}
