package services

import "errors"

// Sentinel errors returned by the services. Controllers map these onto the
// HTTP error envelope; anything else is surfaced as an internal error.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrDuplicateReview    = errors.New("vehicle already reviewed")
	ErrReviewNotAllowed   = errors.New("no delivered order for this vehicle")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrVehicleInUse       = errors.New("vehicle is referenced by orders")
	ErrInvalidRole        = errors.New("invalid role")
)
