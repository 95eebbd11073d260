package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/jobs"
	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/app/repositories"
	"github.com/shashiranjanraj/showroom/pkg/collection"
	"github.com/shashiranjanraj/showroom/pkg/logger"
	"github.com/shashiranjanraj/showroom/pkg/metrics"
	"github.com/shashiranjanraj/showroom/pkg/paginate"
	"github.com/shashiranjanraj/showroom/pkg/queue"
	"github.com/shashiranjanraj/showroom/pkg/rbac"
)

// ShippingInfo is the checkout contact block.
type ShippingInfo struct {
	Name    string
	Phone   string
	Address string
	Note    string
}

// Dispatcher pushes background jobs. Satisfied by *queue.Manager; nil
// disables dispatching.
type Dispatcher interface {
	Dispatch(jobName string, job queue.Job) error
}

// OrderService owns order placement and the status lifecycle.
type OrderService struct {
	db       *gorm.DB
	orders   *repositories.OrderRepository
	carts    *repositories.CartRepository
	vehicles *repositories.VehicleRepository
	users    *repositories.UserRepository
	jobs     Dispatcher
}

func NewOrderService(
	db *gorm.DB,
	orders *repositories.OrderRepository,
	carts *repositories.CartRepository,
	vehicles *repositories.VehicleRepository,
	users *repositories.UserRepository,
	dispatcher Dispatcher,
) *OrderService {
	return &OrderService{
		db:       db,
		orders:   orders,
		carts:    carts,
		vehicles: vehicles,
		users:    users,
		jobs:     dispatcher,
	}
}

// PlaceOrder converts the user's cart into an order in one transaction:
// create the order with one item per cart line, take stock for every line,
// clear the cart. Stock is taken with a conditional decrement, so a
// concurrent checkout that grabs the last unit rolls this one back with
// ErrInsufficientStock instead of overselling.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, shipping ShippingInfo, paymentMethod string) (models.Order, error) {
	items, err := s.carts.ForUser(ctx, userID)
	if err != nil {
		return models.Order{}, fmt.Errorf("load cart: %w", err)
	}
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	// Pre-check against the loaded snapshot so an obviously unsatisfiable
	// cart fails before any mutation. The conditional decrement inside the
	// transaction is still the authority under concurrency.
	if short, ok := collection.First(items, func(item models.CartItem) bool {
		return item.Quantity > item.Vehicle.Stock
	}); ok {
		return models.Order{}, fmt.Errorf("%w: %s", ErrInsufficientStock, short.Vehicle.Name)
	}

	total := collection.Reduce(items, decimal.Zero, func(sum decimal.Decimal, item models.CartItem) decimal.Decimal {
		return sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	})
	orderItems := collection.Map(items, func(item models.CartItem) models.OrderItem {
		return models.OrderItem{
			VehicleID: item.VehicleID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	})

	order := models.Order{
		UserID:        userID,
		TotalAmount:   total,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: paymentMethod,
		ShippingName:  shipping.Name,
		ShippingPhone: shipping.Phone,
		ShippingAddr:  shipping.Address,
		Note:          shipping.Note,
		Items:         orderItems,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txVehicles := s.vehicles.WithTx(tx)
		for _, item := range items {
			ok, err := txVehicles.DecrementStock(ctx, item.VehicleID, item.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, item.Vehicle.Name)
			}
		}
		if err := s.orders.WithTx(tx).Create(ctx, &order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if err := s.carts.WithTx(tx).ClearForUser(ctx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	s.dispatchConfirmation(ctx, order)
	return order, nil
}

// dispatchConfirmation queues the confirmation email. The order has already
// committed, so a dispatch failure is only logged.
func (s *OrderService) dispatchConfirmation(ctx context.Context, order models.Order) {
	if s.jobs == nil {
		return
	}
	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		logger.Warn("order: confirmation lookup failed", "order_id", order.ID, "error", err)
		return
	}
	job := &jobs.OrderConfirmation{
		OrderID: order.ID,
		Email:   user.Email,
		Name:    user.Name,
		Total:   order.TotalAmount.StringFixed(2),
	}
	if err := s.jobs.Dispatch(jobs.OrderConfirmationName, job); err != nil {
		logger.Warn("order: confirmation dispatch failed", "order_id", order.ID, "error", err)
	}
}

// GetOwned returns the caller's order with items. Admins may fetch any order.
func (s *OrderService) GetOwned(ctx context.Context, userID uint, role string, orderID uint) (models.Order, error) {
	if rbac.IsAdmin(role) {
		order, err := s.orders.FindByID(ctx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return order, err
	}
	order, err := s.orders.FindOwned(ctx, userID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrNotFound
	}
	return order, err
}

// ListMine returns one page of the caller's orders, newest first.
func (s *OrderService) ListMine(ctx context.Context, userID uint, page, perPage int) ([]models.Order, paginate.Pagination, error) {
	return s.orders.ForUser(ctx, userID, page, perPage)
}

// ListAll returns one page of every order. Admin listing.
func (s *OrderService) ListAll(ctx context.Context, page, perPage int) ([]models.Order, paginate.Pagination, error) {
	return s.orders.All(ctx, page, perPage)
}

// Cancel moves an order to CANCELLED and restores stock for every line, all
// in one transaction. Only the owner or an admin may cancel, and only while
// the order is PENDING or CONFIRMED.
func (s *OrderService) Cancel(ctx context.Context, userID uint, role string, orderID uint) (models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("find order: %w", err)
	}

	isAdmin := rbac.IsAdmin(role)
	if order.UserID != userID && !isAdmin {
		// Hide the order's existence from non-owners.
		return models.Order{}, ErrNotFound
	}
	if !models.Cancellable(order.Status) {
		return models.Order{}, ErrInvalidTransition
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-check under the transaction so a racing cancel cannot restore
		// stock twice.
		var current models.Order
		if err := tx.First(&current, order.ID).Error; err != nil {
			return err
		}
		if !models.Cancellable(current.Status) {
			return ErrInvalidTransition
		}

		txVehicles := s.vehicles.WithTx(tx)
		for _, item := range order.Items {
			if err := txVehicles.RestoreStock(ctx, item.VehicleID, item.Quantity); err != nil {
				return fmt.Errorf("restore stock: %w", err)
			}
		}
		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", models.OrderCancelled).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	by := "customer"
	if isAdmin && order.UserID != userID {
		by = "admin"
	}
	metrics.OrdersCancelled.WithLabelValues(by).Inc()

	order.Status = models.OrderCancelled
	return order, nil
}

// AdminSetStatus advances an order along the legal edge set and updates the
// payment status. Admins are held to the same transition table; arbitrary
// jumps are rejected with ErrInvalidTransition.
func (s *OrderService) AdminSetStatus(ctx context.Context, orderID uint, status, paymentStatus string) (models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("find order: %w", err)
	}

	if status != order.Status && !models.ValidOrderTransition(order.Status, status) {
		return models.Order{}, ErrInvalidTransition
	}
	if !models.ValidPaymentStatus(paymentStatus) {
		return models.Order{}, fmt.Errorf("%w: unknown payment status %q", ErrInvalidTransition, paymentStatus)
	}

	if err := s.orders.SetStatus(ctx, order.ID, status, paymentStatus); err != nil {
		return models.Order{}, fmt.Errorf("set status: %w", err)
	}
	order.Status = status
	order.PaymentStatus = paymentStatus
	return order, nil
}
