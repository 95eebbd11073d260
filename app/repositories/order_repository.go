package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/pkg/paginate"
)

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Create persists the order together with its items (GORM cascades the
// association in the same statement set).
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID returns an order with its items and their vehicles.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Vehicle").
		First(&order, id).Error
	return order, err
}

// FindOwned returns the order only when it belongs to userID.
func (r *OrderRepository) FindOwned(ctx context.Context, userID, orderID uint) (models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Vehicle").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	return order, err
}

// ForUser returns one page of the user's orders, newest first.
func (r *OrderRepository) ForUser(ctx context.Context, userID uint, page, perPage int) ([]models.Order, paginate.Pagination, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, paginate.Pagination{}, err
	}

	p := paginate.New(page, perPage, total)
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Scopes(paginate.Scope(p.Page, p.PerPage)).
		Find(&orders).Error
	return orders, p, err
}

// All returns one page of every order, newest first. Admin listing.
func (r *OrderRepository) All(ctx context.Context, page, perPage int) ([]models.Order, paginate.Pagination, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, paginate.Pagination{}, err
	}

	p := paginate.New(page, perPage, total)
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at desc").
		Scopes(paginate.Scope(p.Page, p.PerPage)).
		Find(&orders).Error
	return orders, p, err
}

// SetStatus writes the order and payment status columns.
func (r *OrderRepository) SetStatus(ctx context.Context, orderID uint, status, paymentStatus string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"status":         status,
			"payment_status": paymentStatus,
		}).Error
}

// HasDeliveredItem reports whether the user has a delivered order containing
// the vehicle. Gates review creation.
func (r *OrderRepository) HasDeliveredItem(ctx context.Context, userID, vehicleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.vehicle_id = ?",
			userID, models.OrderDelivered, vehicleID).
		Count(&count).Error
	return count > 0, err
}
