package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/models"
)

// CartRepository handles database operations for CartItem.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *CartRepository) WithTx(tx *gorm.DB) *CartRepository {
	return &CartRepository{db: tx}
}

// ForUser returns all of a user's cart lines with their vehicles preloaded.
func (r *CartRepository) ForUser(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error
	return items, err
}

// FindByUserAndVehicle returns the open line for (user, vehicle) if one exists.
func (r *CartRepository) FindByUserAndVehicle(ctx context.Context, userID, vehicleID uint) (models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND vehicle_id = ?", userID, vehicleID).
		First(&item).Error
	return item, err
}

// FindOwned returns the cart line only when it belongs to userID.
func (r *CartRepository) FindOwned(ctx context.Context, userID, itemID uint) (models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error
	return item, err
}

// Create persists a new cart line.
func (r *CartRepository) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update persists changes to an existing cart line.
func (r *CartRepository) Update(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a cart line. Hard delete: a soft-deleted row would keep
// occupying the (user, vehicle) unique index and block re-adding the vehicle.
func (r *CartRepository) Delete(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.CartItem{}, itemID).Error
}

// ClearForUser removes every cart line belonging to the user.
func (r *CartRepository) ClearForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
