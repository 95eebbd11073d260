package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/pkg/paginate"
)

// ReviewRepository handles database operations for Review.
type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ReviewRepository) WithTx(tx *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: tx}
}

// Create persists a new review.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// Update persists changes to an existing review.
func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete removes a review. Hard delete so the (user, vehicle) unique index
// frees up and the user may review the vehicle again later.
func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&models.Review{}, id).Error
}

// FindOwned returns the review only when it belongs to userID.
func (r *ReviewRepository) FindOwned(ctx context.Context, userID, reviewID uint) (models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reviewID, userID).
		First(&review).Error
	return review, err
}

// Exists reports whether the user already reviewed the vehicle.
func (r *ReviewRepository) Exists(ctx context.Context, userID, vehicleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND vehicle_id = ?", userID, vehicleID).
		Count(&count).Error
	return count > 0, err
}

// AverageRating computes the arithmetic mean of all current ratings for the
// vehicle; 0 when none exist.
func (r *ReviewRepository) AverageRating(ctx context.Context, vehicleID uint) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("vehicle_id = ?", vehicleID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// ForVehicle returns one page of a vehicle's reviews, newest first.
func (r *ReviewRepository) ForVehicle(ctx context.Context, vehicleID uint, page, perPage int) ([]models.Review, paginate.Pagination, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&total).Error; err != nil {
		return nil, paginate.Pagination{}, err
	}

	p := paginate.New(page, perPage, total)
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("vehicle_id = ?", vehicleID).
		Order("created_at desc").
		Scopes(paginate.Scope(p.Page, p.PerPage)).
		Find(&reviews).Error
	return reviews, p, err
}
