package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/app/repositories"
	"github.com/shashiranjanraj/showroom/pkg/metrics"
	"github.com/shashiranjanraj/showroom/pkg/paginate"
)

// ReviewService owns review CRUD and keeps each vehicle's average rating in
// step. Every mutation and its rating recomputation share one transaction.
type ReviewService struct {
	db       *gorm.DB
	reviews  *repositories.ReviewRepository
	vehicles *repositories.VehicleRepository
	orders   *repositories.OrderRepository
}

func NewReviewService(
	db *gorm.DB,
	reviews *repositories.ReviewRepository,
	vehicles *repositories.VehicleRepository,
	orders *repositories.OrderRepository,
) *ReviewService {
	return &ReviewService{db: db, reviews: reviews, vehicles: vehicles, orders: orders}
}

// Create adds a review. The caller must have a delivered order containing the
// vehicle and must not have reviewed it before.
func (s *ReviewService) Create(ctx context.Context, userID, vehicleID uint, rating int, comment string) (models.Review, error) {
	if _, err := s.vehicles.FindByID(ctx, vehicleID); errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Review{}, ErrNotFound
	} else if err != nil {
		return models.Review{}, fmt.Errorf("find vehicle: %w", err)
	}

	exists, err := s.reviews.Exists(ctx, userID, vehicleID)
	if err != nil {
		return models.Review{}, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return models.Review{}, ErrDuplicateReview
	}

	delivered, err := s.orders.HasDeliveredItem(ctx, userID, vehicleID)
	if err != nil {
		return models.Review{}, fmt.Errorf("check delivered orders: %w", err)
	}
	if !delivered {
		return models.Review{}, ErrReviewNotAllowed
	}

	review := models.Review{
		UserID:    userID,
		VehicleID: vehicleID,
		Rating:    rating,
		Comment:   comment,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviews.WithTx(tx).Create(ctx, &review); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		return s.recompute(ctx, tx, vehicleID)
	})
	if err != nil {
		return models.Review{}, err
	}

	metrics.ReviewsWritten.Inc()
	return review, nil
}

// Update changes an owned review's rating and comment.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID uint, rating int, comment string) (models.Review, error) {
	review, err := s.reviews.FindOwned(ctx, userID, reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Review{}, ErrNotFound
	}
	if err != nil {
		return models.Review{}, fmt.Errorf("find review: %w", err)
	}

	review.Rating = rating
	review.Comment = comment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviews.WithTx(tx).Update(ctx, &review); err != nil {
			return fmt.Errorf("update review: %w", err)
		}
		return s.recompute(ctx, tx, review.VehicleID)
	})
	if err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// Delete removes an owned review.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID uint) error {
	review, err := s.reviews.FindOwned(ctx, userID, reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find review: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviews.WithTx(tx).Delete(ctx, review.ID); err != nil {
			return fmt.Errorf("delete review: %w", err)
		}
		return s.recompute(ctx, tx, review.VehicleID)
	})
}

// ListForVehicle returns one page of a vehicle's reviews, newest first.
func (s *ReviewService) ListForVehicle(ctx context.Context, vehicleID uint, page, perPage int) ([]models.Review, paginate.Pagination, error) {
	return s.reviews.ForVehicle(ctx, vehicleID, page, perPage)
}

// recompute writes the vehicle's average rating inside the caller's
// transaction. The average is 0 when no reviews remain.
func (s *ReviewService) recompute(ctx context.Context, tx *gorm.DB, vehicleID uint) error {
	avg, err := s.reviews.WithTx(tx).AverageRating(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("average rating: %w", err)
	}
	if err := s.vehicles.WithTx(tx).SetAvgRating(ctx, vehicleID, avg); err != nil {
		return fmt.Errorf("set average rating: %w", err)
	}
	return nil
}
