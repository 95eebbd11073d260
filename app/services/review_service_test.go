package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/app/services"
	"github.com/shashiranjanraj/showroom/pkg/rbac"
)

func newReviewService(db *gorm.DB) *services.ReviewService {
	_, vehicles, _, orders, reviews := newRepos(db)
	return services.NewReviewService(db, reviews, vehicles, orders)
}

func avgRating(t *testing.T, db *gorm.DB, vehicleID uint) float64 {
	t.Helper()
	var v models.Vehicle
	require.NoError(t, db.First(&v, vehicleID).Error)
	return v.AvgRating
}

func TestCreateReviewRequiresDelivery(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com", rbac.RoleUser)
	camry := seedVehicle(t, db, "Camry", 30000, 5)

	_, err := svc.Create(ctx, user.ID, camry.ID, 5, "great car")
	assert.ErrorIs(t, err, services.ErrReviewNotAllowed)

	// A pending order is not enough.
	pending := models.Order{UserID: user.ID, Status: models.OrderPending, PaymentStatus: models.PaymentPending,
		Items: []models.OrderItem{{VehicleID: camry.ID, Quantity: 1, Price: camry.Price}}}
	require.NoError(t, db.Create(&pending).Error)

	_, err = svc.Create(ctx, user.ID, camry.ID, 5, "great car")
	assert.ErrorIs(t, err, services.ErrReviewNotAllowed)
}

func TestCreateReviewUnknownVehicle(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)

	user := seedUser(t, db, "buyer@example.com", rbac.RoleUser)
	_, err := svc.Create(context.Background(), user.ID, 99999, 5, "ghost")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestReviewAverageTracksMutations(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com", rbac.RoleUser)
	bob := seedUser(t, db, "bob@example.com", rbac.RoleUser)
	camry := seedVehicle(t, db, "Camry", 30000, 5)
	seedDeliveredOrder(t, db, alice.ID, camry.ID)
	seedDeliveredOrder(t, db, bob.ID, camry.ID)

	first, err := svc.Create(ctx, alice.ID, camry.ID, 5, "excellent")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, avgRating(t, db, camry.ID), 0.001)

	// A duplicate from the same user is rejected before any write.
	_, err = svc.Create(ctx, alice.ID, camry.ID, 4, "again")
	assert.ErrorIs(t, err, services.ErrDuplicateReview)

	second, err := svc.Create(ctx, bob.ID, camry.ID, 3, "decent")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avgRating(t, db, camry.ID), 0.001)

	// Updating re-averages.
	_, err = svc.Update(ctx, bob.ID, second.ID, 1, "changed my mind")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, avgRating(t, db, camry.ID), 0.001)

	// Deleting re-averages, down to 0 when nothing remains.
	require.NoError(t, svc.Delete(ctx, bob.ID, second.ID))
	assert.InDelta(t, 5.0, avgRating(t, db, camry.ID), 0.001)

	require.NoError(t, svc.Delete(ctx, alice.ID, first.ID))
	assert.InDelta(t, 0.0, avgRating(t, db, camry.ID), 0.001)

	// With the old review gone, the slot reopens.
	_, err = svc.Create(ctx, alice.ID, camry.ID, 4, "second look")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avgRating(t, db, camry.ID), 0.001)
}

func TestReviewOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com", rbac.RoleUser)
	mallory := seedUser(t, db, "mallory@example.com", rbac.RoleUser)
	camry := seedVehicle(t, db, "Camry", 30000, 5)
	seedDeliveredOrder(t, db, alice.ID, camry.ID)

	review, err := svc.Create(ctx, alice.ID, camry.ID, 5, "mine")
	require.NoError(t, err)

	_, err = svc.Update(ctx, mallory.ID, review.ID, 1, "hijack")
	assert.ErrorIs(t, err, services.ErrNotFound)

	err = svc.Delete(ctx, mallory.ID, review.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestListForVehicle(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	ctx := context.Background()

	camry := seedVehicle(t, db, "Camry", 30000, 5)
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		u := seedUser(t, db, email, rbac.RoleUser)
		seedDeliveredOrder(t, db, u.ID, camry.ID)
		_, err := svc.Create(ctx, u.ID, camry.ID, i+3, "review")
		require.NoError(t, err)
	}

	reviews, p, err := svc.ListForVehicle(ctx, camry.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.EqualValues(t, 3, p.Total)
	assert.Equal(t, 2, p.TotalPages)
	assert.NotEmpty(t, reviews[0].User.Email, "reviews carry their author")
}
