package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/app/repositories"
	"github.com/shashiranjanraj/showroom/app/services"
	"github.com/shashiranjanraj/showroom/pkg/rbac"
)

// newCatalogService builds the service without a cache store; caching is
// covered separately and needs a live Redis.
func newCatalogService(db *gorm.DB) *services.CatalogService {
	_, vehicles, _, _, _ := newRepos(db)
	return services.NewCatalogService(vehicles, nil, 9)
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	vehicles := []models.Vehicle{
		{Name: "Camry", Brand: "Toyota", ModelName: "Camry", Year: 2023, Price: decimal.NewFromInt(30000), BodyType: models.BodyTypeSedan, Stock: 10, Available: true, AvgRating: 4.5},
		{Name: "CR-V", Brand: "Honda", ModelName: "CR-V", Year: 2024, Price: decimal.NewFromInt(35000), BodyType: models.BodyTypeSUV, Stock: 8, Available: true, AvgRating: 4.0},
		{Name: "X5", Brand: "BMW", ModelName: "X5", Year: 2024, Price: decimal.NewFromInt(75000), BodyType: models.BodyTypeSUV, Stock: 5, Available: true, AvgRating: 4.8},
		{Name: "C300", Brand: "Mercedes", ModelName: "C300", Year: 2023, Price: decimal.NewFromInt(55000), BodyType: models.BodyTypeSedan, Stock: 6, Available: true, AvgRating: 3.9},
		{Name: "F-150", Brand: "Ford", ModelName: "F-150", Year: 2022, Price: decimal.NewFromInt(45000), BodyType: models.BodyTypeTruck, Stock: 7, Available: true, AvgRating: 4.2},
	}
	for i := range vehicles {
		require.NoError(t, db.Create(&vehicles[i]).Error)
	}
}

func names(page services.CatalogPage) []string {
	out := make([]string, len(page.Items))
	for i, v := range page.Items {
		out[i] = v.Name
	}
	return out
}

func TestCatalogFilters(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := newCatalogService(db)
	ctx := context.Background()

	t.Run("brand", func(t *testing.T) {
		page, err := svc.List(ctx, repositories.CatalogFilter{Brand: "Honda"})
		require.NoError(t, err)
		assert.Equal(t, []string{"CR-V"}, names(page))
	})

	t.Run("body type", func(t *testing.T) {
		page, err := svc.List(ctx, repositories.CatalogFilter{BodyType: models.BodyTypeSUV})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
	})

	t.Run("unknown body type is ignored", func(t *testing.T) {
		page, err := svc.List(ctx, repositories.CatalogFilter{BodyType: "HOVERCRAFT"})
		require.NoError(t, err)
		assert.Len(t, page.Items, 5)
	})

	t.Run("price range", func(t *testing.T) {
		page, err := svc.List(ctx, repositories.CatalogFilter{
			MinPrice: decimal.NewFromInt(40000),
			MaxPrice: decimal.NewFromInt(60000),
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"C300", "F-150"}, names(page))
	})

	t.Run("year", func(t *testing.T) {
		page, err := svc.List(ctx, repositories.CatalogFilter{Year: 2024})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"CR-V", "X5"}, names(page))
	})

	t.Run("search", func(t *testing.T) {
		page, err := svc.List(ctx, repositories.CatalogFilter{Search: "150"})
		require.NoError(t, err)
		assert.Equal(t, []string{"F-150"}, names(page))
	})

	t.Run("combined", func(t *testing.T) {
		page, err := svc.List(ctx, repositories.CatalogFilter{
			BodyType: models.BodyTypeSUV,
			MaxPrice: decimal.NewFromInt(40000),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"CR-V"}, names(page))
	})
}

func TestCatalogSorting(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := newCatalogService(db)
	ctx := context.Background()

	page, err := svc.List(ctx, repositories.CatalogFilter{Sort: "price_asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Camry", "CR-V", "F-150", "C300", "X5"}, names(page))

	page, err = svc.List(ctx, repositories.CatalogFilter{Sort: "price_desc"})
	require.NoError(t, err)
	assert.Equal(t, "X5", page.Items[0].Name)

	page, err = svc.List(ctx, repositories.CatalogFilter{Sort: "rating"})
	require.NoError(t, err)
	assert.Equal(t, "X5", page.Items[0].Name)

	// Unknown sort keys fall back to newest.
	page, err = svc.List(ctx, repositories.CatalogFilter{Sort: "alphabetical"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
}

func TestCatalogPagination(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	svc := newCatalogService(db)
	ctx := context.Background()

	page, err := svc.List(ctx, repositories.CatalogFilter{Page: 1, PerPage: 2, Sort: "price_asc"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 5, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)

	last, err := svc.List(ctx, repositories.CatalogFilter{Page: 3, PerPage: 2, Sort: "price_asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"X5"}, names(last))

	// PerPage 0 falls back to the configured page size.
	all, err := svc.List(ctx, repositories.CatalogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 9, all.Pagination.PerPage)
}

func TestGetVehicleCountsViews(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	camry := seedVehicle(t, db, "Camry", 30000, 5)

	first, err := svc.GetVehicle(ctx, camry.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.ViewCount)

	second, err := svc.GetVehicle(ctx, camry.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, second.ViewCount)

	_, err = svc.GetVehicle(ctx, 99999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestVehicleAdminMutations(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	v := &models.Vehicle{
		Name: "Tacoma", Brand: "Toyota", ModelName: "Tacoma", Year: 2025,
		Price: decimal.NewFromInt(38000), BodyType: models.BodyTypeTruck,
		Stock: 4, Available: true,
	}
	require.NoError(t, svc.CreateVehicle(ctx, v))
	require.NotZero(t, v.ID)

	v.Stock = 6
	require.NoError(t, svc.UpdateVehicle(ctx, v))
	assert.Equal(t, 6, vehicleStock(t, db, v.ID))

	missing := &models.Vehicle{Model: gorm.Model{ID: 99999}, Name: "Ghost", Brand: "X", ModelName: "X", Year: 2020, Price: decimal.NewFromInt(1), BodyType: models.BodyTypeVan}
	assert.ErrorIs(t, svc.UpdateVehicle(ctx, missing), services.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteVehicle(ctx, 99999), services.ErrNotFound)

	require.NoError(t, svc.DeleteVehicle(ctx, v.ID))
	_, err := svc.GetVehicle(ctx, v.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteVehicleRefusedWhenOrdered(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com", rbac.RoleUser)
	camry := seedVehicle(t, db, "Camry", 30000, 5)
	seedDeliveredOrder(t, db, user.ID, camry.ID)

	err := svc.DeleteVehicle(ctx, camry.ID)
	assert.ErrorIs(t, err, services.ErrVehicleInUse)

	// The listing is still there.
	_, err = svc.GetVehicle(ctx, camry.ID)
	assert.NoError(t, err)
}

func TestUpdateVehicleKeepsDerivedData(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	camry := seedVehicle(t, db, "Camry", 30000, 5)
	require.NoError(t, db.Model(&models.Vehicle{}).Where("id = ?", camry.ID).
		Updates(map[string]any{"avg_rating": 4.5, "view_count": 12}).Error)
	var before models.Vehicle
	require.NoError(t, db.First(&before, camry.ID).Error)

	// An admin edit carries only the form fields, like the HTTP handler does.
	edit := &models.Vehicle{
		Model: gorm.Model{ID: camry.ID},
		Name:  "Camry LE", Brand: "Toyota", ModelName: "Camry", Year: 2025,
		Price: decimal.NewFromInt(31500), BodyType: models.BodyTypeSedan,
		Stock: 3, Available: true,
	}
	require.NoError(t, svc.UpdateVehicle(ctx, edit))

	var after models.Vehicle
	require.NoError(t, db.First(&after, camry.ID).Error)
	assert.Equal(t, "Camry LE", after.Name)
	assert.True(t, after.Price.Equal(decimal.NewFromInt(31500)))
	assert.Equal(t, 3, after.Stock)

	// Review average, view counter and creation time survive the edit.
	assert.Equal(t, 4.5, after.AvgRating)
	assert.Equal(t, int64(12), after.ViewCount)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)

	// The returned model reflects the stored state too.
	assert.Equal(t, 4.5, edit.AvgRating)
	assert.Equal(t, int64(12), edit.ViewCount)
}

func TestDeleteVehicleClearsCartLines(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "buyer@example.com", rbac.RoleUser)
	other := seedUser(t, db, "other@example.com", rbac.RoleUser)
	camry := seedVehicle(t, db, "Camry", 30000, 5)
	crv := seedVehicle(t, db, "CR-V", 35000, 5)
	addCartLine(t, db, buyer.ID, camry, 1)
	addCartLine(t, db, other.ID, camry, 2)
	kept := addCartLine(t, db, buyer.ID, crv, 1)

	require.NoError(t, svc.DeleteVehicle(ctx, camry.ID))

	// Every cart line pointing at the deleted listing is gone; lines for
	// other vehicles stay.
	var remaining []models.CartItem
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	carts := services.NewCartService(repositories.NewCartRepository(db), repositories.NewVehicleRepository(db))
	items, err := carts.GetCart(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, crv.ID, items[0].VehicleID)
}
