package repositories_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/app/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "repo_test.db")), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Vehicle{}, &models.Order{}, &models.OrderItem{}))
	return db
}

func seedVehicle(t *testing.T, db *gorm.DB, stock int) models.Vehicle {
	t.Helper()
	v := models.Vehicle{
		Name: "Camry", Brand: "Toyota", ModelName: "Camry", Year: 2024,
		Price: decimal.NewFromInt(30000), BodyType: models.BodyTypeSedan,
		Stock: stock, Available: true,
	}
	require.NoError(t, db.Create(&v).Error)
	return v
}

func stockOf(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var v models.Vehicle
	require.NoError(t, db.First(&v, id).Error)
	return v.Stock
}

// The decrement must be conditional in a single statement: when less stock
// remains than requested, the row is untouched and the call reports false.
func TestDecrementStock(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewVehicleRepository(db)
	ctx := context.Background()

	v := seedVehicle(t, db, 3)

	ok, err := repo.DecrementStock(ctx, v.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, stockOf(t, db, v.ID))

	// Asking for more than remains fails without touching the row.
	ok, err = repo.DecrementStock(ctx, v.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, stockOf(t, db, v.ID))

	// Taking exactly the rest drains to zero, never below.
	ok, err = repo.DecrementStock(ctx, v.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, stockOf(t, db, v.ID))

	ok, err = repo.DecrementStock(ctx, v.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecrementStockUnknownVehicle(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewVehicleRepository(db)

	ok, err := repo.DecrementStock(context.Background(), 99999, 1)
	require.NoError(t, err)
	assert.False(t, ok, "no row matched, nothing decremented")
}

func TestRestoreStock(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewVehicleRepository(db)
	ctx := context.Background()

	v := seedVehicle(t, db, 1)
	require.NoError(t, repo.RestoreStock(ctx, v.ID, 4))
	assert.Equal(t, 5, stockOf(t, db, v.ID))
}

func TestIncrementViews(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewVehicleRepository(db)
	ctx := context.Background()

	v := seedVehicle(t, db, 1)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementViews(ctx, v.ID))
	}

	got, err := repo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.ViewCount)
}
