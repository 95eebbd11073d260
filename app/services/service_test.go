package services_test

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/app/repositories"
)

// newTestDB opens a throwaway SQLite database in the test's temp dir and
// migrates the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "showroom_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: "$2a$10$hashhashhashhashhashha",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedVehicle(t *testing.T, db *gorm.DB, name string, price int64, stock int) models.Vehicle {
	t.Helper()
	v := models.Vehicle{
		Name:      name,
		Brand:     "Toyota",
		ModelName: name,
		Year:      2024,
		Price:     decimal.NewFromInt(price),
		BodyType:  models.BodyTypeSedan,
		Stock:     stock,
		Available: true,
	}
	require.NoError(t, db.Create(&v).Error)
	return v
}

func vehicleStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var v models.Vehicle
	require.NoError(t, db.First(&v, id).Error)
	return v.Stock
}

// seedDeliveredOrder records a completed purchase of the vehicle so the user
// passes the review gate.
func seedDeliveredOrder(t *testing.T, db *gorm.DB, userID, vehicleID uint) models.Order {
	t.Helper()
	order := models.Order{
		UserID:        userID,
		TotalAmount:   decimal.NewFromInt(30000),
		Status:        models.OrderDelivered,
		PaymentStatus: models.PaymentPaid,
		Items: []models.OrderItem{
			{VehicleID: vehicleID, Quantity: 1, Price: decimal.NewFromInt(30000)},
		},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func newRepos(db *gorm.DB) (*repositories.UserRepository, *repositories.VehicleRepository, *repositories.CartRepository, *repositories.OrderRepository, *repositories.ReviewRepository) {
	return repositories.NewUserRepository(db),
		repositories.NewVehicleRepository(db),
		repositories.NewCartRepository(db),
		repositories.NewOrderRepository(db),
		repositories.NewReviewRepository(db)
}
