package seeders

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/pkg/auth"
	"github.com/shashiranjanraj/showroom/pkg/rbac"
)

func init() {
	Register("users", SeedUsers)
	Register("vehicles", SeedVehicles)
}

// SeedUsers creates a sample customer and an admin, both with password
// "password123". Existing rows are left alone.
func SeedUsers(db *gorm.DB) error {
	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	users := []models.User{
		{Name: "Sample User", Email: "user@example.com", Password: hash, Role: rbac.RoleUser},
		{Name: "Admin", Email: "admin@example.com", Password: hash, Role: rbac.RoleAdmin},
	}
	for _, u := range users {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&u).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedVehicles inserts the sample listing set when the catalog is empty.
func SeedVehicles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Vehicle{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	vehicles := []models.Vehicle{
		{
			Name: "Toyota Camry", Brand: "Toyota", ModelName: "Camry", Year: 2023,
			Price: decimal.NewFromInt(30000), Color: "Black", BodyType: models.BodyTypeSedan,
			Description: "A refined and dependable mid-size sedan",
			Stock:       10, Available: true,
		},
		{
			Name: "Honda CR-V", Brand: "Honda", ModelName: "CR-V", Year: 2022,
			Price: decimal.NewFromInt(35000), Color: "White", BodyType: models.BodyTypeSUV,
			Description: "A compact SUV with a roomy cabin and excellent fuel economy",
			Stock:       8, Available: true,
		},
		{
			Name: "BMW X5", Brand: "BMW", ModelName: "X5", Year: 2023,
			Price: decimal.NewFromInt(75000), Color: "Blue", BodyType: models.BodyTypeSUV,
			Description: "A luxury SUV with outstanding performance and modern technology",
			Stock:       5, Available: true,
		},
		{
			Name: "Mercedes C300", Brand: "Mercedes", ModelName: "C300", Year: 2022,
			Price: decimal.NewFromInt(55000), Color: "Silver", BodyType: models.BodyTypeSedan,
			Description: "A luxury sedan with elegant styling and advanced technology",
			Stock:       6, Available: true,
		},
		{
			Name: "Ford F-150", Brand: "Ford", ModelName: "F-150", Year: 2023,
			Price: decimal.NewFromInt(45000), Color: "Red", BodyType: models.BodyTypeTruck,
			Description: "A powerful, versatile pickup for work and play",
			Stock:       7, Available: true,
		},
	}
	return db.Create(&vehicles).Error
}
