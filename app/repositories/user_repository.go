package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/pkg/paginate"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return user, err
}

// Create persists a new user record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdateRole sets the role column for the given user.
func (r *UserRepository) UpdateRole(ctx context.Context, id uint, role string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

// List returns one page of users, newest first.
func (r *UserRepository) List(ctx context.Context, page, perPage int) ([]models.User, paginate.Pagination, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, paginate.Pagination{}, err
	}

	p := paginate.New(page, perPage, total)
	var users []models.User
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Scopes(paginate.Scope(p.Page, p.PerPage)).
		Find(&users).Error
	return users, p, err
}
