package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/app/repositories"
	"github.com/shashiranjanraj/showroom/pkg/paginate"
	"github.com/shashiranjanraj/showroom/pkg/rbac"
)

// UserService is the admin-facing user management surface.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService(users *repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns one page of users, newest first.
func (s *UserService) List(ctx context.Context, page, perPage int) ([]models.User, paginate.Pagination, error) {
	return s.users.List(ctx, page, perPage)
}

// SetRole assigns USER or ADMIN to the target user. The SUPER_ADMIN role is
// never assignable through the API, and the route restricts callers to
// SUPER_ADMIN.
func (s *UserService) SetRole(ctx context.Context, targetID uint, role string) (models.User, error) {
	if role != rbac.RoleUser && role != rbac.RoleAdmin {
		return models.User{}, ErrInvalidRole
	}

	user, err := s.users.FindByID(ctx, targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	if err := s.users.UpdateRole(ctx, user.ID, role); err != nil {
		return models.User{}, fmt.Errorf("update role: %w", err)
	}
	user.Role = role
	return user, nil
}
