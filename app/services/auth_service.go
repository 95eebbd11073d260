package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/models"
	"github.com/shashiranjanraj/showroom/app/repositories"
	"github.com/shashiranjanraj/showroom/pkg/auth"
	"github.com/shashiranjanraj/showroom/pkg/rbac"
)

// TokenPair is the login/register result.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService registers users and issues tokens.
type AuthService struct {
	users  *repositories.UserRepository
	tokens *auth.Manager
}

func NewAuthService(users *repositories.UserRepository, tokens *auth.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with role USER and returns a token pair.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, TokenPair, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return models.User{}, TokenPair{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, TokenPair{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, TokenPair{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     rbac.RoleUser,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, TokenPair{}, fmt.Errorf("create user: %w", err)
	}

	pair, err := s.issue(user)
	return user, pair, err
}

// Login verifies the credentials and returns a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, TokenPair{}, fmt.Errorf("lookup email: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issue(user)
	return user, pair, err
}

// Profile returns the user for an authenticated id.
func (s *AuthService) Profile(ctx context.Context, userID uint) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *AuthService) issue(user models.User) (TokenPair, error) {
	access, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
