package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/app/services"
	"github.com/shashiranjanraj/showroom/pkg/auth"
	"github.com/shashiranjanraj/showroom/pkg/rbac"
)

func newAuthService(db *gorm.DB) (*services.AuthService, *auth.Manager) {
	users, _, _, _, _ := newRepos(db)
	tokens := auth.NewManager("test-secret")
	return services.NewAuthService(users, tokens), tokens
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc, tokens := newAuthService(db)
	ctx := context.Background()

	user, pair, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	assert.Equal(t, rbac.RoleUser, user.Role, "new accounts always start as USER")
	assert.NotEqual(t, "s3cretpass", user.Password, "password is stored hashed")
	assert.True(t, auth.CheckPassword(user.Password, "s3cretpass"))

	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := tokens.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(db)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Impostor", "alice@example.com", "otherpass")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(db)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	user, pair, err := svc.Login(ctx, "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, pair.AccessToken)

	// Wrong password and unknown email collapse into the same error.
	_, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(db)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "Alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	got, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.Profile(ctx, 99999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
