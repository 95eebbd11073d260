package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/showroom/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	m := auth.NewManager("secret-a")

	token, err := m.GenerateToken(42, "ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	issuer := auth.NewManager("secret-a")
	verifier := auth.NewManager("secret-b")

	token, err := issuer.GenerateToken(1, "USER")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := auth.NewManager("secret-a")
	_, err := m.ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestRefreshTokenValidates(t *testing.T) {
	m := auth.NewManager("secret-a")

	refresh, err := m.GenerateRefreshToken(7, "USER")
	require.NoError(t, err)

	claims, err := m.ValidateToken(refresh)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cretpass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cretpass"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}
