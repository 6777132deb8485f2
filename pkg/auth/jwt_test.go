package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() JWTService {
	return NewJWTService(JWTConfig{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		ExpiryHours:   1,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "user@example.com", "client")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "client", claims.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(userID, "user@example.com", "specialist")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "specialist", claims.Role)
}

func TestTokenSecretsAreNotInterchangeable(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	access, err := svc.GenerateAccessToken(userID, "user@example.com", "client")
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(userID, "user@example.com", "client")
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err)
	_, err = svc.ValidateToken(refresh)
	assert.Error(t, err)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	svc := newTestService()
	other := NewJWTService(JWTConfig{Secret: "someone-else", RefreshSecret: "also-else"})

	token, err := other.GenerateAccessToken(uuid.New(), "user@example.com", "client")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService()
	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		_, err := svc.ValidateToken(token)
		assert.Error(t, err, "token %q", token)
	}
}
