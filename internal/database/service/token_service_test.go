package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daily-journal/backend-go/internal/config"
	"github.com/daily-journal/backend-go/internal/database/models"
)

func testTokenConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:        "access-secret",
		JWTRefreshSecret:       "refresh-secret",
		AccessTokenExpiration:  900,
		RefreshTokenExpiration: 604800,
	}
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     config.RoleUser,
	}
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testTokenConfig())

	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, config.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenService_RefreshTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testTokenConfig())

	token, expiresAt, err := svc.IssueRefreshToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(604800*time.Second), expiresAt, 5*time.Second)

	claims, err := svc.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestTokenService_IssueIsRandomized(t *testing.T) {
	svc := NewTokenService(testTokenConfig())
	user := testUser()

	first, _, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)
	second, _, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	// Distinct jti claims make every issued token unique
	assert.NotEqual(t, first, second)
}

func TestTokenService_KindConfusionRejected(t *testing.T) {
	svc := NewTokenService(testTokenConfig())
	user := testUser()

	accessToken, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	refreshToken, _, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	// A token of one kind is invalid for the other kind's verifier
	_, err = svc.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)

	_, err = svc.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, ErrAccessTokenInvalid)
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	issuing := NewTokenService(testTokenConfig())

	otherCfg := testTokenConfig()
	otherCfg.JWTAccessSecret = "a-different-secret"
	otherCfg.JWTRefreshSecret = "another-different-secret"
	verifying := NewTokenService(otherCfg)

	accessToken, err := issuing.IssueAccessToken(testUser())
	require.NoError(t, err)
	refreshToken, _, err := issuing.IssueRefreshToken(testUser())
	require.NoError(t, err)

	_, err = verifying.VerifyAccessToken(accessToken)
	assert.ErrorIs(t, err, ErrAccessTokenInvalid)
	_, err = verifying.VerifyRefreshToken(refreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestTokenService_ExpiredTokensRejected(t *testing.T) {
	cfg := testTokenConfig()
	cfg.AccessTokenExpiration = -10
	cfg.RefreshTokenExpiration = -10
	svc := NewTokenService(cfg)

	accessToken, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)
	refreshToken, _, err := svc.IssueRefreshToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(accessToken)
	assert.ErrorIs(t, err, ErrAccessTokenExpired)
	_, err = svc.VerifyRefreshToken(refreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenExpired)
}

func TestTokenService_GarbageRejected(t *testing.T) {
	svc := NewTokenService(testTokenConfig())

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not a jwt", token: "definitely-not-a-jwt"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9.e30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.VerifyAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrAccessTokenInvalid)

			_, err = svc.VerifyRefreshToken(tt.token)
			assert.ErrorIs(t, err, ErrRefreshTokenInvalid)
		})
	}
}
