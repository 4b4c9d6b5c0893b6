package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/daily-journal/backend-go/internal/config"
	"github.com/daily-journal/backend-go/internal/database/models"
)

const tokenIssuer = "daily-journal-api"

// Token type claim values. A token presented against the wrong verifier is
// rejected as invalid even if its signature happens to check out.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// AccessClaims are the claims embedded in short-lived access tokens
type AccessClaims struct {
	UserID    uint        `json:"user_id"`
	Email     string      `json:"email"`
	Role      config.Role `json:"role"`
	TokenType string      `json:"token_type"`
	jwt.RegisteredClaims
}

// RefreshClaims are the claims embedded in long-lived refresh tokens
type RefreshClaims struct {
	UserID    uint   `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the two token kinds. Access and refresh
// tokens are signed with separate secrets so a leaked access key cannot
// forge long-lived refresh tokens.
type TokenService interface {
	IssueAccessToken(user *models.User) (string, error)
	IssueRefreshToken(user *models.User) (string, time.Time, error)
	VerifyAccessToken(token string) (*AccessClaims, error)
	VerifyRefreshToken(token string) (*RefreshClaims, error)
}

type tokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a new token service instance
func NewTokenService(cfg *config.Config) TokenService {
	return &tokenService{
		accessSecret:  []byte(cfg.JWTAccessSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		accessTTL:     time.Duration(cfg.AccessTokenExpiration) * time.Second,
		refreshTTL:    time.Duration(cfg.RefreshTokenExpiration) * time.Second,
	}
}

func (s *tokenService) IssueAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.accessSecret)
}

func (s *tokenService) IssueRefreshToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.refreshTTL)
	claims := RefreshClaims{
		UserID:    user.ID,
		TokenType: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.refreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func (s *tokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := s.verify(tokenString, &claims, s.accessSecret); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrAccessTokenExpired
		}
		return nil, ErrAccessTokenInvalid
	}

	if claims.TokenType != tokenTypeAccess {
		return nil, ErrAccessTokenInvalid
	}

	return &claims, nil
}

func (s *tokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := s.verify(tokenString, &claims, s.refreshSecret); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrRefreshTokenExpired
		}
		return nil, ErrRefreshTokenInvalid
	}

	if claims.TokenType != tokenTypeRefresh {
		return nil, ErrRefreshTokenInvalid
	}

	return &claims, nil
}

func (s *tokenService) verify(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		return err
	}

	if !token.Valid {
		return errors.New("invalid token")
	}

	return nil
}

// Verification results. Closed set: callers branch with errors.Is instead of
// inspecting error strings.
var (
	ErrAccessTokenExpired  = errors.New("access token expired")
	ErrAccessTokenInvalid  = errors.New("invalid access token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
)
