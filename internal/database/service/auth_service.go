package service

import (
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/daily-journal/backend-go/internal/config"
	"github.com/daily-journal/backend-go/internal/database/models"
	"github.com/daily-journal/backend-go/internal/database/repository"
)

// ClientInfo identifies the device a token request came from. The user agent
// is the fingerprint that scopes one active refresh token per device.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(username, email, password string, client ClientInfo) (*models.User, *TokenPair, error)
	Login(email, password string, client ClientInfo) (*models.User, *TokenPair, error)
	RefreshToken(refreshToken string, client ClientInfo) (*TokenPair, error)
	Logout(refreshToken string) error
	ValidateAccessToken(tokenString string) (*AccessClaims, error)
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	tokens           TokenService
	cfg              *config.Config
	logger           *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	tokens TokenService,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokens:           tokens,
		cfg:              cfg,
		logger:           logger,
	}
}

func (s *authService) Register(username, email, password string, client ClientInfo) (*models.User, *TokenPair, error) {
	s.logger.Info("📝 [AuthService] Registration attempt", "email", email, "username", username)

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, nil, err
	}

	if existingUser != nil {
		s.logger.Warn("⚠️ [AuthService] Email already registered", "email", email)
		return nil, nil, ErrEmailAlreadyExists
	}

	// Check if username already exists
	existingUser, err = s.userRepo.FindByUsername(username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("❌ [AuthService] Database error checking username", "error", err)
		return nil, nil, err
	}

	if existingUser != nil {
		s.logger.Warn("⚠️ [AuthService] Username already taken", "username", username)
		return nil, nil, ErrUsernameAlreadyTaken
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to hash password", "error", err)
		return nil, nil, err
	}

	// Create user
	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     config.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		s.logger.Error("❌ [AuthService] Failed to create user", "error", err)
		return nil, nil, err
	}

	// Generate tokens
	tokens, err := s.issueTokenPair(user, client)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate tokens", "error", err)
		return nil, nil, err
	}

	s.logger.Info("✅ [AuthService] User registered successfully", "user_id", user.ID)
	return user, tokens, nil
}

func (s *authService) Login(email, password string, client ClientInfo) (*models.User, *TokenPair, error) {
	s.logger.Info("🔐 [AuthService] Login attempt", "email", email)

	// Find user
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "email", email)
			return nil, nil, ErrInvalidCredentials
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, nil, err
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "email", email)
		return nil, nil, ErrInvalidCredentials
	}

	// Generate tokens
	tokens, err := s.issueTokenPair(user, client)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate tokens", "error", err)
		return nil, nil, err
	}

	// Record the login time; a failure here must not fail the login
	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		s.logger.Error("❌ [AuthService] Failed to update last login", "user_id", user.ID, "error", err)
	} else {
		user.LastLogin = &now
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return user, tokens, nil
}

// RefreshToken rotates a refresh token for a new access/refresh pair. The
// presented token must verify, be known to the ledger, and match the client
// fingerprint it was issued to. A token rotates exactly once: the old record
// is revoked through a conditional update before the new pair is stored, so
// of two concurrent attempts only one succeeds.
func (s *authService) RefreshToken(refreshToken string, client ClientInfo) (*TokenPair, error) {
	s.logger.Info("🔄 [AuthService] Token refresh attempt")

	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	// Signature and expiry check
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		s.logger.Warn("⚠️ [AuthService] Refresh token failed verification", "error", err)
		return nil, err
	}

	// The ledger must know the token as non-revoked and unexpired
	storedToken, err := s.refreshTokenRepo.FindByToken(refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) || errors.Is(err, repository.ErrTokenExpired) {
			s.logger.Warn("⚠️ [AuthService] Refresh token not recognized", "user_id", claims.UserID)
			return nil, ErrTokenNotRecognized
		}
		s.logger.Error("❌ [AuthService] Database error looking up refresh token", "error", err)
		return nil, err
	}

	if storedToken.UserID != claims.UserID {
		s.logger.Warn("⚠️ [AuthService] Refresh token user mismatch", "user_id", claims.UserID)
		return nil, ErrTokenNotRecognized
	}

	// The token is bound to the device it was issued to. A fingerprint
	// mismatch means the token leaked, so every session of the user is
	// revoked as containment.
	if storedToken.UserAgent != client.UserAgent {
		s.logger.Warn("🚨 [AuthService] Client fingerprint mismatch, revoking all user tokens",
			"user_id", storedToken.UserID,
			"ip_address", client.IPAddress,
		)
		if err := s.refreshTokenRepo.RevokeAllUserTokens(storedToken.UserID); err != nil {
			s.logger.Error("❌ [AuthService] Failed to revoke user tokens", "user_id", storedToken.UserID, "error", err)
			return nil, err
		}
		return nil, ErrClientMismatch
	}

	user, err := s.userRepo.FindByID(storedToken.UserID)
	if err != nil {
		s.logger.Error("❌ [AuthService] User lookup failed during refresh", "user_id", storedToken.UserID, "error", err)
		return nil, err
	}

	// Revoke the presented token first. The conditional update arbitrates
	// concurrent refreshes: the losing side sees ErrTokenNotFound here.
	if err := s.refreshTokenRepo.RevokeToken(refreshToken); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			s.logger.Warn("🚨 [AuthService] Replay of rotated refresh token", "user_id", storedToken.UserID)
			return nil, ErrTokenNotRecognized
		}
		s.logger.Error("❌ [AuthService] Failed to revoke old token", "error", err)
		return nil, err
	}

	tokens, err := s.issueTokenPair(user, client)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to generate new tokens", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [AuthService] Token refreshed successfully", "user_id", user.ID)
	return tokens, nil
}

func (s *authService) Logout(refreshToken string) error {
	s.logger.Info("👋 [AuthService] Logout attempt")

	if refreshToken == "" {
		return ErrRefreshTokenRequired
	}

	if err := s.refreshTokenRepo.RevokeToken(refreshToken); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			s.logger.Warn("⚠️ [AuthService] Token not found for logout")
			return repository.ErrTokenNotFound
		}
		return err
	}

	s.logger.Info("✅ [AuthService] User logged out successfully")
	return nil
}

func (s *authService) ValidateAccessToken(tokenString string) (*AccessClaims, error) {
	return s.tokens.VerifyAccessToken(tokenString)
}

// issueTokenPair mints an access/refresh pair and records the refresh token
// in the ledger, which revokes any prior token for the same (user, agent).
func (s *authService) issueTokenPair(user *models.User, client ClientInfo) (*TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, expiresAt, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}

	record := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		ExpiresAt: expiresAt,
	}

	if err := s.refreshTokenRepo.Create(record); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.cfg.AccessTokenExpiration,
	}, nil
}

// Service errors
var (
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrUsernameAlreadyTaken = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrRefreshTokenRequired = errors.New("refresh token is required")
	ErrTokenNotRecognized   = errors.New("refresh token not recognized")
	ErrClientMismatch       = errors.New("client fingerprint mismatch")
)
