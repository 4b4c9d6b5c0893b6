package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/daily-journal/backend-go/internal/database/models"
)

// RefreshTokenRepository is the ledger of issued refresh tokens. It enforces
// the at-most-one-active-token-per-(user, user agent) policy on Create and
// arbitrates concurrent rotations through a conditional revoke.
type RefreshTokenRepository interface {
	Create(token *models.RefreshToken) error
	FindByToken(token string) (*models.RefreshToken, error)
	RevokeToken(token string) error
	RevokeAllUserTokens(userID uint) error
	DeleteExpiredTokens() (int64, error)
}

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository instance
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create revokes every non-revoked token for the same (user, user agent)
// pair, then inserts the new record. Both steps run in one transaction.
func (r *refreshTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		err := tx.Model(&models.RefreshToken{}).
			Where("user_id = ? AND user_agent = ? AND is_revoked = false", token.UserID, token.UserAgent).
			Updates(map[string]interface{}{"is_revoked": true, "revoked_at": now}).Error
		if err != nil {
			return err
		}

		return tx.Create(token).Error
	})
}

func (r *refreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	err := r.db.Where("token = ? AND is_revoked = false", token).
		First(&refreshToken).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	// Expired rows are filtered lazily; the sweeper removes them later
	if time.Now().After(refreshToken.ExpiresAt) {
		return nil, ErrTokenExpired
	}

	return &refreshToken, nil
}

// RevokeToken flips is_revoked on a currently non-revoked token. The
// is_revoked guard in the WHERE clause makes the update a compare-and-swap:
// of two concurrent rotations only one sees RowsAffected == 1. A token that
// is already revoked is reported exactly like one that never existed.
func (r *refreshTokenRepository) RevokeToken(token string) error {
	now := time.Now()
	result := r.db.Model(&models.RefreshToken{}).
		Where("token = ? AND is_revoked = false", token).
		Updates(map[string]interface{}{"is_revoked": true, "revoked_at": now})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}

	return nil
}

func (r *refreshTokenRepository) RevokeAllUserTokens(userID uint) error {
	now := time.Now()
	return r.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND is_revoked = false", userID).
		Updates(map[string]interface{}{"is_revoked": true, "revoked_at": now}).Error
}

// DeleteExpiredTokens removes every record past its expiry, revoked or not.
func (r *refreshTokenRepository) DeleteExpiredTokens() (int64, error) {
	result := r.db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

// Repository errors
var (
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token expired")
)
