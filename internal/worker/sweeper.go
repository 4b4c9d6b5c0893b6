package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/daily-journal/backend-go/internal/database/repository"
)

// TokenSweeper periodically removes refresh token records past their expiry.
// Expired tokens are already filtered on lookup; the sweep only reclaims
// storage, so the interval is best-effort.
type TokenSweeper struct {
	refreshTokenRepo repository.RefreshTokenRepository
	interval         time.Duration
	logger           *slog.Logger
}

// NewTokenSweeper creates a new token sweeper instance
func NewTokenSweeper(refreshTokenRepo repository.RefreshTokenRepository, interval time.Duration, logger *slog.Logger) *TokenSweeper {
	return &TokenSweeper{
		refreshTokenRepo: refreshTokenRepo,
		interval:         interval,
		logger:           logger,
	}
}

// Run sweeps on a ticker until the context is cancelled. Intended to be
// submitted to a worker Pool.
func (s *TokenSweeper) Run(ctx context.Context) {
	s.logger.Info("🧹 [Sweeper] Starting expired token sweeper", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("🛑 [Sweeper] Stopping expired token sweeper")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *TokenSweeper) sweep() {
	removed, err := s.refreshTokenRepo.DeleteExpiredTokens()
	if err != nil {
		s.logger.Error("❌ [Sweeper] Failed to delete expired tokens", "error", err)
		return
	}

	if removed > 0 {
		s.logger.Info("🧹 [Sweeper] Removed expired refresh tokens", "count", removed)
	}
}
