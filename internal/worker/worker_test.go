package worker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/daily-journal/backend-go/internal/database/models"
	"github.com/daily-journal/backend-go/internal/database/repository"
)

func TestPool_ShutdownCancelsTasks(t *testing.T) {
	pool := NewPool(slog.Default())

	var stopped atomic.Bool
	pool.Submit(func(ctx context.Context) {
		<-ctx.Done()
		stopped.Store(true)
	})

	pool.Shutdown(time.Second)
	assert.True(t, stopped.Load())
}

func TestPool_ShutdownTimeoutDoesNotBlock(t *testing.T) {
	pool := NewPool(slog.Default())

	release := make(chan struct{})
	pool.Submit(func(ctx context.Context) {
		<-release
	})

	done := make(chan struct{})
	go func() {
		pool.Shutdown(50 * time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("shutdown did not return after its timeout")
	}
	close(release)
}

func TestTokenSweeper_RemovesExpiredTokens(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}))

	user := &models.User{Username: "alice", Email: "a@x.com", Password: "hash"}
	require.NoError(t, db.Create(user).Error)

	repo := repository.NewRefreshTokenRepository(db)
	require.NoError(t, repo.Create(&models.RefreshToken{
		UserID: user.ID, Token: "tok-stale", UserAgent: "ua-1",
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(&models.RefreshToken{
		UserID: user.ID, Token: "tok-live", UserAgent: "ua-2",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	sweeper := NewTokenSweeper(repo, 10*time.Millisecond, slog.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	sweeper.Run(ctx)

	var count int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var remaining models.RefreshToken
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, "tok-live", remaining.Token)
}
