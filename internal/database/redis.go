package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/daily-journal/backend-go/internal/config"
)

// EntryCache caches rendered entry list pages per user in Redis. It is an
// optional collaborator: callers hold a nil *EntryCache when Redis is down
// and every method on nil is a no-op miss.
type EntryCache struct {
	client *redis.Client
	logger *slog.Logger
	cfg    *config.Config
}

// NewEntryCache creates a new entry cache backed by Redis
func NewEntryCache(cfg *config.Config, logger *slog.Logger) (*EntryCache, error) {
	logger.Info("🔌 [Redis] Connecting to Redis...",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
		"db", cfg.RedisDatabase,
	)

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDatabase),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [Redis] Redis connection established")

	return &EntryCache{
		client: client,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// NewEntryCacheForTesting creates an entry cache with a provided redis.Client (for testing)
func NewEntryCacheForTesting(client *redis.Client, cfg *config.Config, logger *slog.Logger) *EntryCache {
	return &EntryCache{
		client: client,
		logger: logger,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (r *EntryCache) Close() error {
	if r == nil {
		return nil
	}
	return r.client.Close()
}

// pageKey generates the Redis key for one cached page of a user's entries
func pageKey(userID uint, page, pageSize int) string {
	return fmt.Sprintf("entries:%d:page:%d:%d", userID, page, pageSize)
}

// GetEntryPage returns the cached payload for a page, reporting a miss when
// the key is absent or the cache is unavailable.
func (r *EntryCache) GetEntryPage(ctx context.Context, userID uint, page, pageSize int) ([]byte, bool) {
	if r == nil {
		return nil, false
	}

	data, err := r.client.Get(ctx, pageKey(userID, page, pageSize)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("⚠️ [Redis] Failed to read entry page", "user_id", userID, "error", err)
		}
		return nil, false
	}

	r.logger.Debug("📖 [Redis] Entry page cache hit", "user_id", userID, "page", page)
	return data, true
}

// SetEntryPage stores a rendered page with the configured TTL
func (r *EntryCache) SetEntryPage(ctx context.Context, userID uint, page, pageSize int, payload []byte) {
	if r == nil {
		return
	}

	ttl := time.Duration(r.cfg.EntryCacheTTL) * time.Second
	if err := r.client.Set(ctx, pageKey(userID, page, pageSize), payload, ttl).Err(); err != nil {
		r.logger.Warn("⚠️ [Redis] Failed to store entry page", "user_id", userID, "error", err)
		return
	}

	r.logger.Debug("💾 [Redis] Stored entry page", "user_id", userID, "page", page, "ttl", ttl)
}

// InvalidateUser drops every cached page for a user. Called on any entry
// write so readers never see a stale page past the write.
func (r *EntryCache) InvalidateUser(ctx context.Context, userID uint) {
	if r == nil {
		return
	}

	pattern := fmt.Sprintf("entries:%d:page:*", userID)
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()

	pipe := r.client.Pipeline()
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.logger.Warn("⚠️ [Redis] Failed to scan entry pages", "user_id", userID, "error", err)
		return
	}

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn("⚠️ [Redis] Failed to invalidate entry pages", "user_id", userID, "error", err)
		return
	}

	r.logger.Debug("🗑️ [Redis] Invalidated entry pages", "user_id", userID)
}

// GetClient returns the underlying Redis client (for advanced use cases)
func (r *EntryCache) GetClient() *redis.Client {
	return r.client
}
