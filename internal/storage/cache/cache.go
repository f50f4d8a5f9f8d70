// Package cache keeps recently finished battle results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/api"
	"github.com/cory-johannsen/skirmish/internal/config"
)

// ErrMiss is returned when a battle is not cached.
var ErrMiss = errors.New("battle result not cached")

const keyPrefix = "skirmish:battle:"

// ResultCache stores battle result contracts keyed by battle id.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewResultCache connects to the Redis server in cfg.
//
// Precondition: cfg.Addr must be non-empty; logger must be non-nil.
// Postcondition: Returns a cache whose server answered PING, or a non-nil error.
func NewResultCache(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*ResultCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	c := NewResultCacheFromClient(client, cfg.ResultTTL, logger)
	if err := c.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return c, nil
}

// NewResultCacheFromClient wraps an existing client. A zero ttl keeps entries forever.
func NewResultCacheFromClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ResultCache {
	return &ResultCache{client: client, ttl: ttl, logger: logger}
}

// Ping checks the server is reachable.
func (c *ResultCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Put caches result under id.
func (c *ResultCache) Put(ctx context.Context, id uuid.UUID, result api.BattleResultContract) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding battle result: %w", err)
	}
	if err := c.client.Set(ctx, key(id), data, c.ttl).Err(); err != nil {
		c.logger.Warn("caching battle result failed", zap.Stringer("battle_id", id), zap.Error(err))
		return fmt.Errorf("redis set failed: %w", err)
	}
	c.logger.Debug("battle result cached", zap.Stringer("battle_id", id), zap.Int("bytes", len(data)))
	return nil
}

// Get returns the cached result for id.
//
// Postcondition: Returns ErrMiss when the key is absent or expired.
func (c *ResultCache) Get(ctx context.Context, id uuid.UUID) (api.BattleResultContract, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return api.BattleResultContract{}, ErrMiss
		}
		return api.BattleResultContract{}, fmt.Errorf("redis get failed: %w", err)
	}
	var out api.BattleResultContract
	if err := json.Unmarshal(data, &out); err != nil {
		return api.BattleResultContract{}, fmt.Errorf("decoding cached battle result: %w", err)
	}
	return out, nil
}

// Evict removes id from the cache. Evicting an absent key is not an error.
func (c *ResultCache) Evict(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// Close releases the client connection.
func (c *ResultCache) Close() error {
	return c.client.Close()
}

func key(id uuid.UUID) string { return keyPrefix + id.String() }
