package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"accident-risk-api/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by Get when the key is absent or no Redis is
// configured.
var ErrCacheMiss = errors.New("cache miss")

const (
	pingAttempts = 5
	pingInterval = 2 * time.Second
	keyPrefix    = "accidentrisk:"
)

// CacheService stores provider responses in Redis. A CacheService without a
// client is valid: every read misses and every write is dropped.
type CacheService struct {
	client *redis.Client
	log    *zap.Logger
}

// NewCacheService connects to Redis, retrying the first ping. On failure it
// still returns a usable, client-less CacheService alongside the error.
func NewCacheService(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (*CacheService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !cfg.Enabled {
		return &CacheService{log: log}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	var lastErr error
	for i := 0; i < pingAttempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingInterval)
		lastErr = client.Ping(pingCtx).Err()
		cancel()
		if lastErr == nil {
			return &CacheService{client: client, log: log}, nil
		}
		log.Warn("redis ping failed", zap.Int("attempt", i+1), zap.Int("of", pingAttempts), zap.Error(lastErr))

		select {
		case <-ctx.Done():
			_ = client.Close()
			return &CacheService{log: log}, ctx.Err()
		case <-time.After(pingInterval):
		}
	}

	_ = client.Close()
	return &CacheService{log: log}, fmt.Errorf("redis ping failed after %d attempts: %w", pingAttempts, lastErr)
}

// Client returns the underlying Redis client, nil when unavailable.
func (s *CacheService) Client() *redis.Client {
	if s == nil {
		return nil
	}
	return s.client
}

func (s *CacheService) Available() bool {
	return s != nil && s.client != nil
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if !s.Available() {
		return ErrCacheMiss
	}
	val, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+key, data, ttl).Err()
}

// Ping reports Redis health; a client-less cache is healthy.
func (s *CacheService) Ping(ctx context.Context) error {
	if !s.Available() {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

func (s *CacheService) Close() error {
	if !s.Available() {
		return nil
	}
	return s.client.Close()
}

// cached serves key from the cache or calls load and stores its result.
// Cache errors never fail the call.
func cached[T any](ctx context.Context, c *CacheService, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var v T
	err := c.Get(ctx, key, &v)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.log.Debug("cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err = load(ctx)
	if err != nil {
		return v, err
	}
	if err := c.Set(ctx, key, v, ttl); err != nil {
		c.log.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
