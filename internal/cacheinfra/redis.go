package cacheinfra

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// redisCache adapts a go-redis client to the cache.Cache contract.
// All failures are absorbed: a broken round trip yields the absent or
// no-op outcome, logged at debug level, never an error.
type redisCache struct {
	client    *redis.Client
	opTimeout timeoutFn
	logger    *slog.Logger
}

type timeoutFn func(context.Context) (context.Context, context.CancelFunc)

// NewRedisCache connects to Redis using the provided configuration and
// probes connectivity once. On probe failure it returns (nil, err) so the
// construction site can fall back to the no-op cache; the probe is never
// retried automatically.
func NewRedisCache(cfg Config, logger *slog.Logger) (*redisCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	probeCtx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(probeCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	opTimeout := cfg.OpTimeout
	return &redisCache{
		client: client,
		opTimeout: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return context.WithTimeout(ctx, opTimeout)
		},
		logger: logger,
	}, nil
}

// Get implements cache.Cache. A missing key, transport failure, or
// undecodable payload all report the entry as absent.
func (r *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	ctx, cancel := r.opTimeout(ctx)
	defer cancel()

	raw, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		r.logger.Debug("redis get failed", "key", key, "error", err)
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		r.logger.Debug("redis entry undecodable", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Set implements cache.Cache. Serialization or transport failures drop
// the write silently.
func (r *redisCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		r.logger.Debug("redis set: value not serializable", "key", key, "error", err)
		return nil
	}

	ctx, cancel := r.opTimeout(ctx)
	defer cancel()

	if err := r.client.Set(ctx, key, raw, 0).Err(); err != nil {
		r.logger.Debug("redis set failed", "key", key, "error", err)
	}
	return nil
}

// Delete implements cache.Cache.
func (r *redisCache) Delete(ctx context.Context, key string) (bool, error) {
	ctx, cancel := r.opTimeout(ctx)
	defer cancel()

	removed, err := r.client.Del(ctx, key).Result()
	if err != nil {
		r.logger.Debug("redis delete failed", "key", key, "error", err)
		return false, nil
	}
	return removed > 0, nil
}

// Close releases the underlying client.
func (r *redisCache) Close() error {
	return r.client.Close()
}
