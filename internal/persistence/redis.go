package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// GetInt64 fetches an integer value; ok is false on miss or unreachable cache.
func (r *Redis) GetInt64(ctx context.Context, key string) (int64, bool) {
	if r == nil || r.Client == nil {
		return 0, false
	}
	val, err := r.Client.Get(ctx, key).Int64()
	if err != nil {
		return 0, false
	}
	return val, true
}

// SetInt64 stores an integer value with a TTL, ignoring cache failures.
func (r *Redis) SetInt64(ctx context.Context, key string, val int64, ttl time.Duration) {
	if r == nil || r.Client == nil {
		return
	}
	_ = r.Client.Set(ctx, key, val, ttl).Err()
}

// Delete removes keys, ignoring cache failures.
func (r *Redis) Delete(ctx context.Context, keys ...string) {
	if r == nil || r.Client == nil || len(keys) == 0 {
		return
	}
	_ = r.Client.Del(ctx, keys...).Err()
}
