// Package cache provides a small key/value cache with two backends:
// Redis for multi-instance deployments and an in-process store otherwise.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"storeadmin/internal/config"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("cache: key not found")

// Client defines the cache operations.
type Client interface {
	// Get returns ErrNotFound when the key does not exist.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value for ttl. A zero ttl uses the backend default.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// New returns a Redis client when a host is configured and the in-process cache otherwise.
func New(rc config.RedisConfig, cc config.CacheConfig, log *zap.Logger) (Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if rc.Host == "" {
		log.Info("cache ready", zap.String("component", "cache"), zap.String("driver", "memory"))
		return NewMemory(cc.Prefix, cc.DefaultMemTTL), nil
	}
	c, err := NewRedis(rc, cc.Prefix)
	if err != nil {
		return nil, err
	}
	log.Info("cache ready", zap.String("component", "cache"), zap.String("driver", "redis"), zap.String("host", rc.Host))
	return c, nil
}

// GetJSON loads a cached JSON value into dst.
func GetJSON(ctx context.Context, c Client, key string, dst any) error {
	raw, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), dst)
}

// SetJSON stores v as JSON.
func SetJSON(ctx context.Context, c Client, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, string(b), ttl)
}

func prefixed(prefix, k string) string {
	if prefix == "" {
		return k
	}
	return prefix + ":" + k
}
