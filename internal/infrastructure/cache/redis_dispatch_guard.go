// Package cache provides the dispatch guards that serialize duplicate
// report dispatches across instances.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	reportapp "github.com/demandcast/backend/internal/application/report"
	"github.com/demandcast/backend/internal/infrastructure/config"
)

// Ensure RedisDispatchGuard implements the orchestrator's DispatchGuard
var _ reportapp.DispatchGuard = (*RedisDispatchGuard)(nil)

// RedisDispatchGuard implements DispatchGuard on Redis SETNX. It is
// suitable for distributed deployments where multiple instances dispatch
// report jobs against the same ledger.
type RedisDispatchGuard struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisDispatchGuard creates a Redis-backed dispatch guard.
func NewRedisDispatchGuard(cfg config.RedisConfig) (*RedisDispatchGuard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisDispatchGuard{
		client:    client,
		keyPrefix: "forecast:",
	}, nil
}

// NewRedisDispatchGuardWithClient creates a guard with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisDispatchGuardWithClient(client *redis.Client, keyPrefix string) *RedisDispatchGuard {
	if keyPrefix == "" {
		keyPrefix = "forecast:"
	}
	return &RedisDispatchGuard{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Acquire atomically claims the key with a TTL. Returns true if this caller
// claimed it first, false if another dispatch already holds it.
func (g *RedisDispatchGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := g.client.SetNX(ctx, g.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire dispatch guard: %w", err)
	}
	return acquired, nil
}

// Close closes the Redis client
func (g *RedisDispatchGuard) Close() error {
	return g.client.Close()
}
