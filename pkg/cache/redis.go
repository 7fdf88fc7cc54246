package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shiva/flightlog/config"
)

// NewRedisClient creates the shared Redis client used by the flight cache and
// the quota counters.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(Options(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s failed: %w", cfg.Addr(), err)
	}

	return client, nil
}

// Options derives client settings for the cache and quota workload: single
// GET/SET/INCR commands on the resolution path. Commands honour the caller's
// deadline and are capped at OpTimeout, with one retry, so a slow Redis
// reads as a miss.
func Options(cfg config.RedisConfig) *redis.Options {
	op := cfg.OpTimeout
	if op <= 0 {
		op = 500 * time.Millisecond
	}
	pool := cfg.PoolSize
	if pool <= 0 {
		pool = 10
	}
	return &redis.Options{
		Addr:                  cfg.Addr(),
		Password:              cfg.Password,
		DB:                    cfg.DB,
		ClientName:            "flightlog",
		PoolSize:              pool,
		MinIdleConns:          max(pool/10, 1),
		PoolTimeout:           2 * op,
		DialTimeout:           5 * time.Second,
		ReadTimeout:           op,
		WriteTimeout:          op,
		MaxRetries:            1,
		ContextTimeoutEnabled: true,
	}
}

// HealthCheck pings Redis with a short deadline.
func HealthCheck(ctx context.Context, client *redis.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(pingCtx).Err()
}
