package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shiva/flightlog/internal/model"
)

// RedisClientInterface defines the Redis operations the cache store uses.
type RedisClientInterface interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps entries in Redis as JSON. The key expiry is only a
// backstop; freshness is still decided by FlightCache against CreatedAt.
type RedisStore struct {
	client RedisClientInterface
	expiry time.Duration
}

// NewRedisStore wraps a go-redis client (or a test double).
func NewRedisStore(client RedisClientInterface, expiry time.Duration) *RedisStore {
	return &RedisStore{client: client, expiry: expiry}
}

func redisKey(key string) string { return "flight:" + key }

func (s *RedisStore) Get(ctx context.Context, key string) (*model.CacheEntry, error) {
	data, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var e model.CacheEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("redis decode: %w", err)
	}
	return &e, nil
}

func (s *RedisStore) Set(ctx context.Context, entry *model.CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("redis encode: %w", err)
	}
	return s.client.Set(ctx, redisKey(entry.Key), data, s.expiry).Err()
}
