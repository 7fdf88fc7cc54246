package quota

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ─── Memory Store ───────────────────────────────────────────

// MemoryStore is a process-local Store. Counters for days other than the one
// being incremented are dropped, so memory stays bounded.
type MemoryStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counts: make(map[string]int64)}
}

func (s *MemoryStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := key[:strings.LastIndex(key, ":")+1]
	for k := range s.counts {
		if k != key && strings.HasPrefix(k, prefix) {
			delete(s.counts, k)
		}
	}
	s.counts[key]++
	return s.counts[key], nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key], nil
}

// ─── Redis Store ────────────────────────────────────────────

// RedisClientInterface defines the Redis operations the quota store uses.
type RedisClientInterface interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// keyTTL outlives the day so late readers still see the final count.
const keyTTL = 48 * time.Hour

// RedisStore shares the counter across processes. INCR is atomic server-side.
type RedisStore struct {
	client RedisClientInterface
}

// NewRedisStore wraps a go-redis client (or a test double).
func NewRedisStore(client RedisClientInterface) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Incr(ctx context.Context, key string) (int64, error) {
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		// First hit of the day sets the expiry; failure only leaks a key.
		_ = s.client.Expire(ctx, key, keyTTL).Err()
	}
	return n, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (int64, error) {
	n, err := s.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}
