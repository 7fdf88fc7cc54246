package cache

import (
	"context"
	"sync"

	"github.com/shiva/flightlog/internal/model"
)

// MemoryStore is a process-local Store safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]model.CacheEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]model.CacheEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*model.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	e.Payload = append([]byte(nil), e.Payload...)
	return &e, nil
}

func (s *MemoryStore) Set(_ context.Context, entry *model.CacheEntry) error {
	e := *entry
	e.Payload = append([]byte(nil), entry.Payload...)

	s.mu.Lock()
	s.entries[entry.Key] = e
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
