// Package cache stores resolved flights keyed by (flight number, date).
//
// Entries older than the TTL are treated as misses and never served stale.
// Payloads are canonical JSON, so a hit decodes to a record that re-encodes
// byte-for-byte identical to what was written.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/shiva/flightlog/internal/model"
)

// Store is the persistence collaborator for cache entries.
// Get returns (nil, nil) on a miss.
type Store interface {
	Get(ctx context.Context, key string) (*model.CacheEntry, error)
	Set(ctx context.Context, entry *model.CacheEntry) error
}

// FlightCache applies TTL and encoding on top of a Store.
type FlightCache struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// New creates a FlightCache. A nil clock defaults to time.Now.
func New(store Store, ttl time.Duration, now func() time.Time) *FlightCache {
	if now == nil {
		now = time.Now
	}
	return &FlightCache{store: store, ttl: ttl, now: now}
}

// TTL returns the freshness window.
func (c *FlightCache) TTL() time.Duration { return c.ttl }

// Get returns the cached flight for key, or (nil, nil) when absent or stale.
// Store errors are logged and reported as misses so resolution can proceed.
func (c *FlightCache) Get(ctx context.Context, key string) (*model.EnrichedFlight, error) {
	entry, err := c.store.Get(ctx, key)
	if err != nil {
		log.Printf("[cache] get %s failed: %v", key, err)
		return nil, nil
	}
	if entry == nil {
		return nil, nil
	}
	if c.now().Sub(entry.CreatedAt) >= c.ttl {
		return nil, nil
	}

	var f model.EnrichedFlight
	if err := json.Unmarshal(entry.Payload, &f); err != nil {
		log.Printf("[cache] corrupt entry %s: %v", key, err)
		return nil, nil
	}
	return &f, nil
}

// Put writes flight under key with the current timestamp and returns the
// canonical record that was stored.
func (c *FlightCache) Put(ctx context.Context, key string, f *model.EnrichedFlight) (*model.EnrichedFlight, error) {
	canon := Canonical(f)
	payload, err := json.Marshal(canon)
	if err != nil {
		return canon, fmt.Errorf("cache: encode %s: %w", key, err)
	}
	entry := &model.CacheEntry{Key: key, Payload: payload, CreatedAt: c.now().UTC()}
	if err := c.store.Set(ctx, entry); err != nil {
		return canon, fmt.Errorf("cache: set %s: %w", key, err)
	}
	return canon, nil
}

// ─── Canonical form ─────────────────────────────────────────

// Canonical returns a copy of f with every timestamp in UTC truncated to the
// second, which makes its JSON encoding stable across a store round trip.
func Canonical(f *model.EnrichedFlight) *model.EnrichedFlight {
	out := *f
	out.Schedule = model.Schedule{
		ScheduledDeparture: canonTime(f.Schedule.ScheduledDeparture),
		ScheduledArrival:   canonTime(f.Schedule.ScheduledArrival),
		ActualDeparture:    canonTime(f.Schedule.ActualDeparture),
		ActualArrival:      canonTime(f.Schedule.ActualArrival),
	}
	if f.Realtime != nil {
		p := *f.Realtime
		p.ObservedAt = p.ObservedAt.UTC().Truncate(time.Second)
		out.Realtime = &p
	}
	out.Provenance.ResolvedAt = f.Provenance.ResolvedAt.UTC().Truncate(time.Second)
	if f.Provenance.Consulted != nil {
		out.Provenance.Consulted = append([]string(nil), f.Provenance.Consulted...)
	}
	if f.Provenance.Trace != nil {
		out.Provenance.Trace = append([]string(nil), f.Provenance.Trace...)
	}
	return &out
}

func canonTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC().Truncate(time.Second)
	return &u
}
