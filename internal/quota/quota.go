// Package quota tracks a shared daily request budget for metered providers.
//
// The counter is keyed by UTC calendar day and shared across every concurrent
// resolution. It is not per-user: the bottleneck is provider billing.
package quota

import (
	"context"
	"fmt"
	"time"
)

// Store increments and reads day-scoped counters. Implementations must make
// Incr atomic across goroutines (and processes, for shared stores).
type Store interface {
	Incr(ctx context.Context, key string) (int64, error)
	Get(ctx context.Context, key string) (int64, error)
}

// Tracker enforces a daily cap for one provider class.
type Tracker struct {
	name  string
	limit int64
	store Store
	now   func() time.Time
}

// NewTracker creates a tracker. A nil clock defaults to time.Now.
func NewTracker(name string, limit int, store Store, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{name: name, limit: int64(limit), store: store, now: now}
}

// Name returns the provider class this tracker meters.
func (t *Tracker) Name() string { return t.name }

// Limit returns the configured daily cap.
func (t *Tracker) Limit() int64 { return t.limit }

// DayKey returns the storage key for the current UTC day. It is recomputed on
// every call so a rolled-over day starts a fresh counter.
func (t *Tracker) DayKey() string {
	return fmt.Sprintf("quota:%s:%s", t.name, t.now().UTC().Format("2006-01-02"))
}

// TryAcquire consumes one attempt and reports whether it fits under the cap.
// Attempts beyond the cap still increment, so the counter records demand.
func (t *Tracker) TryAcquire(ctx context.Context) (bool, error) {
	if t.limit <= 0 {
		return false, nil
	}
	n, err := t.store.Incr(ctx, t.DayKey())
	if err != nil {
		return false, fmt.Errorf("quota: incr %s: %w", t.name, err)
	}
	return n <= t.limit, nil
}

// Remaining returns how many attempts are left today.
func (t *Tracker) Remaining(ctx context.Context) (int64, error) {
	used, err := t.store.Get(ctx, t.DayKey())
	if err != nil {
		return 0, fmt.Errorf("quota: get %s: %w", t.name, err)
	}
	if left := t.limit - used; left > 0 {
		return left, nil
	}
	return 0, nil
}
