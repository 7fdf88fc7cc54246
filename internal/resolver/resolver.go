// Package resolver turns a flight number and date into one EnrichedFlight by
// walking a fallback ladder over the registered sources:
//
//	Pending → Racing → (ExhaustedConcurrent → RetryingSequential) →
//	(Synthesizing) → Resolved | Failed
//
// The states visited are recorded in the flight's provenance trace.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shiva/flightlog/internal/adapter"
	"github.com/shiva/flightlog/internal/cache"
	"github.com/shiva/flightlog/internal/model"
	"github.com/shiva/flightlog/internal/quota"
	"github.com/shiva/flightlog/internal/refdata"
)

var (
	// ErrNotFound means every source and the synthetic fallback came up empty.
	ErrNotFound = errors.New("flight not found")
	// ErrInvalidDate means the date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

const dateLayout = "2006-01-02"

// State is one step of the fallback ladder.
type State string

const (
	StatePending             State = "pending"
	StateRacing              State = "racing"
	StateExhaustedConcurrent State = "exhausted_concurrent"
	StateRetryingSequential  State = "retrying_sequential"
	StateSynthesizing        State = "synthesizing"
	StateResolved            State = "resolved"
	StateFailed              State = "failed"
)

// Source is a registered adapter. A non-nil Quota makes it metered: each
// call must first win a slot from the daily tracker.
type Source struct {
	Adapter adapter.Adapter
	Quota   *quota.Tracker
}

// Config bounds the ladder's wall-clock budget.
type Config struct {
	AdapterTimeout    time.Duration // per adapter, during the race
	RaceCeiling       time.Duration // whole race
	SequentialTimeout time.Duration // per adapter, during the sequential retry
	EnrichTimeout     time.Duration // per telemetry enricher
	Now               func() time.Time
}

func (c *Config) withDefaults() {
	if c.AdapterTimeout <= 0 {
		c.AdapterTimeout = 4 * time.Second
	}
	if c.RaceCeiling <= 0 {
		c.RaceCeiling = 6 * time.Second
	}
	if c.SequentialTimeout <= 0 {
		c.SequentialTimeout = 10 * time.Second
	}
	if c.EnrichTimeout <= 0 {
		c.EnrichTimeout = 3 * time.Second
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Resolver is safe for concurrent use. Requests for the same flight and date
// share one in-flight resolution; different keys never wait on each other.
type Resolver struct {
	sources   []Source
	enrichers []adapter.Enricher
	cache     *cache.FlightCache
	cfg       Config
	group     singleflight.Group
}

// New creates a Resolver. Sources are kept in registration order, which is
// also the final tie-break between equally rich records.
func New(sources []Source, enrichers []adapter.Enricher, fc *cache.FlightCache, cfg Config) *Resolver {
	cfg.withDefaults()
	return &Resolver{
		sources:   sources,
		enrichers: enrichers,
		cache:     fc,
		cfg:       cfg,
	}
}

// Resolve returns the enriched flight for (flightNumber, date).
func (r *Resolver) Resolve(ctx context.Context, flightNumber, date string) (*model.EnrichedFlight, error) {
	// ── Step 1: normalize ──
	fn, err := refdata.ParseFlightNumber(flightNumber)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", flightNumber, err)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("resolve %q: %w", date, ErrInvalidDate)
	}
	key := model.CacheKey(fn.String(), date)

	// ── Step 2: cache ──
	if hit, _ := r.cache.Get(ctx, key); hit != nil {
		log.Printf("[resolver] cache hit %s", key)
		return hit, nil
	}

	// ── Step 3: share in-flight work per key ──
	// The shared resolution is detached from any single caller's cancellation;
	// its own timeouts bound it.
	ch := r.group.DoChan(key, func() (interface{}, error) {
		return r.resolve(context.WithoutCancel(ctx), fn, date, key)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// Each caller gets its own copy of the shared record.
		return cache.Canonical(res.Val.(*model.EnrichedFlight)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// resolve walks the ladder for one key.
func (r *Resolver) resolve(ctx context.Context, fn refdata.FlightNumber, date, key string) (*model.EnrichedFlight, error) {
	// Another caller may have finished between our miss and acquiring the key.
	if hit, _ := r.cache.Get(ctx, key); hit != nil {
		return hit, nil
	}

	l := &ladder{state: StatePending, trace: []string{string(StatePending)}}
	number := fn.String()

	l.to(StateRacing)
	run := r.race(ctx, number, date)
	rec := run.accepted

	if rec == nil {
		l.to(StateExhaustedConcurrent)
		if len(run.retry) > 0 {
			l.to(StateRetryingSequential)
			rec = r.sequential(ctx, run.retry, number, date)
		}
	}

	if rec == nil {
		l.to(StateSynthesizing)
		rec = synthesize(fn)
	}

	if rec == nil {
		l.to(StateFailed)
		log.Printf("[resolver] %s exhausted: consulted=%v trace=%v", key, run.consulted, l.trace)
		return nil, fmt.Errorf("resolve %s: %w", key, ErrNotFound)
	}
	l.to(StateResolved)

	flight, err := normalize(fn, date, rec, r.cfg.Now())
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", key, err)
	}
	flight.Provenance.Consulted = run.consulted
	flight.Provenance.Trace = l.trace

	if date == r.cfg.Now().UTC().Format(dateLayout) {
		r.enrich(ctx, fn, flight)
	}

	stored, err := r.cache.Put(ctx, key, flight)
	if err != nil {
		log.Printf("[resolver] cache write %s: %v", key, err)
	}
	if stored == nil {
		stored = flight
	}
	log.Printf("[resolver] resolved %s via %s (%s) trace=%v", key, flight.Provenance.Source, flight.Provenance.Confidence, l.trace)
	return stored, nil
}

// ladder records the visited states.
type ladder struct {
	state State
	trace []string
}

func (l *ladder) to(s State) {
	l.state = s
	l.trace = append(l.trace, string(s))
}

// ─── Telemetry ──────────────────────────────────────────────

// enrich asks the live enrichers for position and registration. It never
// touches route or schedule, and failures only log.
func (r *Resolver) enrich(ctx context.Context, fn refdata.FlightNumber, f *model.EnrichedFlight) {
	callsign := fn.Callsign()
	if callsign == "" {
		return
	}
	for _, e := range r.enrichers {
		ectx, cancel := context.WithTimeout(ctx, r.cfg.EnrichTimeout)
		tel, err := e.Enrich(ectx, callsign)
		cancel()
		if err != nil {
			if !errors.Is(err, adapter.ErrNoData) {
				log.Printf("[resolver] enricher %s: %v", e.Name(), err)
			}
			continue
		}
		if tel.Position != nil && f.Realtime == nil {
			pos := *tel.Position
			f.Realtime = &pos
		}
		if tel.Registration != "" && f.Aircraft.Registration == "" {
			f.Aircraft.Registration = tel.Registration
		}
		if f.Realtime != nil && f.Aircraft.Registration != "" {
			return
		}
	}
}
