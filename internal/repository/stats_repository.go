// Package repository persists per-user flight stats and the flight log.
//
// Writes are guarded by an optimistic version check: a caller reads stats at
// version N and may only save N+1. Two concurrent applications for the same
// user cannot both commit; the loser gets ErrStatsConflict and re-reads.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiva/flightlog/internal/model"
)

// ErrStatsConflict is returned when the stored version moved since the read.
var ErrStatsConflict = errors.New("stats version conflict")

// LoggedFlight is one row of a user's flight log.
type LoggedFlight struct {
	UserID       string    `json:"user_id"`
	FlightNumber string    `json:"flight_number"`
	Date         string    `json:"date"`
	Route        string    `json:"route"`
	XPDelta      int       `json:"xp_delta"`
	Version      int64     `json:"version"`
	LoggedAt     time.Time `json:"logged_at"`
}

// StatsStore loads and saves UserStats.
type StatsStore interface {
	// Get returns the user's stats. A user with no history gets zero stats
	// at version 0.
	Get(ctx context.Context, userID string) (model.UserStats, error)
	// Save stores next if the current version equals expectedVersion, and
	// appends entry to the flight log in the same write. next.Version is
	// ignored; the stored version becomes expectedVersion+1.
	Save(ctx context.Context, next model.UserStats, expectedVersion int64, entry LoggedFlight) (int64, error)
	// Flights lists the user's log, newest first.
	Flights(ctx context.Context, userID string, limit int) ([]LoggedFlight, error)
}

// EmptyStats is the starting point for a user with no history.
func EmptyStats(userID string) model.UserStats {
	return model.UserStats{
		UserID:               userID,
		Airports:             []string{},
		Countries:            []string{},
		Continents:           []string{},
		Airlines:             []string{},
		AircraftModels:       []string{},
		RouteCounts:          map[string]int{},
		UnlockedAchievements: []string{},
	}
}

// ─── Memory Store ───────────────────────────────────────────

// MemoryStatsStore keeps stats in process memory.
type MemoryStatsStore struct {
	mu      sync.Mutex
	stats   map[string][]byte
	flights map[string][]LoggedFlight
}

// NewMemoryStatsStore creates an empty store.
func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{
		stats:   make(map[string][]byte),
		flights: make(map[string][]LoggedFlight),
	}
}

func (s *MemoryStatsStore) Get(_ context.Context, userID string) (model.UserStats, error) {
	s.mu.Lock()
	raw, ok := s.stats[userID]
	s.mu.Unlock()
	if !ok {
		return EmptyStats(userID), nil
	}
	// Stored encoded so callers never share slices or maps with the store.
	var out model.UserStats
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.UserStats{}, fmt.Errorf("memory stats: decode %s: %w", userID, err)
	}
	return out, nil
}

func (s *MemoryStatsStore) Save(_ context.Context, next model.UserStats, expectedVersion int64, entry LoggedFlight) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := int64(0)
	if raw, ok := s.stats[next.UserID]; ok {
		var prev model.UserStats
		if err := json.Unmarshal(raw, &prev); err != nil {
			return 0, fmt.Errorf("memory stats: decode %s: %w", next.UserID, err)
		}
		current = prev.Version
	}
	if current != expectedVersion {
		return 0, fmt.Errorf("user %s at version %d, expected %d: %w", next.UserID, current, expectedVersion, ErrStatsConflict)
	}

	next.Version = expectedVersion + 1
	raw, err := json.Marshal(next)
	if err != nil {
		return 0, fmt.Errorf("memory stats: encode %s: %w", next.UserID, err)
	}
	s.stats[next.UserID] = raw

	entry.UserID = next.UserID
	entry.Version = next.Version
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now().UTC()
	}
	s.flights[next.UserID] = append(s.flights[next.UserID], entry)
	return next.Version, nil
}

func (s *MemoryStatsStore) Flights(_ context.Context, userID string, limit int) ([]LoggedFlight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.flights[userID]
	out := make([]LoggedFlight, len(log))
	copy(out, log)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ─── Postgres Store ─────────────────────────────────────────

const (
	createStatsTableSQL = `
		CREATE TABLE IF NOT EXISTS user_stats (
			user_id    TEXT PRIMARY KEY,
			stats      JSONB NOT NULL,
			version    BIGINT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`

	createFlightLogTableSQL = `
		CREATE TABLE IF NOT EXISTS user_flights (
			id            BIGSERIAL PRIMARY KEY,
			user_id       TEXT NOT NULL,
			flight_number TEXT NOT NULL,
			flight_date   TEXT NOT NULL,
			route         TEXT NOT NULL,
			xp_delta      INT NOT NULL,
			version       BIGINT NOT NULL,
			logged_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, version)
		)`
)

// PostgresStatsStore keeps stats as a JSONB document plus a version column.
type PostgresStatsStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStatsStore creates a store on an open pool.
func NewPostgresStatsStore(pool *pgxpool.Pool) *PostgresStatsStore {
	return &PostgresStatsStore{pool: pool}
}

// EnsureSchema creates the tables if they do not exist.
func (r *PostgresStatsStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createStatsTableSQL, createFlightLogTableSQL} {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("stats: ensure schema: %w", err)
		}
	}
	return nil
}

// Get reads the stats document for userID.
func (r *PostgresStatsStore) Get(ctx context.Context, userID string) (model.UserStats, error) {
	var (
		raw     []byte
		version int64
	)
	err := r.pool.QueryRow(ctx, `
		SELECT stats, version FROM user_stats WHERE user_id = $1
	`, userID).Scan(&raw, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmptyStats(userID), nil
	}
	if err != nil {
		return model.UserStats{}, fmt.Errorf("stats: get %s: %w", userID, err)
	}

	out := EmptyStats(userID)
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.UserStats{}, fmt.Errorf("stats: decode %s: %w", userID, err)
	}
	out.UserID = userID
	out.Version = version
	return out, nil
}

// Save writes next at expectedVersion+1 and appends entry, in one transaction.
func (r *PostgresStatsStore) Save(ctx context.Context, next model.UserStats, expectedVersion int64, entry LoggedFlight) (int64, error) {
	newVersion := expectedVersion + 1
	next.Version = newVersion
	raw, err := json.Marshal(next)
	if err != nil {
		return 0, fmt.Errorf("stats: encode %s: %w", next.UserID, err)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return 0, fmt.Errorf("stats: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// ── Step 1: compare-and-set on the version column ──
	var affected int64
	if expectedVersion == 0 {
		tag, err := tx.Exec(ctx, `
			INSERT INTO user_stats (user_id, stats, version)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO NOTHING
		`, next.UserID, raw, newVersion)
		if err != nil {
			return 0, fmt.Errorf("stats: insert %s: %w", next.UserID, err)
		}
		affected = tag.RowsAffected()
	} else {
		tag, err := tx.Exec(ctx, `
			UPDATE user_stats
			SET stats = $2, version = $3, updated_at = now()
			WHERE user_id = $1 AND version = $4
		`, next.UserID, raw, newVersion, expectedVersion)
		if err != nil {
			return 0, fmt.Errorf("stats: update %s: %w", next.UserID, err)
		}
		affected = tag.RowsAffected()
	}
	if affected == 0 {
		return 0, fmt.Errorf("user %s moved past version %d: %w", next.UserID, expectedVersion, ErrStatsConflict)
	}

	// ── Step 2: flight log row ──
	_, err = tx.Exec(ctx, `
		INSERT INTO user_flights (user_id, flight_number, flight_date, route, xp_delta, version)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, next.UserID, entry.FlightNumber, entry.Date, entry.Route, entry.XPDelta, newVersion)
	if err != nil {
		return 0, fmt.Errorf("stats: log flight for %s: %w", next.UserID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("stats: commit: %w", err)
	}
	return newVersion, nil
}

// Flights lists the user's logged flights, newest first.
func (r *PostgresStatsStore) Flights(ctx context.Context, userID string, limit int) ([]LoggedFlight, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, flight_number, flight_date, route, xp_delta, version, logged_at
		FROM user_flights
		WHERE user_id = $1
		ORDER BY version DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("stats: list flights %s: %w", userID, err)
	}
	defer rows.Close()

	out := []LoggedFlight{}
	for rows.Next() {
		var f LoggedFlight
		if err := rows.Scan(&f.UserID, &f.FlightNumber, &f.Date, &f.Route, &f.XPDelta, &f.Version, &f.LoggedAt); err != nil {
			return nil, fmt.Errorf("stats: scan flight: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
