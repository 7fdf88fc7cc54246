package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shiva/flightlog/internal/model"
)

// Dialect selects placeholder syntax for the SQL store.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS flight_cache (
			cache_key  TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`

	selectEntrySQL = `SELECT payload, created_at FROM flight_cache WHERE cache_key = $1`

	upsertEntrySQL = `
		INSERT INTO flight_cache (cache_key, payload, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (cache_key) DO UPDATE
		SET payload = excluded.payload, created_at = excluded.created_at`
)

// SQLStore keeps entries in a relational table. It works against Postgres
// (pgx stdlib driver) and SQLite (modernc driver).
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLStore wraps an open database handle.
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// EnsureSchema creates the cache table if it does not exist.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("sql cache: create table: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (*model.CacheEntry, error) {
	var (
		payload string
		created int64
	)
	err := s.db.QueryRowContext(ctx, s.rebind(selectEntrySQL), key).Scan(&payload, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sql cache: get: %w", err)
	}
	return &model.CacheEntry{
		Key:       key,
		Payload:   []byte(payload),
		CreatedAt: time.Unix(0, created).UTC(),
	}, nil
}

func (s *SQLStore) Set(ctx context.Context, entry *model.CacheEntry) error {
	_, err := s.db.ExecContext(ctx, s.rebind(upsertEntrySQL),
		entry.Key, string(entry.Payload), entry.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("sql cache: set: %w", err)
	}
	return nil
}

// rebind rewrites $N placeholders to ? for SQLite.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectSQLite {
		return query
	}
	for i := 9; i >= 1; i-- {
		query = strings.ReplaceAll(query, "$"+strconv.Itoa(i), "?")
	}
	return query
}
