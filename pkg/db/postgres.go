package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiva/flightlog/config"
)

// StatsApplicationName tags stats-store sessions in pg_stat_activity.
const StatsApplicationName = "flightlog-stats"

// NewPostgresPool creates the pgx pool behind the user stats store.
//
// A flight log holds one connection for a read plus a short versioned-save
// transaction, and conflicts are retried by the caller, so the pool is sized
// for request concurrency rather than throughput.
func NewPostgresPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping %s:%d failed: %w", cfg.Host, cfg.Port, err)
	}

	return pool, nil
}

// PoolConfig derives the pool settings for the stats workload. MinConns is
// clamped to MaxConns, and a statement timeout is set per session so a stuck
// versioned save surfaces as an error instead of holding the row lock.
func PoolConfig(cfg config.PostgresConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MinConns = min(max(cfg.MinConns, 0), poolCfg.MaxConns)
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.MaxConnLifetime = 1 * time.Hour
	poolCfg.MaxConnIdleTime = 15 * time.Minute
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	params := poolCfg.ConnConfig.RuntimeParams
	params["application_name"] = StatsApplicationName
	if cfg.StatementTimeout > 0 {
		params["statement_timeout"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
		params["idle_in_transaction_session_timeout"] = strconv.FormatInt(2*cfg.StatementTimeout.Milliseconds(), 10)
	}
	return poolCfg, nil
}

// HealthCheck pings the pool and reports connection usage.
func HealthCheck(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		return err
	}
	if s := pool.Stat(); s.MaxConns() > 0 && s.AcquiredConns() >= s.MaxConns() {
		return fmt.Errorf("postgres: pool exhausted (%d/%d acquired)", s.AcquiredConns(), s.MaxConns())
	}
	return nil
}
