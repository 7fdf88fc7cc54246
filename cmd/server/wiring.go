package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shiva/flightlog/config"
	"github.com/shiva/flightlog/internal/adapter"
	flightcache "github.com/shiva/flightlog/internal/cache"
	"github.com/shiva/flightlog/internal/quota"
	"github.com/shiva/flightlog/internal/repository"
	"github.com/shiva/flightlog/internal/resolver"
	"github.com/shiva/flightlog/pkg/db"
)

// buildFlightCache picks the cache store. The returned func releases any
// SQL handle it opened.
func buildFlightCache(ctx context.Context, cfg *config.Config, rc *redis.Client) (*flightcache.FlightCache, func(), error) {
	noop := func() {}
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		return flightcache.New(flightcache.NewRedisStore(rc, 2*cfg.Cache.TTL), cfg.Cache.TTL, nil), noop, nil

	case config.BackendPostgres, config.BackendSQLite:
		driver, dsn, dialect := db.DriverPostgres, cfg.Postgres.DSN(), flightcache.DialectPostgres
		if cfg.Cache.Backend == config.BackendSQLite {
			driver, dsn, dialect = db.DriverSQLite, cfg.Cache.SQLiteDSN, flightcache.DialectSQLite
		}
		sqlDB, err := db.OpenSQL(ctx, driver, dsn)
		if err != nil {
			return nil, noop, err
		}
		store := flightcache.NewSQLStore(sqlDB, dialect)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, noop, err
		}
		log.Printf("✓ flight cache on %s", driver)
		return flightcache.New(store, cfg.Cache.TTL, nil), func() { _ = sqlDB.Close() }, nil
	}
	return flightcache.New(flightcache.NewMemoryStore(), cfg.Cache.TTL, nil), noop, nil
}

func buildStatsStore(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (repository.StatsStore, error) {
	if cfg.Stats.Backend != config.BackendPostgres {
		return repository.NewMemoryStatsStore(), nil
	}
	store := repository.NewPostgresStatsStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("stats schema: %w", err)
	}
	return store, nil
}

func buildQuotaStore(cfg *config.Config, rc *redis.Client) quota.Store {
	if cfg.Quota.Backend == config.BackendRedis {
		return quota.NewRedisStore(rc)
	}
	return quota.NewMemoryStore()
}

// buildSources registers adapters in tie-break order: structured APIs first,
// then scraped and searched text. Sources without credentials are skipped.
func buildSources(cfg *config.Config, qs quota.Store, hc *http.Client) []resolver.Source {
	p := cfg.Providers
	withClient := adapter.WithHTTPClient(hc)

	var sources []resolver.Source
	if p.AviationStackKey != "" {
		sources = append(sources, resolver.Source{
			Adapter: adapter.NewAviationStack(p.AviationStackKey, withClient),
			Quota:   quota.NewTracker("aviationstack", cfg.Quota.APIDailyLimit, qs, nil),
		})
	}
	if p.AeroDataBoxKey != "" {
		sources = append(sources, resolver.Source{
			Adapter: adapter.NewAeroDataBox(p.AeroDataBoxKey, withClient),
			Quota:   quota.NewTracker("aerodatabox", cfg.Quota.APIDailyLimit, qs, nil),
		})
	}
	if p.StatusPageEnabled {
		sources = append(sources, resolver.Source{Adapter: adapter.NewStatusPage(withClient)})
	}
	if p.SearchKey != "" {
		sources = append(sources, resolver.Source{
			Adapter: adapter.NewSearch(p.SearchKey, withClient),
			Quota:   quota.NewTracker("search", cfg.Quota.SearchDailyLimit, qs, nil),
		})
	}
	for _, s := range sources {
		log.Printf("[wiring] source %s (metered=%t)", s.Adapter.Name(), s.Quota != nil)
	}
	return sources
}

func buildEnrichers(cfg *config.Config, hc *http.Client) []adapter.Enricher {
	p := cfg.Providers
	if !p.OpenSkyEnabled {
		return nil
	}
	return []adapter.Enricher{adapter.NewOpenSky(adapter.OpenSkyConfig{
		Username:    p.OpenSkyUsername,
		Password:    p.OpenSkyPassword,
		MinInterval: p.OpenSkyMinInterval,
		HexDBURL:    p.HexDBURL,
	}, adapter.WithHTTPClient(hc))}
}
