package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 6*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 100, cfg.Quota.SearchDailyLimit)
	assert.Equal(t, 4*time.Second, cfg.Resolver.AdapterTimeout)
	assert.Equal(t, 6*time.Second, cfg.Resolver.RaceCeiling)
	assert.Equal(t, 10*time.Second, cfg.Resolver.SequentialTimeout)
	assert.Equal(t, 5*time.Second, cfg.Postgres.StatementTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Redis.OpTimeout)
	assert.True(t, cfg.Providers.StatusPageEnabled)
	assert.Empty(t, cfg.NATS.URL)
	assert.False(t, cfg.NeedsPostgres())
	assert.False(t, cfg.NeedsRedis())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("STATS_BACKEND", "postgres")
	t.Setenv("QUOTA_SEARCH_DAILY", "7")
	t.Setenv("RESOLVER_RACE_CEILING", "2s")
	t.Setenv("SEARCH_API_KEY", "k")
	t.Setenv("POSTGRES_PORT", "6543")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.True(t, cfg.NeedsRedis())
	assert.True(t, cfg.NeedsPostgres())
	assert.Equal(t, 7, cfg.Quota.SearchDailyLimit)
	assert.Equal(t, 2*time.Second, cfg.Resolver.RaceCeiling)
	assert.Equal(t, "k", cfg.Providers.SearchKey)
	assert.Contains(t, cfg.Postgres.DSN(), ":6543/")
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STATS_BACKEND", "mongo")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STATS_BACKEND")
}

func TestValidate_CacheTTL(t *testing.T) {
	cfg := Config{
		Cache: CacheConfig{Backend: BackendMemory},
		Quota: QuotaConfig{Backend: BackendMemory},
		Stats: StatsConfig{Backend: BackendMemory},
	}
	assert.Error(t, cfg.Validate())
	cfg.Cache.TTL = time.Minute
	assert.NoError(t, cfg.Validate())
}
