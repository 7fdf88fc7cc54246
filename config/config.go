package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend names accepted by CACHE_BACKEND, QUOTA_BACKEND and STATS_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	NATS      NATSConfig
	Cache     CacheConfig
	Quota     QuotaConfig
	Stats     StatsConfig
	Resolver  ResolverConfig
	Providers ProvidersConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"SERVER_HOST"`
	Port         int           `mapstructure:"SERVER_PORT"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `mapstructure:"SERVER_IDLE_TIMEOUT"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `mapstructure:"POSTGRES_HOST"`
	Port     int    `mapstructure:"POSTGRES_PORT"`
	User     string `mapstructure:"POSTGRES_USER"`
	Password string `mapstructure:"POSTGRES_PASSWORD"`
	DBName   string `mapstructure:"POSTGRES_DB"`
	SSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	MaxConns int32  `mapstructure:"POSTGRES_MAX_CONNS"`
	MinConns int32  `mapstructure:"POSTGRES_MIN_CONNS"`

	// StatementTimeout bounds each stats read or versioned save server-side.
	StatementTimeout time.Duration `mapstructure:"POSTGRES_STATEMENT_TIMEOUT"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     int    `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
	PoolSize int    `mapstructure:"REDIS_POOL_SIZE"`

	// OpTimeout caps a single cache or quota command. A slow Redis degrades
	// to a cache miss instead of stalling resolution.
	OpTimeout time.Duration `mapstructure:"REDIS_OP_TIMEOUT"`
}

// NATSConfig holds event publishing settings. An empty URL disables events.
type NATSConfig struct {
	URL          string        `mapstructure:"NATS_URL"`
	StreamMaxAge time.Duration `mapstructure:"NATS_STREAM_MAX_AGE"`
}

// CacheConfig selects the resolved-flight cache store.
type CacheConfig struct {
	Backend   string        `mapstructure:"CACHE_BACKEND"`
	TTL       time.Duration `mapstructure:"CACHE_TTL"`
	SQLiteDSN string        `mapstructure:"CACHE_SQLITE_DSN"`
}

// QuotaConfig sets daily caps for metered providers.
type QuotaConfig struct {
	Backend          string `mapstructure:"QUOTA_BACKEND"`
	SearchDailyLimit int    `mapstructure:"QUOTA_SEARCH_DAILY"`
	APIDailyLimit    int    `mapstructure:"QUOTA_API_DAILY"`
}

// StatsConfig selects the user stats store.
type StatsConfig struct {
	Backend string `mapstructure:"STATS_BACKEND"`
}

// ResolverConfig holds orchestrator timeouts.
type ResolverConfig struct {
	AdapterTimeout    time.Duration `mapstructure:"RESOLVER_ADAPTER_TIMEOUT"`
	RaceCeiling       time.Duration `mapstructure:"RESOLVER_RACE_CEILING"`
	SequentialTimeout time.Duration `mapstructure:"RESOLVER_SEQUENTIAL_TIMEOUT"`
	EnrichTimeout     time.Duration `mapstructure:"RESOLVER_ENRICH_TIMEOUT"`
}

// ProvidersConfig holds upstream credentials. A source with no key is not
// registered.
type ProvidersConfig struct {
	AviationStackKey   string        `mapstructure:"AVIATIONSTACK_API_KEY"`
	AeroDataBoxKey     string        `mapstructure:"AERODATABOX_API_KEY"`
	SearchKey          string        `mapstructure:"SEARCH_API_KEY"`
	StatusPageEnabled  bool          `mapstructure:"STATUSPAGE_ENABLED"`
	OpenSkyEnabled     bool          `mapstructure:"OPENSKY_ENABLED"`
	OpenSkyUsername    string        `mapstructure:"OPENSKY_USERNAME"`
	OpenSkyPassword    string        `mapstructure:"OPENSKY_PASSWORD"`
	OpenSkyMinInterval time.Duration `mapstructure:"OPENSKY_MIN_INTERVAL"`
	HexDBURL           string        `mapstructure:"HEXDB_URL"`
}

// DSN returns the PostgreSQL connection string.
func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// Addr returns the Redis address in host:port format.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ServerAddr returns the HTTP listen address in host:port format.
func (s *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// NeedsPostgres reports whether any store is backed by PostgreSQL.
func (c *Config) NeedsPostgres() bool {
	return c.Cache.Backend == BackendPostgres || c.Stats.Backend == BackendPostgres
}

// NeedsRedis reports whether any store is backed by Redis.
func (c *Config) NeedsRedis() bool {
	return c.Cache.Backend == BackendRedis || c.Quota.Backend == BackendRedis
}

// Validate rejects unknown backends and non-positive durations.
func (c *Config) Validate() error {
	check := func(key, val string, allowed ...string) error {
		for _, a := range allowed {
			if val == a {
				return nil
			}
		}
		return fmt.Errorf("config: %s=%q, want one of %s", key, val, strings.Join(allowed, ", "))
	}
	if err := check("CACHE_BACKEND", c.Cache.Backend, BackendMemory, BackendRedis, BackendPostgres, BackendSQLite); err != nil {
		return err
	}
	if err := check("QUOTA_BACKEND", c.Quota.Backend, BackendMemory, BackendRedis); err != nil {
		return err
	}
	if err := check("STATS_BACKEND", c.Stats.Backend, BackendMemory, BackendPostgres); err != nil {
		return err
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("config: CACHE_TTL must be positive, got %s", c.Cache.TTL)
	}
	return nil
}

// Load reads configuration from environment variables and .env file.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// ── Defaults ────────────────────────────────────────
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("SERVER_READ_TIMEOUT", "5s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	viper.SetDefault("SERVER_IDLE_TIMEOUT", "120s")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "flightlog")
	viper.SetDefault("POSTGRES_PASSWORD", "flightlog_secret")
	viper.SetDefault("POSTGRES_DB", "flightlog")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_MAX_CONNS", 20)
	viper.SetDefault("POSTGRES_MIN_CONNS", 2)
	viper.SetDefault("POSTGRES_STATEMENT_TIMEOUT", "5s")

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 50)
	viper.SetDefault("REDIS_OP_TIMEOUT", "500ms")

	viper.SetDefault("NATS_URL", "")
	viper.SetDefault("NATS_STREAM_MAX_AGE", "72h")

	viper.SetDefault("CACHE_BACKEND", BackendMemory)
	viper.SetDefault("CACHE_TTL", "6h")
	viper.SetDefault("CACHE_SQLITE_DSN", "file:flightlog.db?_pragma=busy_timeout(5000)")

	viper.SetDefault("QUOTA_BACKEND", BackendMemory)
	viper.SetDefault("QUOTA_SEARCH_DAILY", 100)
	viper.SetDefault("QUOTA_API_DAILY", 500)

	viper.SetDefault("STATS_BACKEND", BackendMemory)

	viper.SetDefault("RESOLVER_ADAPTER_TIMEOUT", "4s")
	viper.SetDefault("RESOLVER_RACE_CEILING", "6s")
	viper.SetDefault("RESOLVER_SEQUENTIAL_TIMEOUT", "10s")
	viper.SetDefault("RESOLVER_ENRICH_TIMEOUT", "3s")

	viper.SetDefault("AVIATIONSTACK_API_KEY", "")
	viper.SetDefault("AERODATABOX_API_KEY", "")
	viper.SetDefault("SEARCH_API_KEY", "")
	viper.SetDefault("STATUSPAGE_ENABLED", true)
	viper.SetDefault("OPENSKY_ENABLED", true)
	viper.SetDefault("OPENSKY_USERNAME", "")
	viper.SetDefault("OPENSKY_PASSWORD", "")
	viper.SetDefault("OPENSKY_MIN_INTERVAL", "10s")
	viper.SetDefault("HEXDB_URL", "https://hexdb.io/api/v1")

	// Try to read .env file. If it doesn't exist (e.g., inside Docker),
	// env vars injected by docker-compose env_file are used instead.
	_ = viper.ReadInConfig()

	cfg := &Config{}

	// ── Server ──────────────────────────────────────────
	cfg.Server = ServerConfig{
		Host:         viper.GetString("SERVER_HOST"),
		Port:         viper.GetInt("SERVER_PORT"),
		ReadTimeout:  viper.GetDuration("SERVER_READ_TIMEOUT"),
		WriteTimeout: viper.GetDuration("SERVER_WRITE_TIMEOUT"),
		IdleTimeout:  viper.GetDuration("SERVER_IDLE_TIMEOUT"),
	}

	// ── Postgres ────────────────────────────────────────
	cfg.Postgres = PostgresConfig{
		Host:     viper.GetString("POSTGRES_HOST"),
		Port:     viper.GetInt("POSTGRES_PORT"),
		User:     viper.GetString("POSTGRES_USER"),
		Password: viper.GetString("POSTGRES_PASSWORD"),
		DBName:   viper.GetString("POSTGRES_DB"),
		SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		MaxConns: viper.GetInt32("POSTGRES_MAX_CONNS"),
		MinConns: viper.GetInt32("POSTGRES_MIN_CONNS"),

		StatementTimeout: viper.GetDuration("POSTGRES_STATEMENT_TIMEOUT"),
	}

	// ── Redis ───────────────────────────────────────────
	cfg.Redis = RedisConfig{
		Host:     viper.GetString("REDIS_HOST"),
		Port:     viper.GetInt("REDIS_PORT"),
		Password: viper.GetString("REDIS_PASSWORD"),
		DB:       viper.GetInt("REDIS_DB"),
		PoolSize: viper.GetInt("REDIS_POOL_SIZE"),

		OpTimeout: viper.GetDuration("REDIS_OP_TIMEOUT"),
	}

	// ── NATS ────────────────────────────────────────────
	cfg.NATS = NATSConfig{
		URL:          viper.GetString("NATS_URL"),
		StreamMaxAge: viper.GetDuration("NATS_STREAM_MAX_AGE"),
	}

	// ── Stores ──────────────────────────────────────────
	cfg.Cache = CacheConfig{
		Backend:   strings.ToLower(viper.GetString("CACHE_BACKEND")),
		TTL:       viper.GetDuration("CACHE_TTL"),
		SQLiteDSN: viper.GetString("CACHE_SQLITE_DSN"),
	}
	cfg.Quota = QuotaConfig{
		Backend:          strings.ToLower(viper.GetString("QUOTA_BACKEND")),
		SearchDailyLimit: viper.GetInt("QUOTA_SEARCH_DAILY"),
		APIDailyLimit:    viper.GetInt("QUOTA_API_DAILY"),
	}
	cfg.Stats = StatsConfig{
		Backend: strings.ToLower(viper.GetString("STATS_BACKEND")),
	}

	// ── Resolver ────────────────────────────────────────
	cfg.Resolver = ResolverConfig{
		AdapterTimeout:    viper.GetDuration("RESOLVER_ADAPTER_TIMEOUT"),
		RaceCeiling:       viper.GetDuration("RESOLVER_RACE_CEILING"),
		SequentialTimeout: viper.GetDuration("RESOLVER_SEQUENTIAL_TIMEOUT"),
		EnrichTimeout:     viper.GetDuration("RESOLVER_ENRICH_TIMEOUT"),
	}

	// ── Providers ───────────────────────────────────────
	cfg.Providers = ProvidersConfig{
		AviationStackKey:   viper.GetString("AVIATIONSTACK_API_KEY"),
		AeroDataBoxKey:     viper.GetString("AERODATABOX_API_KEY"),
		SearchKey:          viper.GetString("SEARCH_API_KEY"),
		StatusPageEnabled:  viper.GetBool("STATUSPAGE_ENABLED"),
		OpenSkyEnabled:     viper.GetBool("OPENSKY_ENABLED"),
		OpenSkyUsername:    viper.GetString("OPENSKY_USERNAME"),
		OpenSkyPassword:    viper.GetString("OPENSKY_PASSWORD"),
		OpenSkyMinInterval: viper.GetDuration("OPENSKY_MIN_INTERVAL"),
		HexDBURL:           viper.GetString("HEXDB_URL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
