package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shiva/flightlog/config"
	"github.com/shiva/flightlog/internal/adapter"
	"github.com/shiva/flightlog/internal/events"
	"github.com/shiva/flightlog/internal/handler"
	"github.com/shiva/flightlog/internal/resolver"
	"github.com/shiva/flightlog/internal/service"
	"github.com/shiva/flightlog/pkg/cache"
	"github.com/shiva/flightlog/pkg/db"
)

func main() {
	// ── Load configuration ──────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// ── Connect to PostgreSQL (only if a store needs it) ─
	var pgPool *pgxpool.Pool
	if cfg.NeedsPostgres() {
		pgPool, err = db.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			log.Fatalf("failed to connect to PostgreSQL: %v", err)
		}
		defer pgPool.Close()
		log.Println("✓ PostgreSQL connected")
	}

	// ── Connect to Redis (only if a store needs it) ─────
	var redisClient *redis.Client
	if cfg.NeedsRedis() {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("✓ Redis connected")
	}

	// ── Stores ──────────────────────────────────────────
	flightCache, closeCache, err := buildFlightCache(ctx, cfg, redisClient)
	if err != nil {
		log.Fatalf("failed to set up flight cache: %v", err)
	}
	defer closeCache()

	statsStore, err := buildStatsStore(ctx, cfg, pgPool)
	if err != nil {
		log.Fatalf("failed to set up stats store: %v", err)
	}

	// ── Events ──────────────────────────────────────────
	var publisher events.Publisher = events.Noop{}
	if cfg.NATS.URL != "" {
		p, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.StreamMaxAge)
		if err != nil {
			log.Fatalf("failed to connect to NATS: %v", err)
		}
		publisher = p
		log.Println("✓ NATS connected")
	}
	defer publisher.Close()

	// ── Resolver ────────────────────────────────────────
	hc := adapter.NewHTTPClient()
	sources := buildSources(cfg, buildQuotaStore(cfg, redisClient), hc)
	enrichers := buildEnrichers(cfg, hc)
	if len(sources) == 0 {
		log.Println("⚠ no flight data sources configured; every lookup will fall back to carrier route patterns")
	}
	res := resolver.New(sources, enrichers, flightCache, resolver.Config{
		AdapterTimeout:    cfg.Resolver.AdapterTimeout,
		RaceCeiling:       cfg.Resolver.RaceCeiling,
		SequentialTimeout: cfg.Resolver.SequentialTimeout,
		EnrichTimeout:     cfg.Resolver.EnrichTimeout,
	})

	// ── Initialize layers ───────────────────────────────
	flightSvc := service.NewFlightLogService(res, statsStore, publisher)
	router := handler.NewRouter(handler.NewFlightHandler(flightSvc), healthHandler(pgPool, redisClient))

	// ── Start HTTP server ───────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in a goroutine so we can listen for shutdown signals.
	go func() {
		log.Printf("🚀 Server listening on %s (%d sources, %d enrichers)", cfg.Server.ServerAddr(), len(sources), len(enrichers))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// ── Graceful shutdown ───────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("⏳ Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}

// HealthResponse represents the /health endpoint response.
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// healthHandler checks whichever of PG and Redis are in use.
func healthHandler(pgPool *pgxpool.Pool, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:   "ok",
			Services: make(map[string]string),
		}

		if pgPool != nil {
			if err := db.HealthCheck(r.Context(), pgPool); err != nil {
				resp.Status = "degraded"
				resp.Services["postgres"] = "unhealthy: " + err.Error()
			} else {
				resp.Services["postgres"] = "healthy"
			}
		}

		if redisClient != nil {
			if err := cache.HealthCheck(r.Context(), redisClient); err != nil {
				resp.Status = "degraded"
				resp.Services["redis"] = "unhealthy: " + err.Error()
			} else {
				resp.Services["redis"] = "healthy"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
