// Package service ties resolution, scoring and persistence together.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shiva/flightlog/internal/events"
	"github.com/shiva/flightlog/internal/gamification"
	"github.com/shiva/flightlog/internal/model"
	"github.com/shiva/flightlog/internal/repository"
	"github.com/shiva/flightlog/internal/resolver"
)

// ─── Errors ─────────────────────────────────────────────────

var (
	// ErrInvalidUser is returned for an empty or malformed user id.
	ErrInvalidUser = errors.New("invalid user id")
)

// MaxApplyAttempts bounds the read-score-save loop under contention.
const MaxApplyAttempts = 3

// FlightResolver is satisfied by *resolver.Resolver.
type FlightResolver interface {
	Resolve(ctx context.Context, flightNumber, date string) (*model.EnrichedFlight, error)
}

// LogFlightRequest asks to add one flight to a user's history.
type LogFlightRequest struct {
	UserID       string             `json:"-"`
	FlightNumber string             `json:"flight_number"`
	Date         string             `json:"date"`
	Overrides    resolver.Overrides `json:"overrides"`
}

// LogFlightResult is what the user sees after logging a flight.
type LogFlightResult struct {
	Flight  *model.EnrichedFlight    `json:"flight"`
	Score   gamification.ScoreResult `json:"score"`
	Version int64                    `json:"version"`
}

// ─── FlightLogService ───────────────────────────────────────

// FlightLogService resolves flights and applies them to user stats.
//
// Per-user serialization comes from the store's version check: each attempt
// reads stats, scores against them and saves only if nobody else saved in
// between. A lost race re-reads and re-scores from the fresh stats.
type FlightLogService struct {
	resolver FlightResolver
	stats    repository.StatsStore
	pub      events.Publisher
}

// NewFlightLogService creates the service. A nil publisher disables events.
func NewFlightLogService(res FlightResolver, stats repository.StatsStore, pub events.Publisher) *FlightLogService {
	if pub == nil {
		pub = events.Noop{}
	}
	return &FlightLogService{resolver: res, stats: stats, pub: pub}
}

// Resolve looks up one flight and announces it.
func (s *FlightLogService) Resolve(ctx context.Context, flightNumber, date string) (*model.EnrichedFlight, error) {
	f, err := s.resolver.Resolve(ctx, flightNumber, date)
	if err != nil {
		return nil, err
	}
	if err := s.pub.FlightResolved(ctx, f); err != nil {
		log.Printf("[flightlog] publish resolved %s/%s: %v", f.FlightNumber, f.Date, err)
	}
	return f, nil
}

// LogFlight resolves the flight, applies any user corrections, scores it
// against the user's current stats and saves the result.
func (s *FlightLogService) LogFlight(ctx context.Context, req LogFlightRequest) (*LogFlightResult, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, ErrInvalidUser
	}

	// ── Step 1: resolve ──
	f, err := s.Resolve(ctx, req.FlightNumber, req.Date)
	if err != nil {
		return nil, err
	}

	// ── Step 2: user corrections ──
	f, err = resolver.ApplyOverrides(f, req.Overrides)
	if err != nil {
		return nil, err
	}

	// ── Step 3: score and save, retrying on version conflicts ──
	var lastErr error
	for attempt := 1; attempt <= MaxApplyAttempts; attempt++ {
		prior, err := s.stats.Get(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load stats: %w", err)
		}

		score := gamification.Score(f, prior)
		entry := repository.LoggedFlight{
			FlightNumber: f.FlightNumber,
			Date:         f.Date,
			Route:        f.RouteKey(),
			XPDelta:      score.XPDelta,
		}
		version, err := s.stats.Save(ctx, score.Next, prior.Version, entry)
		if errors.Is(err, repository.ErrStatsConflict) {
			lastErr = err
			log.Printf("[flightlog] stats conflict for %s (attempt %d/%d)", userID, attempt, MaxApplyAttempts)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("save stats: %w", err)
		}
		score.Next.Version = version

		log.Printf("[flightlog] ✓ %s logged %s %s: +%d XP (total %d, level %d)",
			userID, f.FlightNumber, f.RouteKey(), score.XPDelta, score.Next.TotalXP, score.Level)
		s.announce(ctx, f, score)
		return &LogFlightResult{Flight: f, Score: score, Version: version}, nil
	}
	return nil, fmt.Errorf("apply flight for %s after %d attempts: %w", userID, MaxApplyAttempts, lastErr)
}

// Stats returns the user's current stats.
func (s *FlightLogService) Stats(ctx context.Context, userID string) (model.UserStats, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return model.UserStats{}, ErrInvalidUser
	}
	return s.stats.Get(ctx, userID)
}

// Flights returns the user's logged flights, newest first.
func (s *FlightLogService) Flights(ctx context.Context, userID string, limit int) ([]repository.LoggedFlight, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUser
	}
	return s.stats.Flights(ctx, userID, limit)
}

func (s *FlightLogService) announce(ctx context.Context, f *model.EnrichedFlight, score gamification.ScoreResult) {
	ev := events.StatsApplied{
		UserID:          score.Next.UserID,
		FlightNumber:    f.FlightNumber,
		Date:            f.Date,
		XPDelta:         score.XPDelta,
		TotalXP:         score.Next.TotalXP,
		Level:           score.Level,
		NewAchievements: score.NewAchievements,
		Version:         score.Next.Version,
		AppliedAt:       time.Now().UTC(),
	}
	if err := s.pub.StatsApplied(ctx, ev); err != nil {
		log.Printf("[flightlog] publish stats for %s: %v", ev.UserID, err)
	}
}
