// Package events publishes resolution and scoring events to NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/shiva/flightlog/internal/model"
)

const (
	SubjectFlightResolved = "flights.resolved"
	SubjectStatsApplied   = "stats.applied"

	streamName = "FLIGHTLOG"
)

// StatsApplied is emitted after a flight has been scored and saved.
type StatsApplied struct {
	UserID          string    `json:"user_id"`
	FlightNumber    string    `json:"flight_number"`
	Date            string    `json:"date"`
	XPDelta         int       `json:"xp_delta"`
	TotalXP         int       `json:"total_xp"`
	Level           int       `json:"level"`
	NewAchievements []string  `json:"new_achievements"`
	Version         int64     `json:"version"`
	AppliedAt       time.Time `json:"applied_at"`
}

// Publisher emits domain events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	FlightResolved(ctx context.Context, f *model.EnrichedFlight) error
	StatsApplied(ctx context.Context, ev StatsApplied) error
	Close()
}

// ─── NATS ───────────────────────────────────────────────────

// jetStream is the subset of nats.JetStreamContext the publisher uses.
type jetStream interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// NATSPublisher writes events to a JetStream stream.
type NATSPublisher struct {
	conn *nats.Conn
	js   jetStream
}

// NewNATSPublisher connects to url and makes sure the stream exists.
func NewNATSPublisher(url string, maxAge time.Duration) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("flightlog"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to get JetStream context: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     streamName,
		Subjects: []string{SubjectFlightResolved, SubjectStatsApplied},
		Storage:  nats.FileStorage,
		MaxAge:   maxAge,
	})
	if err != nil && !strings.Contains(err.Error(), "stream name already in use") {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	return &NATSPublisher{conn: nc, js: js}, nil
}

// newWithJetStream wraps an existing JetStream handle (or a test double).
func newWithJetStream(js jetStream) *NATSPublisher {
	return &NATSPublisher{js: js}
}

func (p *NATSPublisher) FlightResolved(ctx context.Context, f *model.EnrichedFlight) error {
	return p.publish(ctx, SubjectFlightResolved, f)
}

func (p *NATSPublisher) StatsApplied(ctx context.Context, ev StatsApplied) error {
	return p.publish(ctx, SubjectStatsApplied, ev)
}

func (p *NATSPublisher) publish(ctx context.Context, subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", subject, err)
	}
	if _, err := p.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}

// Close drains the connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

// ─── No-op ──────────────────────────────────────────────────

// Noop discards every event. Used when NATS is not configured.
type Noop struct{}

func (Noop) FlightResolved(context.Context, *model.EnrichedFlight) error { return nil }
func (Noop) StatsApplied(context.Context, StatsApplied) error { return nil }
func (Noop) Close() {}
