// Package adapter converts external flight-data providers into the common
// PartialFlightRecord shape.
//
// An adapter answers "no data" with ErrNoData; anything that went wrong on the
// wire (timeout, bad status, undecodable body) is a *TransportError. The
// resolver logs both and falls back identically.
package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shiva/flightlog/internal/model"
)

// Adapter fetches one provider's view of a flight.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, flightNumber, date string) (*model.PartialFlightRecord, error)
}

// ErrNoData means the provider answered but knows nothing about the flight.
var ErrNoData = errors.New("no data")

// TransportError wraps a transport-level failure from one provider.
type TransportError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: http %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func transportErr(source string, status int, err error) error {
	return &TransportError{Source: source, StatusCode: status, Err: err}
}

// ─── Shared HTTP client ─────────────────────────────────────

const (
	maxIdleConns        = 20
	maxConnsPerHost     = 5
	idleConnTimeout     = 90 * time.Second
	tlsHandshakeTimeout = 10 * time.Second
	maxBodyBytes        = 4 << 20
)

// NewHTTPClient returns a client with a pooled transport shared by adapters.
// Per-call deadlines come from the request context, not the client.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        maxIdleConns,
			MaxConnsPerHost:     maxConnsPerHost,
			IdleConnTimeout:     idleConnTimeout,
			TLSHandshakeTimeout: tlsHandshakeTimeout,
		},
	}
}

// getJSON performs a GET and decodes a JSON body into out. 404 and 204 map to
// ErrNoData; other non-2xx statuses are transport errors.
func getJSON(ctx context.Context, hc *http.Client, source, url string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return transportErr(source, 0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return transportErr(source, 0, fmt.Errorf("executing request: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		return ErrNoData
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return transportErr(source, resp.StatusCode, fmt.Errorf("unexpected status: %s", string(body)))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return transportErr(source, resp.StatusCode, fmt.Errorf("parsing response: %w", err))
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────

func ptrTime(t time.Time) *time.Time { return &t }

func ptrFloat(f float64) *float64 { return &f }

// placeInZone keeps the wall-clock reading of t but re-anchors it in tz.
// Used for providers that label local times as UTC.
func placeInZone(t time.Time, tz string) time.Time {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

// ─── Options ────────────────────────────────────────────────

// client is the transport state shared by every HTTP-backed adapter.
type client struct {
	baseURL string
	hc      *http.Client
}

// Option configures an adapter.
type Option func(*client)

// WithBaseURL points the adapter at a different endpoint (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient shares one pooled client between adapters.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) { c.hc = hc }
}

func newClient(defaultBase string, opts []Option) client {
	c := client{baseURL: defaultBase}
	for _, opt := range opts {
		opt(&c)
	}
	if c.hc == nil {
		c.hc = NewHTTPClient()
	}
	return c
}
