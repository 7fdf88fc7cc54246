// Package model contains domain models for flight resolution and scoring.
// Reference types are immutable; EnrichedFlight and UserStats are the two
// records the core emits for the caller to persist.
package model

import (
	"strings"
	"time"
)

// ─── Enums ──────────────────────────────────────────────────

type FlightStatus string

const (
	StatusScheduled FlightStatus = "scheduled"
	StatusBoarding  FlightStatus = "boarding"
	StatusDeparted  FlightStatus = "departed"
	StatusAirborne  FlightStatus = "airborne"
	StatusLanded    FlightStatus = "landed"
	StatusDelayed   FlightStatus = "delayed"
	StatusCancelled FlightStatus = "cancelled"
)

// ParseFlightStatus maps provider vocabulary onto FlightStatus.
// Returns "" when the text does not name a known status.
func ParseFlightStatus(s string) FlightStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scheduled", "expected", "on time", "on-time", "ontime":
		return StatusScheduled
	case "boarding", "gate open", "check-in", "checkin":
		return StatusBoarding
	case "departed", "gate departure", "taxiing":
		return StatusDeparted
	case "active", "airborne", "en route", "en-route", "enroute", "in air", "in flight":
		return StatusAirborne
	case "landed", "arrived", "diverted":
		return StatusLanded
	case "delayed":
		return StatusDelayed
	case "cancelled", "canceled":
		return StatusCancelled
	}
	return ""
}

type AircraftCategory string

const (
	CategoryNarrowBody AircraftCategory = "narrow_body"
	CategoryWideBody   AircraftCategory = "wide_body"
	CategoryRegional   AircraftCategory = "regional"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

type DistanceSource string

const (
	DistanceComputed DistanceSource = "computed"
	DistanceProvider DistanceSource = "provider"
)

type DurationSource string

const (
	DurationTimestamps DurationSource = "timestamps"
	DurationProvider   DurationSource = "provider"
	DurationExtracted  DurationSource = "extracted"
	DurationEstimated  DurationSource = "estimated"
)

// SourceSynthesized is the provenance source of a reconstructed record.
const SourceSynthesized = "synthesized"

// ─── Reference Data ─────────────────────────────────────────

// Location represents a geographic coordinate (WGS-84).
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Airport is immutable reference data keyed by IATA code.
type Airport struct {
	IATA      string  `json:"iata"`
	ICAO      string  `json:"icao"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Continent string  `json:"continent"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Elevation int     `json:"elevation_ft"`
	Timezone  string  `json:"timezone"`
}

// Location returns the airport's coordinate.
func (a Airport) Location() Location {
	return Location{Lat: a.Lat, Lon: a.Lon}
}

// AircraftType is immutable reference data keyed by ICAO type designator.
type AircraftType struct {
	ICAO           string           `json:"icao"`
	IATA           string           `json:"iata"`
	Aliases        []string         `json:"-"`
	Manufacturer   string           `json:"manufacturer"`
	Model          string           `json:"model"`
	Category       AircraftCategory `json:"category"`
	CruiseSpeedMph float64          `json:"cruise_speed_mph"`
	Capacity       int              `json:"capacity"`
}

// Airline is reference data keyed by IATA carrier code.
type Airline struct {
	IATA         string  `json:"iata"`
	ICAO         string  `json:"icao"`
	Name         string  `json:"name"`
	Country      string  `json:"country"`
	FleetType    string  `json:"fleet_type,omitempty"`
	CommonRoutes []Route `json:"-"`
}

// Route is an ordered airport pair used by the carrier pattern table.
type Route struct {
	From string
	To   string
}

// ─── Provider Output ────────────────────────────────────────

// Position is a live telemetry sample.
type Position struct {
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	AltitudeFt float64   `json:"altitude_ft"`
	SpeedMph   float64   `json:"speed_mph"`
	Heading    float64   `json:"heading"`
	OnGround   bool      `json:"on_ground"`
	ObservedAt time.Time `json:"observed_at"`
}

// PartialFlightRecord is the one shape every adapter produces. Empty strings
// and nil pointers mean the provider did not report the field.
type PartialFlightRecord struct {
	Source             string
	AirlineCode        string
	AirlineName        string
	DepartureCode      string
	ArrivalCode        string
	ScheduledDeparture *time.Time
	ScheduledArrival   *time.Time
	ActualDeparture    *time.Time
	ActualArrival      *time.Time
	AircraftCode       string
	AircraftText       string
	Registration       string
	Status             FlightStatus
	DistanceMiles      *float64
	DurationMinutes    *int
	Position           *Position

	// FromText is set when the record was recovered by the text extractor
	// rather than read from typed provider fields.
	FromText bool
}

// ─── Resolved Flight ────────────────────────────────────────

type AirlineInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type AircraftInfo struct {
	TypeCode       string           `json:"type_code,omitempty"`
	Model          string           `json:"model,omitempty"`
	Manufacturer   string           `json:"manufacturer,omitempty"`
	Category       AircraftCategory `json:"category,omitempty"`
	Registration   string           `json:"registration,omitempty"`
	NeedsUserInput bool             `json:"needs_user_input"`
}

type RouteInfo struct {
	Departure       Airport        `json:"departure"`
	Arrival         Airport        `json:"arrival"`
	DistanceMiles   float64        `json:"distance_miles"`
	DurationMinutes int            `json:"duration_minutes"`
	DistanceSource  DistanceSource `json:"distance_source"`
	DurationSource  DurationSource `json:"duration_source"`
}

type Schedule struct {
	ScheduledDeparture *time.Time `json:"scheduled_departure,omitempty"`
	ScheduledArrival   *time.Time `json:"scheduled_arrival,omitempty"`
	ActualDeparture    *time.Time `json:"actual_departure,omitempty"`
	ActualArrival      *time.Time `json:"actual_arrival,omitempty"`
}

type Provenance struct {
	Source            string     `json:"source"`
	Confidence        Confidence `json:"confidence"`
	DistanceEstimated bool       `json:"distance_estimated"`
	DurationEstimated bool       `json:"duration_estimated"`
	Consulted         []string   `json:"consulted,omitempty"`
	Trace             []string   `json:"trace,omitempty"`
	ResolvedAt        time.Time  `json:"resolved_at"`
}

// EnrichedFlight is the resolution engine's output for one (flight, date).
type EnrichedFlight struct {
	FlightNumber string       `json:"flight_number"`
	Date         string       `json:"date"`
	Airline      AirlineInfo  `json:"airline"`
	Aircraft     AircraftInfo `json:"aircraft"`
	Route        RouteInfo    `json:"route"`
	Schedule     Schedule     `json:"schedule"`
	Status       FlightStatus `json:"status"`
	Realtime     *Position    `json:"realtime,omitempty"`
	Provenance   Provenance   `json:"provenance"`
}

// IsInternational reports whether the endpoints are in different countries.
func (f *EnrichedFlight) IsInternational() bool {
	return f.Route.Departure.Country != "" && f.Route.Arrival.Country != "" &&
		f.Route.Departure.Country != f.Route.Arrival.Country
}

// RouteKey returns "DEP-ARR".
func (f *EnrichedFlight) RouteKey() string {
	return f.Route.Departure.IATA + "-" + f.Route.Arrival.IATA
}

// CacheKey returns the cache key for a normalized flight number and date.
func CacheKey(flightNumber, date string) string {
	return flightNumber + "|" + date
}

// CacheEntry is a stored resolution with its creation time.
type CacheEntry struct {
	Key       string    `json:"key"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// ─── Gamification ───────────────────────────────────────────

// FlightSummary identifies a single logged flight inside UserStats.
type FlightSummary struct {
	FlightNumber  string  `json:"flight_number"`
	Date          string  `json:"date"`
	Route         string  `json:"route"`
	DistanceMiles float64 `json:"distance_miles"`
}

// UserStats is the lifetime aggregate for one user. It is mutated only by
// applying a gamification.ScoreResult.
type UserStats struct {
	UserID               string         `json:"user_id"`
	TotalFlights         int            `json:"total_flights"`
	TotalDistanceMiles   float64        `json:"total_distance_miles"`
	TotalMinutes         int            `json:"total_minutes"`
	Airports             []string       `json:"airports"`
	Countries            []string       `json:"countries"`
	Continents           []string       `json:"continents"`
	Airlines             []string       `json:"airlines"`
	AircraftModels       []string       `json:"aircraft_models"`
	LongestFlight        *FlightSummary `json:"longest_flight,omitempty"`
	ShortestFlight       *FlightSummary `json:"shortest_flight,omitempty"`
	RouteCounts          map[string]int `json:"route_counts"`
	TotalXP              int            `json:"total_xp"`
	UnlockedAchievements []string       `json:"unlocked_achievements"`
	NightFlights         int            `json:"night_flights"`
	WideBodyFlights      int            `json:"wide_body_flights"`
	InternationalFlights int            `json:"international_flights"`
	LongHaulFlights      int            `json:"long_haul_flights"`
	AchievementPoints    int            `json:"achievement_points"`
	Version              int64          `json:"version"`
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Metric names a UserStats counter an achievement threshold is checked against.
type Metric string

const (
	MetricFlights       Metric = "flights"
	MetricMiles         Metric = "miles"
	MetricCountries     Metric = "countries"
	MetricAirports      Metric = "airports"
	MetricAirlines      Metric = "airlines"
	MetricAircraft      Metric = "aircraft"
	MetricContinents    Metric = "continents"
	MetricNightFlights  Metric = "night_flights"
	MetricWideBody      Metric = "wide_body_flights"
	MetricLongHaul      Metric = "long_haul_flights"
	MetricInternational Metric = "international_flights"
	MetricRouteRepeat   Metric = "max_route_count"
)

// Rule is an unlock condition: a threshold on Metric, or a named predicate.
type Rule struct {
	Metric    Metric `json:"metric,omitempty"`
	Threshold int    `json:"threshold,omitempty"`
	Predicate string `json:"predicate,omitempty"`
}

// Achievement is a static catalog entry.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Rule        Rule   `json:"rule"`
	XPReward    int    `json:"xp_reward"`
	Rarity      Rarity `json:"rarity"`
}
