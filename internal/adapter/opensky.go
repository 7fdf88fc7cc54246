package adapter

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/shiva/flightlog/internal/model"
)

// DefaultHexDBURL is the public hexdb.io endpoint.
const DefaultHexDBURL = "https://hexdb.io/api/v1"

const (
	openSkyBaseURL = "https://opensky-network.org/api"

	// Anonymous clients get one /states/all call per 10 seconds.
	defaultOpenSkyInterval = 10 * time.Second
)

// Telemetry is what a live enricher may contribute to a resolved flight:
// position and airframe identity, never route or schedule.
type Telemetry struct {
	ICAO24       string
	Callsign     string
	Registration string
	Position     *model.Position
}

// Enricher looks up live telemetry by ICAO callsign.
type Enricher interface {
	Name() string
	Enrich(ctx context.Context, callsign string) (*Telemetry, error)
}

// OpenSkyConfig holds credentials and pacing for the OpenSky enricher.
type OpenSkyConfig struct {
	Username    string
	Password    string
	MinInterval time.Duration
	// HexDBURL enables the registration lookup; empty disables it.
	HexDBURL string
}

// OpenSky matches a callsign against the live state vectors and, when hexdb
// is configured, resolves the airframe's registration by icao24.
type OpenSky struct {
	client
	cfg     OpenSkyConfig
	limiter *rate.Limiter
}

// NewOpenSky creates the enricher. Calls are paced client-side to the
// configured interval.
func NewOpenSky(cfg OpenSkyConfig, opts ...Option) *OpenSky {
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = defaultOpenSkyInterval
	}
	cfg.HexDBURL = strings.TrimRight(cfg.HexDBURL, "/")
	return &OpenSky{
		client:  newClient(openSkyBaseURL, opts),
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
	}
}

func (o *OpenSky) Name() string { return "opensky" }

// openSkyResponse is the /states/all payload: each state is a positional array.
type openSkyResponse struct {
	Time   int64           `json:"time"`
	States [][]interface{} `json:"states"`
}

type hexDBResponse struct {
	Registration     string `json:"Registration"`
	ICAOTypeCode     string `json:"ICAOTypeCode"`
	Type             string `json:"Type"`
	RegisteredOwners string `json:"RegisteredOwners"`
}

// Enrich finds the airborne (or taxiing) aircraft flying callsign.
func (o *OpenSky) Enrich(ctx context.Context, callsign string) (*Telemetry, error) {
	callsign = strings.ToUpper(strings.TrimSpace(callsign))
	if callsign == "" {
		return nil, ErrNoData
	}
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, transportErr(o.Name(), 0, fmt.Errorf("rate wait: %w", err))
	}

	var headers map[string]string
	if o.cfg.Username != "" {
		headers = map[string]string{"Authorization": basicAuth(o.cfg.Username, o.cfg.Password)}
	}

	var raw openSkyResponse
	if err := getJSON(ctx, o.hc, o.Name(), o.baseURL+"/states/all", headers, &raw); err != nil {
		return nil, err
	}

	tel := matchState(raw, callsign)
	if tel == nil {
		return nil, ErrNoData
	}

	if o.cfg.HexDBURL != "" {
		o.lookupAirframe(ctx, tel)
	}
	return tel, nil
}

// lookupAirframe fills the registration from hexdb. Failures only log.
func (o *OpenSky) lookupAirframe(ctx context.Context, tel *Telemetry) {
	if len(tel.ICAO24) != 6 {
		return
	}
	var res hexDBResponse
	endpoint := o.cfg.HexDBURL + "/aircraft/" + url.PathEscape(tel.ICAO24)
	if err := getJSON(ctx, o.hc, "hexdb", endpoint, nil, &res); err != nil {
		log.Printf("[opensky] hexdb lookup for %s: %v", tel.ICAO24, err)
		return
	}
	tel.Registration = strings.ToUpper(strings.TrimSpace(res.Registration))
}

// matchState scans state vectors for callsign. Index layout: 0 icao24,
// 1 callsign, 3 time_position, 4 last_contact, 5 lon, 6 lat, 7 baro_altitude,
// 8 on_ground, 9 velocity (m/s), 10 true_track.
func matchState(raw openSkyResponse, callsign string) *Telemetry {
	for _, s := range raw.States {
		if len(s) < 11 {
			continue
		}
		if strings.ToUpper(strings.TrimSpace(stringVal(s[1]))) != callsign {
			continue
		}
		lon, okLon := s[5].(float64)
		lat, okLat := s[6].(float64)
		tel := &Telemetry{
			ICAO24:   strings.ToLower(stringVal(s[0])),
			Callsign: callsign,
		}
		if okLon && okLat {
			pos := &model.Position{Lat: lat, Lon: lon, OnGround: boolVal(s[8])}
			if v, ok := s[7].(float64); ok {
				pos.AltitudeFt = v * feetPerMeter
			}
			if v, ok := s[9].(float64); ok {
				pos.SpeedMph = v * mphPerMs
			}
			if v, ok := s[10].(float64); ok {
				pos.Heading = v
			}
			if v, ok := s[4].(float64); ok {
				pos.ObservedAt = time.Unix(int64(v), 0).UTC()
			} else if raw.Time > 0 {
				pos.ObservedAt = time.Unix(raw.Time, 0).UTC()
			}
			tel.Position = pos
		}
		return tel
	}
	return nil
}

func stringVal(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func boolVal(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}
