package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shiva/flightlog/internal/model"
	"github.com/shiva/flightlog/internal/refdata"
)

const aviationStackBaseURL = "https://api.aviationstack.com"

// AviationStack reads the /v1/flights endpoint.
type AviationStack struct {
	client
	apiKey string
}

// NewAviationStack creates the adapter. apiKey is sent as access_key.
func NewAviationStack(apiKey string, opts ...Option) *AviationStack {
	return &AviationStack{client: newClient(aviationStackBaseURL, opts), apiKey: apiKey}
}

func (a *AviationStack) Name() string { return "aviationstack" }

type aviationStackResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Data []aviationStackFlight `json:"data"`
}

type aviationStackEndpoint struct {
	IATA      string `json:"iata"`
	ICAO      string `json:"icao"`
	Timezone  string `json:"timezone"`
	Scheduled string `json:"scheduled"`
	Actual    string `json:"actual"`
}

type aviationStackFlight struct {
	FlightDate   string                `json:"flight_date"`
	FlightStatus string                `json:"flight_status"`
	Departure    aviationStackEndpoint `json:"departure"`
	Arrival      aviationStackEndpoint `json:"arrival"`
	Airline      struct {
		Name string `json:"name"`
		IATA string `json:"iata"`
	} `json:"airline"`
	Aircraft *struct {
		Registration string `json:"registration"`
		IATA         string `json:"iata"`
		ICAO         string `json:"icao"`
	} `json:"aircraft"`
	Live *struct {
		Updated         string  `json:"updated"`
		Latitude        float64 `json:"latitude"`
		Longitude       float64 `json:"longitude"`
		Altitude        float64 `json:"altitude"`
		Direction       float64 `json:"direction"`
		SpeedHorizontal float64 `json:"speed_horizontal"`
		IsGround        bool    `json:"is_ground"`
	} `json:"live"`
}

// Fetch queries one flight on one date.
func (a *AviationStack) Fetch(ctx context.Context, flightNumber, date string) (*model.PartialFlightRecord, error) {
	q := url.Values{}
	q.Set("access_key", a.apiKey)
	q.Set("flight_iata", flightNumber)
	q.Set("flight_date", date)

	var resp aviationStackResponse
	if err := getJSON(ctx, a.hc, a.Name(), a.baseURL+"/v1/flights?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, transportErr(a.Name(), 0, fmt.Errorf("api error %s: %s", resp.Error.Code, resp.Error.Message))
	}

	for _, f := range resp.Data {
		if f.FlightDate != "" && f.FlightDate != date {
			continue
		}
		return a.toRecord(f), nil
	}
	return nil, ErrNoData
}

func (a *AviationStack) toRecord(f aviationStackFlight) *model.PartialFlightRecord {
	rec := &model.PartialFlightRecord{
		Source:        a.Name(),
		AirlineCode:   f.Airline.IATA,
		AirlineName:   f.Airline.Name,
		DepartureCode: firstNonEmpty(f.Departure.IATA, f.Departure.ICAO),
		ArrivalCode:   firstNonEmpty(f.Arrival.IATA, f.Arrival.ICAO),
		Status:        model.ParseFlightStatus(f.FlightStatus),
	}

	rec.ScheduledDeparture = aviationStackTime(f.Departure.Scheduled, f.Departure)
	rec.ActualDeparture = aviationStackTime(f.Departure.Actual, f.Departure)
	rec.ScheduledArrival = aviationStackTime(f.Arrival.Scheduled, f.Arrival)
	rec.ActualArrival = aviationStackTime(f.Arrival.Actual, f.Arrival)

	if f.Aircraft != nil {
		rec.AircraftCode = firstNonEmpty(f.Aircraft.ICAO, f.Aircraft.IATA)
		rec.Registration = strings.ToUpper(f.Aircraft.Registration)
	}
	if f.Live != nil && (f.Live.Latitude != 0 || f.Live.Longitude != 0) {
		observed, _ := time.Parse(time.RFC3339, f.Live.Updated)
		rec.Position = &model.Position{
			Lat:        f.Live.Latitude,
			Lon:        f.Live.Longitude,
			AltitudeFt: f.Live.Altitude * feetPerMeter,
			SpeedMph:   f.Live.SpeedHorizontal * mphPerKmh,
			Heading:    f.Live.Direction,
			OnGround:   f.Live.IsGround,
			ObservedAt: observed.UTC(),
		}
	}
	return rec
}

// aviationStackTime parses an endpoint timestamp. The API reports local
// wall-clock times with a +00:00 offset, so the reading is re-anchored in the
// airport's zone (the payload zone first, then reference data).
func aviationStackTime(raw string, ep aviationStackEndpoint) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	tz := ep.Timezone
	if tz == "" {
		if ap, ok := refdata.ResolveAirport(firstNonEmpty(ep.IATA, ep.ICAO)); ok {
			tz = ap.Timezone
		}
	}
	if tz != "" {
		t = placeInZone(t, tz)
	}
	return ptrTime(t)
}

const (
	feetPerMeter = 3.28084
	mphPerKmh    = 0.621371
	mphPerMs     = 2.23694
)

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
