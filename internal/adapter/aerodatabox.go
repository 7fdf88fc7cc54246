package adapter

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/shiva/flightlog/internal/model"
)

const aeroDataBoxBaseURL = "https://aerodatabox.p.rapidapi.com"

// AeroDataBox reads /flights/number/{fn}/{date}. Unlike AviationStack it also
// reports the great-circle distance, which the resolver may adopt.
type AeroDataBox struct {
	client
	apiKey string
	host   string
}

// NewAeroDataBox creates the adapter for the RapidAPI-hosted endpoint.
func NewAeroDataBox(apiKey string, opts ...Option) *AeroDataBox {
	c := newClient(aeroDataBoxBaseURL, opts)
	host := strings.TrimPrefix(strings.TrimPrefix(c.baseURL, "https://"), "http://")
	return &AeroDataBox{client: c, apiKey: apiKey, host: host}
}

func (a *AeroDataBox) Name() string { return "aerodatabox" }

type aeroDataBoxTime struct {
	UTC   string `json:"utc"`
	Local string `json:"local"`
}

type aeroDataBoxEndpoint struct {
	Airport struct {
		IATA string `json:"iata"`
		ICAO string `json:"icao"`
	} `json:"airport"`
	ScheduledTime *aeroDataBoxTime `json:"scheduledTime"`
	RevisedTime   *aeroDataBoxTime `json:"revisedTime"`
	RunwayTime    *aeroDataBoxTime `json:"runwayTime"`
}

type aeroDataBoxFlight struct {
	Number    string              `json:"number"`
	Status    string              `json:"status"`
	Departure aeroDataBoxEndpoint `json:"departure"`
	Arrival   aeroDataBoxEndpoint `json:"arrival"`
	Aircraft  *struct {
		Reg   string `json:"reg"`
		Model string `json:"model"`
	} `json:"aircraft"`
	Airline struct {
		Name string `json:"name"`
		IATA string `json:"iata"`
	} `json:"airline"`
	GreatCircleDistance *struct {
		Mile float64 `json:"mile"`
		Km   float64 `json:"km"`
	} `json:"greatCircleDistance"`
}

// Fetch queries one flight on one date.
func (a *AeroDataBox) Fetch(ctx context.Context, flightNumber, date string) (*model.PartialFlightRecord, error) {
	endpoint := a.baseURL + "/flights/number/" + url.PathEscape(flightNumber) + "/" + url.PathEscape(date)
	headers := map[string]string{
		"X-RapidAPI-Key":  a.apiKey,
		"X-RapidAPI-Host": a.host,
	}

	var flights []aeroDataBoxFlight
	if err := getJSON(ctx, a.hc, a.Name(), endpoint, headers, &flights); err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return nil, ErrNoData
	}

	// Multi-leg numbers return one entry per leg; the first leg is the flight
	// the user boarded under this number.
	return a.toRecord(flights[0]), nil
}

func (a *AeroDataBox) toRecord(f aeroDataBoxFlight) *model.PartialFlightRecord {
	rec := &model.PartialFlightRecord{
		Source:        a.Name(),
		AirlineCode:   f.Airline.IATA,
		AirlineName:   f.Airline.Name,
		DepartureCode: firstNonEmpty(f.Departure.Airport.IATA, f.Departure.Airport.ICAO),
		ArrivalCode:   firstNonEmpty(f.Arrival.Airport.IATA, f.Arrival.Airport.ICAO),
		Status:        model.ParseFlightStatus(f.Status),
	}

	rec.ScheduledDeparture = aeroDataBoxParse(f.Departure.ScheduledTime)
	rec.ScheduledArrival = aeroDataBoxParse(f.Arrival.ScheduledTime)
	rec.ActualDeparture = aeroDataBoxParse(f.Departure.RunwayTime)
	rec.ActualArrival = aeroDataBoxParse(f.Arrival.RunwayTime)

	if f.Aircraft != nil {
		rec.AircraftText = f.Aircraft.Model
		rec.Registration = strings.ToUpper(f.Aircraft.Reg)
	}
	if f.GreatCircleDistance != nil && f.GreatCircleDistance.Mile > 0 {
		rec.DistanceMiles = ptrFloat(f.GreatCircleDistance.Mile)
	}
	return rec
}

var aeroDataBoxLayouts = []string{"2006-01-02 15:04Z07:00", "2006-01-02 15:04-07:00", time.RFC3339}

// aeroDataBoxParse prefers the local reading, which carries the offset.
func aeroDataBoxParse(t *aeroDataBoxTime) *time.Time {
	if t == nil {
		return nil
	}
	for _, raw := range []string{t.Local, t.UTC} {
		if raw == "" {
			continue
		}
		for _, layout := range aeroDataBoxLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return ptrTime(parsed)
			}
		}
	}
	return nil
}
