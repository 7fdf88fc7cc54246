package resolver

import (
	"fmt"
	"math"
	"time"

	"github.com/shiva/flightlog/internal/model"
	"github.com/shiva/flightlog/internal/refdata"
	"github.com/shiva/flightlog/pkg/geo"
)

// providerDistanceTolerance is how far a provider's distance may stray from
// the great-circle value and still be adopted.
const providerDistanceTolerance = 0.05

// normalize turns the accepted partial record into an EnrichedFlight.
func normalize(fn refdata.FlightNumber, date string, rec *model.PartialFlightRecord, now time.Time) (*model.EnrichedFlight, error) {
	dep, ok1 := refdata.ResolveAirport(rec.DepartureCode)
	arr, ok2 := refdata.ResolveAirport(rec.ArrivalCode)
	if !ok1 || !ok2 || dep.IATA == arr.IATA {
		return nil, fmt.Errorf("record from %s has no valid route", rec.Source)
	}
	synthesized := rec.Source == model.SourceSynthesized

	f := &model.EnrichedFlight{
		FlightNumber: fn.String(),
		Date:         date,
		Airline:      airlineInfo(fn, rec),
		Aircraft:     aircraftInfo(rec),
		Schedule: model.Schedule{
			ScheduledDeparture: rec.ScheduledDeparture,
			ScheduledArrival:   rec.ScheduledArrival,
			ActualDeparture:    rec.ActualDeparture,
			ActualArrival:      rec.ActualArrival,
		},
		Status:   deriveStatus(rec),
		Realtime: rec.Position,
		Provenance: model.Provenance{
			Source:            rec.Source,
			Confidence:        confidence(rec),
			DistanceEstimated: synthesized,
			ResolvedAt:        now.UTC(),
		},
	}
	if synthesized {
		f.Aircraft.Registration = ""
		f.Aircraft.NeedsUserInput = true
	}

	f.Route = routeInfo(dep, arr, rec, cruiseSpeed(f.Aircraft.TypeCode))
	f.Provenance.DurationEstimated = f.Route.DurationSource == model.DurationEstimated
	return f, nil
}

// routeInfo computes distance and duration for a validated pair of airports.
func routeInfo(dep, arr model.Airport, rec *model.PartialFlightRecord, cruiseMph float64) model.RouteInfo {
	ri := model.RouteInfo{Departure: dep, Arrival: arr}

	// ── distance: geometric unless the provider agrees within tolerance ──
	computed := geo.AirportDistanceMiles(dep, arr)
	ri.DistanceMiles, ri.DistanceSource = computed, model.DistanceComputed
	if rec != nil && rec.DistanceMiles != nil && geo.WithinTolerance(*rec.DistanceMiles, computed, providerDistanceTolerance) {
		ri.DistanceMiles, ri.DistanceSource = *rec.DistanceMiles, model.DistanceProvider
	}

	// ── duration: timestamps, then provider value, then estimate ──
	if rec != nil {
		if mins, ok := timestampMinutes(rec); ok {
			ri.DurationMinutes, ri.DurationSource = mins, model.DurationTimestamps
			if rec.FromText {
				ri.DurationSource = model.DurationExtracted
			}
			return ri
		}
		if rec.DurationMinutes != nil && *rec.DurationMinutes > 0 {
			ri.DurationMinutes, ri.DurationSource = *rec.DurationMinutes, model.DurationProvider
			if rec.FromText {
				ri.DurationSource = model.DurationExtracted
			}
			return ri
		}
	}
	ri.DurationMinutes = geo.EstimateDurationMinutes(ri.DistanceMiles, cruiseMph)
	ri.DurationSource = model.DurationEstimated
	return ri
}

// timestampMinutes uses the actual pair when both ends are known, else the
// scheduled pair. Mixed pairs are not combined.
func timestampMinutes(rec *model.PartialFlightRecord) (int, bool) {
	pairs := [][2]*time.Time{
		{rec.ActualDeparture, rec.ActualArrival},
		{rec.ScheduledDeparture, rec.ScheduledArrival},
	}
	for _, p := range pairs {
		if p[0] == nil || p[1] == nil || !p[1].After(*p[0]) {
			continue
		}
		return int(math.Round(p[1].Sub(*p[0]).Minutes())), true
	}
	return 0, false
}

func airlineInfo(fn refdata.FlightNumber, rec *model.PartialFlightRecord) model.AirlineInfo {
	for _, code := range []string{rec.AirlineCode, fn.Carrier} {
		if a, ok := refdata.Airline(code); ok {
			return model.AirlineInfo{Code: a.IATA, Name: a.Name}
		}
	}
	if a, ok := refdata.AirlineByName(rec.AirlineName); ok {
		return model.AirlineInfo{Code: a.IATA, Name: a.Name}
	}
	return model.AirlineInfo{Code: fn.Carrier, Name: rec.AirlineName}
}

func aircraftInfo(rec *model.PartialFlightRecord) model.AircraftInfo {
	info := model.AircraftInfo{Registration: rec.Registration}
	t, ok := refdata.LookupAircraft(rec.AircraftCode)
	if !ok {
		t, ok = refdata.LookupAircraft(rec.AircraftText)
	}
	if !ok {
		info.Model = rec.AircraftText
		info.NeedsUserInput = true
		return info
	}
	info.TypeCode = t.ICAO
	info.Model = t.Model
	info.Manufacturer = t.Manufacturer
	info.Category = t.Category
	return info
}

func cruiseSpeed(typeCode string) float64 {
	if t, ok := refdata.AircraftType(typeCode); ok {
		return t.CruiseSpeedMph
	}
	return geo.DefaultCruiseSpeedMph
}

// deriveStatus keeps the provider's status, else infers it from timestamps.
func deriveStatus(rec *model.PartialFlightRecord) model.FlightStatus {
	switch {
	case rec.Status != "":
		return rec.Status
	case rec.ActualArrival != nil:
		return model.StatusLanded
	case rec.ActualDeparture != nil:
		return model.StatusDeparted
	default:
		return model.StatusScheduled
	}
}

// confidence grades the source: typed provider fields with a schedule are
// high, text extraction or a bare route is medium, synthesis is low.
func confidence(rec *model.PartialFlightRecord) model.Confidence {
	switch {
	case rec.Source == model.SourceSynthesized:
		return model.ConfidenceLow
	case rec.FromText:
		return model.ConfidenceMedium
	case rec.ScheduledDeparture != nil && rec.ScheduledArrival != nil:
		return model.ConfidenceHigh
	default:
		return model.ConfidenceMedium
	}
}

// ─── Synthesis ──────────────────────────────────────────────

// synthesize guesses a route from the carrier's common-route table. The
// pick is deterministic in the flight number. Returns nil for carriers with
// no table.
func synthesize(fn refdata.FlightNumber) *model.PartialFlightRecord {
	a, ok := refdata.Airline(fn.Carrier)
	if !ok || len(a.CommonRoutes) == 0 {
		return nil
	}
	route := a.CommonRoutes[fn.NumericValue()%len(a.CommonRoutes)]
	return &model.PartialFlightRecord{
		Source:        model.SourceSynthesized,
		AirlineCode:   a.IATA,
		AirlineName:   a.Name,
		DepartureCode: route.From,
		ArrivalCode:   route.To,
	}
}
