package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shiva/flightlog/internal/cache"
	"github.com/shiva/flightlog/internal/model"
	"github.com/shiva/flightlog/internal/refdata"
)

// ErrInvalidOverride is returned when a user correction fails validation.
var ErrInvalidOverride = errors.New("invalid override")

// Overrides are user corrections applied on top of a resolved flight.
// Empty fields leave the resolved value alone.
type Overrides struct {
	AircraftType string `json:"aircraft_type,omitempty"`
	Registration string `json:"registration,omitempty"`
	Departure    string `json:"departure,omitempty"`
	Arrival      string `json:"arrival,omitempty"`
}

// Empty reports whether no field is set.
func (o Overrides) Empty() bool {
	return o == Overrides{}
}

// ApplyOverrides returns a corrected copy of f. Changed endpoints recompute
// distance and, when no timestamps back it, duration. The result is never
// written to the shared cache.
func ApplyOverrides(f *model.EnrichedFlight, o Overrides) (*model.EnrichedFlight, error) {
	out := cache.Canonical(f)
	if o.Empty() {
		return out, nil
	}

	if o.AircraftType != "" {
		t, ok := refdata.LookupAircraft(o.AircraftType)
		if !ok {
			return nil, fmt.Errorf("aircraft %q: %w", o.AircraftType, ErrInvalidOverride)
		}
		out.Aircraft.TypeCode = t.ICAO
		out.Aircraft.Model = t.Model
		out.Aircraft.Manufacturer = t.Manufacturer
		out.Aircraft.Category = t.Category
		out.Aircraft.NeedsUserInput = false
	}
	if o.Registration != "" {
		out.Aircraft.Registration = strings.ToUpper(strings.TrimSpace(o.Registration))
	}

	routeChanged := o.Departure != "" || o.Arrival != ""
	dep, arr := out.Route.Departure, out.Route.Arrival
	if o.Departure != "" {
		a, ok := refdata.ResolveAirport(o.Departure)
		if !ok {
			return nil, fmt.Errorf("departure %q: %w", o.Departure, ErrInvalidOverride)
		}
		dep = a
	}
	if o.Arrival != "" {
		a, ok := refdata.ResolveAirport(o.Arrival)
		if !ok {
			return nil, fmt.Errorf("arrival %q: %w", o.Arrival, ErrInvalidOverride)
		}
		arr = a
	}
	if dep.IATA == arr.IATA {
		return nil, fmt.Errorf("departure equals arrival: %w", ErrInvalidOverride)
	}

	switch {
	case routeChanged:
		// Provider distance and schedule-derived duration belonged to the old route.
		ri := routeInfo(dep, arr, nil, cruiseSpeed(out.Aircraft.TypeCode))
		if out.Route.DurationSource != model.DurationEstimated {
			ri.DurationMinutes, ri.DurationSource = out.Route.DurationMinutes, out.Route.DurationSource
		}
		out.Route = ri
	case o.AircraftType != "" && out.Route.DurationSource == model.DurationEstimated:
		out.Route = routeInfo(dep, arr, &model.PartialFlightRecord{DistanceMiles: distanceIfProvider(out.Route)}, cruiseSpeed(out.Aircraft.TypeCode))
	}

	if routeChanged {
		out.Provenance.DistanceEstimated = false
	}
	out.Provenance.DurationEstimated = out.Route.DurationSource == model.DurationEstimated
	out.Provenance.Trace = append(out.Provenance.Trace, "overridden")
	return out, nil
}

func distanceIfProvider(ri model.RouteInfo) *float64 {
	if ri.DistanceSource != model.DistanceProvider {
		return nil
	}
	d := ri.DistanceMiles
	return &d
}
