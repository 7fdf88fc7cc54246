// Package geo provides great-circle distance and flight-time estimation.
//
// All distance calculations use the Haversine formula on WGS-84 coordinates
// with a spherical Earth. Results are symmetric: Distance(a, b) == Distance(b, a).
package geo

import (
	"math"

	"github.com/shiva/flightlog/internal/model"
)

// ─── Constants ──────────────────────────────────────────────

const (
	// EarthRadiusKm is the mean radius of Earth in kilometers.
	EarthRadiusKm = 6371.0

	// EarthRadiusMiles is the mean radius of Earth in statute miles.
	EarthRadiusMiles = 3958.8

	// KmPerMile converts statute miles to kilometers.
	KmPerMile = 1.609344

	// DefaultCruiseSpeedMph is used when the aircraft type is unknown.
	DefaultCruiseSpeedMph = 500.0

	// GroundOverheadMinutes covers taxi, climb and approach.
	GroundOverheadMinutes = 30
)

// ─── Distance ───────────────────────────────────────────────

// HaversineKm returns the great-circle distance between two points in kilometers.
//
// Complexity: O(1)
func HaversineKm(a, b model.Location) float64 {
	return centralAngle(a, b) * EarthRadiusKm
}

// HaversineMiles returns the great-circle distance between two points in statute miles.
func HaversineMiles(a, b model.Location) float64 {
	return centralAngle(a, b) * EarthRadiusMiles
}

// AirportDistanceMiles returns the distance between two airports in statute miles.
func AirportDistanceMiles(from, to model.Airport) float64 {
	return HaversineMiles(from.Location(), to.Location())
}

// WithinTolerance reports whether got lies within frac (0.05 = 5%) of want.
func WithinTolerance(got, want, frac float64) bool {
	if want == 0 {
		return got == 0
	}
	return math.Abs(got-want)/want <= frac
}

// ─── Duration ───────────────────────────────────────────────

// EstimateDurationMinutes estimates block time from distance and cruise speed:
// distance / cruise * 60 + GroundOverheadMinutes. A non-positive cruise speed
// falls back to DefaultCruiseSpeedMph.
func EstimateDurationMinutes(distanceMiles, cruiseMph float64) int {
	if cruiseMph <= 0 {
		cruiseMph = DefaultCruiseSpeedMph
	}
	if distanceMiles < 0 {
		distanceMiles = 0
	}
	return int(math.Round(distanceMiles/cruiseMph*60)) + GroundOverheadMinutes
}

// ─── Helpers ────────────────────────────────────────────────

// centralAngle returns the angle subtended at Earth's centre in radians.
func centralAngle(a, b model.Location) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLon*sinLon

	// Clamp against rounding just above 1 for antipodal points.
	if h > 1 {
		h = 1
	}
	return 2 * math.Asin(math.Sqrt(h))
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
