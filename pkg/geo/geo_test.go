package geo

import (
	"math"
	"testing"

	"github.com/shiva/flightlog/internal/model"
)

var (
	bom = model.Location{Lat: 19.0896, Lon: 72.8656}
	blr = model.Location{Lat: 13.1986, Lon: 77.7066}
	lhr = model.Location{Lat: 51.4700, Lon: -0.4543}
	jfk = model.Location{Lat: 40.6413, Lon: -73.7781}
)

func TestHaversineKm_SamePoint(t *testing.T) {
	got := HaversineKm(bom, bom)
	if got != 0 {
		t.Errorf("HaversineKm(same point) = %v, want 0", got)
	}
}

func TestHaversineMiles_KnownDistances(t *testing.T) {
	tests := []struct {
		name string
		a, b model.Location
		want float64
	}{
		{"BOM-BLR", bom, blr, 518.4},
		{"LHR-JFK", lhr, jfk, 3442.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineMiles(tt.a, tt.b)
			if !WithinTolerance(got, tt.want, 0.01) {
				t.Errorf("HaversineMiles(%s) = %.1f mi, want %.1f ±1%%", tt.name, got, tt.want)
			}
		})
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	if d1, d2 := HaversineMiles(bom, blr), HaversineMiles(blr, bom); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
	if d1, d2 := HaversineKm(lhr, jfk), HaversineKm(jfk, lhr); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestHaversine_KmMilesAgree(t *testing.T) {
	km := HaversineKm(lhr, jfk)
	mi := HaversineMiles(lhr, jfk)
	if !WithinTolerance(mi*KmPerMile, km, 0.001) {
		t.Errorf("km = %.1f, miles*1.609 = %.1f", km, mi*KmPerMile)
	}
}

func TestEstimateDurationMinutes(t *testing.T) {
	// 500 mi at 500 mph = 60 min + 30 overhead
	if got := EstimateDurationMinutes(500, 500); got != 90 {
		t.Errorf("EstimateDurationMinutes(500, 500) = %d, want 90", got)
	}
	// unknown cruise falls back to the default
	if got := EstimateDurationMinutes(1000, 0); got != 150 {
		t.Errorf("EstimateDurationMinutes(1000, 0) = %d, want 150", got)
	}
	if got := EstimateDurationMinutes(-5, 450); got != GroundOverheadMinutes {
		t.Errorf("EstimateDurationMinutes(negative) = %d, want %d", got, GroundOverheadMinutes)
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(104, 100, 0.05) {
		t.Error("104 should be within 5% of 100")
	}
	if WithinTolerance(106, 100, 0.05) {
		t.Error("106 should not be within 5% of 100")
	}
	if WithinTolerance(1, 0, 0.05) {
		t.Error("non-zero vs zero should not be within tolerance")
	}
}
