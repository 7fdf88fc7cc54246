package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiva/flightlog/internal/gamification"
	"github.com/shiva/flightlog/internal/model"
	"github.com/shiva/flightlog/internal/refdata"
	"github.com/shiva/flightlog/internal/repository"
	"github.com/shiva/flightlog/internal/resolver"
	"github.com/shiva/flightlog/internal/service"
)

// stubResolver knows one flight and mimics the resolver's input checks.
type stubResolver struct {
	flight *model.EnrichedFlight
}

func (s stubResolver) Resolve(_ context.Context, fn, date string) (*model.EnrichedFlight, error) {
	norm, err := refdata.NormalizeFlightNumber(fn)
	if err != nil {
		return nil, err
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, resolver.ErrInvalidDate
	}
	if norm != s.flight.FlightNumber {
		return nil, resolver.ErrNotFound
	}
	return s.flight, nil
}

func qp1457(t *testing.T) *model.EnrichedFlight {
	t.Helper()
	dep, _ := refdata.Airport("BOM")
	arr, _ := refdata.Airport("BLR")
	loc, err := time.LoadLocation(dep.Timezone)
	require.NoError(t, err)
	sched := time.Date(2024, 3, 1, 10, 0, 0, 0, loc)
	return &model.EnrichedFlight{
		FlightNumber: "QP1457",
		Date:         "2024-03-01",
		Airline:      model.AirlineInfo{Code: "QP", Name: "Akasa Air"},
		Aircraft:     model.AircraftInfo{TypeCode: "B38M", Category: model.CategoryNarrowBody},
		Route: model.RouteInfo{
			Departure: dep, Arrival: arr, DistanceMiles: 537, DurationMinutes: 92,
			DistanceSource: model.DistanceComputed, DurationSource: model.DurationTimestamps,
		},
		Schedule:   model.Schedule{ScheduledDeparture: &sched},
		Provenance: model.Provenance{Source: "aviationstack", Confidence: model.ConfidenceHigh},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := service.NewFlightLogService(stubResolver{flight: qp1457(t)}, repository.NewMemoryStatsStore(), nil)
	health := func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}) }
	return NewRouter(NewFlightHandler(svc), health)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestResolve_OK(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/v1/flights/resolve", `{"flight_number":"qp 1457","date":"2024-03-01"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var f model.EnrichedFlight
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "BOM-BLR", f.RouteKey())
}

func TestResolve_WithOverrides(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/v1/flights/resolve",
		`{"flight_number":"QP1457","date":"2024-03-01","overrides":{"registration":"vt-yae"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var f model.EnrichedFlight
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "VT-YAE", f.Aircraft.Registration)
}

func TestResolve_NotFoundIs404(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/v1/flights/resolve", `{"flight_number":"ZZ123","date":"2024-03-01"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}

func TestResolve_BadInput(t *testing.T) {
	h := newTestRouter(t)
	cases := map[string]string{
		"empty body":    ``,
		"bad json":      `{"flight_number":`,
		"bad number":    `{"flight_number":"!!","date":"2024-03-01"}`,
		"bad date":      `{"flight_number":"QP1457","date":"01/03/2024"}`,
		"bad override":  `{"flight_number":"QP1457","date":"2024-03-01","overrides":{"arrival":"ZZZ"}}`,
		"same endpoint": `{"flight_number":"QP1457","date":"2024-03-01","overrides":{"arrival":"BOM"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/flights/resolve", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), "invalid_request")
		})
	}
}

func TestLogFlight_ThenStatsAndHistory(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/users/u1/flights", `{"flight_number":"QP1457","date":"2024-03-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res service.LogFlightResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 837, res.Score.XPDelta)
	assert.Equal(t, []string{"first_flight"}, res.Score.NewAchievements)

	rec = do(t, h, http.MethodGet, "/api/v1/users/u1/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats model.UserStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 837, stats.TotalXP)
	assert.Equal(t, int64(1), stats.Version)

	rec = do(t, h, http.MethodGet, "/api/v1/users/u1/flights?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Flights []repository.LoggedFlight `json:"flights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Flights, 1)
	assert.Equal(t, "QP1457", list.Flights[0].FlightNumber)

	rec = do(t, h, http.MethodGet, "/api/v1/users/u1/flights?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogFlight_UnknownFlight(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/v1/users/u1/flights", `{"flight_number":"ZZ9","date":"2024-03-01"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScore_Stateless(t *testing.T) {
	body, err := json.Marshal(ScoreRequest{Flight: qp1457(t)})
	require.NoError(t, err)

	rec := do(t, newTestRouter(t), http.MethodPost, "/api/v1/score", string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res gamification.ScoreResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 837, res.XPDelta)
	assert.Equal(t, 1, res.Level)
	assert.Equal(t, 163, res.XPToNext)

	rec = do(t, newTestRouter(t), http.MethodPost, "/api/v1/score", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReferenceEndpoints(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/achievements", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cat struct {
		Achievements []model.Achievement `json:"achievements"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cat))
	assert.Len(t, cat.Achievements, len(gamification.Catalog()))

	for _, path := range []string{"/api/v1/airports/bom", "/api/v1/airports/VABB", "/api/v1/aircraft/B38M", "/api/v1/airlines/QP"} {
		rec = do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	for _, path := range []string{"/api/v1/airports/ZZZ", "/api/v1/aircraft/XXXX", "/api/v1/airlines/ZZ", "/nope"} {
		rec = do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
