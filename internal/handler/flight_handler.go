package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shiva/flightlog/internal/resolver"
	"github.com/shiva/flightlog/internal/service"
)

// FlightHandler serves flight resolution and the per-user flight log.
type FlightHandler struct {
	svc *service.FlightLogService
}

// NewFlightHandler creates a handler wired to the flight-log service.
func NewFlightHandler(svc *service.FlightLogService) *FlightHandler {
	return &FlightHandler{svc: svc}
}

// ResolveRequest is the body of POST /api/v1/flights/resolve.
type ResolveRequest struct {
	FlightNumber string             `json:"flight_number"`
	Date         string             `json:"date"`
	Overrides    resolver.Overrides `json:"overrides"`
}

// Resolve handles POST /api/v1/flights/resolve
//
// Returns 200 with the enriched flight, 400 for malformed input and 404 when
// no source and no carrier pattern can produce the flight.
func (h *FlightHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	flight, err := h.svc.Resolve(r.Context(), req.FlightNumber, req.Date)
	if err != nil {
		writeServiceError(w, r, "resolve", err)
		return
	}
	flight, err = resolver.ApplyOverrides(flight, req.Overrides)
	if err != nil {
		writeServiceError(w, r, "resolve", err)
		return
	}
	writeJSON(w, http.StatusOK, flight)
}

// LogFlight handles POST /api/v1/users/{user_id}/flights
//
// Resolves the flight, scores it against the user's stats and saves.
// Returns 201 with the flight, XP breakdown and new achievements.
func (h *FlightHandler) LogFlight(w http.ResponseWriter, r *http.Request) {
	var req service.LogFlightRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	req.UserID = mux.Vars(r)["user_id"]

	res, err := h.svc.LogFlight(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "log flight", err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// ListFlights handles GET /api/v1/users/{user_id}/flights?limit=N
func (h *FlightHandler) ListFlights(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be an integer in [1, 500]")
			return
		}
		limit = n
	}

	flights, err := h.svc.Flights(r.Context(), mux.Vars(r)["user_id"], limit)
	if err != nil {
		writeServiceError(w, r, "list flights", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"flights": flights})
}

// GetStats handles GET /api/v1/users/{user_id}/stats
func (h *FlightHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context(), mux.Vars(r)["user_id"])
	if err != nil {
		writeServiceError(w, r, "get stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
