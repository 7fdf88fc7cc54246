package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shiva/flightlog/internal/gamification"
	"github.com/shiva/flightlog/internal/refdata"
)

// Achievements handles GET /api/v1/achievements
func Achievements(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"achievements": gamification.Catalog()})
}

// Airport handles GET /api/v1/airports/{code}. The code may be IATA, ICAO or
// a known city name.
func Airport(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	a, ok := refdata.ResolveAirport(code)
	if !ok {
		a, ok = refdata.AirportByCity(code)
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Aircraft handles GET /api/v1/aircraft/{code}. Accepts ICAO or IATA type
// codes and common model names.
func Aircraft(w http.ResponseWriter, r *http.Request) {
	t, ok := refdata.LookupAircraft(mux.Vars(r)["code"])
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Airline handles GET /api/v1/airlines/{code}
func Airline(w http.ResponseWriter, r *http.Request) {
	a, ok := refdata.Airline(mux.Vars(r)["code"])
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, a)
}
