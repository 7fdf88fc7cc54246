package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shiva/flightlog/internal/middleware"
)

// NewRouter registers every API route. health serves GET /health.
func NewRouter(flights *FlightHandler, health http.HandlerFunc) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/health", health).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	// Resolution and the user flight log
	api.HandleFunc("/flights/resolve", flights.Resolve).Methods(http.MethodPost)
	api.HandleFunc("/users/{user_id}/flights", flights.LogFlight).Methods(http.MethodPost)
	api.HandleFunc("/users/{user_id}/flights", flights.ListFlights).Methods(http.MethodGet)
	api.HandleFunc("/users/{user_id}/stats", flights.GetStats).Methods(http.MethodGet)
	// Stateless scoring and reference data
	api.HandleFunc("/score", Score).Methods(http.MethodPost)
	api.HandleFunc("/achievements", Achievements).Methods(http.MethodGet)
	api.HandleFunc("/airports/{code}", Airport).Methods(http.MethodGet)
	api.HandleFunc("/aircraft/{code}", Aircraft).Methods(http.MethodGet)
	api.HandleFunc("/airlines/{code}", Airline).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "")
	})

	return middleware.RequestID(middleware.RequestLogger(middleware.Recoverer(middleware.CORS(router))))
}
