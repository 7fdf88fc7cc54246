// Package handler contains HTTP request handlers for the flightlog API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/shiva/flightlog/internal/middleware"
	"github.com/shiva/flightlog/internal/refdata"
	"github.com/shiva/flightlog/internal/repository"
	"github.com/shiva/flightlog/internal/resolver"
	"github.com/shiva/flightlog/internal/service"
)

// maxBodyBytes caps request bodies; a scored flight plus stats is a few KB.
const maxBodyBytes = 1 << 20

// writeJSON is a helper that writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	body := map[string]string{"error": code}
	if message != "" {
		body["message"] = message
	}
	writeJSON(w, status, body)
}

// decodeJSON reads a size-capped JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("malformed JSON: %w", err)
	}
	return nil
}

// writeServiceError maps domain errors to HTTP responses. A missing flight is
// always a 404, never a zero-valued record.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, resolver.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "")
	case errors.Is(err, refdata.ErrInvalidFlightNumber),
		errors.Is(err, resolver.ErrInvalidDate),
		errors.Is(err, resolver.ErrInvalidOverride),
		errors.Is(err, service.ErrInvalidUser):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, repository.ErrStatsConflict):
		writeError(w, http.StatusConflict, "conflict", "stats changed concurrently, retry the request")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout", "")
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the body.
		w.WriteHeader(499)
	default:
		log.Printf("[handler] %s %s error: %v", middleware.RequestIDFrom(r.Context()), op, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
