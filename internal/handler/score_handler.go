package handler

import (
	"net/http"

	"github.com/shiva/flightlog/internal/gamification"
	"github.com/shiva/flightlog/internal/model"
	"github.com/shiva/flightlog/internal/repository"
)

// ScoreRequest is the body of POST /api/v1/score.
type ScoreRequest struct {
	Flight *model.EnrichedFlight `json:"flight"`
	Prior  *model.UserStats      `json:"prior_stats"`
}

// Score handles POST /api/v1/score
//
// Scores a resolved flight against caller-supplied stats without touching
// storage. A missing prior means a brand-new user.
func Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Flight == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "flight is required")
		return
	}

	prior := repository.EmptyStats("")
	if req.Prior != nil {
		prior = *req.Prior
	}
	writeJSON(w, http.StatusOK, gamification.Score(req.Flight, prior))
}
