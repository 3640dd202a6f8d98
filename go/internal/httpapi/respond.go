package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mcdev12/quizhost/go/internal/models"
	"github.com/mcdev12/quizhost/go/internal/sessions"
	"github.com/mcdev12/quizhost/go/internal/timer"
	"github.com/rs/zerolog/log"
)

// errBadRequest marks malformed ids and bodies
var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps domain errors onto status codes
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sessions.ErrNoCurrentQuestion):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "No current question."})
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Not found."})
	case errors.Is(err, timer.ErrInvalidMode),
		errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, errBadRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	default:
		log.Error().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal server error."})
	}
}
