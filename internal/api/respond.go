package api

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/pipeline/internal/lifecycle"
	"github.com/talentflow/pipeline/internal/logger"
	"github.com/talentflow/pipeline/internal/repositories"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("failed to encode response: %v", err)
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses:
// stale state and duplicates are 409-class conflicts the caller can
// recover from by refetching, invalid transitions are 422 and not
// retryable as issued.
func respondError(w http.ResponseWriter, err error) {
	var stale *lifecycle.StaleStateError
	var invalid *lifecycle.InvalidTransitionError
	var composite *lifecycle.CompositeFailureError

	switch {
	case errors.As(err, &stale):
		respondJSON(w, http.StatusConflict, errorResponse{
			Error: "This application was updated elsewhere — refresh and retry.",
			Code:  "stale_state",
		})
	case errors.As(err, &invalid):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: "Action not allowed from current state.",
			Code:  "invalid_transition",
		})
	case errors.Is(err, repositories.ErrDuplicateApplication):
		respondJSON(w, http.StatusConflict, errorResponse{
			Error: "You have already applied to this job.",
			Code:  "duplicate_application",
		})
	case errors.Is(err, repositories.ErrEmployeeExists):
		respondJSON(w, http.StatusConflict, errorResponse{
			Error: "An employee record already exists for this application.",
			Code:  "employee_exists",
		})
	case errors.Is(err, repositories.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Not found.", Code: "not_found"})
	case errors.As(err, &composite):
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("composite failure: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "Scheduling failed; no changes were applied.",
			Code:  "composite_failure",
		})
	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("request failed: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal error.", Code: "internal"})
	}
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: message, Code: "bad_request"})
}
