package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/talentflow/pipeline/internal/domain/models"
)

type scheduleInterviewRequest struct {
	ApplicationID  uint   `json:"application_id" validate:"required"`
	ScheduledAt    string `json:"scheduled_at" validate:"required"`
	LocationType   string `json:"location_type" validate:"required,oneof=video phone in_person"`
	LocationDetail string `json:"location_detail"`
	ExpectedStatus string `json:"expected_status" validate:"required"`
}

func (s *Server) handleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	var request scheduleInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := s.validate.Struct(request); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, request.ScheduledAt)
	if err != nil {
		respondBadRequest(w, "scheduled_at must be RFC3339")
		return
	}

	locationType, err := models.ToLocationType(request.LocationType)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	expected, ok := models.ToStatus(request.ExpectedStatus)
	if !ok {
		respondBadRequest(w, "unknown expected status")
		return
	}

	application, interview, err := s.scheduler.Schedule(r.Context(), request.ApplicationID, models.InterviewDetails{
		ScheduledAt:    scheduledAt,
		LocationType:   locationType,
		LocationDetail: request.LocationDetail,
	}, expected)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"application": application,
		"interview":   interview,
	})
}
