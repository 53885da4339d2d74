package api

import (
	"encoding/json"
	"net/http"

	"github.com/talentflow/pipeline/internal/services"
)

type onboardRequest struct {
	ApplicationID uint   `json:"application_id" validate:"required"`
	JobTitle      string `json:"job_title" validate:"required"`
	Department    string `json:"department"`
}

func (s *Server) handleOnboard(w http.ResponseWriter, r *http.Request) {
	var request onboardRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := s.validate.Struct(request); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	employee, err := s.onboarding.Complete(r.Context(), request.ApplicationID, services.EmployeeDetails{
		JobTitle:   request.JobTitle,
		Department: request.Department,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, employee)
}
