package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/pipeline/internal/domain/models"
	"github.com/talentflow/pipeline/internal/lifecycle"
	"github.com/talentflow/pipeline/internal/logger"
	"github.com/talentflow/pipeline/internal/ranking"
)

type applicationView struct {
	ID            uint      `json:"id"`
	JobID         uint      `json:"job_id"`
	CandidateID   uint      `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	JobTitle      string    `json:"job_title"`
	Status        string    `json:"status"`
	MatchScore    *float64  `json:"match_score,omitempty"`
	AppliedAt     time.Time `json:"applied_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *Server) applicationViews(r *http.Request, applications []models.Application) []applicationView {
	titles := map[uint]string{}
	for _, application := range applications {
		if _, ok := titles[application.JobID]; ok {
			continue
		}
		posting, err := s.repositories.Jobs.GetByID(r.Context(), application.JobID)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to resolve posting %v for application list: %v", application.JobID, err)
			titles[application.JobID] = ""
			continue
		}
		titles[application.JobID] = posting.Title
	}

	return lo.Map(applications, func(application models.Application, _ int) applicationView {
		return applicationView{
			ID:            application.ID,
			JobID:         application.JobID,
			CandidateID:   application.CandidateID,
			CandidateName: application.CandidateName,
			JobTitle:      titles[application.JobID],
			Status:        string(application.Status),
			MatchScore:    application.MatchScore,
			AppliedAt:     application.AppliedAt,
			UpdatedAt:     application.UpdatedAt,
		}
	})
}

func (s *Server) handleListCandidateApplications(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := queryUint(r, "candidate_id")
	if !ok {
		respondBadRequest(w, "candidate_id is required")
		return
	}

	applications, err := s.repositories.Applications.ListByCandidate(r.Context(), candidateID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, s.applicationViews(r, ranking.RankDescending(applications)))
}

func (s *Server) handleListRecruiterApplications(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := queryUint(r, "recruiter_id")
	if !ok {
		respondBadRequest(w, "recruiter_id is required")
		return
	}

	var applications []models.Application
	var err error

	if jobID, filtered := queryUint(r, "job_id"); filtered {
		applications, err = s.repositories.Applications.ListByJob(r.Context(), jobID)
	} else {
		applications, err = s.repositories.Applications.ListByRecruiter(r.Context(), recruiterID)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, s.applicationViews(r, ranking.RankDescending(applications)))
}

type applyRequest struct {
	JobID         uint   `json:"job_id" validate:"required"`
	CandidateID   uint   `json:"candidate_id" validate:"required"`
	CandidateName string `json:"candidate_name" validate:"required"`
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var request applyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := s.validate.Struct(request); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	if _, err := s.repositories.Jobs.GetByID(r.Context(), request.JobID); err != nil {
		respondError(w, err)
		return
	}

	application := &models.Application{
		JobID:         request.JobID,
		CandidateID:   request.CandidateID,
		CandidateName: request.CandidateName,
		Status:        models.StatusApplied,
	}
	if err := s.repositories.Applications.Create(r.Context(), application); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, application)
}

type transitionRequest struct {
	Status         string `json:"status" validate:"required"`
	ExpectedStatus string `json:"expected_status" validate:"required"`
	Role           string `json:"role" validate:"required,oneof=recruiter candidate"`
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := pathUint(r, "id")
	if !ok {
		respondBadRequest(w, "invalid application id")
		return
	}

	var request transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := s.validate.Struct(request); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	target, ok := models.ToStatus(request.Status)
	if !ok {
		respondBadRequest(w, "unknown target status")
		return
	}
	expected, ok := models.ToStatus(request.ExpectedStatus)
	if !ok {
		respondBadRequest(w, "unknown expected status")
		return
	}
	role, _ := models.ToRole(request.Role)

	application, err := s.engine.Transition(r.Context(), applicationID, target, role, expected)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, application)
}

// handleListActions exposes the legal next states for an application so
// every surface renders its action buttons from the same table.
func (s *Server) handleListActions(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := pathUint(r, "id")
	if !ok {
		respondBadRequest(w, "invalid application id")
		return
	}

	roleName := r.URL.Query().Get("role")
	role, ok := models.ToRole(roleName)
	if !ok {
		respondBadRequest(w, "role must be recruiter or candidate")
		return
	}

	application, err := s.repositories.Applications.GetByID(r.Context(), applicationID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":      application.Status,
		"terminal":    lifecycle.Terminal(application.Status),
		"next_states": lifecycle.NextStates(application.Status, role),
	})
}

func queryUint(r *http.Request, name string) (uint, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}

func pathUint(r *http.Request, name string) (uint, bool) {
	value, err := strconv.ParseUint(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}
