package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/talentflow/pipeline/internal/domain/models"
)

type aiClient interface {
	GenerateResponse(ctx context.Context, request string) (string, error)
}

// MatchService turns a candidate/posting pair into a 0-100 match score
// via the AI backend. The score is clamped before it is handed back.
type MatchService struct {
	aiClient aiClient
}

func NewMatchService(aiClient aiClient) *MatchService {
	return &MatchService{aiClient: aiClient}
}

func (s *MatchService) ScoreApplication(ctx context.Context, posting models.JobPosting,
	application models.Application) (float64, error) {

	response, err := s.aiClient.GenerateResponse(ctx, s.scoreRequest(posting, application))
	if err != nil {
		return 0, err
	}

	log.Infof("got score response \"%v\" for application %v", response, application.ID)

	score, err := parseScore(response)
	if err != nil {
		return 0, fmt.Errorf("unexpected response %q for application %v: %w", response, application.ID, err)
	}
	return models.ClampScore(score), nil
}

func (s *MatchService) scoreRequest(posting models.JobPosting, application models.Application) (request string) {

	request = "Job title: " + posting.Title
	if posting.Description != "" {
		request += " Job description: " + posting.Description
	}
	if posting.Department != "" {
		request += " Department: " + posting.Department
	}

	request += " Candidate: " + application.CandidateName
	request += " You are an ATS scanner scoring how well the candidate matches the job. " +
		"Respond with a single number between 0 and 100 and nothing else."
	return request
}

func parseScore(response string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(response, "*", ""))
	cleaned = strings.TrimSuffix(cleaned, "%")
	return strconv.ParseFloat(cleaned, 64)
}
