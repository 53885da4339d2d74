package models

import "time"

// Status is the recruitment stage an application currently occupies.
// The set is closed; anything outside it is rejected before it reaches storage.
type Status string

const (
	StatusApplied       Status = "applied"
	StatusInterviewing  Status = "interviewing"
	StatusUnderReview   Status = "under_review"
	StatusOfferExtended Status = "offer_extended"
	StatusRejected      Status = "rejected"
	StatusAccepted      Status = "accepted"
	StatusHired         Status = "hired"
	StatusWithdrawn     Status = "withdrawn"
)

// AllStatuses lists every stage in pipeline order. Aggregations iterate
// this slice so their output is zero-filled and deterministically ordered.
var AllStatuses = []Status{
	StatusApplied,
	StatusInterviewing,
	StatusUnderReview,
	StatusOfferExtended,
	StatusAccepted,
	StatusHired,
	StatusRejected,
	StatusWithdrawn,
}

func ToStatus(s string) (Status, bool) {
	for _, status := range AllStatuses {
		if s == string(status) {
			return status, true
		}
	}
	return "", false
}

type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleCandidate Role = "candidate"
)

func ToRole(s string) (Role, bool) {
	switch s {
	case string(RoleRecruiter):
		return RoleRecruiter, true
	case string(RoleCandidate):
		return RoleCandidate, true
	default:
		return "", false
	}
}

// Application is one candidate's submission against one job posting.
// A (JobID, CandidateID) pair is unique; applications are never deleted,
// they only move to terminal statuses.
type Application struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	JobID         uint      `gorm:"index:idx_job_candidate,unique" json:"job_id"`
	CandidateID   uint      `gorm:"index:idx_job_candidate,unique" json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	Status        Status    `json:"status"`
	MatchScore    *float64  `json:"match_score,omitempty"`
	AppliedAt     time.Time `json:"applied_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Scored reports whether a match score has been computed yet;
// an unscored application ranks as zero.
func (a Application) Scored() bool {
	return a.MatchScore != nil
}

func (a Application) Score() float64 {
	if a.MatchScore == nil {
		return 0
	}
	return *a.MatchScore
}

// ClampScore keeps scores inside [0, 100] regardless of what the
// scoring backend returned.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
