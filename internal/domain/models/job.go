package models

import "time"

type PostingStatus string

const (
	PostingOpen   PostingStatus = "open"
	PostingOnHold PostingStatus = "on_hold"
	PostingClosed PostingStatus = "closed"
)

// JobPosting is owned by exactly one recruiter; that recruiter's
// dashboard scope is the set of applications against their postings.
type JobPosting struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Title       string        `json:"title"`
	Department  string        `json:"department"`
	Location    string        `json:"location"`
	Description string        `json:"description,omitempty"`
	Status      PostingStatus `json:"status"`
	RecruiterID uint          `gorm:"index" json:"recruiter_id"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (p JobPosting) Open() bool {
	return p.Status == "" || p.Status == PostingOpen
}
