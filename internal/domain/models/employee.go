package models

import "time"

// Employee is the terminal artifact of a successful application. It is
// created exactly once, from an accepted application, and never feeds
// back into application state beyond the optional move to hired.
type Employee struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CandidateID   uint      `json:"candidate_id"`
	ApplicationID uint      `gorm:"uniqueIndex:idx_employee_application" json:"application_id"`
	JobTitle      string    `json:"job_title"`
	Department    string    `json:"department"`
	HiredAt       time.Time `json:"hired_at"`
}
