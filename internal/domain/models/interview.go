package models

import (
	"errors"
	"time"
)

type LocationType string

const (
	LocationVideo    LocationType = "video"
	LocationPhone    LocationType = "phone"
	LocationInPerson LocationType = "in_person"
)

func ToLocationType(s string) (LocationType, error) {
	switch s {
	case string(LocationVideo):
		return LocationVideo, nil
	case string(LocationPhone):
		return LocationPhone, nil
	case string(LocationInPerson):
		return LocationInPerson, nil
	default:
		return "", errors.New("invalid location type")
	}
}

// Interview holds the schedule for an application's interview stage.
// At most one record exists per application; rescheduling overwrites it.
// The record outlives the interviewing status for historical display.
type Interview struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	ApplicationID  uint         `gorm:"uniqueIndex:idx_interview_application" json:"application_id"`
	ScheduledAt    time.Time    `json:"scheduled_at"`
	LocationType   LocationType `json:"location_type"`
	LocationDetail string       `json:"location_detail"`
	CreatedAt      time.Time    `json:"created_at"`
}

// InterviewDetails is the caller-supplied part of an Interview.
type InterviewDetails struct {
	ScheduledAt    time.Time
	LocationType   LocationType
	LocationDetail string
}
