package events

import (
	"time"

	"github.com/talentflow/pipeline/internal/domain/models"
)

var ApplicationChangedTopic = "ApplicationChangedEvent"

// ApplicationChanged is published after any committed mutation of an
// application: a status transition, an interview (re)schedule, or a
// match-score update. Previous equals the new status when only the
// score changed.
type ApplicationChanged struct {
	Application models.Application
	Previous    models.Status
}

var SnapshotPublishedTopic = "SnapshotPublishedEvent"

// SnapshotPublished signals that a recruiter scope has a fresh snapshot
// and every subscribed surface should re-render from it.
type SnapshotPublished struct {
	RecruiterID uint
	GeneratedAt time.Time
}
