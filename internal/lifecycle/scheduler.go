package lifecycle

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/talentflow/pipeline/internal/domain/events"
	"github.com/talentflow/pipeline/internal/domain/models"
	"github.com/talentflow/pipeline/internal/metrics"
	"github.com/talentflow/pipeline/internal/repositories"
	"gorm.io/gorm"
)

// InterviewScheduler runs the two-part composite of recording interview
// metadata and driving the move to interviewing. Both legs execute in
// one database transaction: a scheduled interview is never visible for
// an application that legitimately is not on the interviewing path.
type InterviewScheduler struct {
	db  *gorm.DB
	bus EventBus.Bus
}

func NewInterviewScheduler(db *gorm.DB, bus EventBus.Bus) (*InterviewScheduler, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}
	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	return &InterviewScheduler{db: db, bus: bus}, nil
}

// Schedule records the interview and, when the application is still in
// applied, drives it to interviewing. Re-scheduling an application that
// is already interviewing only overwrites the interview record; the
// state is not re-transitioned. The caller states the status it acted
// against, same optimistic guard as a plain transition.
func (s *InterviewScheduler) Schedule(ctx context.Context, applicationID uint,
	details models.InterviewDetails, expected models.Status) (*models.Application, *models.Interview, error) {

	if details.ScheduledAt.IsZero() {
		return nil, nil, errors.New("scheduled_at is required")
	}

	var (
		application *models.Application
		interview   *models.Interview
		previous    models.Status
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		applications := repositories.NewApplicationsRepository(tx)
		interviews := repositories.NewInterviewsRepository(tx)

		current, err := applications.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if current.Status != expected {
			return &StaleStateError{Expected: expected, Actual: current.Status}
		}
		previous = current.Status

		switch current.Status {
		case models.StatusInterviewing:
			// idempotent on state: overwrite the schedule only
			application = current
		default:
			if !Allowed(current.Status, models.StatusInterviewing, models.RoleRecruiter) {
				return &InvalidTransitionError{
					From: current.Status,
					To:   models.StatusInterviewing,
					Role: models.RoleRecruiter,
				}
			}
			application, err = applications.UpdateStatus(ctx, applicationID, expected, models.StatusInterviewing)
			if err != nil {
				if errors.Is(err, repositories.ErrStatusConflict) {
					return &StaleStateError{Expected: expected, Actual: current.Status}
				}
				return &CompositeFailureError{Step: "status transition", Err: err}
			}
		}

		interview, err = interviews.Upsert(ctx, applicationID, details)
		if err != nil {
			return &CompositeFailureError{Step: "interview record", Err: err}
		}
		return nil
	})
	if err != nil {
		metrics.TransitionFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, nil, err
	}

	if application.Status != previous {
		metrics.TransitionsCounter.
			WithLabelValues(string(previous), string(application.Status), string(models.RoleRecruiter)).Inc()
	}
	s.bus.Publish(events.ApplicationChangedTopic, events.ApplicationChanged{
		Application: *application,
		Previous:    previous,
	})
	return application, interview, nil
}

// Reschedule is Schedule for an application already in interviewing,
// kept as a named operation for the scheduler UI.
func (s *InterviewScheduler) Reschedule(ctx context.Context, applicationID uint,
	details models.InterviewDetails) (*models.Application, *models.Interview, error) {
	return s.Schedule(ctx, applicationID, details, models.StatusInterviewing)
}

func failureReason(err error) string {
	var stale *StaleStateError
	var invalid *InvalidTransitionError
	var composite *CompositeFailureError
	switch {
	case errors.As(err, &stale):
		return "stale_state"
	case errors.As(err, &invalid):
		return "invalid_transition"
	case errors.As(err, &composite):
		return "composite_failure"
	default:
		return "storage"
	}
}
