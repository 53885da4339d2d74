package lifecycle

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/talentflow/pipeline/internal/domain/events"
	"github.com/talentflow/pipeline/internal/domain/models"
	"github.com/talentflow/pipeline/internal/metrics"
	"github.com/talentflow/pipeline/internal/repositories"
)

type applicationRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	UpdateStatus(ctx context.Context, id uint, expected, target models.Status) (*models.Application, error)
}

// Engine validates and applies status transitions against the transition
// table. It is the only plain-transition write path; on success it
// publishes an ApplicationChanged event so every subscribed view catches
// up from one fresh snapshot.
type Engine struct {
	applications applicationRepository
	bus          EventBus.Bus
}

func NewEngine(applications applicationRepository, bus EventBus.Bus) (*Engine, error) {
	if applications == nil {
		return nil, errors.New("applications repository is nil")
	}
	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	return &Engine{applications: applications, bus: bus}, nil
}

// Transition moves an application to target on behalf of role. The
// caller states the status it acted against; a mismatch with the
// authoritative status fails with StaleStateError and leaves the
// application untouched. The repository re-checks the expected status
// inside the update itself, so two racing requests cannot both commit.
func (e *Engine) Transition(ctx context.Context, applicationID uint, target models.Status,
	role models.Role, expected models.Status) (*models.Application, error) {

	application, err := e.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if application.Status != expected {
		metrics.TransitionFailures.WithLabelValues("stale_state").Inc()
		return nil, &StaleStateError{Expected: expected, Actual: application.Status}
	}

	if !Allowed(application.Status, target, role) {
		metrics.TransitionFailures.WithLabelValues("invalid_transition").Inc()
		return nil, &InvalidTransitionError{From: application.Status, To: target, Role: role}
	}

	updated, err := e.applications.UpdateStatus(ctx, applicationID, expected, target)
	if err != nil {
		if errors.Is(err, repositories.ErrStatusConflict) {
			metrics.TransitionFailures.WithLabelValues("stale_state").Inc()
			return nil, &StaleStateError{Expected: expected, Actual: application.Status}
		}
		return nil, err
	}

	metrics.TransitionsCounter.WithLabelValues(string(expected), string(target), string(role)).Inc()
	e.bus.Publish(events.ApplicationChangedTopic, events.ApplicationChanged{
		Application: *updated,
		Previous:    expected,
	})
	return updated, nil
}
