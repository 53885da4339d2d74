package services

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/pipeline/internal/domain/models"
	"github.com/talentflow/pipeline/internal/lifecycle"
	"github.com/talentflow/pipeline/internal/logger"
)

type employeeRepository interface {
	Add(ctx context.Context, employee *models.Employee) error
}

type onboardingApplicationRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Application, error)
}

type EmployeeDetails struct {
	JobTitle   string
	Department string
}

// Onboarding turns an accepted application into an Employee record.
// Employee creation is one-way: once created it never feeds back into
// application state beyond the follow-up move to hired.
type Onboarding struct {
	employees    employeeRepository
	applications onboardingApplicationRepository
	engine       *lifecycle.Engine
}

func NewOnboarding(employees employeeRepository, applications onboardingApplicationRepository,
	engine *lifecycle.Engine) (*Onboarding, error) {
	if employees == nil {
		return nil, errors.New("employees repository is nil")
	}
	if applications == nil {
		return nil, errors.New("applications repository is nil")
	}
	if engine == nil {
		return nil, errors.New("engine is nil")
	}
	return &Onboarding{employees: employees, applications: applications, engine: engine}, nil
}

// Complete creates the Employee for an accepted application and then
// advances the application to hired. The employee record stands even if
// the follow-up transition loses a race; the recruiter re-issues the
// transition against the fresh state in that case.
func (o *Onboarding) Complete(ctx context.Context, applicationID uint, details EmployeeDetails) (*models.Employee, error) {

	application, err := o.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if application.Status != models.StatusAccepted {
		return nil, &lifecycle.InvalidTransitionError{
			From: application.Status,
			To:   models.StatusHired,
			Role: models.RoleRecruiter,
		}
	}

	employee := &models.Employee{
		CandidateID:   application.CandidateID,
		ApplicationID: application.ID,
		JobTitle:      details.JobTitle,
		Department:    details.Department,
	}
	if err = o.employees.Add(ctx, employee); err != nil {
		return nil, err
	}

	if _, err = o.engine.Transition(ctx, applicationID, models.StatusHired,
		models.RoleRecruiter, models.StatusAccepted); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Warnf("employee %v created but application %v not advanced to hired: %v",
				employee.ID, applicationID, err)
	}

	return employee, nil
}
