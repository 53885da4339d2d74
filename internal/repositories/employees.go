package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/talentflow/pipeline/internal/domain/models"
	"gorm.io/gorm"
)

// ErrEmployeeExists guards the one-way nature of onboarding: one
// application produces at most one employee.
var ErrEmployeeExists = errors.New("employee already created for this application")

type Employees struct {
	db *gorm.DB
}

func NewEmployeesRepository(db *gorm.DB) *Employees {
	return &Employees{db: db}
}

func (repo *Employees) Add(ctx context.Context, employee *models.Employee) error {
	if employee.HiredAt.IsZero() {
		employee.HiredAt = time.Now().UTC()
	}

	err := repo.db.WithContext(ctx).Create(employee).Error
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrEmployeeExists
	}
	return err
}

func (repo *Employees) GetByApplication(ctx context.Context, applicationID uint) (*models.Employee, error) {
	var employee models.Employee
	err := repo.db.WithContext(ctx).First(&employee, "application_id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}
