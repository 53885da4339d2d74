package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/talentflow/pipeline/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Interviews struct {
	db *gorm.DB
}

func NewInterviewsRepository(db *gorm.DB) *Interviews {
	return &Interviews{db: db}
}

// Upsert writes the single Interview record for an application.
// Scheduling twice overwrites the schedule, it never duplicates the row.
func (repo *Interviews) Upsert(ctx context.Context, applicationID uint, details models.InterviewDetails) (*models.Interview, error) {
	interview := models.Interview{
		ApplicationID:  applicationID,
		ScheduledAt:    details.ScheduledAt,
		LocationType:   details.LocationType,
		LocationDetail: details.LocationDetail,
		CreatedAt:      time.Now().UTC(),
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "application_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"scheduled_at", "location_type", "location_detail"}),
		}).
		Create(&interview).Error
	if err != nil {
		return nil, err
	}

	return repo.GetByApplication(ctx, applicationID)
}

func (repo *Interviews) GetByApplication(ctx context.Context, applicationID uint) (*models.Interview, error) {
	var interview models.Interview
	err := repo.db.WithContext(ctx).First(&interview, "application_id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &interview, nil
}
