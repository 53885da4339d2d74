package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/talentflow/pipeline/internal/domain/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateApplication is returned when a candidate applies twice
	// to the same posting; the unique (job_id, candidate_id) index is the
	// authoritative guard.
	ErrDuplicateApplication = errors.New("application already exists for this job and candidate")

	// ErrStatusConflict is returned when a guarded status update matched
	// zero rows: the authoritative status moved on since the caller read it.
	ErrStatusConflict = errors.New("application status changed concurrently")
)

type Applications struct {
	db *gorm.DB
}

func NewApplicationsRepository(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

func (repo *Applications) Create(ctx context.Context, application *models.Application) error {
	if application.Status == "" {
		application.Status = models.StatusApplied
	}
	if application.AppliedAt.IsZero() {
		application.AppliedAt = time.Now().UTC()
	}

	err := repo.db.WithContext(ctx).Create(application).Error
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateApplication
	}
	return err
}

func (repo *Applications) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var application models.Application
	err := repo.db.WithContext(ctx).First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (repo *Applications) ListByCandidate(ctx context.Context, candidateID uint) ([]models.Application, error) {
	var applications []models.Application
	err := repo.db.WithContext(ctx).
		Find(&applications, "candidate_id = ?", candidateID).Error
	return applications, err
}

func (repo *Applications) ListByJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	var applications []models.Application
	err := repo.db.WithContext(ctx).
		Find(&applications, "job_id = ?", jobID).Error
	return applications, err
}

// ListByRecruiter returns every application against the recruiter's own
// postings. This is the scope every dashboard aggregate is computed over.
func (repo *Applications) ListByRecruiter(ctx context.Context, recruiterID uint) ([]models.Application, error) {
	var applications []models.Application
	err := repo.db.WithContext(ctx).
		Joins("JOIN job_postings ON job_postings.id = applications.job_id").
		Where("job_postings.recruiter_id = ?", recruiterID).
		Find(&applications).Error
	return applications, err
}

func (repo *Applications) ListUnscored(ctx context.Context, limit int) ([]models.Application, error) {
	var applications []models.Application
	err := repo.db.WithContext(ctx).
		Where("match_score IS NULL").
		Limit(limit).
		Find(&applications).Error
	return applications, err
}

// UpdateStatus moves an application from expected to target via a
// conditional update: the WHERE clause re-checks the expected status so
// two racing writers can never both win. A zero-row match is reported
// as ErrStatusConflict.
func (repo *Applications) UpdateStatus(ctx context.Context, id uint, expected, target models.Status) (*models.Application, error) {
	res := repo.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(map[string]any{
			"status":     target,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrStatusConflict
	}

	return repo.GetByID(ctx, id)
}

func (repo *Applications) UpdateMatchScore(ctx context.Context, id uint, score float64) error {
	return repo.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Update("match_score", models.ClampScore(score)).Error
}
