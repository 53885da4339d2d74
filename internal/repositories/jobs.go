package repositories

import (
	"context"

	"github.com/pkg/errors"
	"github.com/talentflow/pipeline/internal/domain/models"
	"gorm.io/gorm"
)

type JobPostings struct {
	db *gorm.DB
}

func NewJobPostingsRepository(db *gorm.DB) *JobPostings {
	return &JobPostings{db: db}
}

func (repo *JobPostings) Add(ctx context.Context, posting *models.JobPosting) error {
	if posting.Status == "" {
		posting.Status = models.PostingOpen
	}
	return repo.db.WithContext(ctx).Create(posting).Error
}

func (repo *JobPostings) GetByID(ctx context.Context, id uint) (*models.JobPosting, error) {
	var posting models.JobPosting
	err := repo.db.WithContext(ctx).First(&posting, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &posting, nil
}

func (repo *JobPostings) ListByRecruiter(ctx context.Context, recruiterID uint) ([]models.JobPosting, error) {
	var postings []models.JobPosting
	err := repo.db.WithContext(ctx).Find(&postings, "recruiter_id = ?", recruiterID).Error
	return postings, err
}
