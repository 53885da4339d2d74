package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/talentflow/pipeline/internal/domain/models"
	"github.com/talentflow/pipeline/internal/repositories"
)

type mockAiClient struct {
	mock.Mock
}

func (m *mockAiClient) GenerateResponse(ctx context.Context, request string) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

func newScorerFixture(t *testing.T) (*repositories.Applications, *repositories.JobPostings, models.Application) {
	t.Helper()

	dbContext, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())
	t.Cleanup(func() { _ = dbContext.Close() })

	jobs := repositories.NewJobPostingsRepository(dbContext.DB)
	posting := &models.JobPosting{Title: "Data Engineer", RecruiterID: 7}
	require.NoError(t, jobs.Add(context.Background(), posting))

	applications := repositories.NewApplicationsRepository(dbContext.DB)
	application := &models.Application{
		JobID:         posting.ID,
		CandidateID:   100,
		CandidateName: "Sam",
		Status:        models.StatusApplied,
	}
	require.NoError(t, applications.Create(context.Background(), application))
	return applications, jobs, *application
}

func Test_ScoreApplication_ParsesAndStoresScore(t *testing.T) {
	applications, jobs, application := newScorerFixture(t)

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.Anything).Return("87", nil).Once()

	scorer, err := NewMatchScorer(EventBus.New(), NewMatchService(ai), applications, jobs, time.Hour)
	require.NoError(t, err)
	defer scorer.Stop()

	require.NoError(t, scorer.scoreApplication(context.Background(), application))

	stored, err := applications.GetByID(context.Background(), application.ID)
	require.NoError(t, err)
	require.True(t, stored.Scored())
	require.Equal(t, 87.0, stored.Score())
	ai.AssertExpectations(t)
}

func Test_ScoreApplication_ClampsOutOfRangeResponse(t *testing.T) {
	applications, jobs, application := newScorerFixture(t)

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.Anything).Return("150", nil).Once()

	scorer, err := NewMatchScorer(EventBus.New(), NewMatchService(ai), applications, jobs, time.Hour)
	require.NoError(t, err)
	defer scorer.Stop()

	require.NoError(t, scorer.scoreApplication(context.Background(), application))

	stored, err := applications.GetByID(context.Background(), application.ID)
	require.NoError(t, err)
	require.Equal(t, 100.0, stored.Score())
}

func Test_ScoreApplication_WhenAlreadyScoredInCache_ShouldIgnore(t *testing.T) {
	applications, jobs, application := newScorerFixture(t)

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.Anything).Return("61", nil).Once()

	scorer, err := NewMatchScorer(EventBus.New(), NewMatchService(ai), applications, jobs, time.Hour)
	require.NoError(t, err)
	defer scorer.Stop()

	require.NoError(t, scorer.scoreApplication(context.Background(), application))
	require.NoError(t, scorer.scoreApplication(context.Background(), application))
	ai.AssertExpectations(t)
}

func Test_ScoreApplication_WhenResponseNotNumeric_ShouldFail(t *testing.T) {
	applications, jobs, application := newScorerFixture(t)

	ai := &mockAiClient{}
	ai.On("GenerateResponse", mock.Anything, mock.Anything).Return("great candidate", nil).Once()

	scorer, err := NewMatchScorer(EventBus.New(), NewMatchService(ai), applications, jobs, time.Hour)
	require.NoError(t, err)
	defer scorer.Stop()

	require.Error(t, scorer.scoreApplication(context.Background(), application))

	stored, err := applications.GetByID(context.Background(), application.ID)
	require.NoError(t, err)
	require.False(t, stored.Scored())
}
