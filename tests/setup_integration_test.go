package tests

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/require"
	"github.com/talentflow/pipeline/internal/domain/models"
	"github.com/talentflow/pipeline/internal/lifecycle"
	"github.com/talentflow/pipeline/internal/repositories"
	"github.com/talentflow/pipeline/internal/views"
)

type testEnv struct {
	dbContext    *repositories.DbContext
	applications *repositories.Applications
	jobs         *repositories.JobPostings
	interviews   *repositories.Interviews
	bus          EventBus.Bus
	engine       *lifecycle.Engine
	scheduler    *lifecycle.InterviewScheduler
	synchronizer *views.Synchronizer
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	dbContext, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "integration.db"))
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())
	t.Cleanup(func() { _ = dbContext.Close() })

	applications := repositories.NewApplicationsRepository(dbContext.DB)
	jobs := repositories.NewJobPostingsRepository(dbContext.DB)
	interviews := repositories.NewInterviewsRepository(dbContext.DB)

	bus := EventBus.New()
	t.Cleanup(bus.WaitAsync)

	engine, err := lifecycle.NewEngine(applications, bus)
	require.NoError(t, err)
	scheduler, err := lifecycle.NewInterviewScheduler(dbContext.DB, bus)
	require.NoError(t, err)
	synchronizer, err := views.NewSynchronizer(bus, applications, jobs)
	require.NoError(t, err)

	return &testEnv{
		dbContext:    dbContext,
		applications: applications,
		jobs:         jobs,
		interviews:   interviews,
		bus:          bus,
		engine:       engine,
		scheduler:    scheduler,
		synchronizer: synchronizer,
	}
}

func (env *testEnv) createPosting(t *testing.T, recruiterID uint, title string) *models.JobPosting {
	t.Helper()

	posting := &models.JobPosting{Title: title, RecruiterID: recruiterID, Status: models.PostingOpen}
	require.NoError(t, env.jobs.Add(context.Background(), posting))
	return posting
}

func (env *testEnv) apply(t *testing.T, jobID, candidateID uint, name string, score *float64) *models.Application {
	t.Helper()

	application := &models.Application{
		JobID:         jobID,
		CandidateID:   candidateID,
		CandidateName: name,
		Status:        models.StatusApplied,
	}
	require.NoError(t, env.applications.Create(context.Background(), application))

	if score != nil {
		require.NoError(t, env.applications.UpdateMatchScore(context.Background(), application.ID, *score))
	}

	stored, err := env.applications.GetByID(context.Background(), application.ID)
	require.NoError(t, err)
	return stored
}

func scoreOf(v float64) *float64 {
	return &v
}
