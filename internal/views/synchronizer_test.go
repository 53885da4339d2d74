package views

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/require"
	"github.com/talentflow/pipeline/internal/domain/events"
	"github.com/talentflow/pipeline/internal/domain/models"
	"github.com/talentflow/pipeline/internal/lifecycle"
	"github.com/talentflow/pipeline/internal/repositories"
)

type fixture struct {
	dbContext    *repositories.DbContext
	applications *repositories.Applications
	jobs         *repositories.JobPostings
	bus          EventBus.Bus
	synchronizer *Synchronizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbContext, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())
	t.Cleanup(func() { _ = dbContext.Close() })

	applications := repositories.NewApplicationsRepository(dbContext.DB)
	jobs := repositories.NewJobPostingsRepository(dbContext.DB)
	bus := EventBus.New()
	t.Cleanup(bus.WaitAsync)

	synchronizer, err := NewSynchronizer(bus, applications, jobs)
	require.NoError(t, err)

	return &fixture{
		dbContext:    dbContext,
		applications: applications,
		jobs:         jobs,
		bus:          bus,
		synchronizer: synchronizer,
	}
}

func (f *fixture) seed(t *testing.T, recruiterID uint, candidates int) *models.JobPosting {
	t.Helper()

	posting := &models.JobPosting{Title: "Platform Engineer", RecruiterID: recruiterID, Status: models.PostingOpen}
	require.NoError(t, f.jobs.Add(context.Background(), posting))

	for i := 0; i < candidates; i++ {
		application := &models.Application{
			JobID:         posting.ID,
			CandidateID:   uint(100 + i),
			CandidateName: "Candidate",
			Status:        models.StatusApplied,
		}
		require.NoError(t, f.applications.Create(context.Background(), application))
	}
	return posting
}

func Test_Snapshot_CountsAlwaysSumToApplicationsInScope(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 7, 5)

	snapshot, err := f.synchronizer.Snapshot(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, snapshot.Applications, 5)
	require.Equal(t, 5, snapshot.PipelineCounts.Total())
	require.Equal(t, 5, snapshot.QualityBuckets.High+snapshot.QualityBuckets.Medium+snapshot.QualityBuckets.Low)
	require.NotEmpty(t, snapshot.ActionItems)
}

func Test_Snapshot_EmptyScope_IsAllZeroWithFallbackItem(t *testing.T) {
	f := newFixture(t)

	snapshot, err := f.synchronizer.Snapshot(context.Background(), 42)
	require.NoError(t, err)

	require.Empty(t, snapshot.Applications)
	require.Equal(t, 0, snapshot.PipelineCounts.Total())
	require.Len(t, snapshot.ActionItems, 1)
	require.Equal(t, "All Caught Up", snapshot.ActionItems[0].Title)
}

func Test_Synchronizer_RebuildsOnTransition_NoViewSeesStaleStatus(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 7, 1)

	before, err := f.synchronizer.Snapshot(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 1, before.PipelineCounts[models.StatusApplied])

	published := 0
	require.NoError(t, f.bus.Subscribe(events.SnapshotPublishedTopic, func(event events.SnapshotPublished) {
		published++
	}))

	engine, err := lifecycle.NewEngine(f.applications, f.bus)
	require.NoError(t, err)

	applicationID := before.Applications[0].ID
	_, err = engine.Transition(context.Background(), applicationID,
		models.StatusRejected, models.RoleRecruiter, models.StatusApplied)
	require.NoError(t, err)
	f.bus.WaitAsync()

	after, err := f.synchronizer.Snapshot(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 0, after.PipelineCounts[models.StatusApplied])
	require.Equal(t, 1, after.PipelineCounts[models.StatusRejected])
	require.Equal(t, models.StatusRejected, after.Applications[0].Status)
	require.Equal(t, 1, published)
	require.Equal(t, 1, after.PipelineCounts.Total())
}

func Test_Transition_CompletesWithSnapshotSubscriberAttached(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 7, 1)

	snapshot, err := f.synchronizer.Snapshot(context.Background(), 7)
	require.NoError(t, err)

	require.NoError(t, f.bus.Subscribe(events.SnapshotPublishedTopic, func(event events.SnapshotPublished) {}))

	engine, err := lifecycle.NewEngine(f.applications, f.bus)
	require.NoError(t, err)

	// the rebuild handler publishes on the same bus that delivered the
	// change event; the transition must still return
	done := make(chan error, 1)
	go func() {
		_, err := engine.Transition(context.Background(), snapshot.Applications[0].ID,
			models.StatusInterviewing, models.RoleRecruiter, models.StatusApplied)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("transition blocked on the bus")
	}
	f.bus.WaitAsync()

	after, err := f.synchronizer.Snapshot(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 1, after.PipelineCounts[models.StatusInterviewing])
}

func Test_Snapshot_MetricsFollowScope(t *testing.T) {
	f := newFixture(t)
	posting := f.seed(t, 7, 2)

	// move one application into the funnel
	snapshot, err := f.synchronizer.Snapshot(context.Background(), 7)
	require.NoError(t, err)

	engine, err := lifecycle.NewEngine(f.applications, f.bus)
	require.NoError(t, err)
	_, err = engine.Transition(context.Background(), snapshot.Applications[0].ID,
		models.StatusInterviewing, models.RoleRecruiter, models.StatusApplied)
	require.NoError(t, err)
	f.bus.WaitAsync()

	rebuilt, err := f.synchronizer.Snapshot(context.Background(), posting.RecruiterID)
	require.NoError(t, err)
	require.Equal(t, 2, rebuilt.Metrics.TotalApplications)
	require.Equal(t, 1, rebuilt.Metrics.OpenPositions)
	require.Equal(t, 50, rebuilt.Metrics.PipelineConversion)
}
