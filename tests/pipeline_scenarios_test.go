package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/talentflow/pipeline/internal/domain/models"
	"github.com/talentflow/pipeline/internal/lifecycle"
	"github.com/talentflow/pipeline/internal/repositories"
)

// One recruiter tab schedules an interview while another, still showing
// the application in applied, tries to reject it: the stale request must
// lose and the interviewing status must stand.
func Test_ScheduleThenConcurrentRejectLosesRace(t *testing.T) {
	env := setupEnv(t)
	posting := env.createPosting(t, 7, "Backend Engineer")
	application := env.apply(t, posting.ID, 100, "Alex", scoreOf(85))

	updated, interview, err := env.scheduler.Schedule(context.Background(), application.ID,
		models.InterviewDetails{
			ScheduledAt:    time.Now().Add(72 * time.Hour).UTC(),
			LocationType:   models.LocationVideo,
			LocationDetail: "https://meet.example.com/alex",
		}, models.StatusApplied)
	require.NoError(t, err)
	require.Equal(t, models.StatusInterviewing, updated.Status)
	require.NotNil(t, interview)

	// a second tab still believes the application is in applied and
	// tries to reject it; the stale guard must win
	_, err = env.engine.Transition(context.Background(), application.ID,
		models.StatusRejected, models.RoleRecruiter, models.StatusApplied)

	var stale *lifecycle.StaleStateError
	require.ErrorAs(t, err, &stale)

	current, err := env.applications.GetByID(context.Background(), application.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusInterviewing, current.Status)
}

func Test_FullLifecycle_AppliedToHired(t *testing.T) {
	env := setupEnv(t)
	posting := env.createPosting(t, 7, "Platform Engineer")
	application := env.apply(t, posting.ID, 100, "Alex", scoreOf(91))

	steps := []struct {
		target models.Status
		role   models.Role
	}{
		{models.StatusInterviewing, models.RoleRecruiter},
		{models.StatusUnderReview, models.RoleRecruiter},
		{models.StatusOfferExtended, models.RoleRecruiter},
		{models.StatusAccepted, models.RoleCandidate},
		{models.StatusHired, models.RoleRecruiter},
	}

	current := application.Status
	for _, step := range steps {
		updated, err := env.engine.Transition(context.Background(), application.ID,
			step.target, step.role, current)
		require.NoError(t, err)
		current = updated.Status
	}
	require.Equal(t, models.StatusHired, current)

	// terminal: nothing moves a hired application anywhere
	for _, target := range models.AllStatuses {
		_, err := env.engine.Transition(context.Background(), application.ID,
			target, models.RoleRecruiter, models.StatusHired)
		require.Error(t, err)
	}
}

func Test_DuplicateApplication_SamePairRejected(t *testing.T) {
	env := setupEnv(t)
	posting := env.createPosting(t, 7, "Data Engineer")
	env.apply(t, posting.ID, 100, "Alex", nil)

	duplicate := &models.Application{
		JobID:         posting.ID,
		CandidateID:   100,
		CandidateName: "Alex",
		Status:        models.StatusApplied,
	}
	err := env.applications.Create(context.Background(), duplicate)
	require.ErrorIs(t, err, repositories.ErrDuplicateApplication)

	// a second posting is a different pair and is fine
	other := env.createPosting(t, 7, "ML Engineer")
	env.apply(t, other.ID, 100, "Alex", nil)
}

func Test_DashboardSnapshot_TracksMutations(t *testing.T) {
	env := setupEnv(t)
	posting := env.createPosting(t, 7, "Backend Engineer")
	high := env.apply(t, posting.ID, 100, "Alex", scoreOf(90))
	env.apply(t, posting.ID, 101, "Blake", scoreOf(82))
	low := env.apply(t, posting.ID, 102, "Casey", scoreOf(40))

	snapshot, err := env.synchronizer.Snapshot(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 3, snapshot.PipelineCounts[models.StatusApplied])
	require.Equal(t, 3, snapshot.PipelineCounts.Total())
	require.Equal(t, "Top Talent Waiting", snapshot.ActionItems[0].Title)
	require.Contains(t, snapshot.ActionItems[0].Description, "2 candidates")

	// ranked: 90, 82, 40
	require.Equal(t, high.ID, snapshot.Applications[0].ID)
	require.Equal(t, low.ID, snapshot.Applications[2].ID)

	// a committed transition must be visible in the next snapshot read
	_, err = env.engine.Transition(context.Background(), low.ID,
		models.StatusRejected, models.RoleRecruiter, models.StatusApplied)
	require.NoError(t, err)
	env.bus.WaitAsync()

	refreshed, err := env.synchronizer.Snapshot(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 2, refreshed.PipelineCounts[models.StatusApplied])
	require.Equal(t, 1, refreshed.PipelineCounts[models.StatusRejected])
	require.Equal(t, 3, refreshed.PipelineCounts.Total())
}

func Test_Withdraw_IsCandidateOnlyAndTerminal(t *testing.T) {
	env := setupEnv(t)
	posting := env.createPosting(t, 7, "SRE")
	application := env.apply(t, posting.ID, 100, "Alex", nil)

	_, err := env.engine.Transition(context.Background(), application.ID,
		models.StatusWithdrawn, models.RoleRecruiter, models.StatusApplied)
	var invalid *lifecycle.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)

	_, err = env.engine.Transition(context.Background(), application.ID,
		models.StatusWithdrawn, models.RoleCandidate, models.StatusApplied)
	require.NoError(t, err)

	_, err = env.engine.Transition(context.Background(), application.ID,
		models.StatusApplied, models.RoleCandidate, models.StatusWithdrawn)
	require.ErrorAs(t, err, &invalid)
}
