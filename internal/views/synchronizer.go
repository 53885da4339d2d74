package views

import (
	"context"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/pipeline/internal/actionitems"
	"github.com/talentflow/pipeline/internal/domain/events"
	"github.com/talentflow/pipeline/internal/domain/models"
	"github.com/talentflow/pipeline/internal/logger"
	"github.com/talentflow/pipeline/internal/metrics"
	"github.com/talentflow/pipeline/internal/pipeline"
	"github.com/talentflow/pipeline/internal/ranking"
)

type applicationSource interface {
	ListByRecruiter(ctx context.Context, recruiterID uint) ([]models.Application, error)
}

type jobSource interface {
	GetByID(ctx context.Context, id uint) (*models.JobPosting, error)
	ListByRecruiter(ctx context.Context, recruiterID uint) ([]models.JobPosting, error)
}

// Synchronizer owns the published snapshots. It subscribes to
// application-changed events, rebuilds the affected recruiter's scope
// from storage, swaps the whole snapshot atomically and announces the
// new one, so no surface ever reads a half-updated view.
type Synchronizer struct {
	bus          EventBus.Bus
	applications applicationSource
	jobs         jobSource

	mu        sync.RWMutex
	snapshots map[uint]*Snapshot
}

func NewSynchronizer(bus EventBus.Bus, applications applicationSource, jobs jobSource) (*Synchronizer, error) {
	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	if applications == nil {
		return nil, errors.New("applications source is nil")
	}
	if jobs == nil {
		return nil, errors.New("jobs source is nil")
	}

	s := &Synchronizer{
		bus:          bus,
		applications: applications,
		jobs:         jobs,
		snapshots:    make(map[uint]*Snapshot),
	}
	// async subscription: the handler publishes SnapshotPublished on the
	// same bus, and Publish holds the bus mutex while running synchronous
	// handlers, so a synchronous subscription would deadlock on the first
	// committed mutation
	if err := bus.SubscribeAsync(events.ApplicationChangedTopic, s.onApplicationChanged, false); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the current snapshot for a recruiter scope, building
// it on first access.
func (s *Synchronizer) Snapshot(ctx context.Context, recruiterID uint) (*Snapshot, error) {
	s.mu.RLock()
	snapshot, ok := s.snapshots[recruiterID]
	s.mu.RUnlock()
	if ok {
		return snapshot, nil
	}
	return s.Rebuild(ctx, recruiterID)
}

// Rebuild recomputes the whole scope from storage: ranked applications,
// pipeline counts, quality buckets, action items and headline metrics,
// all from the same application list.
func (s *Synchronizer) Rebuild(ctx context.Context, recruiterID uint) (*Snapshot, error) {
	start := time.Now()

	applications, err := s.applications.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	postings, err := s.jobs.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	snapshot := &Snapshot{
		RecruiterID:    recruiterID,
		Applications:   ranking.RankDescending(applications),
		PipelineCounts: pipeline.Aggregate(applications),
		QualityBuckets: pipeline.Quality(applications),
		ActionItems:    actionitems.Evaluate(applications, now),
		Metrics: DashboardMetrics{
			TotalApplications: len(applications),
			OpenPositions: lo.CountBy(postings, func(posting models.JobPosting) bool {
				return posting.Open()
			}),
			NewHires: lo.CountBy(applications, func(application models.Application) bool {
				return application.Status == models.StatusHired || application.Status == models.StatusAccepted
			}),
			PipelineConversion: pipeline.Conversion(applications),
		},
		GeneratedAt: now,
	}

	s.mu.Lock()
	s.snapshots[recruiterID] = snapshot
	s.mu.Unlock()

	metrics.SnapshotRebuildDuration.Observe(time.Since(start).Seconds())
	s.bus.Publish(events.SnapshotPublishedTopic, events.SnapshotPublished{
		RecruiterID: recruiterID,
		GeneratedAt: snapshot.GeneratedAt,
	})
	return snapshot, nil
}

func (s *Synchronizer) onApplicationChanged(event events.ApplicationChanged) {
	ctx := context.Background()

	posting, err := s.jobs.GetByID(ctx, event.Application.JobID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to resolve posting %v for changed application %v: %v",
				event.Application.JobID, event.Application.ID, err)
		return
	}

	if _, err = s.Rebuild(ctx, posting.RecruiterID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to rebuild snapshot for recruiter %v: %v", posting.RecruiterID, err)
	}
}
