package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/asaskevich/EventBus"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/pipeline/internal/domain/events"
	"github.com/talentflow/pipeline/internal/domain/models"
	"github.com/talentflow/pipeline/internal/logger"
	"github.com/talentflow/pipeline/internal/metrics"
)

type scorerApplicationRepository interface {
	ListUnscored(ctx context.Context, limit int) ([]models.Application, error)
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	UpdateMatchScore(ctx context.Context, id uint, score float64) error
}

type scorerJobRepository interface {
	GetByID(ctx context.Context, id uint) (*models.JobPosting, error)
}

// MatchScorer periodically sweeps unscored applications and assigns each
// a match score. It writes only match_score and only where none exists,
// so it never races with the synchronous transition path.
type MatchScorer struct {
	bus          EventBus.Bus
	matcher      *MatchService
	applications scorerApplicationRepository
	jobs         scorerJobRepository
	cron         *cron.Cron
	cache        *gocache.Cache
	batchSize    int
}

func NewMatchScorer(bus EventBus.Bus, matcher *MatchService, applications scorerApplicationRepository,
	jobs scorerJobRepository, sweepInterval time.Duration) (*MatchScorer, error) {

	if sweepInterval <= 0 {
		return nil, errors.New("sweep interval must be greater than zero")
	}

	scorer := &MatchScorer{
		bus:          bus,
		matcher:      matcher,
		applications: applications,
		jobs:         jobs,
		cron:         cron.New(),
		cache:        gocache.New(10*time.Minute, 20*time.Minute),
		batchSize:    50,
	}

	_, err := scorer.cron.AddFunc(fmt.Sprintf("@every %s", sweepInterval), scorer.runSweep)
	if err != nil {
		return nil, err
	}

	scorer.cron.Start()
	log.Infof("match scorer started, sweep interval: %v", sweepInterval)
	return scorer, nil
}

func (s *MatchScorer) Stop() {
	s.cron.Stop()
}

func (s *MatchScorer) runSweep() {
	start := time.Now()
	scored := 0

	applications, err := s.applications.ListUnscored(context.Background(), s.batchSize)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to list unscored applications: %v", err)
		return
	}

	for _, application := range applications {
		if err = s.scoreApplication(context.Background(), application); err == nil {
			scored++
		}
	}

	metrics.ScoringSweepDuration.Observe(time.Since(start).Seconds())
	log.Infof("scoring sweep ended after %v, scored %v of %v applications",
		time.Since(start), scored, len(applications))
}

func (s *MatchScorer) scoreApplication(ctx context.Context, application models.Application) error {

	cacheID := scoreCacheID(application)
	if _, found := s.cache.Get(cacheID); found {
		return nil
	}

	posting, err := s.jobs.GetByID(ctx, application.JobID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to get posting for application %v: %v", application.ID, err)
		return err
	}

	score, err := s.matcher.ScoreApplication(ctx, *posting, application)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).
			Errorf("failed to score application %v: %v", application.ID, err)
		return err
	}

	if err = s.applications.UpdateMatchScore(ctx, application.ID, score); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to store match score for application %v: %v", application.ID, err)
		return err
	}

	if err = s.cache.Add(cacheID, "", gocache.DefaultExpiration); err != nil {
		log.Errorf("failed to cache scored application: %v", err)
	}

	metrics.ScoredApplicationsCounter.Inc()

	// a fresh score changes ranking, buckets and possibly the top-talent
	// alert, so dependent snapshots must rebuild
	updated, err := s.applications.GetByID(ctx, application.ID)
	if err != nil {
		return err
	}
	s.bus.Publish(events.ApplicationChangedTopic, events.ApplicationChanged{
		Application: *updated,
		Previous:    updated.Status,
	})
	return nil
}

func scoreCacheID(application models.Application) string {
	identity := sha256.Sum256([]byte(application.CandidateName))
	return strconv.Itoa(int(application.JobID)) + hex.EncodeToString(identity[:])
}
