package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/pipeline/internal/api"
	"github.com/talentflow/pipeline/internal/clients/gemini"
	"github.com/talentflow/pipeline/internal/config"
	"github.com/talentflow/pipeline/internal/lifecycle"
	"github.com/talentflow/pipeline/internal/logger"
	"github.com/talentflow/pipeline/internal/metrics"
	"github.com/talentflow/pipeline/internal/repositories"
	"github.com/talentflow/pipeline/internal/services"
	"github.com/talentflow/pipeline/internal/views"
)

func runMatchScorer(ctx context.Context, cfg *config.Config, bus EventBus.Bus,
	applications *repositories.Applications, jobs *repositories.JobPostings) *services.MatchScorer {

	if !cfg.Matching.Enabled {
		log.Info("match scoring disabled")
		return nil
	}

	aiClient, err := gemini.NewClient(ctx, cfg.Matching.AIKey, gemini.Model(cfg.Matching.AiModel))
	if err != nil {
		log.Fatalf("can't create AI client: %v", err)
	}
	aiClient.SetMinuteRateLimit(cfg.Matching.AiMaxRequestsPerMinute)
	aiClient.SetDayRateLimit(cfg.Matching.AiMaxRequestsPerDay)

	scorer, err := services.NewMatchScorer(bus, services.NewMatchService(aiClient),
		applications, jobs, cfg.Matching.SweepInterval)
	if err != nil {
		log.Fatalf("can't create match scorer: %v", err)
	}
	return scorer
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsPort)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	applications := repositories.NewApplicationsRepository(dbContext.DB)
	jobs := repositories.NewJobPostingsRepository(dbContext.DB)
	interviews := repositories.NewInterviewsRepository(dbContext.DB)
	employees := repositories.NewEmployeesRepository(dbContext.DB)

	bus := EventBus.New()

	engine, err := lifecycle.NewEngine(applications, bus)
	if err != nil {
		log.Fatalf("can't create transition engine: %v", err)
	}

	scheduler, err := lifecycle.NewInterviewScheduler(dbContext.DB, bus)
	if err != nil {
		log.Fatalf("can't create interview scheduler: %v", err)
	}

	synchronizer, err := views.NewSynchronizer(bus, applications, jobs)
	if err != nil {
		log.Fatalf("can't create view synchronizer: %v", err)
	}

	onboarding, err := services.NewOnboarding(employees, applications, engine)
	if err != nil {
		log.Fatalf("can't create onboarding service: %v", err)
	}

	scorer := runMatchScorer(ctx, cfg, bus, applications, jobs)
	if scorer != nil {
		defer scorer.Stop()
	}

	server, err := api.NewServer(cfg.Server.Port, engine, scheduler, onboarding, synchronizer, api.Repositories{
		Applications: applications,
		Jobs:         jobs,
		Interviews:   interviews,
	})
	if err != nil {
		log.Fatalf("can't create http server: %v", err)
	}
	go server.Run()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http server shutdown: %v", err)
	}
	bus.WaitAsync()
	log.Info("Services stopped.")
}
