package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/pipeline/internal/lifecycle"
	"github.com/talentflow/pipeline/internal/repositories"
	"github.com/talentflow/pipeline/internal/services"
	"github.com/talentflow/pipeline/internal/views"
)

type Repositories struct {
	Applications *repositories.Applications
	Jobs         *repositories.JobPostings
	Interviews   *repositories.Interviews
}

// Server exposes the write path (transitions, interview scheduling,
// onboarding, candidate apply) and the one-snapshot read path consumed
// by the dashboard surfaces.
type Server struct {
	router       *mux.Router
	http         *http.Server
	validate     *validator.Validate
	engine       *lifecycle.Engine
	scheduler    *lifecycle.InterviewScheduler
	onboarding   *services.Onboarding
	synchronizer *views.Synchronizer
	repositories Repositories
}

func NewServer(port int, engine *lifecycle.Engine, scheduler *lifecycle.InterviewScheduler,
	onboarding *services.Onboarding, synchronizer *views.Synchronizer, repos Repositories) (*Server, error) {

	if engine == nil || scheduler == nil || onboarding == nil || synchronizer == nil {
		return nil, errors.New("missing server dependency")
	}
	if repos.Applications == nil || repos.Jobs == nil || repos.Interviews == nil {
		return nil, errors.New("missing repository")
	}

	s := &Server{
		router:       mux.NewRouter(),
		validate:     validator.New(),
		engine:       engine,
		scheduler:    scheduler,
		onboarding:   onboarding,
		synchronizer: synchronizer,
		repositories: repos,
	}
	s.routes()

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() {
	s.router.HandleFunc("/applications", s.handleListCandidateApplications).Methods(http.MethodGet)
	s.router.HandleFunc("/applications", s.handleApply).Methods(http.MethodPost)
	s.router.HandleFunc("/applications/{id:[0-9]+}/status", s.handleTransition).Methods(http.MethodPatch)
	s.router.HandleFunc("/applications/{id:[0-9]+}/actions", s.handleListActions).Methods(http.MethodGet)
	s.router.HandleFunc("/interviews", s.handleScheduleInterview).Methods(http.MethodPost)
	s.router.HandleFunc("/employees", s.handleOnboard).Methods(http.MethodPost)
	s.router.HandleFunc("/hr/applications", s.handleListRecruiterApplications).Methods(http.MethodGet)
	s.router.HandleFunc("/hr/dashboard", s.handleDashboard).Methods(http.MethodGet)
}

func (s *Server) Run() {
	log.Infof("http server listening on %v", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server stopped: %v", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
