package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	TransitionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_transitions_total",
			Help: "Total number of committed application status transitions.",
		},
		[]string{"from", "to", "role"},
	)
	TransitionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_transition_failures_total",
			Help: "Total number of rejected transition requests.",
		},
		[]string{"reason"},
	)
	SnapshotRebuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_snapshot_rebuild_duration_seconds",
			Help:    "Duration of each dashboard snapshot rebuild in seconds.",
			Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.5, 2},
		},
	)
	ScoringSweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_scoring_sweep_duration_seconds",
			Help:    "Duration of each match-scoring sweep in seconds.",
			Buckets: []float64{1, 5, 30, 120, 600},
		},
	)
	ScoredApplicationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_applications_scored_total",
			Help: "Total number of applications given a match score.",
		},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(TransitionsCounter)
	prometheus.MustRegister(TransitionFailures)
	prometheus.MustRegister(SnapshotRebuildDuration)
	prometheus.MustRegister(ScoringSweepDuration)
	prometheus.MustRegister(ScoredApplicationsCounter)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), mux))
	}()
}
