package views

import (
	"time"

	"github.com/talentflow/pipeline/internal/actionitems"
	"github.com/talentflow/pipeline/internal/domain/models"
	"github.com/talentflow/pipeline/internal/pipeline"
)

// Snapshot is the one consistent view of a recruiter's scope that every
// dashboard surface reads: the ranked application list plus everything
// derived from it, all computed from the same application set in one
// pass. A Snapshot is immutable once published.
type Snapshot struct {
	RecruiterID    uint                    `json:"recruiter_id"`
	Applications   []models.Application    `json:"applications"`
	PipelineCounts pipeline.Counts         `json:"pipeline_counts"`
	QualityBuckets pipeline.QualityBuckets `json:"quality_buckets"`
	ActionItems    []actionitems.Item      `json:"action_items"`
	Metrics        DashboardMetrics        `json:"metrics"`
	GeneratedAt    time.Time               `json:"generated_at"`
}

// DashboardMetrics carries the headline cards next to the aggregates.
type DashboardMetrics struct {
	TotalApplications  int `json:"total_applications"`
	OpenPositions      int `json:"open_positions"`
	NewHires           int `json:"new_hires"`
	PipelineConversion int `json:"pipeline_conversion"`
}
