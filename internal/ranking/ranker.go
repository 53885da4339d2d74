// Package ranking holds the pure, side-effect-free functions that order
// and bucket applications by match score. Everything here is
// deterministic for identical input; the "Top Candidates" list and the
// exported reports depend on that.
package ranking

import (
	"sort"

	"github.com/talentflow/pipeline/internal/domain/models"
)

type Bucket string

const (
	BucketHigh   Bucket = "high"
	BucketMedium Bucket = "medium"
	BucketLow    Bucket = "low"
)

const (
	highThreshold   = 80
	mediumThreshold = 50
)

// BucketOf places a score in the quality bucket used for the
// distribution chart and the top-talent alert. An absent score counts
// as zero and lands in low.
func BucketOf(score *float64) Bucket {
	value := 0.0
	if score != nil {
		value = *score
	}
	switch {
	case value >= highThreshold:
		return BucketHigh
	case value >= mediumThreshold:
		return BucketMedium
	default:
		return BucketLow
	}
}

// RankDescending returns a new slice sorted by match score descending.
// Ties break by earlier applied_at, so the order is total and re-ranking
// an already ranked list is a no-op. The input is not modified.
func RankDescending(applications []models.Application) []models.Application {
	ranked := make([]models.Application, len(applications))
	copy(ranked, applications)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score() != ranked[j].Score() {
			return ranked[i].Score() > ranked[j].Score()
		}
		return ranked[i].AppliedAt.Before(ranked[j].AppliedAt)
	})
	return ranked
}
