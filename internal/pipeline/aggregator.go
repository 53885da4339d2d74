// Package pipeline derives per-stage counts and quality distributions
// from an application snapshot. Aggregates are recomputed from the full
// snapshot on every call; there are no incremental counters to drift.
package pipeline

import (
	"github.com/samber/lo"
	"github.com/talentflow/pipeline/internal/domain/models"
	"github.com/talentflow/pipeline/internal/ranking"
)

// Counts maps every status in the enum to its count within the scope,
// zero-filled. The values always sum to the number of applications the
// aggregate was computed from; anything else means a stale snapshot.
type Counts map[models.Status]int

func Aggregate(applications []models.Application) Counts {
	counts := make(Counts, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		counts[status] = 0
	}
	for _, application := range applications {
		counts[application.Status]++
	}
	return counts
}

func (c Counts) Total() int {
	total := 0
	for _, count := range c {
		total += count
	}
	return total
}

// QualityBuckets is the high/medium/low distribution driving the quality
// chart and the pending-high-match action item.
type QualityBuckets struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func Quality(applications []models.Application) QualityBuckets {
	grouped := lo.CountValuesBy(applications, func(application models.Application) ranking.Bucket {
		return ranking.BucketOf(application.MatchScore)
	})
	return QualityBuckets{
		High:   grouped[ranking.BucketHigh],
		Medium: grouped[ranking.BucketMedium],
		Low:    grouped[ranking.BucketLow],
	}
}

// Conversion returns the percentage of applications that made it past
// the applied stage into the funnel, rounded down. Terminal washouts
// (rejected, withdrawn) do not count as converted.
func Conversion(applications []models.Application) int {
	if len(applications) == 0 {
		return 0
	}
	converted := lo.CountBy(applications, func(application models.Application) bool {
		switch application.Status {
		case models.StatusInterviewing, models.StatusUnderReview, models.StatusOfferExtended,
			models.StatusAccepted, models.StatusHired:
			return true
		default:
			return false
		}
	})
	return converted * 100 / len(applications)
}
