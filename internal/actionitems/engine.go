// Package actionitems turns an application snapshot into the ordered
// "smart action item" alerts on the recruiter dashboard. Rules are
// independent and re-evaluated from scratch on every snapshot; emission
// order is fixed (urgent, info, success) with a neutral fallback when
// nothing fired.
package actionitems

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/talentflow/pipeline/internal/domain/models"
	"github.com/talentflow/pipeline/internal/ranking"
)

type Severity string

const (
	SeverityUrgent  Severity = "urgent"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityNeutral Severity = "neutral"
)

type Item struct {
	Severity    Severity `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"desc"`
}

const newApplicationWindow = 24 * time.Hour

// Evaluate never returns an empty list: when no rule fires it emits the
// single "All Caught Up" item.
func Evaluate(applications []models.Application, now time.Time) []Item {
	var items []Item

	pendingHighMatch := lo.CountBy(applications, func(application models.Application) bool {
		return application.Status == models.StatusApplied &&
			ranking.BucketOf(application.MatchScore) == ranking.BucketHigh
	})
	if pendingHighMatch > 0 {
		items = append(items, Item{
			Severity:    SeverityUrgent,
			Title:       "Top Talent Waiting",
			Description: fmt.Sprintf("%d candidates with >80%% match score are waiting for review.", pendingHighMatch),
		})
	}

	activeInterviews := lo.CountBy(applications, func(application models.Application) bool {
		return application.Status == models.StatusInterviewing
	})
	if activeInterviews > 0 {
		items = append(items, Item{
			Severity:    SeverityInfo,
			Title:       "Interview Stage",
			Description: fmt.Sprintf("You have %d candidates currently in the interview stage.", activeInterviews),
		})
	}

	newApplications := lo.CountBy(applications, func(application models.Application) bool {
		return now.Sub(application.AppliedAt) < newApplicationWindow
	})
	if newApplications > 0 {
		items = append(items, Item{
			Severity:    SeveritySuccess,
			Title:       "New Applications",
			Description: fmt.Sprintf("%d new applications received in the last 24 hours.", newApplications),
		})
	}

	if len(items) == 0 {
		items = append(items, Item{
			Severity:    SeverityNeutral,
			Title:       "All Caught Up",
			Description: "No urgent items requiring attention right now.",
		})
	}

	return items
}
