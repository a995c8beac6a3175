package stats

import (
	"time"

	"github.com/ternarybob/applytrack/internal/models"
	"github.com/ternarybob/applytrack/internal/services/query"
)

// Statistics is the aggregate view shown on the dashboard tiles
type Statistics struct {
	Total      int                              `json:"total"`
	Active     int                              `json:"active"`
	Archived   int                              `json:"archived"`
	Pinned     int                              `json:"pinned"`
	Interviews int                              `json:"interviews"`
	FollowUps  int                              `json:"follow_ups"`
	Successful int                              `json:"successful"`
	ByStatus   map[models.ApplicationStatus]int `json:"by_status"`

	// ResponseRate is the share of applications that moved past applied, excluding withdrawn ones
	ResponseRate float64 `json:"response_rate"`
	// SuccessRate is the share of applications that reached an offer
	SuccessRate float64 `json:"success_rate"`
}

// TileCount returns the count behind a dashboard filter tile
func (s Statistics) TileCount(filter models.DashboardFilter) int {
	switch filter {
	case models.DashboardInterviews:
		return s.Interviews
	case models.DashboardFollowUps:
		return s.FollowUps
	case models.DashboardSuccessful:
		return s.Successful
	default:
		return s.Total
	}
}

// Compute aggregates records. The tile counts use the same predicates as the dashboard filters
// so a tile and the list it opens always agree.
func Compute(records []*models.JobRecord, now time.Time) Statistics {
	stats := Statistics{
		ByStatus: make(map[models.ApplicationStatus]int, len(models.AllStatuses())),
	}
	for _, s := range models.AllStatuses() {
		stats.ByStatus[s] = 0
	}

	responded := 0
	considered := 0
	for _, r := range records {
		stats.Total++
		stats.ByStatus[r.Status]++

		if r.IsArchived {
			stats.Archived++
		} else {
			stats.Active++
		}
		if r.IsPinned {
			stats.Pinned++
		}
		if query.IsInterviewStage(r.Status) {
			stats.Interviews++
		}
		if query.HasUpcomingFollowUp(r, now) {
			stats.FollowUps++
		}
		if query.IsSuccessful(r.Status) {
			stats.Successful++
		}

		if r.Status != models.StatusWithdrawn {
			considered++
			if r.Status != models.StatusApplied {
				responded++
			}
		}
	}

	if considered > 0 {
		stats.ResponseRate = float64(responded) / float64(considered)
	}
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Successful) / float64(stats.Total)
	}

	return stats
}
