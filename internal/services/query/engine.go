// Package query implements the search, filter and sort pipeline behind the record list.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/applytrack/internal/models"
)

// Criteria is the subset of view state that drives the pipeline
type Criteria struct {
	SearchQuery     string
	StatusFilter    *models.ApplicationStatus
	DashboardFilter models.DashboardFilter
	SortOption      models.SortOption
}

// dashboardPredicates must cover every DashboardFilter (enforced by tests).
// A nil predicate keeps every record.
var dashboardPredicates = map[models.DashboardFilter]func(r *models.JobRecord, today time.Time) bool{
	models.DashboardNone:      nil,
	models.DashboardTotalJobs: nil,
	models.DashboardInterviews: func(r *models.JobRecord, _ time.Time) bool {
		return IsInterviewStage(r.Status)
	},
	models.DashboardFollowUps: func(r *models.JobRecord, today time.Time) bool {
		return HasUpcomingFollowUp(r, today)
	},
	models.DashboardSuccessful: func(r *models.JobRecord, _ time.Time) bool {
		return IsSuccessful(r.Status)
	},
}

// Apply runs search, status filter, dashboard filter and a stable sort, in that order.
// The input slice is never modified; the result shares record pointers with it.
// now supplies "today" for the follow-up filter.
func Apply(records []*models.JobRecord, criteria Criteria, now time.Time) []*models.JobRecord {
	out := Search(records, criteria.SearchQuery)
	out = FilterByStatus(out, criteria.StatusFilter)
	out = FilterByDashboard(out, criteria.DashboardFilter, now)
	SortRecords(out, criteria.SortOption)
	return out
}

// Search keeps records whose job name, company or contact email contains q, ignoring case.
// q is matched as given, surrounding spaces included. An empty query keeps everything.
// Always returns a new slice.
func Search(records []*models.JobRecord, q string) []*models.JobRecord {
	needle := strings.ToLower(q)
	out := make([]*models.JobRecord, 0, len(records))
	for _, r := range records {
		if needle == "" ||
			strings.Contains(strings.ToLower(r.JobName), needle) ||
			strings.Contains(strings.ToLower(r.CompanyName), needle) ||
			strings.Contains(strings.ToLower(r.ContactEmail), needle) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByStatus keeps records with the given status; nil keeps everything
func FilterByStatus(records []*models.JobRecord, status *models.ApplicationStatus) []*models.JobRecord {
	if status == nil {
		return records
	}
	out := make([]*models.JobRecord, 0, len(records))
	for _, r := range records {
		if r.Status == *status {
			out = append(out, r)
		}
	}
	return out
}

// FilterByDashboard applies the dashboard tile predicate
func FilterByDashboard(records []*models.JobRecord, filter models.DashboardFilter, now time.Time) []*models.JobRecord {
	predicate := dashboardPredicates[filter]
	if predicate == nil {
		return records
	}
	today := models.DateOnly(now)
	out := make([]*models.JobRecord, 0, len(records))
	for _, r := range records {
		if predicate(r, today) {
			out = append(out, r)
		}
	}
	return out
}

// SortRecords stable-sorts records in place
func SortRecords(records []*models.JobRecord, option models.SortOption) {
	var less func(a, b *models.JobRecord) bool
	switch option {
	case models.SortDateOldest:
		less = func(a, b *models.JobRecord) bool { return a.SortDate() < b.SortDate() }
	case models.SortNameAZ:
		less = func(a, b *models.JobRecord) bool { return strings.ToLower(a.JobName) < strings.ToLower(b.JobName) }
	case models.SortNameZA:
		less = func(a, b *models.JobRecord) bool { return strings.ToLower(a.JobName) > strings.ToLower(b.JobName) }
	default:
		// SortDateNewest and anything unknown
		less = func(a, b *models.JobRecord) bool { return a.SortDate() > b.SortDate() }
	}
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}

// IsInterviewStage reports whether the status counts towards the interviews tile
func IsInterviewStage(s models.ApplicationStatus) bool {
	return s == models.StatusInterviewScheduled || s == models.StatusInterviewed
}

// IsSuccessful reports whether the status counts towards the successful tile
func IsSuccessful(s models.ApplicationStatus) bool {
	return s == models.StatusOfferReceived || s == models.StatusAccepted
}

// HasUpcomingFollowUp reports a parseable follow-up date on or after today's date.
// Time of day is ignored on both sides.
func HasUpcomingFollowUp(r *models.JobRecord, today time.Time) bool {
	followUp, ok := r.FollowUp()
	if !ok {
		return false
	}
	day := time.Date(followUp.Year(), followUp.Month(), followUp.Day(), 0, 0, 0, 0, today.Location())
	return !day.Before(models.DateOnly(today))
}
