package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/applytrack/internal/models"
	"github.com/ternarybob/applytrack/internal/services/query"
)

func TestComputeEmpty(t *testing.T) {
	stats := Compute(nil, time.Now())

	assert.Equal(t, 0, stats.Total)
	assert.Zero(t, stats.ResponseRate)
	assert.Zero(t, stats.SuccessRate)
	assert.Len(t, stats.ByStatus, len(models.AllStatuses()))
}

func TestComputeCounts(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.Local)
	records := []*models.JobRecord{
		{ID: "1", JobName: "A", Status: models.StatusApplied, FollowUpDate: "2026-10-20", IsPinned: true},
		{ID: "2", JobName: "B", Status: models.StatusInterviewScheduled},
		{ID: "3", JobName: "C", Status: models.StatusInterviewed, FollowUpDate: "2026-10-01"},
		{ID: "4", JobName: "D", Status: models.StatusOfferReceived, IsArchived: true},
		{ID: "5", JobName: "E", Status: models.StatusWithdrawn},
	}

	stats := Compute(records, now)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 4, stats.Active)
	assert.Equal(t, 1, stats.Archived)
	assert.Equal(t, 1, stats.Pinned)
	assert.Equal(t, 2, stats.Interviews)
	assert.Equal(t, 1, stats.FollowUps)
	assert.Equal(t, 1, stats.Successful)
	assert.Equal(t, 1, stats.ByStatus[models.StatusWithdrawn])
	assert.Equal(t, 0, stats.ByStatus[models.StatusOnHold])
	assert.InDelta(t, 0.75, stats.ResponseRate, 1e-9)
	assert.InDelta(t, 0.2, stats.SuccessRate, 1e-9)
}

func TestTileCountsMatchDashboardFilters(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.Local)
	records := []*models.JobRecord{
		{ID: "1", JobName: "A", Status: models.StatusAccepted, FollowUpDate: "2026-10-15"},
		{ID: "2", JobName: "B", Status: models.StatusInterviewed, FollowUpDate: "garbage"},
		{ID: "3", JobName: "C", Status: models.StatusRejected},
	}

	stats := Compute(records, now)
	for _, filter := range models.AllDashboardFilters() {
		filtered := query.FilterByDashboard(records, filter, now)
		assert.Equal(t, len(filtered), stats.TileCount(filter), "filter %s", filter)
	}
}
