package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/applytrack/internal/models"
)

var now = time.Date(2026, 10, 15, 14, 30, 0, 0, time.Local)

func jobIDs(records []*models.JobRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func statusPtr(s models.ApplicationStatus) *models.ApplicationStatus {
	return &s
}

func fixture() []*models.JobRecord {
	return []*models.JobRecord{
		{ID: "a", JobName: "Flutter Developer", CompanyName: "Acme Corp", Status: models.StatusInterviewed, ApplicationDate: "2024-01-01", CreatedAt: "2024-01-01T09:00:00.000000Z"},
		{ID: "b", JobName: "backend engineer", CompanyName: "Globex", ContactEmail: "jobs@acme.io", Status: models.StatusApplied, ApplicationDate: "2024-03-01", CreatedAt: "2024-03-01T09:00:00.000000Z"},
		{ID: "c", JobName: "Data Scientist", CompanyName: "Initech", Status: models.StatusOfferReceived, ApplicationDate: "2024-02-01", FollowUpDate: "2026-10-15", CreatedAt: "2024-02-01T09:00:00.000000Z"},
		{ID: "d", JobName: "Site Reliability", CompanyName: "Acme Labs", Status: models.StatusInterviewScheduled, FollowUpDate: "2026-10-14", CreatedAt: "2024-04-01T09:00:00.000000Z"},
		{ID: "e", JobName: "Android Developer", CompanyName: "Hooli", Status: models.StatusAccepted, FollowUpDate: "not a date", CreatedAt: "2023-12-01T09:00:00.000000Z"},
		{ID: "f", JobName: "iOS Developer", CompanyName: "Pied Piper", Status: models.StatusRejected, FollowUpDate: "2026-11-01T08:00:00Z", CreatedAt: "2023-11-01T09:00:00.000000Z"},
	}
}

func TestSearchMatchesNameCompanyAndEmail(t *testing.T) {
	records := fixture()

	assert.Equal(t, []string{"a", "b", "d"}, jobIDs(Search(records, "ACME")))
	assert.Equal(t, []string{"b"}, jobIDs(Search(records, "Backend")))
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, jobIDs(Search(records, "")))
	assert.Empty(t, Search(records, "nothing matches"))
}

func TestSearchKeepsSurroundingSpaces(t *testing.T) {
	records := fixture()

	assert.Equal(t, []string{"a", "d"}, jobIDs(Search(records, "acme ")))
	assert.Empty(t, Search(records, "   "))
}

func TestFilterByStatus(t *testing.T) {
	records := fixture()

	assert.Len(t, FilterByStatus(records, nil), len(records))
	assert.Equal(t, []string{"a"}, jobIDs(FilterByStatus(records, statusPtr(models.StatusInterviewed))))
	assert.Empty(t, FilterByStatus(records, statusPtr(models.StatusOnHold)))
}

func TestFilterByDashboard(t *testing.T) {
	records := fixture()

	tests := []struct {
		filter models.DashboardFilter
		want   []string
	}{
		{models.DashboardNone, []string{"a", "b", "c", "d", "e", "f"}},
		{models.DashboardTotalJobs, []string{"a", "b", "c", "d", "e", "f"}},
		{models.DashboardInterviews, []string{"a", "d"}},
		// today counts, yesterday and unparseable dates do not
		{models.DashboardFollowUps, []string{"c", "f"}},
		{models.DashboardSuccessful, []string{"c", "e"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			assert.Equal(t, tt.want, jobIDs(FilterByDashboard(records, tt.filter, now)))
		})
	}
}

func TestEveryDashboardFilterHasPredicateEntry(t *testing.T) {
	for _, f := range models.AllDashboardFilters() {
		_, ok := dashboardPredicates[f]
		assert.True(t, ok, "dashboard filter %s has no predicate entry", f)
	}
}

func TestSortByApplicationDate(t *testing.T) {
	records := []*models.JobRecord{
		{ID: "jan", JobName: "A", ApplicationDate: "2024-01-01"},
		{ID: "mar", JobName: "B", ApplicationDate: "2024-03-01"},
		{ID: "feb", JobName: "C", ApplicationDate: "2024-02-01"},
	}

	newest := Apply(records, Criteria{SortOption: models.SortDateNewest}, now)
	assert.Equal(t, []string{"mar", "feb", "jan"}, jobIDs(newest))

	oldest := Apply(records, Criteria{SortOption: models.SortDateOldest}, now)
	assert.Equal(t, []string{"jan", "feb", "mar"}, jobIDs(oldest))

	// input order untouched
	assert.Equal(t, []string{"jan", "mar", "feb"}, jobIDs(records))
}

func TestSortFallsBackToCreatedAt(t *testing.T) {
	records := []*models.JobRecord{
		{ID: "created-late", JobName: "A", CreatedAt: "2024-05-01T10:00:00.000000Z"},
		{ID: "applied", JobName: "B", ApplicationDate: "2024-04-01", CreatedAt: "2024-06-01T10:00:00.000000Z"},
	}

	got := Apply(records, Criteria{SortOption: models.SortDateNewest}, now)

	assert.Equal(t, []string{"created-late", "applied"}, jobIDs(got))
}

func TestSortByNameIgnoresCase(t *testing.T) {
	records := []*models.JobRecord{
		{ID: "z", JobName: "zeta"},
		{ID: "a", JobName: "Alpha"},
		{ID: "b", JobName: "beta"},
	}

	assert.Equal(t, []string{"a", "b", "z"}, jobIDs(Apply(records, Criteria{SortOption: models.SortNameAZ}, now)))
	assert.Equal(t, []string{"z", "b", "a"}, jobIDs(Apply(records, Criteria{SortOption: models.SortNameZA}, now)))
}

func TestSortIsStable(t *testing.T) {
	records := []*models.JobRecord{
		{ID: "1", JobName: "Same", ApplicationDate: "2024-01-01"},
		{ID: "2", JobName: "same", ApplicationDate: "2024-01-01"},
		{ID: "3", JobName: "SAME", ApplicationDate: "2024-01-01"},
	}

	for _, option := range models.AllSortOptions() {
		t.Run(string(option), func(t *testing.T) {
			assert.Equal(t, []string{"1", "2", "3"}, jobIDs(Apply(records, Criteria{SortOption: option}, now)))
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	criteria := Criteria{
		SearchQuery:     "developer",
		DashboardFilter: models.DashboardNone,
		SortOption:      models.SortNameZA,
	}

	once := Apply(fixture(), criteria, now)
	twice := Apply(once, criteria, now)

	require.NotEmpty(t, once)
	assert.Equal(t, jobIDs(once), jobIDs(twice))
}

func TestApplyComposesStatusAndSearch(t *testing.T) {
	records := fixture()
	interviewed := statusPtr(models.StatusInterviewed)

	both := Apply(records, Criteria{SearchQuery: "acme", StatusFilter: interviewed}, now)
	assert.Equal(t, []string{"a"}, jobIDs(both))

	searchOnly := Apply(records, Criteria{SearchQuery: "acme"}, now)
	assert.ElementsMatch(t, []string{"a", "b", "d"}, jobIDs(searchOnly))

	statusOnly := Apply(records, Criteria{StatusFilter: interviewed}, now)
	assert.Equal(t, []string{"a"}, jobIDs(statusOnly))
}

func TestApplyComposesDashboardWithStatus(t *testing.T) {
	got := Apply(fixture(), Criteria{
		StatusFilter:    statusPtr(models.StatusAccepted),
		DashboardFilter: models.DashboardSuccessful,
	}, now)

	assert.Equal(t, []string{"e"}, jobIDs(got))
}
