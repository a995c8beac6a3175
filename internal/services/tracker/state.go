package tracker

import (
	"sort"

	"github.com/ternarybob/applytrack/internal/models"
	"github.com/ternarybob/applytrack/internal/services/query"
)

// ApplicationViewState is an immutable snapshot of everything the UI renders.
// A new snapshot is built for every change; records are shared between snapshots
// and must be treated as read-only.
type ApplicationViewState struct {
	AllRecords      []*models.JobRecord
	FilteredRecords []*models.JobRecord
	SearchQuery     string
	StatusFilter    *models.ApplicationStatus
	DashboardFilter models.DashboardFilter
	SortOption      models.SortOption
	IsLoading       bool
	ErrorMessage    string
	IsSelectionMode bool
	SelectedIDs     map[string]struct{}
}

func initialState() *ApplicationViewState {
	return &ApplicationViewState{
		AllRecords:      []*models.JobRecord{},
		FilteredRecords: []*models.JobRecord{},
		DashboardFilter: models.DashboardNone,
		SortOption:      models.SortDateNewest,
		SelectedIDs:     map[string]struct{}{},
	}
}

// clone copies the containers so the copy can be modified without touching s
func (s *ApplicationViewState) clone() *ApplicationViewState {
	c := *s
	c.AllRecords = append([]*models.JobRecord(nil), s.AllRecords...)
	c.FilteredRecords = append([]*models.JobRecord(nil), s.FilteredRecords...)
	if s.StatusFilter != nil {
		status := *s.StatusFilter
		c.StatusFilter = &status
	}
	c.SelectedIDs = make(map[string]struct{}, len(s.SelectedIDs))
	for id := range s.SelectedIDs {
		c.SelectedIDs[id] = struct{}{}
	}
	return &c
}

func (s *ApplicationViewState) criteria() query.Criteria {
	return query.Criteria{
		SearchQuery:     s.SearchQuery,
		StatusFilter:    s.StatusFilter,
		DashboardFilter: s.DashboardFilter,
		SortOption:      s.SortOption,
	}
}

// IsSelected reports whether id is in the selection set
func (s *ApplicationViewState) IsSelected(id string) bool {
	_, ok := s.SelectedIDs[id]
	return ok
}

// SelectedCount returns the size of the selection set
func (s *ApplicationViewState) SelectedCount() int {
	return len(s.SelectedIDs)
}

// SelectedIDList returns the selection in sorted order
func (s *ApplicationViewState) SelectedIDList() []string {
	out := make([]string, 0, len(s.SelectedIDs))
	for id := range s.SelectedIDs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// HasError reports whether the last operation surfaced an error
func (s *ApplicationViewState) HasError() bool {
	return s.ErrorMessage != ""
}
