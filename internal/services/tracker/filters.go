package tracker

import "github.com/ternarybob/applytrack/internal/models"

// Filter changes are pure in-memory transitions: each emits exactly one snapshot
// with the filtered list recomputed.

// SetSearchQuery sets the free-text query
func (c *Controller) SetSearchQuery(q string) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mutate(func(s *ApplicationViewState) {
		s.SearchQuery = q
		c.recompute(s)
	})
}

// ClearSearch removes the free-text query
func (c *Controller) ClearSearch() {
	c.SetSearchQuery("")
}

// SetStatusFilter restricts the list to one status; nil shows every status
func (c *Controller) SetStatusFilter(status *models.ApplicationStatus) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mutate(func(s *ApplicationViewState) {
		s.StatusFilter = nil
		if status != nil {
			value := *status
			s.StatusFilter = &value
		}
		c.recompute(s)
	})
}

// ClearStatusFilter shows every status
func (c *Controller) ClearStatusFilter() {
	c.SetStatusFilter(nil)
}

// SetDashboardFilter selects a dashboard tile. Selecting the active tile again turns it off,
// except for the tiles that never filter.
func (c *Controller) SetDashboardFilter(filter models.DashboardFilter) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mutate(func(s *ApplicationViewState) {
		if s.DashboardFilter == filter && filter.Toggleable() {
			s.DashboardFilter = models.DashboardNone
		} else {
			s.DashboardFilter = filter
		}
		c.recompute(s)
	})
}

// ClearDashboardFilter turns off the active dashboard tile
func (c *Controller) ClearDashboardFilter() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mutate(func(s *ApplicationViewState) {
		s.DashboardFilter = models.DashboardNone
		c.recompute(s)
	})
}

// SetSortOption changes the list ordering
func (c *Controller) SetSortOption(option models.SortOption) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mutate(func(s *ApplicationViewState) {
		s.SortOption = option
		c.recompute(s)
	})
}

// ClearError dismisses the current error message
func (c *Controller) ClearError() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mutate(func(s *ApplicationViewState) {
		s.ErrorMessage = ""
	})
}
