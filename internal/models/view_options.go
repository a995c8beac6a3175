package models

import "strings"

// SortOption selects the ordering of the filtered record list
type SortOption string

const (
	SortDateNewest SortOption = "dateNewest"
	SortDateOldest SortOption = "dateOldest"
	SortNameAZ     SortOption = "nameAZ"
	SortNameZA     SortOption = "nameZA"
)

// AllSortOptions lists every sort option
func AllSortOptions() []SortOption {
	return []SortOption{SortDateNewest, SortDateOldest, SortNameAZ, SortNameZA}
}

// ParseSortOption is case-insensitive and falls back to SortDateNewest
func ParseSortOption(value string) SortOption {
	for _, o := range AllSortOptions() {
		if strings.EqualFold(string(o), strings.TrimSpace(value)) {
			return o
		}
	}
	return SortDateNewest
}

// DashboardFilter is the coarse filter driven by the statistics tiles
type DashboardFilter string

const (
	DashboardNone       DashboardFilter = "none"
	DashboardTotalJobs  DashboardFilter = "totalJobs"
	DashboardInterviews DashboardFilter = "interviews"
	DashboardFollowUps  DashboardFilter = "followUps"
	DashboardSuccessful DashboardFilter = "successful"
)

// AllDashboardFilters lists every dashboard filter
func AllDashboardFilters() []DashboardFilter {
	return []DashboardFilter{DashboardNone, DashboardTotalJobs, DashboardInterviews, DashboardFollowUps, DashboardSuccessful}
}

// ParseDashboardFilter is case-insensitive and falls back to DashboardNone
func ParseDashboardFilter(value string) DashboardFilter {
	for _, f := range AllDashboardFilters() {
		if strings.EqualFold(string(f), strings.TrimSpace(value)) {
			return f
		}
	}
	return DashboardNone
}

// Toggleable reports whether reselecting the filter switches it off.
// none and totalJobs never filter anything so there is nothing to toggle.
func (f DashboardFilter) Toggleable() bool {
	return f != DashboardNone && f != DashboardTotalJobs
}
