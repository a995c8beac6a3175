package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ternarybob/applytrack/internal/models"
)

var (
	listSearch    string
	listStatus    string
	listDashboard string
	listSort      string
	listOutput    string

	dupesName    string
	dupesCompany string
	dupesExclude string

	statsOutput string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List records with search, filters and sorting",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var dupesCmd = &cobra.Command{
	Use:   "dupes",
	Short: "Find records similar to a job title and company",
	Args:  cobra.NoArgs,
	RunE:  runDupes,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show application statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive text search")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Only records with this status: "+statusList())
	listCmd.Flags().StringVar(&listDashboard, "filter", "", "Dashboard filter: totalJobs, interviews, followUps, successful")
	listCmd.Flags().StringVar(&listSort, "sort", string(models.SortDateNewest), "Sort: dateNewest, dateOldest, nameAZ, nameZA")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", formatTable, "Output format: table, json, yaml")

	dupesCmd.Flags().StringVarP(&dupesName, "name", "n", "", "Job title to check")
	dupesCmd.Flags().StringVar(&dupesCompany, "company", "", "Company name to check")
	dupesCmd.Flags().StringVar(&dupesExclude, "exclude", "", "Record id to ignore")
	_ = dupesCmd.MarkFlagRequired("name")

	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", formatTable, "Output format: table, json, yaml")
}

func runList(cmd *cobra.Command, args []string) error {
	tracker := application.Tracker

	if listSearch != "" {
		tracker.SetSearchQuery(listSearch)
	}
	if listStatus != "" {
		status := models.ParseStatus(listStatus)
		if !strings.EqualFold(status.String(), strings.TrimSpace(listStatus)) {
			logger.Warn().Str("status", listStatus).Msg("Unknown status, filtering on applied")
		}
		tracker.SetStatusFilter(&status)
	}
	if listDashboard != "" {
		tracker.SetDashboardFilter(models.ParseDashboardFilter(listDashboard))
	}
	tracker.SetSortOption(models.ParseSortOption(listSort))

	state := tracker.State()
	if state.ErrorMessage != "" {
		return fmt.Errorf("%s", state.ErrorMessage)
	}
	return writeRecords(cmd.OutOrStdout(), listOutput, state.FilteredRecords)
}

func runDupes(cmd *cobra.Command, args []string) error {
	matches := application.Tracker.FindDuplicates(dupesName, dupesCompany, dupesExclude)
	if len(matches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No similar records found")
		return nil
	}
	return writeRecords(cmd.OutOrStdout(), formatTable, matches)
}

func runStats(cmd *cobra.Command, args []string) error {
	stats := application.Tracker.Statistics()
	if statsOutput != formatTable {
		return writeValue(cmd.OutOrStdout(), statsOutput, stats)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total:       %d (%d active, %d archived, %d pinned)\n", stats.Total, stats.Active, stats.Archived, stats.Pinned)
	fmt.Fprintf(out, "Interviews:  %d\n", stats.Interviews)
	fmt.Fprintf(out, "Follow-ups:  %d\n", stats.FollowUps)
	fmt.Fprintf(out, "Successful:  %d\n", stats.Successful)
	fmt.Fprintf(out, "Response:    %.0f%%\n", stats.ResponseRate*100)
	fmt.Fprintf(out, "Success:     %.0f%%\n", stats.SuccessRate*100)
	fmt.Fprintln(out)

	statuses := models.AllStatuses()
	sort.SliceStable(statuses, func(i, j int) bool {
		return stats.ByStatus[statuses[i]] > stats.ByStatus[statuses[j]]
	})
	for _, s := range statuses {
		if n := stats.ByStatus[s]; n > 0 {
			fmt.Fprintf(out, "  %-20s %d\n", s.Info().Label, n)
		}
	}
	return nil
}
