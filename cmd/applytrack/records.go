package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ternarybob/applytrack/internal/models"
)

var (
	addFlags    recordFlags
	addForce    bool
	updateFlags recordFlags
	showOutput  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new job application",
	Long:  `Adds a job application. Refuses likely duplicates of existing records unless --force is given.`,
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change fields of an existing record",
	Long:  `Updates only the fields whose flags are given. Use --clear to empty optional fields.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id...]",
	Short: "Delete one or more records and their reminders",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

var pinCmd = &cobra.Command{
	Use:   "pin [id]",
	Short: "Toggle the pinned flag of a record",
	Args:  cobra.ExactArgs(1),
	RunE:  runPin,
}

var archiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Toggle the archived flag of a record",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchive,
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show every field of a record",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	addFlags.register(addCmd)
	addCmd.Flags().BoolVar(&addForce, "force", false, "Add even if a similar record exists")
	_ = addCmd.MarkFlagRequired("name")

	updateFlags.register(updateCmd)
	updateFlags.registerClear(updateCmd)

	showCmd.Flags().StringVarP(&showOutput, "output", "o", formatTable, "Output format: table, json, yaml")
}

func runAdd(cmd *cobra.Command, args []string) error {
	tracker := application.Tracker

	if !addForce {
		if dupes := tracker.FindDuplicates(addFlags.fields.JobName, addFlags.fields.CompanyName, ""); len(dupes) > 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "Possible duplicates:")
			_ = writeRecords(cmd.ErrOrStderr(), formatTable, dupes)
			return fmt.Errorf("%d similar record(s) exist, use --force to add anyway", len(dupes))
		}
	}

	record, err := tracker.AddRecord(cmd.Context(), addFlags.fields)
	if err != nil {
		return err
	}

	logger.Debug().Str("record_id", record.ID).Msg("Record added from command line")
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", record.ID, record.JobName)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := resolveID(args[0])
	if err != nil {
		return err
	}

	update, err := updateFlags.update(cmd)
	if err != nil {
		return err
	}
	if update.IsEmpty() {
		return fmt.Errorf("nothing to update, pass at least one field flag")
	}

	record, err := application.Tracker.UpdateRecord(cmd.Context(), id, update)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("record %s not found", id)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", record.ID)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id, err := resolveID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	tracker := application.Tracker
	if len(ids) == 1 {
		deleted, err := tracker.DeleteRecord(cmd.Context(), ids[0])
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("record %s not found", ids[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", ids[0])
		return nil
	}

	tracker.EnterSelectionMode(ids[0])
	for _, id := range ids[1:] {
		if !tracker.State().IsSelected(id) {
			tracker.ToggleSelection(id)
		}
	}

	deleted, err := tracker.DeleteSelected(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d of %d records\n", deleted, len(ids))
	return err
}

func runPin(cmd *cobra.Command, args []string) error {
	id, err := resolveID(args[0])
	if err != nil {
		return err
	}
	record, err := application.Tracker.TogglePin(cmd.Context(), id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("record %s not found", id)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s pinned: %t\n", record.JobName, record.IsPinned)
	return nil
}

func runArchive(cmd *cobra.Command, args []string) error {
	id, err := resolveID(args[0])
	if err != nil {
		return err
	}
	record, err := application.Tracker.ToggleArchive(cmd.Context(), id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("record %s not found", id)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s archived: %t\n", record.JobName, record.IsArchived)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := resolveID(args[0])
	if err != nil {
		return err
	}
	record := application.Tracker.GetByID(id)
	if record == nil {
		return fmt.Errorf("record %s not found", id)
	}
	return writeRecord(cmd.OutOrStdout(), showOutput, record)
}

// resolveID expands an id prefix, as printed by list, to the full record id
func resolveID(prefix string) (string, error) {
	if application.Tracker.GetByID(prefix) != nil {
		return prefix, nil
	}

	var matches []*models.JobRecord
	for _, r := range application.Tracker.AllRecords() {
		if strings.HasPrefix(r.ID, prefix) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no record matches id %q", prefix)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("id %q is ambiguous, %d records match", prefix, len(matches))
	}
}
