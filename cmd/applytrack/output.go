package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ternarybob/applytrack/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// writeValue renders v as JSON or YAML
func writeValue(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeRecords(w io.Writer, format string, records []*models.JobRecord) error {
	if format != formatTable {
		if records == nil {
			records = []*models.JobRecord{}
		}
		return writeValue(w, format, records)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tJOB\tCOMPANY\tSTATUS\tAPPLIED\tFOLLOW-UP\tFLAGS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(r.ID),
			r.JobName,
			r.CompanyName,
			r.Status.Info().Label,
			r.ApplicationDate,
			r.FollowUpDate,
			recordFlagsLabel(r),
		)
	}
	return tw.Flush()
}

func writeRecord(w io.Writer, format string, r *models.JobRecord) error {
	if format != formatTable {
		return writeValue(w, format, r)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"ID", r.ID},
		{"Job", r.JobName},
		{"Company", r.CompanyName},
		{"Status", r.Status.Info().Label},
		{"Link", r.JobLink},
		{"Contact", r.ContactMethod},
		{"Email", r.ContactEmail},
		{"CV", r.CVUsed},
		{"Source", r.Source},
		{"Applied", r.ApplicationDate},
		{"Follow-up", r.FollowUpDate},
		{"Interview", r.InterviewDate},
		{"Tags", strings.Join(r.Tags, ", ")},
		{"Flags", recordFlagsLabel(r)},
		{"Notes", r.Notes},
		{"Created", r.CreatedAt},
		{"Updated", r.UpdatedAt},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

// shortID trims uuids for table output; show and update accept the full id
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func recordFlagsLabel(r *models.JobRecord) string {
	var flags []string
	if r.IsPinned {
		flags = append(flags, "pinned")
	}
	if r.IsArchived {
		flags = append(flags, "archived")
	}
	return strings.Join(flags, ",")
}
