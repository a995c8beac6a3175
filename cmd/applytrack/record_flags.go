package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ternarybob/applytrack/internal/models"
)

// recordFlags binds the editable record fields to command flags
type recordFlags struct {
	fields models.RecordFields
	clear  []string
}

func (f *recordFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.fields.JobName, "name", "n", "", "Job title")
	flags.StringVar(&f.fields.CompanyName, "company", "", "Company name")
	flags.StringVar(&f.fields.JobLink, "link", "", "Job posting URL")
	flags.StringVar(&f.fields.ContactMethod, "contact-method", "", "How you applied or were contacted")
	flags.StringVar(&f.fields.CVUsed, "cv", "", "CV or resume version used")
	flags.StringVar(&f.fields.Notes, "notes", "", "Free-form notes")
	flags.StringVar(&f.fields.Source, "source", "", "Where the job was found")
	flags.StringVar(&f.fields.ContactEmail, "email", "", "Contact email address")
	flags.StringVar(&f.fields.ApplicationDate, "applied", "", "Application date (YYYY-MM-DD)")
	flags.StringVar(&f.fields.FollowUpDate, "follow-up", "", "Follow-up date (YYYY-MM-DD)")
	flags.StringVar(&f.fields.InterviewDate, "interview", "", "Interview date (YYYY-MM-DD)")
	flags.StringVar(&f.fields.Status, "status", "", "Status: "+statusList())
	flags.BoolVar(&f.fields.IsPinned, "pinned", false, "Pin the record")
	flags.BoolVar(&f.fields.IsArchived, "archived", false, "Archive the record")
	flags.StringSliceVar(&f.fields.Tags, "tags", nil, "Comma separated tags")
}

func (f *recordFlags) registerClear(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.clear, "clear", nil, "Fields to clear, e.g. --clear follow-up,notes")
}

// update builds a partial update from the flags the user actually passed
func (f *recordFlags) update(cmd *cobra.Command) (models.RecordUpdate, error) {
	var u models.RecordUpdate
	changed := cmd.Flags().Changed

	if changed("name") {
		u.JobName = models.Set(f.fields.JobName)
	}
	if changed("company") {
		u.CompanyName = models.Set(f.fields.CompanyName)
	}
	if changed("link") {
		u.JobLink = models.Set(f.fields.JobLink)
	}
	if changed("contact-method") {
		u.ContactMethod = models.Set(f.fields.ContactMethod)
	}
	if changed("cv") {
		u.CVUsed = models.Set(f.fields.CVUsed)
	}
	if changed("notes") {
		u.Notes = models.Set(f.fields.Notes)
	}
	if changed("source") {
		u.Source = models.Set(f.fields.Source)
	}
	if changed("email") {
		u.ContactEmail = models.Set(f.fields.ContactEmail)
	}
	if changed("applied") {
		u.ApplicationDate = models.Set(f.fields.ApplicationDate)
	}
	if changed("follow-up") {
		u.FollowUpDate = models.Set(f.fields.FollowUpDate)
	}
	if changed("interview") {
		u.InterviewDate = models.Set(f.fields.InterviewDate)
	}
	if changed("status") {
		u.Status = models.Set(models.ParseStatus(f.fields.Status))
	}
	if changed("pinned") {
		u.IsPinned = models.Set(f.fields.IsPinned)
	}
	if changed("archived") {
		u.IsArchived = models.Set(f.fields.IsArchived)
	}
	if changed("tags") {
		u.Tags = models.Set(f.fields.Tags)
	}

	for _, name := range f.clear {
		switch strings.TrimSpace(name) {
		case "company":
			u.CompanyName = models.Clear[string]()
		case "link":
			u.JobLink = models.Clear[string]()
		case "contact-method":
			u.ContactMethod = models.Clear[string]()
		case "cv":
			u.CVUsed = models.Clear[string]()
		case "notes":
			u.Notes = models.Clear[string]()
		case "source":
			u.Source = models.Clear[string]()
		case "email":
			u.ContactEmail = models.Clear[string]()
		case "applied":
			u.ApplicationDate = models.Clear[string]()
		case "follow-up":
			u.FollowUpDate = models.Clear[string]()
		case "interview":
			u.InterviewDate = models.Clear[string]()
		case "status":
			u.Status = models.Clear[models.ApplicationStatus]()
		case "tags":
			u.Tags = models.Clear[[]string]()
		default:
			return u, fmt.Errorf("field %q cannot be cleared", name)
		}
	}

	return u, nil
}

func statusList() string {
	names := make([]string, 0, len(models.AllStatuses()))
	for _, s := range models.AllStatuses() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
