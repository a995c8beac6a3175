// -----------------------------------------------------------------------
// Last Modified: Tuesday, 6th October 2026 9:12:00 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package models

import (
	"strings"
	"time"
)

// DateLayout is the ISO-8601 calendar date layout used for application, follow-up and interview dates
const DateLayout = "2006-01-02"

// TimestampLayout is used for CreatedAt and UpdatedAt. Fixed width so string order matches time order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// dateLayouts are tried in order when parsing a stored date string
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// JobRecord is one tracked job application
type JobRecord struct {
	ID              string            `json:"id" yaml:"id" toml:"id" badgerhold:"key"`
	JobName         string            `json:"job_name" yaml:"job_name" toml:"job_name"`
	CompanyName     string            `json:"company_name,omitempty" yaml:"company_name" toml:"company_name"`
	JobLink         string            `json:"job_link,omitempty" yaml:"job_link" toml:"job_link"`
	ContactMethod   string            `json:"contact_method,omitempty" yaml:"contact_method" toml:"contact_method"`
	CVUsed          string            `json:"cv_used,omitempty" yaml:"cv_used" toml:"cv_used"`
	Notes           string            `json:"notes,omitempty" yaml:"notes" toml:"notes"`
	Source          string            `json:"source,omitempty" yaml:"source" toml:"source"`
	ContactEmail    string            `json:"contact_email,omitempty" yaml:"contact_email" toml:"contact_email"`
	ApplicationDate string            `json:"application_date,omitempty" yaml:"application_date" toml:"application_date"`
	FollowUpDate    string            `json:"follow_up_date,omitempty" yaml:"follow_up_date" toml:"follow_up_date"`
	InterviewDate   string            `json:"interview_date,omitempty" yaml:"interview_date" toml:"interview_date"`
	Status          ApplicationStatus `json:"status" yaml:"status" toml:"status"`
	IsPinned        bool              `json:"is_pinned" yaml:"is_pinned" toml:"is_pinned"`
	IsArchived      bool              `json:"is_archived" yaml:"is_archived" toml:"is_archived"`
	Tags            []string          `json:"tags,omitempty" yaml:"tags" toml:"tags"`
	CreatedAt       string            `json:"created_at" yaml:"created_at" toml:"created_at"`
	UpdatedAt       string            `json:"updated_at" yaml:"updated_at" toml:"updated_at"`
}

// Clone returns a deep copy of the record
func (r *JobRecord) Clone() *JobRecord {
	if r == nil {
		return nil
	}
	c := *r
	if r.Tags != nil {
		c.Tags = make([]string, len(r.Tags))
		copy(c.Tags, r.Tags)
	}
	return &c
}

// SortDate returns the key used for date ordering: the application date when set, otherwise CreatedAt
func (r *JobRecord) SortDate() string {
	if strings.TrimSpace(r.ApplicationDate) != "" {
		return r.ApplicationDate
	}
	return r.CreatedAt
}

// FollowUp returns the parsed follow-up date. ok is false when unset or unparseable.
func (r *JobRecord) FollowUp() (time.Time, bool) {
	return ParseDate(r.FollowUpDate)
}

// HasFollowUp reports whether a follow-up date string is present, parseable or not
func (r *JobRecord) HasFollowUp() bool {
	return strings.TrimSpace(r.FollowUpDate) != ""
}

// ParseDate parses an ISO-8601 date or timestamp. Empty or malformed values report ok=false.
func ParseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateOnly truncates t to midnight in t's location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatTimestamp renders a timestamp for CreatedAt/UpdatedAt
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
