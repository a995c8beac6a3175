package models

import "strings"

// RecordFields is the user supplied content of a new record.
// Only the job name is constrained; every other text field is free form.
// Status accepts any string and is normalised with ParseStatus.
type RecordFields struct {
	JobName         string   `json:"job_name" yaml:"job_name" toml:"job_name" validate:"required"`
	CompanyName     string   `json:"company_name" yaml:"company_name" toml:"company_name"`
	JobLink         string   `json:"job_link" yaml:"job_link" toml:"job_link"`
	ContactMethod   string   `json:"contact_method" yaml:"contact_method" toml:"contact_method"`
	CVUsed          string   `json:"cv_used" yaml:"cv_used" toml:"cv_used"`
	Notes           string   `json:"notes" yaml:"notes" toml:"notes"`
	Source          string   `json:"source" yaml:"source" toml:"source"`
	ContactEmail    string   `json:"contact_email" yaml:"contact_email" toml:"contact_email"`
	ApplicationDate string   `json:"application_date" yaml:"application_date" toml:"application_date"`
	FollowUpDate    string   `json:"follow_up_date" yaml:"follow_up_date" toml:"follow_up_date"`
	InterviewDate   string   `json:"interview_date" yaml:"interview_date" toml:"interview_date"`
	Status          string   `json:"status" yaml:"status" toml:"status"`
	IsPinned        bool     `json:"is_pinned" yaml:"is_pinned" toml:"is_pinned"`
	IsArchived      bool     `json:"is_archived" yaml:"is_archived" toml:"is_archived"`
	Tags            []string `json:"tags" yaml:"tags" toml:"tags"`
}

// Normalize trims the job name so that whitespace-only names fail the required check
func (f *RecordFields) Normalize() {
	f.JobName = strings.TrimSpace(f.JobName)
}

// NewJobRecord builds a record from fields. The caller supplies the id and creation timestamp.
func NewJobRecord(id string, fields RecordFields, timestamp string) *JobRecord {
	var tags []string
	if fields.Tags != nil {
		tags = make([]string, len(fields.Tags))
		copy(tags, fields.Tags)
	}
	return &JobRecord{
		ID:              id,
		JobName:         fields.JobName,
		CompanyName:     fields.CompanyName,
		JobLink:         fields.JobLink,
		ContactMethod:   fields.ContactMethod,
		CVUsed:          fields.CVUsed,
		Notes:           fields.Notes,
		Source:          fields.Source,
		ContactEmail:    fields.ContactEmail,
		ApplicationDate: fields.ApplicationDate,
		FollowUpDate:    fields.FollowUpDate,
		InterviewDate:   fields.InterviewDate,
		Status:          ParseStatus(fields.Status),
		IsPinned:        fields.IsPinned,
		IsArchived:      fields.IsArchived,
		Tags:            tags,
		CreatedAt:       timestamp,
		UpdatedAt:       timestamp,
	}
}

// RecordUpdate describes a partial update. Fields left at their zero value are not touched.
type RecordUpdate struct {
	JobName         Field[string]
	CompanyName     Field[string]
	JobLink         Field[string]
	ContactMethod   Field[string]
	CVUsed          Field[string]
	Notes           Field[string]
	Source          Field[string]
	ContactEmail    Field[string]
	ApplicationDate Field[string]
	FollowUpDate    Field[string]
	InterviewDate   Field[string]
	Status          Field[ApplicationStatus]
	IsPinned        Field[bool]
	IsArchived      Field[bool]
	Tags            Field[[]string]
}

// IsEmpty reports whether the update changes nothing
func (u RecordUpdate) IsEmpty() bool {
	return !u.JobName.Changed() && !u.CompanyName.Changed() && !u.JobLink.Changed() &&
		!u.ContactMethod.Changed() && !u.CVUsed.Changed() && !u.Notes.Changed() &&
		!u.Source.Changed() && !u.ContactEmail.Changed() && !u.ApplicationDate.Changed() &&
		!u.FollowUpDate.Changed() && !u.InterviewDate.Changed() && !u.Status.Changed() &&
		!u.IsPinned.Changed() && !u.IsArchived.Changed() && !u.Tags.Changed()
}

// ApplyTo returns a copy of record with the update merged in. ID and CreatedAt are never touched.
// Clearing the status restores the default; clearing the job name is rejected by the caller.
func (u RecordUpdate) ApplyTo(record *JobRecord) *JobRecord {
	out := record.Clone()
	out.JobName = u.JobName.Resolve(out.JobName)
	out.CompanyName = u.CompanyName.Resolve(out.CompanyName)
	out.JobLink = u.JobLink.Resolve(out.JobLink)
	out.ContactMethod = u.ContactMethod.Resolve(out.ContactMethod)
	out.CVUsed = u.CVUsed.Resolve(out.CVUsed)
	out.Notes = u.Notes.Resolve(out.Notes)
	out.Source = u.Source.Resolve(out.Source)
	out.ContactEmail = u.ContactEmail.Resolve(out.ContactEmail)
	out.ApplicationDate = u.ApplicationDate.Resolve(out.ApplicationDate)
	out.FollowUpDate = u.FollowUpDate.Resolve(out.FollowUpDate)
	out.InterviewDate = u.InterviewDate.Resolve(out.InterviewDate)
	out.Status = ParseStatus(string(u.Status.Resolve(out.Status)))
	out.IsPinned = u.IsPinned.Resolve(out.IsPinned)
	out.IsArchived = u.IsArchived.Resolve(out.IsArchived)
	if u.Tags.Changed() {
		tags := u.Tags.Resolve(nil)
		out.Tags = nil
		if tags != nil {
			out.Tags = make([]string, len(tags))
			copy(out.Tags, tags)
		}
	}
	return out
}

// FieldsOf returns the user editable fields of a record
func FieldsOf(r *JobRecord) RecordFields {
	var tags []string
	if r.Tags != nil {
		tags = make([]string, len(r.Tags))
		copy(tags, r.Tags)
	}
	return RecordFields{
		JobName:         r.JobName,
		CompanyName:     r.CompanyName,
		JobLink:         r.JobLink,
		ContactMethod:   r.ContactMethod,
		CVUsed:          r.CVUsed,
		Notes:           r.Notes,
		Source:          r.Source,
		ContactEmail:    r.ContactEmail,
		ApplicationDate: r.ApplicationDate,
		FollowUpDate:    r.FollowUpDate,
		InterviewDate:   r.InterviewDate,
		Status:          string(r.Status),
		IsPinned:        r.IsPinned,
		IsArchived:      r.IsArchived,
		Tags:            tags,
	}
}
