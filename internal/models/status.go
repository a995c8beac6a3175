package models

import "strings"

// ApplicationStatus is the workflow stage of a job application
type ApplicationStatus string

const (
	StatusApplied            ApplicationStatus = "applied"
	StatusUnderReview        ApplicationStatus = "underReview"
	StatusInterviewScheduled ApplicationStatus = "interviewScheduled"
	StatusInterviewed        ApplicationStatus = "interviewed"
	StatusAssessment         ApplicationStatus = "assessment"
	StatusOfferReceived      ApplicationStatus = "offerReceived"
	StatusAccepted           ApplicationStatus = "accepted"
	StatusRejected           ApplicationStatus = "rejected"
	StatusWithdrawn          ApplicationStatus = "withdrawn"
	StatusOnHold             ApplicationStatus = "onHold"
)

// StatusInfo holds display metadata for a status
type StatusInfo struct {
	Label string
	Color string
}

var allStatuses = []ApplicationStatus{
	StatusApplied,
	StatusUnderReview,
	StatusInterviewScheduled,
	StatusInterviewed,
	StatusAssessment,
	StatusOfferReceived,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
	StatusOnHold,
}

// statusInfo must have an entry for every value in allStatuses (enforced by tests)
var statusInfo = map[ApplicationStatus]StatusInfo{
	StatusApplied:            {Label: "Applied", Color: "blue"},
	StatusUnderReview:        {Label: "Under Review", Color: "indigo"},
	StatusInterviewScheduled: {Label: "Interview Scheduled", Color: "purple"},
	StatusInterviewed:        {Label: "Interviewed", Color: "teal"},
	StatusAssessment:         {Label: "Assessment", Color: "cyan"},
	StatusOfferReceived:      {Label: "Offer Received", Color: "lightGreen"},
	StatusAccepted:           {Label: "Accepted", Color: "green"},
	StatusRejected:           {Label: "Rejected", Color: "red"},
	StatusWithdrawn:          {Label: "Withdrawn", Color: "grey"},
	StatusOnHold:             {Label: "On Hold", Color: "orange"},
}

// AllStatuses returns every status in workflow order
func AllStatuses() []ApplicationStatus {
	out := make([]ApplicationStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus maps a stored or user supplied value onto a status.
// Matching ignores case; anything unknown falls back to StatusApplied.
func ParseStatus(value string) ApplicationStatus {
	v := strings.TrimSpace(value)
	for _, s := range allStatuses {
		if strings.EqualFold(string(s), v) {
			return s
		}
	}
	return StatusApplied
}

// IsValid reports whether s is one of the fixed status values
func (s ApplicationStatus) IsValid() bool {
	_, ok := statusInfo[s]
	return ok
}

// Info returns display metadata, using the applied entry for unknown values
func (s ApplicationStatus) Info() StatusInfo {
	if info, ok := statusInfo[s]; ok {
		return info
	}
	return statusInfo[StatusApplied]
}

func (s ApplicationStatus) String() string {
	return string(s)
}
