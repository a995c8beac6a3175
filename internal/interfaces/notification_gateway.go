package interfaces

import (
	"context"
	"time"
)

// FollowUpContent carries the record fields used to title a reminder
type FollowUpContent struct {
	JobName     string
	CompanyName string
}

// TapHandler is invoked with the originating record id when a delivered reminder is activated
type TapHandler func(recordID string)

// NotificationGateway schedules and cancels follow-up reminders keyed by record id
type NotificationGateway interface {
	// ScheduleFollowUp schedules a reminder for recordID at hour:minute local time on the date of when.
	// Does nothing when that instant is not strictly in the future.
	ScheduleFollowUp(ctx context.Context, recordID string, content FollowUpContent, when time.Time, hour, minute int) error

	// Cancel removes any reminder for recordID. Cancelling nothing is not an error.
	Cancel(ctx context.Context, recordID string) error

	// SetTapHandler registers the callback for activated reminders
	SetTapHandler(handler TapHandler)
}
