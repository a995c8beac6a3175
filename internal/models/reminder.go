package models

import "time"

// Reminder is a persisted follow-up notification
type Reminder struct {
	NotificationID int32     `json:"notification_id" badgerhold:"key"`
	RecordID       string    `json:"record_id" badgerhold:"index"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	FireAt         time.Time `json:"fire_at"`
	Delivered      bool      `json:"delivered"`
	DeliveredAt    time.Time `json:"delivered_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// IsDue reports whether an undelivered reminder should fire at now
func (r *Reminder) IsDue(now time.Time) bool {
	return !r.Delivered && !r.FireAt.After(now)
}
