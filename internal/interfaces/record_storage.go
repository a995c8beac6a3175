package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/ternarybob/applytrack/internal/models"
)

// ErrRecordNotFound is returned when no record exists for an id
var ErrRecordNotFound = errors.New("record not found")

// RecordStorage is the persistent key/value store of job records, keyed by record id
type RecordStorage interface {
	// GetAll returns every record. No ordering is guaranteed.
	GetAll(ctx context.Context) ([]*models.JobRecord, error)

	// Get returns the record for id or ErrRecordNotFound
	Get(ctx context.Context, id string) (*models.JobRecord, error)

	// Put inserts or overwrites the record stored under id
	Put(ctx context.Context, id string, record *models.JobRecord) error

	// Delete removes the record. Returns false when nothing was stored under id.
	Delete(ctx context.Context, id string) (bool, error)

	// Count returns the number of stored records
	Count(ctx context.Context) (int, error)
}

// ErrReminderNotFound is returned when no reminder exists for a notification id
var ErrReminderNotFound = errors.New("reminder not found")

// ReminderStorage persists scheduled follow-up reminders
type ReminderStorage interface {
	Save(ctx context.Context, reminder *models.Reminder) error
	Get(ctx context.Context, notificationID int32) (*models.Reminder, error)
	Delete(ctx context.Context, notificationID int32) (bool, error)
	ListDue(ctx context.Context, now time.Time) ([]*models.Reminder, error)
	ListPending(ctx context.Context) ([]*models.Reminder, error)
	MarkDelivered(ctx context.Context, notificationID int32, at time.Time) error
}

// StorageManager exposes the storage backends behind a single connection
type StorageManager interface {
	RecordStorage() RecordStorage
	ReminderStorage() ReminderStorage

	// LoadRecordsFromFiles imports seed records from a directory, leaving existing records untouched
	LoadRecordsFromFiles(ctx context.Context, dirPath string) (int, error)

	Close() error
}
