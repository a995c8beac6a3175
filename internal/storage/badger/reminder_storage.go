package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/applytrack/internal/interfaces"
	"github.com/ternarybob/applytrack/internal/models"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"
)

// ReminderStorage implements the ReminderStorage interface for Badger
type ReminderStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewReminderStorage creates a new ReminderStorage instance
func NewReminderStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ReminderStorage {
	return &ReminderStorage{
		db:     db,
		logger: logger,
	}
}

// Save inserts or replaces the reminder under its notification id
func (s *ReminderStorage) Save(ctx context.Context, reminder *models.Reminder) error {
	if err := s.db.Store().Upsert(reminder.NotificationID, reminder); err != nil {
		return fmt.Errorf("failed to save reminder %d: %w", reminder.NotificationID, err)
	}
	return nil
}

func (s *ReminderStorage) Get(ctx context.Context, notificationID int32) (*models.Reminder, error) {
	var reminder models.Reminder
	err := s.db.Store().Get(notificationID, &reminder)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, interfaces.ErrReminderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder %d: %w", notificationID, err)
	}
	return &reminder, nil
}

func (s *ReminderStorage) Delete(ctx context.Context, notificationID int32) (bool, error) {
	err := s.db.Store().Delete(notificationID, &models.Reminder{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete reminder %d: %w", notificationID, err)
	}
	return true, nil
}

// ListDue returns undelivered reminders whose fire time is at or before now, oldest first
func (s *ReminderStorage) ListDue(ctx context.Context, now time.Time) ([]*models.Reminder, error) {
	pending, err := s.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	due := make([]*models.Reminder, 0, len(pending))
	for _, r := range pending {
		if r.IsDue(now) {
			due = append(due, r)
		}
	}
	return due, nil
}

// ListPending returns every undelivered reminder ordered by fire time
func (s *ReminderStorage) ListPending(ctx context.Context) ([]*models.Reminder, error) {
	var reminders []models.Reminder
	if err := s.db.Store().Find(&reminders, badgerhold.Where("Delivered").Eq(false)); err != nil {
		return nil, fmt.Errorf("failed to list pending reminders: %w", err)
	}
	out := toReminderPointers(reminders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FireAt.Before(out[j].FireAt)
	})
	return out, nil
}

// MarkDelivered flags the reminder as delivered, keeping it for tap lookups
func (s *ReminderStorage) MarkDelivered(ctx context.Context, notificationID int32, at time.Time) error {
	reminder, err := s.Get(ctx, notificationID)
	if err != nil {
		return err
	}
	reminder.Delivered = true
	reminder.DeliveredAt = at
	if err := s.db.Store().Update(notificationID, reminder); err != nil {
		return fmt.Errorf("failed to mark reminder %d delivered: %w", notificationID, err)
	}
	return nil
}

func toReminderPointers(reminders []models.Reminder) []*models.Reminder {
	out := make([]*models.Reminder, 0, len(reminders))
	for i := range reminders {
		out = append(out, &reminders[i])
	}
	return out
}
