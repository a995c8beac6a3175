// -----------------------------------------------------------------------
// Last Modified: Monday, 12th October 2026 3:40:00 pm
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package notifications

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/robfig/cron/v3"
	"github.com/ternarybob/applytrack/internal/common"
	"github.com/ternarybob/applytrack/internal/interfaces"
	"github.com/ternarybob/applytrack/internal/models"
	"github.com/ternarybob/arbor"
)

// NotificationID maps a record id onto the positive 31-bit notification id space.
// Distinct record ids can collide; a collision makes one record's cancel/reschedule
// replace the other's reminder.
func NotificationID(recordID string) int32 {
	return int32(xxhash.Sum64String(recordID) & 0x7fffffff)
}

// Deliverer hands a due reminder to the platform notification surface
type Deliverer interface {
	Deliver(ctx context.Context, reminder *models.Reminder) error
}

// LogDeliverer writes due reminders to the log. Used when no platform surface is wired.
type LogDeliverer struct {
	logger arbor.ILogger
}

// NewLogDeliverer creates a LogDeliverer
func NewLogDeliverer(logger arbor.ILogger) *LogDeliverer {
	return &LogDeliverer{logger: logger}
}

func (d *LogDeliverer) Deliver(ctx context.Context, reminder *models.Reminder) error {
	d.logger.Info().
		Str("record_id", reminder.RecordID).
		Int("notification_id", int(reminder.NotificationID)).
		Str("title", reminder.Title).
		Msg(reminder.Body)
	return nil
}

// Service implements NotificationGateway on top of persisted reminders and a cron dispatcher
type Service struct {
	storage   interfaces.ReminderStorage
	deliverer Deliverer
	events    interfaces.EventService
	clock     common.TimeProvider
	logger    arbor.ILogger
	cron      *cron.Cron // Rebuilt on every Start

	mu         sync.Mutex // Protects tapHandler and running
	dispatchMu sync.Mutex // Prevents overlapping dispatch runs
	tapHandler interfaces.TapHandler
	running    bool
}

// NewService creates a new notification service. events may be nil.
func NewService(storage interfaces.ReminderStorage, deliverer Deliverer, events interfaces.EventService, clock common.TimeProvider, logger arbor.ILogger) *Service {
	if clock == nil {
		clock = common.RealTimeProvider{}
	}
	if deliverer == nil {
		deliverer = NewLogDeliverer(logger)
	}
	return &Service{
		storage:   storage,
		deliverer: deliverer,
		events:    events,
		clock:     clock,
		logger:    logger,
	}
}

// ScheduleFollowUp stores a reminder for hour:minute local time on the calendar date of when.
// An instant that is not strictly in the future is skipped without error.
func (s *Service) ScheduleFollowUp(ctx context.Context, recordID string, content interfaces.FollowUpContent, when time.Time, hour, minute int) error {
	if recordID == "" {
		return fmt.Errorf("record id cannot be empty")
	}

	fireAt := time.Date(when.Year(), when.Month(), when.Day(), hour, minute, 0, 0, time.Local)
	now := s.clock.Now()
	if !fireAt.After(now) {
		s.logger.Debug().
			Str("record_id", recordID).
			Str("fire_at", fireAt.Format(time.RFC3339)).
			Msg("Follow-up time is not in the future, skipping reminder")
		return nil
	}

	reminder := &models.Reminder{
		NotificationID: NotificationID(recordID),
		RecordID:       recordID,
		Title:          reminderTitle(content),
		Body:           reminderBody(content),
		FireAt:         fireAt,
		CreatedAt:      now,
	}
	if err := s.storage.Save(ctx, reminder); err != nil {
		return fmt.Errorf("failed to schedule reminder for %s: %w", recordID, err)
	}

	s.logger.Debug().
		Str("record_id", recordID).
		Int("notification_id", int(reminder.NotificationID)).
		Str("fire_at", fireAt.Format(time.RFC3339)).
		Msg("Reminder scheduled")
	return nil
}

// Cancel removes the reminder for recordID. Nothing scheduled is not an error.
func (s *Service) Cancel(ctx context.Context, recordID string) error {
	id := NotificationID(recordID)
	removed, err := s.storage.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to cancel reminder for %s: %w", recordID, err)
	}
	if removed {
		s.logger.Debug().Str("record_id", recordID).Int("notification_id", int(id)).Msg("Reminder cancelled")
	}
	return nil
}

// SetTapHandler registers the callback for activated reminders
func (s *Service) SetTapHandler(handler interfaces.TapHandler) {
	s.mu.Lock()
	s.tapHandler = handler
	s.mu.Unlock()
}

// HandleTap routes an activated reminder to the tap handler with its record id
func (s *Service) HandleTap(ctx context.Context, notificationID int32) error {
	reminder, err := s.storage.Get(ctx, notificationID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	handler := s.tapHandler
	s.mu.Unlock()

	if handler != nil {
		handler(reminder.RecordID)
	}
	s.publish(ctx, interfaces.EventNotificationTapped, reminder.RecordID)
	return nil
}

// Pending lists reminders that have not fired yet
func (s *Service) Pending(ctx context.Context) ([]*models.Reminder, error) {
	return s.storage.ListPending(ctx)
}

// DispatchDue delivers every due reminder and returns how many were delivered.
// A failed delivery stays pending and is retried on the next run.
func (s *Service) DispatchDue(ctx context.Context) (int, error) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	now := s.clock.Now()
	due, err := s.storage.ListDue(ctx, now)
	if err != nil {
		return 0, err
	}

	delivered := 0
	var errs []error
	for _, reminder := range due {
		if err := s.deliverer.Deliver(ctx, reminder); err != nil {
			s.logger.Warn().Err(err).Str("record_id", reminder.RecordID).Msg("Reminder delivery failed")
			errs = append(errs, err)
			continue
		}
		if err := s.storage.MarkDelivered(ctx, reminder.NotificationID, now); err != nil {
			errs = append(errs, err)
			continue
		}
		delivered++
		s.publish(ctx, interfaces.EventReminderDelivered, reminder.RecordID)
	}

	if delivered > 0 {
		s.logger.Info().Int("delivered", delivered).Msg("Reminders dispatched")
	}
	return delivered, errors.Join(errs...)
}

// Start runs DispatchDue on the given cron schedule. A stopped dispatcher can be started again.
func (s *Service) Start(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("reminder dispatcher already running")
	}
	if err := common.ValidateSchedule(schedule); err != nil {
		return err
	}

	runner := cron.New()
	_, err := runner.AddFunc(schedule, func() {
		defer common.Recover(s.logger, "reminder-dispatch")
		if _, err := s.DispatchDue(context.Background()); err != nil {
			s.logger.Warn().Err(err).Msg("Reminder dispatch completed with errors")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add dispatch schedule: %w", err)
	}

	s.cron = runner
	s.cron.Start()
	s.running = true
	s.logger.Info().Str("schedule", schedule).Msg("Reminder dispatcher started")
	return nil
}

// Stop halts the dispatcher and waits for a running dispatch to finish
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info().Msg("Reminder dispatcher stopped")
}

func (s *Service) publish(ctx context.Context, eventType interfaces.EventType, recordID string) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, interfaces.Event{Type: eventType, Payload: recordID}); err != nil {
		s.logger.Warn().Err(err).Str("event_type", string(eventType)).Msg("Failed to publish event")
	}
}

func reminderTitle(content interfaces.FollowUpContent) string {
	return "Follow up: " + content.JobName
}

func reminderBody(content interfaces.FollowUpContent) string {
	if content.CompanyName == "" {
		return fmt.Sprintf("Time to check in on your %s application.", content.JobName)
	}
	return fmt.Sprintf("Time to check in on your %s application at %s.", content.JobName, content.CompanyName)
}
