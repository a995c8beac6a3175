// -----------------------------------------------------------------------
// Last Modified: Thursday, 15th October 2026 10:00:00 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/applytrack/internal/common"
	"github.com/ternarybob/applytrack/internal/interfaces"
	"github.com/ternarybob/applytrack/internal/models"
	"github.com/ternarybob/applytrack/internal/services/dedup"
	"github.com/ternarybob/applytrack/internal/services/query"
	"github.com/ternarybob/applytrack/internal/services/stats"
)

// StateListener receives every snapshot the controller emits, in emission order.
// Listeners run on the emitting goroutine and must not call controller mutations.
type StateListener func(state *ApplicationViewState)

// Options configures a Controller. A nil Clock uses the system clock; Events is optional.
type Options struct {
	Clock          common.TimeProvider
	Events         interfaces.EventService
	ReminderHour   int
	ReminderMinute int
}

// Controller owns the application view state. Every operation produces new
// immutable snapshots; operations are serialized so each one observes the
// result of the previous.
type Controller struct {
	storage  interfaces.RecordStorage
	gateway  interfaces.NotificationGateway
	events   interfaces.EventService
	clock    common.TimeProvider
	validate *validator.Validate
	logger   arbor.ILogger

	opMu           sync.Mutex
	reminderHour   int
	reminderMinute int

	state atomic.Pointer[ApplicationViewState]

	subMu       sync.RWMutex
	nextSubID   int
	subscribers []subscription
}

type subscription struct {
	id       int
	listener StateListener
}

// NewController creates a controller with an empty initial state. Call LoadAll to populate it.
func NewController(storage interfaces.RecordStorage, gateway interfaces.NotificationGateway, logger arbor.ILogger, opts Options) *Controller {
	clock := opts.Clock
	if clock == nil {
		clock = common.RealTimeProvider{}
	}

	c := &Controller{
		storage:        storage,
		gateway:        gateway,
		events:         opts.Events,
		clock:          clock,
		validate:       validator.New(),
		logger:         logger,
		reminderHour:   opts.ReminderHour,
		reminderMinute: opts.ReminderMinute,
	}
	c.state.Store(initialState())
	return c
}

// State returns the current snapshot
func (c *Controller) State() *ApplicationViewState {
	return c.state.Load()
}

// AllRecords returns the records of the current snapshot
func (c *Controller) AllRecords() []*models.JobRecord {
	return append([]*models.JobRecord(nil), c.State().AllRecords...)
}

// ReminderTime returns the hour and minute follow-up reminders fire at
func (c *Controller) ReminderTime() (int, int) {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.reminderHour, c.reminderMinute
}

// Subscribe registers listener for future snapshots and returns a function that removes it
func (c *Controller) Subscribe(listener StateListener) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.nextSubID++
	id := c.nextSubID
	c.subscribers = append(c.subscribers, subscription{id: id, listener: listener})

	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		for i, sub := range c.subscribers {
			if sub.id == id {
				c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

// emit publishes next as the current snapshot and notifies listeners in registration order
func (c *Controller) emit(next *ApplicationViewState) {
	c.state.Store(next)

	c.subMu.RLock()
	subs := append([]subscription(nil), c.subscribers...)
	c.subMu.RUnlock()

	for _, sub := range subs {
		sub.listener(next)
	}

	if c.events != nil {
		event := interfaces.Event{Type: interfaces.EventStateChanged, Payload: next}
		if err := c.events.Publish(context.Background(), event); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to publish state change")
		}
	}
}

// mutate emits a copy of the current state with fn applied
func (c *Controller) mutate(fn func(s *ApplicationViewState)) *ApplicationViewState {
	next := c.State().clone()
	fn(next)
	c.emit(next)
	return next
}

func (c *Controller) recompute(s *ApplicationViewState) {
	s.FilteredRecords = query.Apply(s.AllRecords, s.criteria(), c.clock.Now())
}

func (c *Controller) emitLoading() {
	c.mutate(func(s *ApplicationViewState) {
		s.IsLoading = true
	})
}

func (c *Controller) emitSettled() {
	c.mutate(func(s *ApplicationViewState) {
		s.IsLoading = false
	})
}

func (c *Controller) emitFailure(message string, err error) {
	c.mutate(func(s *ApplicationViewState) {
		s.IsLoading = false
		s.ErrorMessage = fmt.Sprintf("%s: %v", message, err)
	})
}

// reloaded reads every record from storage and builds the next terminal snapshot.
// A successful read clears the error message; on failure the previous records are kept.
func (c *Controller) reloaded(ctx context.Context, adjust func(s *ApplicationViewState)) (*ApplicationViewState, error) {
	records, err := c.storage.GetAll(ctx)
	next := c.State().clone()
	next.IsLoading = false
	if adjust != nil {
		adjust(next)
	}

	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load records")
		next.ErrorMessage = fmt.Sprintf("Failed to load jobs: %v", err)
		c.recompute(next)
		return next, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}

	if records == nil {
		records = []*models.JobRecord{}
	}
	next.AllRecords = records
	next.ErrorMessage = ""
	c.recompute(next)
	return next, nil
}

// LoadAll replaces the in-memory records with the store contents
func (c *Controller) LoadAll(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.emitLoading()
	next, err := c.reloaded(ctx, nil)
	c.emit(next)
	if err == nil {
		c.logger.Debug().Int("count", len(next.AllRecords)).Msg("Loaded records")
	}
	return err
}

// AddRecord validates and persists a new record, schedules its follow-up reminder and reloads.
// The returned record is non-nil whenever it was persisted, even if the reload failed.
func (c *Controller) AddRecord(ctx context.Context, fields models.RecordFields) (*models.JobRecord, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	fields.Normalize()
	if err := c.validate.Struct(fields); err != nil {
		c.logger.Warn().Err(err).Str("job_name", fields.JobName).Msg("Rejected invalid record")
		c.mutate(func(s *ApplicationViewState) {
			s.ErrorMessage = fmt.Sprintf("Failed to add job: %v", err)
		})
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	c.emitLoading()

	record := models.NewJobRecord(common.NewRecordID(), fields, models.FormatTimestamp(c.clock.Now()))
	if err := c.storage.Put(ctx, record.ID, record); err != nil {
		c.logger.Error().Err(err).Str("record_id", record.ID).Msg("Failed to add record")
		c.emitFailure("Failed to add job", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}

	c.scheduleFollowUp(ctx, record)

	next, err := c.reloaded(ctx, nil)
	c.emit(next)
	c.publish(ctx, interfaces.EventRecordSaved, record.ID)

	c.logger.Info().Str("record_id", record.ID).Str("job_name", record.JobName).Msg("Added record")
	return record.Clone(), err
}

// UpdateRecord merges update into the stored record. An unknown id is not an error:
// it returns nil and leaves the records unchanged.
func (c *Controller) UpdateRecord(ctx context.Context, id string, update models.RecordUpdate) (*models.JobRecord, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.updateLocked(ctx, id, update)
}

func (c *Controller) updateLocked(ctx context.Context, id string, update models.RecordUpdate) (*models.JobRecord, error) {
	existing, err := c.storage.Get(ctx, id)
	if errors.Is(err, interfaces.ErrRecordNotFound) {
		c.logger.Warn().Str("record_id", id).Msg("Update skipped, record not found")
		return nil, nil
	}
	if err != nil {
		c.logger.Error().Err(err).Str("record_id", id).Msg("Failed to read record for update")
		c.emitFailure("Failed to update job", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}

	c.emitLoading()

	merged := update.ApplyTo(existing)
	merged.JobName = strings.TrimSpace(merged.JobName)
	if err := c.validate.Struct(models.FieldsOf(merged)); err != nil {
		c.logger.Warn().Err(err).Str("record_id", id).Msg("Rejected invalid update")
		c.emitFailure("Failed to update job", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	merged.UpdatedAt = models.FormatTimestamp(c.clock.Now())
	if merged.UpdatedAt < merged.CreatedAt {
		merged.UpdatedAt = merged.CreatedAt
	}

	if err := c.storage.Put(ctx, id, merged); err != nil {
		c.logger.Error().Err(err).Str("record_id", id).Msg("Failed to update record")
		c.emitFailure("Failed to update job", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}

	c.cancelFollowUp(ctx, id)
	c.scheduleFollowUp(ctx, merged)

	next, err := c.reloaded(ctx, nil)
	c.emit(next)
	c.publish(ctx, interfaces.EventRecordSaved, id)

	c.logger.Info().Str("record_id", id).Msg("Updated record")
	return merged.Clone(), err
}

// DeleteRecord cancels the record's reminder and removes it. An unknown id returns false
// and leaves the state untouched.
func (c *Controller) DeleteRecord(ctx context.Context, id string) (bool, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if _, err := c.storage.Get(ctx, id); errors.Is(err, interfaces.ErrRecordNotFound) {
		c.logger.Debug().Str("record_id", id).Msg("Delete skipped, record not found")
		return false, nil
	}

	c.emitLoading()
	c.cancelFollowUp(ctx, id)

	deleted, err := c.storage.Delete(ctx, id)
	if err != nil {
		c.logger.Error().Err(err).Str("record_id", id).Msg("Failed to delete record")
		c.emitFailure("Failed to delete job", err)
		return false, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	if !deleted {
		c.logger.Debug().Str("record_id", id).Msg("Delete skipped, record not found")
		c.emitSettled()
		return false, nil
	}

	next, err := c.reloaded(ctx, nil)
	c.emit(next)
	c.publish(ctx, interfaces.EventRecordDeleted, id)

	c.logger.Info().Str("record_id", id).Msg("Deleted record")
	return true, err
}

// TogglePin flips the pinned flag of a record
func (c *Controller) TogglePin(ctx context.Context, id string) (*models.JobRecord, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	current := c.findRecord(id)
	if current == nil {
		return nil, nil
	}
	return c.updateLocked(ctx, id, models.RecordUpdate{IsPinned: models.Set(!current.IsPinned)})
}

// ToggleArchive flips the archived flag of a record
func (c *Controller) ToggleArchive(ctx context.Context, id string) (*models.JobRecord, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	current := c.findRecord(id)
	if current == nil {
		return nil, nil
	}
	return c.updateLocked(ctx, id, models.RecordUpdate{IsArchived: models.Set(!current.IsArchived)})
}

// GetByID looks a record up in the current snapshot
func (c *Controller) GetByID(id string) *models.JobRecord {
	if r := c.findRecord(id); r != nil {
		return r.Clone()
	}
	return nil
}

func (c *Controller) findRecord(id string) *models.JobRecord {
	for _, r := range c.State().AllRecords {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// FindDuplicates returns records in the current snapshot that look like the given job
func (c *Controller) FindDuplicates(jobName, companyName, excludeID string) []*models.JobRecord {
	return dedup.FindDuplicates(c.State().AllRecords, jobName, companyName, excludeID)
}

// Statistics aggregates the current snapshot
func (c *Controller) Statistics() stats.Statistics {
	return stats.Compute(c.State().AllRecords, c.clock.Now())
}

// scheduleFollowUp asks the gateway for a reminder only when the fire instant is still ahead.
// Reports whether a reminder was scheduled.
func (c *Controller) scheduleFollowUp(ctx context.Context, record *models.JobRecord) bool {
	when, ok := record.FollowUp()
	if !ok {
		return false
	}
	fireAt := time.Date(when.Year(), when.Month(), when.Day(), c.reminderHour, c.reminderMinute, 0, 0, time.Local)
	if !fireAt.After(c.clock.Now()) {
		c.logger.Debug().Str("record_id", record.ID).Str("follow_up_date", record.FollowUpDate).Msg("Follow-up date has passed, reminder not scheduled")
		return false
	}

	content := interfaces.FollowUpContent{JobName: record.JobName, CompanyName: record.CompanyName}
	if err := c.gateway.ScheduleFollowUp(ctx, record.ID, content, when, c.reminderHour, c.reminderMinute); err != nil {
		c.logger.Warn().Err(err).Str("record_id", record.ID).Msg("Failed to schedule follow-up reminder")
		return false
	}
	return true
}

func (c *Controller) cancelFollowUp(ctx context.Context, id string) {
	if err := c.gateway.Cancel(ctx, id); err != nil {
		c.logger.Warn().Err(err).Str("record_id", id).Msg("Failed to cancel follow-up reminder")
	}
}

func (c *Controller) publish(ctx context.Context, eventType interfaces.EventType, recordID string) {
	if c.events == nil {
		return
	}
	if err := c.events.Publish(ctx, interfaces.Event{Type: eventType, Payload: recordID}); err != nil {
		c.logger.Warn().Err(err).Str("event", string(eventType)).Msg("Failed to publish event")
	}
}
