// -----------------------------------------------------------------------
// Last Modified: Thursday, 15th October 2026 11:20:00 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/applytrack/internal/common"
	"github.com/ternarybob/applytrack/internal/interfaces"
	"github.com/ternarybob/applytrack/internal/services/events"
	"github.com/ternarybob/applytrack/internal/services/notifications"
	"github.com/ternarybob/applytrack/internal/services/tracker"
	"github.com/ternarybob/applytrack/internal/storage"
	"github.com/ternarybob/arbor"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	Clock          common.TimeProvider
	StorageManager interfaces.StorageManager

	EventService        interfaces.EventService
	NotificationService *notifications.Service // nil when notifications are disabled
	Gateway             interfaces.NotificationGateway
	Tracker             *tracker.Controller

	eventSubscriptions map[interfaces.EventType]int
}

// New initializes storage and services and loads the records into the controller
func New(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (*App, error) {
	return NewWithClock(ctx, cfg, logger, common.RealTimeProvider{})
}

// NewWithClock is New with a caller supplied time source
func NewWithClock(ctx context.Context, cfg *common.Config, logger arbor.ILogger, clock common.TimeProvider) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
		Clock:  clock,
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(ctx); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	logger.Info().
		Bool("notifications_enabled", cfg.Notifications.Enabled).
		Int("records", len(app.Tracker.State().AllRecords)).
		Msg("Application initialization complete")

	return app, nil
}

func (a *App) initDatabase(ctx context.Context) error {
	manager, err := storage.NewStorageManager(a.Logger, a.Config)
	if err != nil {
		return err
	}
	a.StorageManager = manager

	if a.Config.Seed.Dir != "" {
		loaded, err := manager.LoadRecordsFromFiles(ctx, a.Config.Seed.Dir)
		if err != nil {
			a.Logger.Warn().Err(err).Str("dir", a.Config.Seed.Dir).Msg("Failed to load seed records")
		} else if loaded > 0 {
			a.Logger.Info().Int("count", loaded).Msg("Seed records loaded")
		}
	}

	return nil
}

func (a *App) initServices(ctx context.Context) error {
	a.EventService = events.NewService(a.Logger)

	if a.Config.Notifications.Enabled {
		a.NotificationService = notifications.NewService(
			a.StorageManager.ReminderStorage(),
			notifications.NewLogDeliverer(a.Logger),
			a.EventService,
			a.Clock,
			a.Logger,
		)
		a.Gateway = a.NotificationService
	} else {
		a.Gateway = notifications.NewDisabledGateway(a.Logger)
	}

	a.Tracker = tracker.NewController(a.StorageManager.RecordStorage(), a.Gateway, a.Logger, tracker.Options{
		Clock:          a.Clock,
		Events:         a.EventService,
		ReminderHour:   a.Config.Notifications.Hour,
		ReminderMinute: a.Config.Notifications.Minute,
	})

	a.Gateway.SetTapHandler(a.openRecord)

	ids, err := events.SubscribeLoggerToAllEvents(a.EventService, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to subscribe event logger: %w", err)
	}
	a.eventSubscriptions = ids

	// A read failure leaves an empty list with the error in state; commands can still run
	if err := a.Tracker.LoadAll(ctx); err != nil {
		a.Logger.Error().Err(err).Msg("Initial record load failed")
	}

	return nil
}

// openRecord resolves a tapped reminder against the in-memory records
func (a *App) openRecord(recordID string) {
	record := a.Tracker.GetByID(recordID)
	if record == nil {
		a.Logger.Warn().Str("record_id", recordID).Msg("Tapped reminder refers to a deleted record")
		return
	}
	a.Logger.Info().
		Str("record_id", record.ID).
		Str("job_name", record.JobName).
		Str("company_name", record.CompanyName).
		Msg("Opening record from reminder")
}

// StartReminderDispatcher runs the cron dispatcher for due reminders
func (a *App) StartReminderDispatcher() error {
	if a.NotificationService == nil {
		return fmt.Errorf("notifications are disabled")
	}
	return a.NotificationService.Start(a.Config.Notifications.DispatchSchedule)
}

// Close stops background work and closes storage
func (a *App) Close() error {
	if a.NotificationService != nil {
		a.NotificationService.Stop()
	}

	if a.EventService != nil {
		events.UnsubscribeAll(a.EventService, a.eventSubscriptions)
		if err := a.EventService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close event service")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Debug().Msg("Storage closed")
	}

	return nil
}
