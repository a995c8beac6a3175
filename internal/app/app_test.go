package app

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/applytrack/internal/common"
	"github.com/ternarybob/applytrack/internal/interfaces"
	"github.com/ternarybob/applytrack/internal/models"
	"github.com/ternarybob/arbor"
)

func testConfig(t *testing.T) *common.Config {
	t.Helper()
	cfg := common.NewDefaultConfig()
	cfg.Storage.Badger.InMemory = true
	cfg.Storage.Badger.Path = ""
	cfg.Seed.Dir = t.TempDir()
	return cfg
}

func TestNewLoadsSeedRecords(t *testing.T) {
	cfg := testConfig(t)
	seed := "records:\n  - id: seeded\n    job_name: Go Developer\n    company_name: Acme\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Seed.Dir, "jobs.yaml"), []byte(seed), 0644))

	application, err := New(context.Background(), cfg, arbor.NewLogger())
	require.NoError(t, err)
	defer application.Close()

	record := application.Tracker.GetByID("seeded")
	require.NotNil(t, record)
	assert.Equal(t, "Go Developer", record.JobName)
	assert.Len(t, application.Tracker.State().FilteredRecords, 1)
}

func TestReminderFlowFromAddToTap(t *testing.T) {
	cfg := testConfig(t)
	clock := common.NewFixedTimeProvider(time.Date(2026, 10, 15, 10, 0, 0, 0, time.Local))
	ctx := context.Background()

	application, err := NewWithClock(ctx, cfg, arbor.NewLogger(), clock)
	require.NoError(t, err)
	defer application.Close()

	var tapped atomic.Value
	_, err = application.EventService.Subscribe(interfaces.EventNotificationTapped, func(ctx context.Context, event interfaces.Event) error {
		tapped.Store(event.Payload)
		return nil
	})
	require.NoError(t, err)

	record, err := application.Tracker.AddRecord(ctx, models.RecordFields{
		JobName:      "Backend Engineer",
		CompanyName:  "Acme",
		FollowUpDate: "2026-10-16",
	})
	require.NoError(t, err)

	pending, err := application.NotificationService.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, record.ID, pending[0].RecordID)

	// nothing is due yet
	delivered, err := application.NotificationService.DispatchDue(ctx)
	require.NoError(t, err)
	assert.Zero(t, delivered)

	clock.Set(time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local))
	delivered, err = application.NotificationService.DispatchDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)

	require.NoError(t, application.NotificationService.HandleTap(ctx, pending[0].NotificationID))
	assert.Eventually(t, func() bool {
		return tapped.Load() == record.ID
	}, time.Second, 10*time.Millisecond)

	deleted, err := application.Tracker.DeleteRecord(ctx, record.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	pending, err = application.NotificationService.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestNotificationsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Notifications.Enabled = false

	application, err := New(context.Background(), cfg, arbor.NewLogger())
	require.NoError(t, err)
	defer application.Close()

	assert.Nil(t, application.NotificationService)
	assert.Error(t, application.StartReminderDispatcher())

	_, err = application.Tracker.AddRecord(context.Background(), models.RecordFields{JobName: "Dev", FollowUpDate: "2099-01-01"})
	assert.NoError(t, err)
}
