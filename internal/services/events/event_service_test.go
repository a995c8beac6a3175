package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/applytrack/internal/interfaces"
	"github.com/ternarybob/arbor"
)

func TestPublishSyncRunsHandlersInOrder(t *testing.T) {
	svc := NewService(arbor.NewLogger())
	ctx := context.Background()

	var order []int
	for i := 1; i <= 3; i++ {
		n := i
		_, err := svc.Subscribe(interfaces.EventStateChanged, func(ctx context.Context, e interfaces.Event) error {
			order = append(order, n)
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, svc.PublishSync(ctx, interfaces.Event{Type: interfaces.EventStateChanged}))
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestPublishSyncJoinsHandlerErrors(t *testing.T) {
	svc := NewService(arbor.NewLogger())
	boom := errors.New("boom")

	_, err := svc.Subscribe(interfaces.EventRecordSaved, func(ctx context.Context, e interfaces.Event) error {
		return boom
	})
	require.NoError(t, err)

	err = svc.PublishSync(context.Background(), interfaces.Event{Type: interfaces.EventRecordSaved})
	assert.ErrorIs(t, err, boom)
}

func TestUnsubscribe(t *testing.T) {
	svc := NewService(arbor.NewLogger())
	calls := 0

	id, err := svc.Subscribe(interfaces.EventRecordDeleted, func(ctx context.Context, e interfaces.Event) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, svc.Unsubscribe(interfaces.EventRecordDeleted, id))
	require.NoError(t, svc.PublishSync(context.Background(), interfaces.Event{Type: interfaces.EventRecordDeleted}))

	assert.Equal(t, 0, calls)
	assert.Error(t, svc.Unsubscribe(interfaces.EventRecordDeleted, id))
}

func TestSubscribeRejectsNilHandler(t *testing.T) {
	svc := NewService(arbor.NewLogger())

	_, err := svc.Subscribe(interfaces.EventStateChanged, nil)
	assert.Error(t, err)
}

func TestPublishIsAsync(t *testing.T) {
	svc := NewService(arbor.NewLogger())
	var wg sync.WaitGroup
	wg.Add(1)

	_, err := svc.Subscribe(interfaces.EventNotificationTapped, func(ctx context.Context, e interfaces.Event) error {
		defer wg.Done()
		assert.Equal(t, "rec-1", e.Payload)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, svc.Publish(context.Background(), interfaces.Event{Type: interfaces.EventNotificationTapped, Payload: "rec-1"}))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
}
