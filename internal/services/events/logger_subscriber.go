package events

import (
	"context"
	"fmt"

	"github.com/ternarybob/applytrack/internal/interfaces"
	"github.com/ternarybob/arbor"
)

// loggedEventTypes are the events traced by the logger subscriber. State snapshots are
// excluded since every filter keystroke produces one.
var loggedEventTypes = []interfaces.EventType{
	interfaces.EventRecordSaved,
	interfaces.EventRecordDeleted,
	interfaces.EventReminderDelivered,
	interfaces.EventNotificationTapped,
}

// NewLoggerSubscriber creates an event handler that logs record events
func NewLoggerSubscriber(logger arbor.ILogger) interfaces.EventHandler {
	return func(ctx context.Context, event interfaces.Event) error {
		logEvent := logger.Debug().
			Str("event_type", string(event.Type))

		switch payload := event.Payload.(type) {
		case string:
			logEvent = logEvent.Str("record_id", payload)
		case nil:
		default:
			logEvent = logEvent.Str("payload_type", fmt.Sprintf("%T", payload))
		}

		logEvent.Msg("Event published")
		return nil
	}
}

// SubscribeLoggerToAllEvents subscribes the logger to every record event type and
// returns the subscription ids keyed by event type
func SubscribeLoggerToAllEvents(eventService interfaces.EventService, logger arbor.ILogger) (map[interfaces.EventType]int, error) {
	subscriber := NewLoggerSubscriber(logger)

	ids := make(map[interfaces.EventType]int, len(loggedEventTypes))
	for _, eventType := range loggedEventTypes {
		id, err := eventService.Subscribe(eventType, subscriber)
		if err != nil {
			UnsubscribeAll(eventService, ids)
			return nil, fmt.Errorf("failed to subscribe logger to event type %s: %w", eventType, err)
		}
		ids[eventType] = id
	}

	logger.Debug().
		Int("event_type_count", len(ids)).
		Msg("Logger subscribed to record events")

	return ids, nil
}

// UnsubscribeAll removes every subscription returned by SubscribeLoggerToAllEvents
func UnsubscribeAll(eventService interfaces.EventService, ids map[interfaces.EventType]int) {
	for eventType, id := range ids {
		_ = eventService.Unsubscribe(eventType, id)
	}
}
