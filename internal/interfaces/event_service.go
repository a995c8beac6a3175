package interfaces

import "context"

// EventType represents different event types in the system
type EventType string

const (
	EventStateChanged       EventType = "state_changed"
	EventRecordSaved        EventType = "record_saved"
	EventRecordDeleted      EventType = "record_deleted"
	EventReminderDelivered  EventType = "reminder_delivered"
	EventNotificationTapped EventType = "notification_tapped"
)

// Event represents a system event
type Event struct {
	Type    EventType
	Payload interface{}
}

// EventHandler is a function that handles events
type EventHandler func(ctx context.Context, event Event) error

// EventService manages the in-process pub/sub event bus
type EventService interface {
	// Subscribe registers a handler and returns an id usable with Unsubscribe
	Subscribe(eventType EventType, handler EventHandler) (int, error)

	// Unsubscribe removes the handler registered under id
	Unsubscribe(eventType EventType, id int) error

	// Publish delivers the event to every subscriber asynchronously
	Publish(ctx context.Context, event Event) error

	// PublishSync delivers the event and waits for all handlers to complete
	PublishSync(ctx context.Context, event Event) error

	// Close shuts down the event service
	Close() error
}
