// Package event provides in-process pub/sub so host glue (message dispatch,
// admin commands, audit hooks) can observe the chat engine without being
// wired into the message path.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Engine event types.
const (
	// TypeMessageRendered fires after a message was formatted and
	// substituted. Fields: "message_id", "rule", "length".
	TypeMessageRendered = "message.rendered"

	// TypeFormatsSwapped fires after the rule list was atomically replaced.
	// Fields: "count".
	TypeFormatsSwapped = "formats.swapped"

	// TypeProviderRegistered fires after a placeholder provider was added.
	// Fields: "providers".
	TypeProviderRegistered = "provider.registered"

	// TypeProviderUnregistered fires after a placeholder provider was
	// removed. Fields: "providers".
	TypeProviderUnregistered = "provider.unregistered"
)

// Event is an immutable engine notification.
type Event struct {
	// ID is a unique event identifier.
	ID string

	// Type is one of the Type* constants.
	Type string

	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Fields carries type-specific details. Subscribers must not mutate it.
	Fields map[string]any
}

// New creates an event with a fresh ID and the current time.
func New(eventType string, fields map[string]any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Fields:    fields,
	}
}
