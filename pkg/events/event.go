package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_TURN_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewChatTurnCompleted is emitted after a (user, assistant) turn pair
// has been persisted. Consumers use it for analytics and audit trails.
func NewChatTurnCompleted(sessionID string, latency time.Duration) Event {
	now := time.Now()
	return BaseEvent{
		Type: "CHAT_TURN_COMPLETED",
		Data: map[string]interface{}{
			"session_id": sessionID,
			"latency_ms": latency.Milliseconds(),
			"at":         now.Format(time.RFC3339),
		},
		OccurredAt: now,
	}
}
