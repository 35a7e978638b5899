package transform

import (
	"context"
	"time"
)

// EventType defines the possible event types emitted around transform
// operations.
type EventType string

const (
	// Apply lifecycle events.
	ApplyStart   EventType = "transform:apply:start"
	ApplySuccess EventType = "transform:apply:success"
	ApplyFailed  EventType = "transform:apply:failed"

	// Row-wise evaluation lifecycle events.
	EvaluateStart   EventType = "transform:evaluate:start"
	EvaluateSuccess EventType = "transform:evaluate:success"
	EvaluateFailed  EventType = "transform:evaluate:failed"

	// Subscription management events.
	SubscriptionRegister   EventType = "subscription:register"
	SubscriptionUnregister EventType = "subscription:unregister"
)

// Event represents an event emitted by a pipeline around an operation.
type Event struct {
	Type       EventType      `json:"type"`                 // The type of event.
	Timestamp  int64          `json:"timestamp"`            // When the event occurred (Unix milliseconds).
	Operation  string         `json:"operation"`            // The operation being performed, e.g. "apply".
	Expression *string        `json:"expression,omitempty"` // Rendering of the expression involved, if any.
	Plan       *string        `json:"plan,omitempty"`       // Rendering of the plan involved, if any.
	Rows       *int           `json:"rows,omitempty"`       // Row count of the input frame.
	Input      any            `json:"input,omitempty"`      // Input data for the operation, if applicable.
	Output     any            `json:"output,omitempty"`     // Result of the operation, if it succeeded.
	Error      *string        `json:"error,omitempty"`      // Error message, if the operation failed.
	Duration   *int64         `json:"duration,omitempty"`   // Duration of the operation in milliseconds.
	Context    map[string]any `json:"context,omitempty"`    // Additional metadata.
}

// CallbackFunction is the signature for event subscription callbacks.
type CallbackFunction func(ctx context.Context, event Event) error

// createEvent builds an event with a timestamp and, when startTime is set,
// the elapsed duration.
func createEvent(
	eventType EventType,
	operation string,
	expression *string,
	plan *string,
	rows *int,
	input any,
	output any,
	errStr *string,
	startTime time.Time,
) Event {
	var duration *int64
	if !startTime.IsZero() {
		d := time.Since(startTime).Milliseconds()
		duration = &d
	}

	return Event{
		Type:       eventType,
		Timestamp:  time.Now().UnixMilli(),
		Operation:  operation,
		Expression: expression,
		Plan:       plan,
		Rows:       rows,
		Input:      input,
		Output:     output,
		Error:      errStr,
		Duration:   duration,
	}
}
