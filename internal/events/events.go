package events

import "context"

// Event types
const (
	EventAuditAttempt   = "audit_attempt"
	EventAuditOutcome   = "audit_outcome"
	EventLoginSucceeded = "login_succeeded"
	EventLoginFailed    = "login_failed"
)

// StreamAudit carries every audit trail event for live consumers.
const StreamAudit = "events:audit"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
