package ports

import (
	"context"

	"github.com/conneroisu/convo/pkg/convo/messages"
)

// SessionStore is the persistence collaborator owning durable storage of
// past conversations. It receives finished message arrays only.
type SessionStore interface {
	// CreateSession persists a new session and returns its id.
	CreateSession(ctx context.Context, msgs []messages.Message) (string, error)

	// UpdateSession replaces the message array of an existing session.
	UpdateSession(ctx context.Context, id string, msgs []messages.Message) error
}

// Clarifier is the clarification-modal collaborator. Invoked by the
// dispatcher when a design response requests clarification instead of
// delivering an answer.
type Clarifier interface {
	RequestClarification(ctx context.Context, question string)
}

// Severity grades a user-facing notification.
type Severity string

const (
	// SeverityInfo is an informational notification.
	SeverityInfo Severity = "info"
	// SeverityWarning is a recoverable problem.
	SeverityWarning Severity = "warning"
	// SeverityError is a failed turn.
	SeverityError Severity = "error"
)

// Notification is a transient user-visible message about a turn outcome.
// Retryable notifications carry a persistent retry action in the UI.
type Notification struct {
	Message   string
	Severity  Severity
	Retryable bool
}

// Notifier surfaces notifications to the presentation collaborator.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
