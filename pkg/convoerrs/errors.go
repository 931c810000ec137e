// Package convoerrs provides the error taxonomy for the conversation engine.
// This package defines error categories, codes, and typed wrappers so the
// request controller can classify failures uniformly and decide whether a
// retry action should be offered.
package convoerrs

// ErrorCategory represents different categories of errors that can occur
// while driving a conversation turn.
type ErrorCategory string

const (
	// CategoryNetwork represents connection, DNS, or TLS failures.
	CategoryNetwork ErrorCategory = "network"
	// CategoryServer represents non-2xx responses from the backend.
	CategoryServer ErrorCategory = "server"
	// CategoryAbort represents user cancellation or a client-side timeout.
	CategoryAbort ErrorCategory = "abort"
	// CategoryProtocol represents malformed or unexpected stream frames.
	CategoryProtocol ErrorCategory = "protocol"
	// CategoryAgentic represents an explicit error event from the backend.
	CategoryAgentic ErrorCategory = "agentic"
)

// ErrorCode represents specific error codes within each category.
type ErrorCode string

// Network error codes.
const (
	ErrCodeConnectionFailed ErrorCode = "connection_failed"
	ErrCodeConnectionClosed ErrorCode = "connection_closed"
	ErrCodeReadFailed       ErrorCode = "read_failed"
)

// Server error codes.
const (
	ErrCodeServerStatus ErrorCode = "server_status"
	ErrCodeBadResponse  ErrorCode = "bad_response"
)

// Abort error codes.
const (
	ErrCodeCancelled ErrorCode = "cancelled"
	ErrCodeTimeout   ErrorCode = "timeout"
)

// Protocol error codes.
const (
	ErrCodeMalformedFrame ErrorCode = "malformed_frame"
	ErrCodeUnknownEvent   ErrorCode = "unknown_event"
)

// Agentic error codes.
const (
	ErrCodeTurnFailed ErrorCode = "turn_failed"
)
