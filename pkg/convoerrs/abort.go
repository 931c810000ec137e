package convoerrs

// AbortError represents a clean cancellation of an in-flight request,
// either by explicit user cancel or by the client-side timeout timer.
// The two are indistinguishable except in the message shown.
type AbortError struct {
	*BaseError
}

// NewAbortError creates a cancellation error.
func NewAbortError(code ErrorCode, message string, cause error) *AbortError {
	return &AbortError{
		BaseError: NewBaseError(CategoryAbort, code, message, cause),
	}
}

// AgenticError represents an explicit error event emitted by the backend
// agent mid-stream. It is fatal to the turn.
type AgenticError struct {
	*BaseError
}

// NewAgenticError creates an agentic turn failure.
func NewAgenticError(message string) *AgenticError {
	return &AgenticError{
		BaseError: NewBaseError(CategoryAgentic, ErrCodeTurnFailed, message, nil),
	}
}
