package convoerrs

import (
	"context"
	"errors"
)

// AsEngineError extracts an EngineError from the error chain.
func AsEngineError(err error) (EngineError, bool) {
	var engErr EngineError
	if errors.As(err, &engErr) {
		return engErr, true
	}

	return nil, false
}

// IsNetworkError checks if the error is a network error.
func IsNetworkError(err error) bool {
	if engErr, ok := AsEngineError(err); ok {
		return engErr.Category() == CategoryNetwork
	}

	return false
}

// IsServerStatusError checks if the error is a non-2xx server error.
func IsServerStatusError(err error) bool {
	if engErr, ok := AsEngineError(err); ok {
		return engErr.Category() == CategoryServer
	}

	return false
}

// IsAbortError checks if the error is a cancellation or timeout.
func IsAbortError(err error) bool {
	if engErr, ok := AsEngineError(err); ok {
		return engErr.Category() == CategoryAbort
	}

	return false
}

// IsTimeout checks if the error is specifically a client-side timeout.
func IsTimeout(err error) bool {
	if engErr, ok := AsEngineError(err); ok {
		return engErr.Category() == CategoryAbort &&
			engErr.Code() == ErrCodeTimeout
	}

	return false
}

// IsProtocolError checks if the error is a stream protocol error.
func IsProtocolError(err error) bool {
	if engErr, ok := AsEngineError(err); ok {
		return engErr.Category() == CategoryProtocol
	}

	return false
}

// IsAgenticError checks if the error is a fatal backend turn failure.
func IsAgenticError(err error) bool {
	if engErr, ok := AsEngineError(err); ok {
		return engErr.Category() == CategoryAgentic
	}

	return false
}

// IsRetryable reports whether a retry action should be offered for err.
// Network and server failures are retryable; aborts and agentic failures
// are not.
func IsRetryable(err error) bool {
	engErr, ok := AsEngineError(err)
	if !ok {
		return false
	}

	switch engErr.Category() {
	case CategoryNetwork, CategoryServer:
		return true
	default:
		return false
	}
}

// Classify maps a raw failure from the transport or stream loop into the
// taxonomy. Context cancellation and deadline expiry become abort errors;
// already-classified errors pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsEngineError(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewAbortError(ErrCodeTimeout, "request timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return NewAbortError(ErrCodeCancelled, "request cancelled", err)
	}

	return NewNetworkError(ErrCodeConnectionFailed, "request failed", err)
}
