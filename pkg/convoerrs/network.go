package convoerrs

// NetworkError represents connection-level failures reaching the backend.
type NetworkError struct {
	*BaseError
}

// NewNetworkError creates a new network error.
func NewNetworkError(
	code ErrorCode,
	message string,
	cause error,
) *NetworkError {
	return &NetworkError{
		BaseError: NewBaseError(CategoryNetwork, code, message, cause),
	}
}

// WithHost adds host metadata to the error.
func (e *NetworkError) WithHost(host string) *NetworkError {
	_ = e.WithMetadata("host", host)

	return e
}

// ServerStatusError represents a non-2xx response from the backend.
type ServerStatusError struct {
	*BaseError
	statusCode int
	body       string
}

// NewServerStatusError creates a new server status error from a response.
func NewServerStatusError(statusCode int, body string) *ServerStatusError {
	err := &ServerStatusError{
		BaseError: NewBaseError(
			CategoryServer,
			ErrCodeServerStatus,
			"backend returned non-2xx status",
			nil,
		),
		statusCode: statusCode,
		body:       body,
	}
	_ = err.WithMetadata("status_code", statusCode)

	return err
}

// StatusCode returns the HTTP status code.
func (e *ServerStatusError) StatusCode() int {
	return e.statusCode
}

// Body returns the captured response body, possibly truncated.
func (e *ServerStatusError) Body() string {
	return e.body
}

// ProtocolError represents a malformed or unexpected stream frame.
// Protocol errors are logged and swallowed at the parser boundary; they
// never interrupt the stream.
type ProtocolError struct {
	*BaseError
	frame string
}

// NewProtocolError creates a new protocol error for a raw frame.
func NewProtocolError(code ErrorCode, frame string, cause error) *ProtocolError {
	return &ProtocolError{
		BaseError: NewBaseError(CategoryProtocol, code, "bad stream frame", cause),
		frame:     frame,
	}
}

// Frame returns the offending raw frame.
func (e *ProtocolError) Frame() string {
	return e.frame
}
