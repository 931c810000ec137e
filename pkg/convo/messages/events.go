package messages

import "time"

// StreamEvent is the discriminated union of decoded event frames.
// Events carry no ordering metadata; the parser guarantees delivery in
// stream order.
type StreamEvent interface {
	streamEvent()
}

// TextEvent delivers one incremental prose fragment.
type TextEvent struct {
	Text string
}

func (TextEvent) streamEvent() {}

// ToolCallEvent announces a tool invocation starting on the backend.
type ToolCallEvent struct {
	ID    string
	Name  string
	Input map[string]any
}

func (ToolCallEvent) streamEvent() {}

// ToolResultEvent delivers the outcome of an earlier tool call.
type ToolResultEvent struct {
	ID            string
	ToolName      string
	Output        string
	Success       bool
	ExecutionTime time.Duration
	Diff          *string
}

func (ToolResultEvent) streamEvent() {}

// AutonomousEvent signals that the backend bypassed a normally-required
// confirmation for the remainder of the turn.
type AutonomousEvent struct {
	Value bool
}

func (AutonomousEvent) streamEvent() {}

// FromCacheEvent signals a cache short-circuit: the next text fragment is a
// complete cached answer rather than fresh incremental generation.
type FromCacheEvent struct {
	Value bool
}

func (FromCacheEvent) streamEvent() {}

// ErrorEvent reports a fatal backend failure for the turn.
type ErrorEvent struct {
	Message string
}

func (ErrorEvent) streamEvent() {}
