package messages

import "time"

// ContentBlock is a discriminated union for content blocks.
type ContentBlock interface {
	contentBlock()
}

// ToolCallStatus tracks the lifecycle of a tool call block.
type ToolCallStatus string

const (
	// ToolStatusExecuting is the initial status of every tool call.
	ToolStatusExecuting ToolCallStatus = "executing"
	// ToolStatusSuccess marks a tool call whose result reported success.
	ToolStatusSuccess ToolCallStatus = "success"
	// ToolStatusError marks a tool call whose result reported failure.
	ToolStatusError ToolCallStatus = "error"
)

// TextBlock represents a prose fragment.
type TextBlock struct {
	Text string
}

func (TextBlock) contentBlock() {}

// MermaidBlock represents a diagram definition extracted from a design
// response.
type MermaidBlock struct {
	Source string
}

func (MermaidBlock) contentBlock() {}

// ToolCallBlock represents a tool invocation issued by the backend agent.
// Status transitions executing -> {success, error} at most once.
type ToolCallBlock struct {
	ID     string
	Name   string
	Input  map[string]any // Intentionally flexible - tool inputs vary by tool
	Status ToolCallStatus
}

func (ToolCallBlock) contentBlock() {}

// ToolResultBlock represents the outcome of a tool execution.
// ID references the originating ToolCallBlock in the same stream.
type ToolResultBlock struct {
	ID            string
	ToolName      string
	Output        string
	Success       bool
	ExecutionTime time.Duration
	Diff          *string
}

func (ToolResultBlock) contentBlock() {}

// PhaseResultBlock carries the artifact produced by a one-shot generation
// phase (plan or spec).
type PhaseResultBlock struct {
	Phase   string
	Title   string
	Content string
}

func (PhaseResultBlock) contentBlock() {}

// FilesSummaryBlock summarizes files touched during an agentic turn.
type FilesSummaryBlock struct {
	Summary string
	Files   []string
}

func (FilesSummaryBlock) contentBlock() {}

// ContextBlock carries workspace context the backend attached to a turn.
type ContextBlock struct {
	Content string
}

func (ContextBlock) contentBlock() {}

// IntentBlock carries the compiled intent classification for a turn.
type IntentBlock struct {
	Name       string
	Confidence float64
}

func (IntentBlock) contentBlock() {}
