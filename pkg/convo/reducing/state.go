// Package reducing folds decoded stream events into the live content block
// list for the in-progress message. The fold is pure: no I/O, no clocks,
// no shared mutation. Callers thread State values through Reduce.
package reducing

import "github.com/conneroisu/convo/pkg/convo/messages"

// Vocabulary selects how a mode's stream is interpreted.
type Vocabulary int

const (
	// VocabularyText interprets the stream as plain incremental text.
	// Tool lifecycle events are ignored. Used by design mode.
	VocabularyText Vocabulary = iota

	// VocabularyAgentic interprets the full event vocabulary including
	// tool calls, tool results, and fatal error events.
	VocabularyAgentic
)

// State is the fold accumulator for one in-progress turn.
//
// PendingCacheBreak is one-shot cross-event state: a from_cache event sets
// it and the next text event consumes it, forcing a fresh text block. It is
// an explicit field rather than a closure variable so the fold stays pure
// and unit-testable.
type State struct {
	// Blocks is the live block list, in stream order.
	Blocks []messages.ContentBlock

	// PendingCacheBreak forces the next text event to start a new block.
	PendingCacheBreak bool

	// Autonomous records that the backend bypassed a normally-required
	// confirmation for the remainder of the turn.
	Autonomous bool

	// Failed holds the fatal turn failure raised by an error event.
	// Once set, further events are no-ops.
	Failed error
}
