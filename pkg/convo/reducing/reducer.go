package reducing

import (
	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convoerrs"
)

// Reduce folds one event into the state under the given vocabulary.
// Unrecognized event kinds are ignored. After a fatal error event the
// state is returned unchanged for every subsequent event.
func Reduce(s State, ev messages.StreamEvent, vocab Vocabulary) State {
	if s.Failed != nil {
		return s
	}

	switch e := ev.(type) {
	case messages.TextEvent:
		return appendText(s, e.Text)

	case messages.ToolCallEvent:
		if vocab != VocabularyAgentic {
			return s
		}
		s.Blocks = append(s.Blocks, messages.ToolCallBlock{
			ID:     e.ID,
			Name:   e.Name,
			Input:  e.Input,
			Status: messages.ToolStatusExecuting,
		})

		return s

	case messages.ToolResultEvent:
		if vocab != VocabularyAgentic {
			return s
		}
		// Resolve the originating call first, then append the result
		// block unconditionally. An unmatched id is not an error.
		s.Blocks = resolveToolCall(s.Blocks, e.ID, e.Success)
		s.Blocks = append(s.Blocks, messages.ToolResultBlock{
			ID:            e.ID,
			ToolName:      e.ToolName,
			Output:        e.Output,
			Success:       e.Success,
			ExecutionTime: e.ExecutionTime,
			Diff:          e.Diff,
		})

		return s

	case messages.AutonomousEvent:
		if vocab != VocabularyAgentic {
			return s
		}
		s.Autonomous = e.Value

		return s

	case messages.FromCacheEvent:
		s.PendingCacheBreak = true

		return s

	case messages.ErrorEvent:
		if vocab != VocabularyAgentic {
			return s
		}
		s.Failed = convoerrs.NewAgenticError(e.Message)

		return s

	default:
		return s
	}
}

// appendText concatenates onto the last block when it is also text.
// A pending cache break always starts a fresh block: a cache hit delivers
// one complete answer that must not merge with prior partial fragments.
func appendText(s State, text string) State {
	if s.PendingCacheBreak {
		s.PendingCacheBreak = false
		s.Blocks = append(s.Blocks, messages.TextBlock{Text: text})

		return s
	}

	if n := len(s.Blocks); n > 0 {
		if last, ok := s.Blocks[n-1].(messages.TextBlock); ok {
			blocks := make([]messages.ContentBlock, n)
			copy(blocks, s.Blocks)
			blocks[n-1] = messages.TextBlock{Text: last.Text + text}
			s.Blocks = blocks

			return s
		}
	}

	s.Blocks = append(s.Blocks, messages.TextBlock{Text: text})

	return s
}
