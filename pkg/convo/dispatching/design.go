package dispatching

import (
	"strings"

	"github.com/conneroisu/convo/pkg/convo/messages"
)

// clarificationMarker prefixes a design response that asks the user a
// question instead of delivering an answer.
const clarificationMarker = "NEED_CLARIFICATION:"

// DesignOutcome is the finalized interpretation of a design stream.
// When IsClarification is set the partial stream is discarded and no
// message may be appended; the question may be empty.
type DesignOutcome struct {
	IsClarification bool
	Clarification   string
	Blocks          []messages.ContentBlock
}

// FinishDesign runs the completed design response through the
// clarification detector and, for real answers, splits fenced mermaid
// definitions into diagram blocks.
func (s *Service) FinishDesign(text string) DesignOutcome {
	trimmed := strings.TrimSpace(text)
	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, clarificationMarker) {
		question := strings.TrimSpace(trimmed[len(clarificationMarker):])

		return DesignOutcome{IsClarification: true, Clarification: question}
	}

	return DesignOutcome{Blocks: splitDiagrams(text)}
}

// splitDiagrams converts a design answer into alternating text and
// mermaid blocks. Unterminated fences are kept as text.
func splitDiagrams(text string) []messages.ContentBlock {
	const fence = "```mermaid"

	var blocks []messages.ContentBlock
	rest := text
	for {
		start := strings.Index(rest, fence)
		if start < 0 {
			break
		}

		body := rest[start+len(fence):]
		end := strings.Index(body, "```")
		if end < 0 {
			break
		}

		if prose := strings.TrimSpace(rest[:start]); prose != "" {
			blocks = append(blocks, messages.TextBlock{Text: prose})
		}
		if source := strings.TrimSpace(body[:end]); source != "" {
			blocks = append(blocks, messages.MermaidBlock{Source: source})
		}
		rest = body[end+3:]
	}

	if prose := strings.TrimSpace(rest); prose != "" {
		blocks = append(blocks, messages.TextBlock{Text: prose})
	}

	return blocks
}
