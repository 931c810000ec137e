package reducing

import "github.com/conneroisu/convo/pkg/convo/messages"

// resolveToolCall locates the most recent tool call block with a matching
// id and applies its terminal status. Ids are the correlation key; names
// are not guaranteed unique. At most one transition per call: a result for
// an already-resolved id leaves the block list untouched.
//
// Linear scan over the block list is adequate at conversation scale.
func resolveToolCall(
	blocks []messages.ContentBlock,
	id string,
	success bool,
) []messages.ContentBlock {
	for i := len(blocks) - 1; i >= 0; i-- {
		call, ok := blocks[i].(messages.ToolCallBlock)
		if !ok || call.ID != id {
			continue
		}

		if call.Status != messages.ToolStatusExecuting {
			return blocks
		}

		if success {
			call.Status = messages.ToolStatusSuccess
		} else {
			call.Status = messages.ToolStatusError
		}

		out := make([]messages.ContentBlock, len(blocks))
		copy(out, blocks)
		out[i] = call

		return out
	}

	return blocks
}
