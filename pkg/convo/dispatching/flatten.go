package dispatching

import (
	"encoding/base64"

	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convo/options"
)

// flattenHistory turns the conversation log plus the new submission into
// the wire history. Only user and assistant roles are sent; assistant
// content is reduced to plain text with non-text blocks stripped. A
// pending image, when the provider supports it, is attached only to the
// newest user turn as a multi-part entry.
func flattenHistory(
	history []messages.Message,
	input Input,
	provider string,
) []messages.AgentTurn {
	turns := make([]messages.AgentTurn, 0, len(history)+1)

	for _, msg := range history {
		if msg.Role != messages.RoleUser && msg.Role != messages.RoleAssistant {
			continue
		}
		turns = append(turns, messages.AgentTurn{
			Role:    msg.Role,
			Content: messages.TextTurnContent(msg.Text()),
		})
	}

	turns = append(turns, newUserTurn(input, provider))

	return turns
}

// newUserTurn builds the wire entry for the submission itself.
func newUserTurn(input Input, provider string) messages.AgentTurn {
	if input.Image == nil || !options.ProviderSupportsImages(provider) {
		return messages.AgentTurn{
			Role:    messages.RoleUser,
			Content: messages.TextTurnContent(input.Text),
		}
	}

	return messages.AgentTurn{
		Role: messages.RoleUser,
		Content: messages.PartListContent{
			{Type: "text", Text: input.Text},
			{Type: "image", Image: &messages.ImageSource{
				MediaType: input.Image.MediaType,
				Data:      base64.StdEncoding.EncodeToString(input.Image.Data),
			}},
		},
	}
}
