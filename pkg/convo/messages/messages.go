// Package messages defines the conversation data model: messages, content
// blocks, stream events, and the wire shapes exchanged with the agent backend.
package messages

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	// RoleUser marks a message authored by the user.
	RoleUser Role = "user"
	// RoleAssistant marks a message authored by the assistant.
	RoleAssistant Role = "assistant"
)

// Message is one immutable entry in the conversation log.
// Content is a frozen snapshot: once a Message is appended to the log it is
// never mutated.
type Message struct {
	// ID uniquely identifies this message
	ID uuid.UUID

	// Role is the author of the message
	Role Role

	// Content is either plain text or a list of content blocks
	Content MessageContent

	// Timestamp records when the message was created
	Timestamp time.Time

	// Model optionally names the model that produced an assistant message
	Model string

	// RoutingMeta carries optional provider routing metadata
	RoutingMeta map[string]string
}

// MessageContent can be string or []ContentBlock.
type MessageContent interface {
	messageContent()
}

// StringContent is a plain-text message content.
type StringContent string

func (StringContent) messageContent() {}

// BlockListContent is a list of content blocks.
type BlockListContent []ContentBlock

func (BlockListContent) messageContent() {}

// NewUserMessage creates a user message from plain text.
func NewUserMessage(text string) Message {
	return Message{
		ID:        uuid.New(),
		Role:      RoleUser,
		Content:   StringContent(text),
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates an assistant message from content blocks.
// The block slice is owned by the message after this call.
func NewAssistantMessage(blocks []ContentBlock, model string) Message {
	return Message{
		ID:        uuid.New(),
		Role:      RoleAssistant,
		Content:   BlockListContent(blocks),
		Timestamp: time.Now(),
		Model:     model,
	}
}

// Text flattens message content to plain text. Non-text blocks are
// stripped; text blocks are concatenated in order.
func (m Message) Text() string {
	switch content := m.Content.(type) {
	case StringContent:
		return string(content)
	case BlockListContent:
		var out string
		for _, block := range content {
			if text, ok := block.(TextBlock); ok {
				out += text.Text
			}
		}

		return out
	default:
		return ""
	}
}
