package parse

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/conneroisu/convo/pkg/convo/messages"
)

// frame is the superset of recognized payload shapes. Decoding into one
// struct keeps the hot path to a single json.Unmarshal per frame.
type frame struct {
	Type          string         `json:"type"`
	Text          string         `json:"text"`
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Input         map[string]any `json:"input"`
	ToolName      string         `json:"toolName"`
	Output        string         `json:"output"`
	Success       bool           `json:"success"`
	ExecutionTime int64          `json:"executionTime"` // milliseconds
	Diff          *string        `json:"diff"`
	Value         bool           `json:"value"`
	Message       string         `json:"message"`
}

// decodeEvent decodes one frame payload into a stream event.
// Unrecognized event kinds decode to (nil, nil) and are skipped upstream.
func decodeEvent(payload []byte) (messages.StreamEvent, error) {
	var f frame
	if err := json.Unmarshal(payload, &f); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	switch f.Type {
	case "text":
		return messages.TextEvent{Text: f.Text}, nil

	case "tool_call":
		if f.ID == "" {
			return nil, fmt.Errorf("tool_call frame missing id")
		}

		return messages.ToolCallEvent{
			ID:    f.ID,
			Name:  f.Name,
			Input: f.Input,
		}, nil

	case "tool_result":
		if f.ID == "" {
			return nil, fmt.Errorf("tool_result frame missing id")
		}

		return messages.ToolResultEvent{
			ID:            f.ID,
			ToolName:      f.ToolName,
			Output:        f.Output,
			Success:       f.Success,
			ExecutionTime: time.Duration(f.ExecutionTime) * time.Millisecond,
			Diff:          f.Diff,
		}, nil

	case "autonomous":
		return messages.AutonomousEvent{Value: f.Value}, nil

	case "from_cache":
		return messages.FromCacheEvent{Value: f.Value}, nil

	case "error":
		return messages.ErrorEvent{Message: f.Message}, nil

	default:
		return nil, nil
	}
}
