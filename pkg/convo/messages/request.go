package messages

// AgentRequest is the JSON document posted to a backend operation.
type AgentRequest struct {
	Messages      []AgentTurn   `json:"messages"`
	WorkspaceRoot string        `json:"workspaceRoot,omitempty"`
	Mode          string        `json:"mode"`
	Provider      string        `json:"provider,omitempty"`
	ModelID       string        `json:"modelId,omitempty"`
	Autonomous    bool          `json:"autonomous,omitempty"`
	LargeContext  bool          `json:"largeContext,omitempty"`
	OutputFormat  *OutputFormat `json:"outputFormat,omitempty"`
}

// AgentTurn is one flattened history entry sent to the backend.
type AgentTurn struct {
	Role    Role        `json:"role"`
	Content TurnContent `json:"content"`
}

// TurnContent is either plain text or a list of multi-part entries.
type TurnContent interface {
	turnContent()
}

// TextTurnContent is a plain-text turn.
type TextTurnContent string

func (TextTurnContent) turnContent() {}

// PartListContent is a multi-part turn (text plus image).
type PartListContent []ContentPart

func (PartListContent) turnContent() {}

// ContentPart is one entry of a multi-part turn.
type ContentPart struct {
	Type  string       `json:"type"` // "text" or "image"
	Text  string       `json:"text,omitempty"`
	Image *ImageSource `json:"image,omitempty"`
}

// ImageSource is a base64-encoded inline image.
type ImageSource struct {
	MediaType string `json:"mediaType"`
	Data      string `json:"data"`
}

// Attachment is an image the user attached to a pending submission.
type Attachment struct {
	MediaType string
	Data      []byte
}

// OutputFormat constrains a one-shot operation to structured output.
// Schema holds a JSON Schema document describing the expected response.
type OutputFormat struct {
	Type   string `json:"type"` // "json_schema"
	Schema any    `json:"schema,omitempty"`
}
