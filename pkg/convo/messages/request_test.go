package messages_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/conneroisu/convo/pkg/convo/messages"
)

func TestAgentRequestMarshal(t *testing.T) {
	req := &messages.AgentRequest{
		Mode:          "code-normal",
		Provider:      "anthropic",
		ModelID:       "test-model",
		WorkspaceRoot: "/work",
		Messages: []messages.AgentTurn{
			{
				Role:    messages.RoleUser,
				Content: messages.TextTurnContent("plain text turn"),
			},
			{
				Role: messages.RoleUser,
				Content: messages.PartListContent{
					{Type: "text", Text: "what is this"},
					{Type: "image", Image: &messages.ImageSource{
						MediaType: "image/png",
						Data:      "aGVsbG8=",
					}},
				},
			},
		},
	}

	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)

	// Plain turns serialize as a bare string, multi-part turns as an array.
	if !strings.Contains(body, `"content":"plain text turn"`) {
		t.Errorf("text turn not flat: %s", body)
	}
	if !strings.Contains(body, `"type":"image"`) {
		t.Errorf("image part missing: %s", body)
	}
	if !strings.Contains(body, `"mediaType":"image/png"`) {
		t.Errorf("media type missing: %s", body)
	}
	if strings.Contains(body, `"outputFormat"`) {
		t.Errorf("empty output format serialized: %s", body)
	}
}

func TestMessageText(t *testing.T) {
	diff := "-a\n+b"
	msg := messages.NewAssistantMessage([]messages.ContentBlock{
		messages.TextBlock{Text: "Changed "},
		messages.ToolResultBlock{ID: "1", ToolName: "edit", Success: true, Diff: &diff},
		messages.TextBlock{Text: "the file."},
	}, "m")

	if got := msg.Text(); got != "Changed the file." {
		t.Errorf("Text() = %q", got)
	}

	user := messages.NewUserMessage("hello")
	if user.Text() != "hello" {
		t.Errorf("Text() = %q", user.Text())
	}
	if user.ID == msg.ID {
		t.Error("message ids collide")
	}
}

func TestPlanDocumentRender(t *testing.T) {
	doc := &messages.PlanDocument{
		Title:   "Migration plan",
		Summary: "Move sessions.",
		Steps: []messages.PlanStep{
			{Title: "Dual-write", Description: "Write both.", Files: []string{"store.go"}},
			{Title: "Cut over", Description: "Flip the flag."},
		},
	}

	out := doc.Render()
	for _, want := range []string{
		"# Migration plan",
		"1. **Dual-write**",
		"2. **Cut over**",
		"`store.go`",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered plan missing %q:\n%s", want, out)
		}
	}
}

func TestSpecDocumentRender(t *testing.T) {
	doc := &messages.SpecDocument{
		Title:    "Session storage",
		Overview: "Persist chat sessions.",
		Requirements: []messages.SpecRequirement{
			{
				Name:               "Durability",
				Description:        "Sessions survive restart.",
				AcceptanceCriteria: []string{"restart keeps messages"},
			},
		},
	}

	out := doc.Render()
	for _, want := range []string{
		"# Session storage",
		"## Durability",
		"- restart keeps messages",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered spec missing %q:\n%s", want, out)
		}
	}
}
