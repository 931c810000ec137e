package testutil

import (
	"io"
	"strings"
)

// DoneFrame is the end-of-stream sentinel line.
const DoneFrame = "data: [DONE]\n"

// Frame wraps a JSON payload into one marker-prefixed event frame.
func Frame(payload string) string {
	return "data: " + payload + "\n"
}

// StreamBody assembles frames into a readable response body, terminated
// by the end-of-stream sentinel.
func StreamBody(frames ...string) io.ReadCloser {
	var b strings.Builder
	for _, f := range frames {
		b.WriteString(f)
	}
	b.WriteString(DoneFrame)

	return io.NopCloser(strings.NewReader(b.String()))
}

// Common frames used across tests.
var (
	TextHelloFrame = Frame(`{"type":"text","text":"Hello "}`)
	TextWorldFrame = Frame(`{"type":"text","text":"world"}`)

	ToolCallFrame = Frame(
		`{"type":"tool_call","id":"1","name":"read_file",` +
			`"input":{"path":"main.go"}}`,
	)
	ToolResultFrame = Frame(
		`{"type":"tool_result","id":"1","toolName":"read_file",` +
			`"output":"ok","success":true,"executionTime":12}`,
	)
)
