package parse_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/conneroisu/convo/pkg/convo/adapters/parse"
	"github.com/conneroisu/convo/pkg/convo/messages"
)

// collect drains the event channel into a slice.
func collect(
	t *testing.T,
	body string,
) []messages.StreamEvent {
	t.Helper()

	adapter := parse.NewAdapter(nil)
	ch := adapter.Events(context.Background(), strings.NewReader(body))

	var events []messages.StreamEvent
	for ev := range ch {
		events = append(events, ev)
	}

	return events
}

func TestEventsDecodesFramesInOrder(t *testing.T) {
	body := "data: {\"type\":\"text\",\"text\":\"Hello \"}\n" +
		"data: {\"type\":\"tool_call\",\"id\":\"1\",\"name\":\"read_file\",\"input\":{\"path\":\"main.go\"}}\n" +
		"data: {\"type\":\"tool_result\",\"id\":\"1\",\"toolName\":\"read_file\",\"output\":\"ok\",\"success\":true,\"executionTime\":12}\n" +
		"data: [DONE]\n"

	events := collect(t, body)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	text, ok := events[0].(messages.TextEvent)
	if !ok || text.Text != "Hello " {
		t.Errorf("event 0 = %#v, want TextEvent %q", events[0], "Hello ")
	}

	call, ok := events[1].(messages.ToolCallEvent)
	if !ok {
		t.Fatalf("event 1 is %T, want ToolCallEvent", events[1])
	}
	if call.ID != "1" || call.Name != "read_file" {
		t.Errorf("call = %#v", call)
	}
	if call.Input["path"] != "main.go" {
		t.Errorf("call input = %#v", call.Input)
	}

	result, ok := events[2].(messages.ToolResultEvent)
	if !ok {
		t.Fatalf("event 2 is %T, want ToolResultEvent", events[2])
	}
	if !result.Success || result.Output != "ok" {
		t.Errorf("result = %#v", result)
	}
	if result.ExecutionTime != 12*time.Millisecond {
		t.Errorf("execution time = %v, want 12ms", result.ExecutionTime)
	}
}

func TestEventsSkipsNonFrameLines(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "malformed json dropped",
			body: "data: {not json}\ndata: {\"type\":\"text\",\"text\":\"x\"}\n",
			want: 1,
		},
		{
			name: "unprefixed lines ignored",
			body: "keepalive\n\ndata: {\"type\":\"text\",\"text\":\"x\"}\n",
			want: 1,
		},
		{
			name: "sentinel discarded without decoding",
			body: "data: [DONE]\n",
			want: 0,
		},
		{
			name: "empty payload ignored",
			body: "data: \ndata:\n",
			want: 0,
		},
		{
			name: "unknown event type skipped",
			body: "data: {\"type\":\"telemetry\",\"text\":\"x\"}\n",
			want: 0,
		},
		{
			name: "tool_call without id dropped",
			body: "data: {\"type\":\"tool_call\",\"name\":\"bash\"}\n",
			want: 0,
		},
		{
			name: "tool_result without id dropped",
			body: "data: {\"type\":\"tool_result\",\"output\":\"x\"}\n",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := collect(t, tt.body)
			if len(events) != tt.want {
				t.Errorf("got %d events, want %d: %#v",
					len(events), tt.want, events)
			}
		})
	}
}

func TestEventsFlagFrames(t *testing.T) {
	body := "data: {\"type\":\"autonomous\",\"value\":true}\n" +
		"data: {\"type\":\"from_cache\",\"value\":true}\n" +
		"data: {\"type\":\"error\",\"message\":\"model overloaded\"}\n"

	events := collect(t, body)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	if auto, ok := events[0].(messages.AutonomousEvent); !ok || !auto.Value {
		t.Errorf("event 0 = %#v", events[0])
	}
	if cache, ok := events[1].(messages.FromCacheEvent); !ok || !cache.Value {
		t.Errorf("event 1 = %#v", events[1])
	}
	errEv, ok := events[2].(messages.ErrorEvent)
	if !ok || errEv.Message != "model overloaded" {
		t.Errorf("event 2 = %#v", events[2])
	}
}

func TestEventsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	adapter := parse.NewAdapter(nil)
	body := "data: {\"type\":\"text\",\"text\":\"a\"}\n" +
		"data: {\"type\":\"text\",\"text\":\"b\"}\n"
	ch := adapter.Events(ctx, strings.NewReader(body))

	// With the context already cancelled the goroutine must close the
	// channel without a consumer draining it.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancellation")
		}
	}
}

func TestEventsLargeFrame(t *testing.T) {
	// A single tool output well past the initial buffer size still decodes.
	big := strings.Repeat("x", 200*1024)
	body := "data: {\"type\":\"tool_result\",\"id\":\"1\",\"toolName\":\"bash\",\"output\":\"" +
		big + "\",\"success\":true}\n"

	events := collect(t, body)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	result := events[0].(messages.ToolResultEvent)
	if len(result.Output) != len(big) {
		t.Errorf("output length = %d, want %d", len(result.Output), len(big))
	}
}
