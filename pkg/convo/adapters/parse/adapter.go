// Package parse implements the event frame parser. It splits the framed
// byte stream delivered by the backend agent into decoded stream events.
// This is an INFRASTRUCTURE adapter - it performs no semantic
// interpretation of events.
package parse

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convo/ports"
)

const (
	// framePrefix marks a line as an event frame.
	framePrefix = "data:"

	// endOfStreamSentinel is discarded without decoding.
	endOfStreamSentinel = "[DONE]"

	// initialBufferSize is the scanner's starting buffer.
	initialBufferSize = 64 * 1024

	// maxFrameSize bounds a single frame. Large tool outputs arrive as
	// one frame, so this is well above typical payloads.
	maxFrameSize = 2 * 1024 * 1024
)

// Adapter implements ports.EventStreamParser.
type Adapter struct {
	logger *slog.Logger
}

// Verify interface compliance at compile time.
var _ ports.EventStreamParser = (*Adapter)(nil)

// NewAdapter creates a frame parser. A nil logger falls back to
// slog.Default().
func NewAdapter(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Adapter{logger: logger}
}

// Events implements ports.EventStreamParser.
// The returned channel yields events in stream order and closes on end of
// stream or context cancellation. Malformed frames are dropped; the stream
// continues uninterrupted.
func (a *Adapter) Events(
	ctx context.Context,
	r io.Reader,
) <-chan messages.StreamEvent {
	out := make(chan messages.StreamEvent)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, initialBufferSize), maxFrameSize)

		for scanner.Scan() {
			payload, ok := framePayload(scanner.Text())
			if !ok {
				continue
			}

			ev, err := decodeEvent([]byte(payload))
			if err != nil {
				a.logger.Debug("dropping malformed frame",
					"error", err,
					"frame", truncate(payload, 256),
				)

				continue
			}
			if ev == nil {
				continue
			}

			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			// Read errors end the sequence; the controller observes
			// them through the transport, not through event frames.
			a.logger.Debug("stream read ended", "error", err)
		}
	}()

	return out
}

// framePayload extracts the JSON payload from a marker-prefixed line.
// Non-frame lines and the end-of-stream sentinel yield ok=false.
func framePayload(line string) (string, bool) {
	if !strings.HasPrefix(line, framePrefix) {
		return "", false
	}

	payload := strings.TrimPrefix(line, framePrefix)
	payload = strings.TrimPrefix(payload, " ")
	if payload == "" || payload == endOfStreamSentinel {
		return "", false
	}

	return payload, true
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max]
}
