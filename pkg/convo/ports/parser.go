package ports

import (
	"context"
	"io"

	"github.com/conneroisu/convo/pkg/convo/messages"
)

// EventStreamParser splits an incrementally-delivered byte stream into
// decoded events. The returned channel preserves stream order, is lazy,
// and closes on end of stream or context cancellation. The sequence is
// not restartable.
type EventStreamParser interface {
	Events(ctx context.Context, r io.Reader) <-chan messages.StreamEvent
}
