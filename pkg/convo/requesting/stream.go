package requesting

import (
	"context"

	"github.com/conneroisu/convo/pkg/convo/dispatching"
	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convo/ports"
	"github.com/conneroisu/convo/pkg/convo/reducing"
	"github.com/conneroisu/convo/pkg/convoerrs"
)

// run drives one streaming turn: open the stream, fold each decoded event
// into the live state, publish a snapshot per event, and finalize or fail
// when the stream ends.
func (c *Controller) run(ctx context.Context, d *dispatching.Dispatch) {
	body, err := c.transport.OpenStream(ctx, d.Operation, d.Request)
	if err != nil {
		c.fail(err)

		return
	}
	defer func() { _ = body.Close() }()

	state := reducing.State{}
	for ev := range c.parser.Events(ctx, body) {
		state = reducing.Reduce(state, ev, d.Vocabulary)
		if state.Failed != nil {
			// Fatal turn failure; stop processing further events.
			break
		}
		c.publish(state)
	}

	switch {
	case ctx.Err() != nil:
		c.abort(ctx.Err())
	case state.Failed != nil:
		c.fail(state.Failed)
	default:
		c.finalize(ctx, d, state)
	}
}

// finalize freezes the live blocks into an assistant message and appends
// it atomically to the conversation log. Design streams first pass
// through the clarification detector; a clarification request discards
// the partial stream instead of appending.
func (c *Controller) finalize(
	ctx context.Context,
	d *dispatching.Dispatch,
	state reducing.State,
) {
	blocks := state.Blocks

	if d.Mode == dispatching.ModeDesign {
		outcome := c.dispatcher.FinishDesign(joinText(blocks))
		if outcome.IsClarification {
			if c.clarifier != nil {
				c.clarifier.RequestClarification(ctx, outcome.Clarification)
			}
			c.finish(PhaseFinalized)

			return
		}
		blocks = outcome.Blocks
	}

	if len(blocks) == 0 {
		c.finish(PhaseFinalized)

		return
	}

	msg := messages.NewAssistantMessage(blocks, d.Request.ModelID)
	if err := c.log.Append(ctx, msg); err != nil {
		c.logger.Warn("session sync failed", "error", err)
	}
	c.finish(PhaseFinalized)
}

// fail classifies a turn failure and surfaces it with a retry action when
// the taxonomy allows one. Aborts route to the cancellation path.
func (c *Controller) fail(err error) {
	classified := convoerrs.Classify(err)
	if convoerrs.IsAbortError(classified) {
		c.abort(classified)

		return
	}

	c.logger.Error("turn failed", "error", classified)
	c.notify(context.Background(), ports.Notification{
		Message:   classified.Error(),
		Severity:  ports.SeverityError,
		Retryable: convoerrs.IsRetryable(classified),
	})
	c.finish(PhaseFailed)
}

// abort discards local state after cancel or timeout. No retry is
// offered; the two cases differ only in the message shown.
func (c *Controller) abort(err error) {
	classified := convoerrs.Classify(err)

	message := "request cancelled"
	if convoerrs.IsTimeout(classified) {
		message = "request timed out"
	}

	c.logger.Info("turn aborted", "reason", message)
	c.notify(context.Background(), ports.Notification{
		Message:  message,
		Severity: ports.SeverityWarning,
	})
	c.finish(PhaseCancelled)
}

// joinText concatenates the text blocks of a stream in order.
func joinText(blocks []messages.ContentBlock) string {
	var out string
	for _, block := range blocks {
		if text, ok := block.(messages.TextBlock); ok {
			out += text.Text
		}
	}

	return out
}
