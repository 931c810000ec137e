package requesting

import (
	"context"

	"github.com/conneroisu/convo/pkg/convo/dispatching"
	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convo/options"
	"github.com/conneroisu/convo/pkg/convo/ports"
	"github.com/conneroisu/convo/pkg/convoerrs"
)

// Submit routes one user submission under the given mode. The mode and
// options are captured here, once, for the whole request.
//
// Returns false when a request is already in flight: a second submit
// while Requesting is a no-op by construction.
func (c *Controller) Submit(
	ctx context.Context,
	mode dispatching.Mode,
	input dispatching.Input,
	opts *options.ChatOptions,
) (bool, error) {
	c.mu.Lock()
	if c.phase == PhaseRequesting {
		c.mu.Unlock()

		return false, nil
	}
	c.phase = PhaseRequesting
	c.turnDone = make(chan struct{})
	c.last = &submission{mode: mode, input: input, opts: opts}
	c.mu.Unlock()

	// Plan against the history as it stood before this submission; the
	// dispatcher appends the new user turn itself.
	dispatch, err := c.dispatcher.Plan(mode, c.log.Messages(), input, opts)
	if err != nil {
		c.finish(PhaseFailed)

		return true, err
	}

	// The user message enters the log before the backend is contacted.
	if err := c.log.Append(ctx, messages.NewUserMessage(input.Text)); err != nil {
		c.logger.Warn("session sync failed", "error", err)
	}

	if dispatch.Kind == dispatching.KindOneShot {
		return true, c.runOneShot(ctx, dispatch)
	}

	// Detach from the caller's context: the stream outlives Submit and
	// is bounded only by the mode-specific timeout and explicit cancel.
	runCtx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx),
		dispatch.Timeout,
	)

	c.mu.Lock()
	c.cancel = cancel
	c.streaming = StreamingState{IsStreaming: true}
	c.mu.Unlock()

	go c.run(runCtx, dispatch)

	return true, nil
}

// runOneShot executes a plan or spec generation synchronously. One-shot
// operations never enter the reducer and never set isStreaming.
func (c *Controller) runOneShot(
	ctx context.Context,
	d *dispatching.Dispatch,
) error {
	opCtx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	var block messages.ContentBlock
	switch d.Operation {
	case dispatching.OperationSpec:
		doc, err := c.transport.GenerateSpec(opCtx, d.Request)
		if err != nil {
			return c.failOneShot(ctx, err)
		}
		block = messages.PhaseResultBlock{
			Phase:   d.Operation,
			Title:   doc.Title,
			Content: doc.Render(),
		}

	default:
		doc, err := c.transport.GeneratePlan(opCtx, d.Request)
		if err != nil {
			return c.failOneShot(ctx, err)
		}
		block = messages.PhaseResultBlock{
			Phase:   d.Operation,
			Title:   doc.Title,
			Content: doc.Render(),
		}
	}

	msg := messages.NewAssistantMessage(
		[]messages.ContentBlock{block},
		d.Request.ModelID,
	)
	if err := c.log.Append(ctx, msg); err != nil {
		c.logger.Warn("session sync failed", "error", err)
	}
	c.finish(PhaseFinalized)

	return nil
}

// failOneShot classifies and surfaces a one-shot failure.
func (c *Controller) failOneShot(ctx context.Context, err error) error {
	classified := convoerrs.Classify(err)
	c.logger.Error("generation failed", "error", classified)
	c.notify(ctx, ports.Notification{
		Message:   classified.Error(),
		Severity:  ports.SeverityError,
		Retryable: convoerrs.IsRetryable(classified),
	})
	c.finish(PhaseFailed)

	return classified
}
