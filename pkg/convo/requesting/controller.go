// Package requesting owns the single in-flight request per chat surface:
// the cancellation handle, the mode-specific timeout, and the
// finalize/rollback of streamed content into the conversation log.
package requesting

import (
	"context"
	"log/slog"
	"sync"

	"github.com/conneroisu/convo/pkg/convo/dispatching"
	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convo/options"
	"github.com/conneroisu/convo/pkg/convo/ports"
	"github.com/conneroisu/convo/pkg/convo/reducing"
	"github.com/conneroisu/convo/pkg/convo/transcript"
)

// Phase of the controller state machine.
// Idle -> Requesting -> {Finalized, Cancelled, Failed} -> Idle.
type Phase int

const (
	// PhaseIdle accepts submissions.
	PhaseIdle Phase = iota
	// PhaseRequesting has exactly one request in flight.
	PhaseRequesting
	// PhaseFinalized froze the stream into an appended message.
	PhaseFinalized
	// PhaseCancelled discarded the stream after cancel or timeout.
	PhaseCancelled
	// PhaseFailed classified and surfaced a turn failure.
	PhaseFailed
)

// StreamingState is the transient render snapshot of an in-flight turn.
// It exists only while a request is streaming and is cleared on
// finalize, cancel, and error.
type StreamingState struct {
	IsStreaming bool
	Blocks      []messages.ContentBlock
}

// submission captures everything needed to resubmit a turn verbatim.
type submission struct {
	mode  dispatching.Mode
	input dispatching.Input
	opts  *options.ChatOptions
}

// Config wires the controller's collaborators.
type Config struct {
	Transport  ports.Transport
	Parser     ports.EventStreamParser
	Dispatcher *dispatching.Service
	Log        *transcript.Log
	Notifier   ports.Notifier
	Clarifier  ports.Clarifier
	Logger     *slog.Logger
}

// Controller enforces at-most-one request in flight for one chat surface.
type Controller struct {
	mu        sync.Mutex
	phase     Phase
	outcome   Phase
	cancel    context.CancelFunc
	streaming StreamingState
	last      *submission
	turnDone  chan struct{}

	transport  ports.Transport
	parser     ports.EventStreamParser
	dispatcher *dispatching.Service
	log        *transcript.Log
	notifier   ports.Notifier
	clarifier  ports.Clarifier
	logger     *slog.Logger

	updates chan struct{}
}

// NewController creates a controller in the Idle phase.
func NewController(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		transport:  cfg.Transport,
		parser:     cfg.Parser,
		dispatcher: cfg.Dispatcher,
		log:        cfg.Log,
		notifier:   cfg.Notifier,
		clarifier:  cfg.Clarifier,
		logger:     logger,
		updates:    make(chan struct{}, 1),
	}
}

// Phase returns the current state machine phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.phase
}

// LastOutcome returns the terminal phase of the most recent turn.
func (c *Controller) LastOutcome() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.outcome
}

// StreamingState returns a snapshot of the live block list for renderers.
func (c *Controller) StreamingState() StreamingState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return StreamingState{
		IsStreaming: c.streaming.IsStreaming,
		Blocks:      append([]messages.ContentBlock(nil), c.streaming.Blocks...),
	}
}

// Updates returns the render poke channel. A token arrives after each
// suspension point; renderers drain it and re-read StreamingState.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// Done returns a channel closed when the current turn reaches a terminal
// state. When the controller is idle the returned channel is already
// closed.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.turnDone == nil {
		closed := make(chan struct{})
		close(closed)

		return closed
	}

	return c.turnDone
}

// Cancel aborts the in-flight request, if any. Cancellation is
// cooperative: the abort stops local byte delivery and discards local
// state; the backend is not guaranteed to halt computation.
func (c *Controller) Cancel() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Retry resubmits the last submitted user text verbatim. It is a no-op
// when nothing was submitted or a request is in flight.
func (c *Controller) Retry(ctx context.Context) (bool, error) {
	c.mu.Lock()
	last := c.last
	c.mu.Unlock()

	if last == nil {
		return false, nil
	}

	return c.Submit(ctx, last.mode, last.input, last.opts)
}

// publish stores the live snapshot and yields control to renderers via a
// non-blocking send, so long event bursts cannot starve rendering.
func (c *Controller) publish(state reducing.State) {
	c.mu.Lock()
	c.streaming.Blocks = state.Blocks
	c.mu.Unlock()

	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// finish moves the machine through a terminal phase back to Idle,
// clearing the cancellation handle and the streaming snapshot. The
// terminal phase stays observable via LastOutcome.
func (c *Controller) finish(terminal Phase) {
	c.mu.Lock()
	c.outcome = terminal
	cancel := c.cancel
	c.cancel = nil
	c.streaming = StreamingState{}
	done := c.turnDone
	c.turnDone = nil
	c.phase = PhaseIdle
	c.mu.Unlock()

	if cancel != nil {
		// Releases the timeout timer and stops local byte delivery.
		cancel()
	}
	if done != nil {
		close(done)
	}

	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// notify surfaces a turn outcome when a notifier collaborator is wired.
func (c *Controller) notify(ctx context.Context, n ports.Notification) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(ctx, n)
}
