// Package convo provides the public API for the conversation-streaming
// engine. This is the main entry point for embedders: one Client per chat
// surface.
package convo

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/conneroisu/convo/pkg/convo/adapters/agenthttp"
	"github.com/conneroisu/convo/pkg/convo/adapters/parse"
	"github.com/conneroisu/convo/pkg/convo/dispatching"
	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convo/options"
	"github.com/conneroisu/convo/pkg/convo/ports"
	"github.com/conneroisu/convo/pkg/convo/requesting"
	"github.com/conneroisu/convo/pkg/convo/transcript"
)

// Public type aliases for convenience.
type (
	Mode           = dispatching.Mode
	Message        = messages.Message
	ContentBlock   = messages.ContentBlock
	Attachment     = messages.Attachment
	ChatOptions    = options.ChatOptions
	StreamingState = requesting.StreamingState
)

// Mode constants.
const (
	ModeDesign     = dispatching.ModeDesign
	ModeCodeNormal = dispatching.ModeCodeNormal
	ModeCodePlan   = dispatching.ModeCodePlan
	ModeCodeSpec   = dispatching.ModeCodeSpec
	ModeShip       = dispatching.ModeShip
	ModeArgument   = dispatching.ModeArgument
)

// Config wires collaborators into a client. Every field is optional.
type Config struct {
	// Store is the persistence collaborator for finished messages.
	Store ports.SessionStore
	// Notifier receives turn-outcome notifications.
	Notifier ports.Notifier
	// Clarifier handles design-mode clarification requests.
	Clarifier ports.Clarifier
	// HTTPClient overrides the backend HTTP client.
	HTTPClient *http.Client
	// Logger overrides slog.Default().
	Logger *slog.Logger
}

// Client is one chat surface. It owns the conversation log and the single
// in-flight request; a pending image attaches to the next submission.
type Client struct {
	mu    sync.Mutex
	mode  Mode
	opts  *options.ChatOptions
	image *messages.Attachment

	controller *requesting.Controller
	log        *transcript.Log
}

// NewClient creates a chat surface talking to the backend at
// opts.BaseURL. This is the primary constructor for embedders.
func NewClient(opts *options.ChatOptions, cfg Config) *Client {
	transport := agenthttp.NewAdapter(opts.BaseURL, cfg.HTTPClient, cfg.Logger)
	parser := parse.NewAdapter(cfg.Logger)
	dispatcher := dispatching.NewService()
	log := transcript.NewLog(cfg.Store)

	controller := requesting.NewController(requesting.Config{
		Transport:  transport,
		Parser:     parser,
		Dispatcher: dispatcher,
		Log:        log,
		Notifier:   cfg.Notifier,
		Clarifier:  cfg.Clarifier,
		Logger:     cfg.Logger,
	})

	return &Client{
		mode:       ModeCodeNormal,
		opts:       opts,
		controller: controller,
		log:        log,
	}
}

// SetMode switches the conversation mode. Mode is session-scoped and only
// ever changed here, by explicit user action; an in-flight request keeps
// the mode it was submitted under.
func (c *Client) SetMode(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
}

// Mode returns the active conversation mode.
func (c *Client) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.mode
}

// AttachImage stages an image for the next submission.
func (c *Client) AttachImage(image *messages.Attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = image
}

// Submit sends user text under the active mode. The pending image, if
// any, is consumed only when the submission is accepted; a rejected
// submit leaves it staged for the next attempt. Returns false when a
// request is already in flight.
func (c *Client) Submit(ctx context.Context, text string) (bool, error) {
	c.mu.Lock()
	mode := c.mode
	opts := c.opts
	image := c.image
	c.mu.Unlock()

	input := dispatching.Input{Text: text, Image: image}

	ok, err := c.controller.Submit(ctx, mode, input, opts)
	if ok {
		c.mu.Lock()
		if c.image == image {
			c.image = nil
		}
		c.mu.Unlock()
	}

	return ok, err
}

// Cancel aborts the in-flight request, if any.
func (c *Client) Cancel() {
	c.controller.Cancel()
}

// Retry resubmits the last user text verbatim.
func (c *Client) Retry(ctx context.Context) (bool, error) {
	return c.controller.Retry(ctx)
}

// Messages returns the conversation log snapshot.
func (c *Client) Messages() []messages.Message {
	return c.log.Messages()
}

// StreamingState returns the live block snapshot for renderers.
func (c *Client) StreamingState() requesting.StreamingState {
	return c.controller.StreamingState()
}

// Updates returns the render poke channel.
func (c *Client) Updates() <-chan struct{} {
	return c.controller.Updates()
}

// Done returns a channel closed when the current turn ends.
func (c *Client) Done() <-chan struct{} {
	return c.controller.Done()
}
