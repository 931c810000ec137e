// Package dispatching selects the backend operation, request shape, and
// reducer vocabulary for the active conversation mode. The mode is passed
// in explicitly at submit time and captured once per request, so a
// mid-stream mode change can never retroactively change in-flight
// interpretation.
package dispatching

import (
	"fmt"
	"time"

	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convo/options"
	"github.com/conneroisu/convo/pkg/convo/ports"
	"github.com/conneroisu/convo/pkg/convo/reducing"
)

// Mode is the selected conversation behavior. Session-scoped; changed only
// by explicit user action, never implicitly mid-stream.
type Mode string

const (
	// ModeDesign is conversational design with diagram output.
	ModeDesign Mode = "design"
	// ModeCodeNormal is autonomous code editing.
	ModeCodeNormal Mode = "code-normal"
	// ModeCodePlan is one-shot plan generation.
	ModeCodePlan Mode = "code-plan"
	// ModeCodeSpec is one-shot specification generation.
	ModeCodeSpec Mode = "code-spec"
	// ModeShip is one-shot end-to-end delivery.
	ModeShip Mode = "ship"
	// ModeArgument is argumentative/confirmatory conversation.
	ModeArgument Mode = "argument"
)

// Kind discriminates streaming operations from one-shot generation.
type Kind int

const (
	// KindStreaming operations return a framed event stream.
	KindStreaming Kind = iota
	// KindOneShot operations return a single JSON document and never
	// enter the reducer.
	KindOneShot
)

// One-shot operation names.
const (
	// OperationPlan generates a plan document.
	OperationPlan = "plan"
	// OperationSpec generates a specification document.
	OperationSpec = "spec"
)

// Input is one user submission.
type Input struct {
	// Text is the submitted prose.
	Text string

	// Image is an optional pending attachment.
	Image *messages.Attachment
}

// Dispatch describes how the controller must execute one submission.
type Dispatch struct {
	Mode       Mode
	Kind       Kind
	Operation  string
	Request    *messages.AgentRequest
	Vocabulary reducing.Vocabulary
	Timeout    time.Duration
}

// Service builds dispatches for the request controller.
type Service struct{}

// NewService creates a dispatcher.
func NewService() *Service {
	return &Service{}
}

// Plan maps a submission under the given mode to a backend operation.
// history is the conversation log snapshot at submit time; opts are the
// settings captured for this request.
func (s *Service) Plan(
	mode Mode,
	history []messages.Message,
	input Input,
	opts *options.ChatOptions,
) (*Dispatch, error) {
	switch mode {
	case ModeDesign:
		// Design posts only the latest user text; the stream carries
		// plain incremental text.
		req := s.baseRequest(mode, opts)
		req.Messages = []messages.AgentTurn{{
			Role:    messages.RoleUser,
			Content: messages.TextTurnContent(input.Text),
		}}

		return &Dispatch{
			Mode:       mode,
			Kind:       KindStreaming,
			Operation:  ports.OperationDesign,
			Request:    req,
			Vocabulary: reducing.VocabularyText,
			Timeout:    options.DefaultTimeout,
		}, nil

	case ModeCodeNormal, ModeShip, ModeArgument:
		req := s.baseRequest(mode, opts)
		req.Messages = flattenHistory(history, input, opts.Provider)
		req.WorkspaceRoot = opts.WorkspaceRoot

		timeout := options.DefaultTimeout
		if mode == ModeArgument {
			// Argument turns chain multi-step tool use.
			timeout = options.ArgumentTimeout
		}

		return &Dispatch{
			Mode:       mode,
			Kind:       KindStreaming,
			Operation:  ports.OperationAgent,
			Request:    req,
			Vocabulary: reducing.VocabularyAgentic,
			Timeout:    timeout,
		}, nil

	case ModeCodePlan, ModeCodeSpec:
		req := s.baseRequest(mode, opts)
		req.Messages = flattenHistory(history, input, opts.Provider)
		req.WorkspaceRoot = opts.WorkspaceRoot

		operation := OperationPlan
		if mode == ModeCodeSpec {
			operation = OperationSpec
		}
		req.OutputFormat = outputFormatFor(operation)

		return &Dispatch{
			Mode:      mode,
			Kind:      KindOneShot,
			Operation: operation,
			Request:   req,
			Timeout:   options.DefaultTimeout,
		}, nil

	default:
		return nil, fmt.Errorf("unknown mode: %s", mode)
	}
}

// baseRequest fills the request fields shared by every operation.
func (s *Service) baseRequest(
	mode Mode,
	opts *options.ChatOptions,
) *messages.AgentRequest {
	return &messages.AgentRequest{
		Mode:         string(mode),
		Provider:     opts.Provider,
		ModelID:      opts.ModelID,
		Autonomous:   opts.Autonomous,
		LargeContext: opts.LargeContext,
	}
}
