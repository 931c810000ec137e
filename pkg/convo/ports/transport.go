// Package ports defines interfaces that the domain needs from infrastructure.
// These are "ports" in hexagonal architecture - contracts defined by
// domain needs, not by external systems.
package ports

import (
	"context"
	"io"

	"github.com/conneroisu/convo/pkg/convo/messages"
)

// Transport defines what the domain needs from the backend agent process.
// One method per backend operation; the backend itself is an opaque
// collaborator.
type Transport interface {
	// OpenStream starts a streaming operation and returns the raw framed
	// byte stream. The caller owns the reader and must close it.
	OpenStream(
		ctx context.Context,
		operation string,
		req *messages.AgentRequest,
	) (io.ReadCloser, error)

	// GeneratePlan runs the one-shot plan operation.
	GeneratePlan(
		ctx context.Context,
		req *messages.AgentRequest,
	) (*messages.PlanDocument, error)

	// GenerateSpec runs the one-shot spec operation.
	GenerateSpec(
		ctx context.Context,
		req *messages.AgentRequest,
	) (*messages.SpecDocument, error)
}

// Streaming operation names understood by the backend.
const (
	// OperationAgent is the agentic code-editing operation.
	OperationAgent = "agent"
	// OperationDesign is the conversational diagram operation.
	OperationDesign = "design"
)
