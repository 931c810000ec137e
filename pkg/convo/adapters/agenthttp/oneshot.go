package agenthttp

import (
	"context"
	"encoding/json"

	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convoerrs"
)

// GeneratePlan implements ports.Transport.
func (a *Adapter) GeneratePlan(
	ctx context.Context,
	req *messages.AgentRequest,
) (*messages.PlanDocument, error) {
	var doc messages.PlanDocument
	if err := a.postJSON(ctx, "plan", req, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// GenerateSpec implements ports.Transport.
func (a *Adapter) GenerateSpec(
	ctx context.Context,
	req *messages.AgentRequest,
) (*messages.SpecDocument, error) {
	var doc messages.SpecDocument
	if err := a.postJSON(ctx, "spec", req, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// postJSON issues a one-shot operation and decodes the single JSON
// response document.
func (a *Adapter) postJSON(
	ctx context.Context,
	operation string,
	req *messages.AgentRequest,
	out any,
) error {
	resp, err := a.post(ctx, operation, req, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return convoerrs.NewBaseError(
			convoerrs.CategoryServer,
			convoerrs.ErrCodeBadResponse,
			"decode "+operation+" response",
			err,
		)
	}

	return nil
}
