// Package agenthttp implements the backend transport over HTTP. Each
// backend operation is one endpoint under /v1; streaming operations
// respond with newline-delimited event frames, one-shot operations with a
// single JSON document.
package agenthttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convo/ports"
	"github.com/conneroisu/convo/pkg/convoerrs"
)

// maxErrorBody bounds how much of a failed response body is captured for
// the error message.
const maxErrorBody = 4096

// Adapter implements ports.Transport against the backend agent process.
type Adapter struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// Verify interface compliance at compile time.
var _ ports.Transport = (*Adapter)(nil)

// NewAdapter creates an HTTP transport for the backend at baseURL.
// A nil client falls back to http.DefaultClient; request deadlines are
// owned by the caller's context, not the client.
func NewAdapter(baseURL string, client *http.Client, logger *slog.Logger) *Adapter {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Adapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// post issues one JSON POST to an operation endpoint. accept names the
// response type the operation produces: an event stream or one document.
// Non-2xx responses are drained into a server status error.
func (a *Adapter) post(
	ctx context.Context,
	operation string,
	req *messages.AgentRequest,
	accept string,
) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := a.baseURL + "/v1/" + operation
	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", accept)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, convoerrs.NewNetworkError(
			convoerrs.ErrCodeConnectionFailed,
			"connect to backend",
			err,
		).WithHost(a.baseURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		captured, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		a.logger.Warn("backend rejected request",
			"operation", operation,
			"status", resp.StatusCode,
		)

		return nil, convoerrs.NewServerStatusError(
			resp.StatusCode,
			strings.TrimSpace(string(captured)),
		)
	}

	return resp, nil
}

// OpenStream implements ports.Transport.
func (a *Adapter) OpenStream(
	ctx context.Context,
	operation string,
	req *messages.AgentRequest,
) (io.ReadCloser, error) {
	resp, err := a.post(ctx, operation, req, "text/event-stream")
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}
