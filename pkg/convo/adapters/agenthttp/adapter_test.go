package agenthttp_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/conneroisu/convo/pkg/convo/adapters/agenthttp"
	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convoerrs"
)

func testRequest() *messages.AgentRequest {
	return &messages.AgentRequest{
		Mode: "code-normal",
		Messages: []messages.AgentTurn{{
			Role:    messages.RoleUser,
			Content: messages.TextTurnContent("hello"),
		}},
	}
}

func TestOpenStreamPostsOperationEndpoint(t *testing.T) {
	var gotPath, gotContentType, gotAccept string
	var gotBody messages.AgentRequest

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotContentType = r.Header.Get("Content-Type")
			gotAccept = r.Header.Get("Accept")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)

			_, _ = io.WriteString(w, "data: {\"type\":\"text\",\"text\":\"hi\"}\n")
			_, _ = io.WriteString(w, "data: [DONE]\n")
		}))
	defer srv.Close()

	adapter := agenthttp.NewAdapter(srv.URL, nil, nil)
	body, err := adapter.OpenStream(context.Background(), "agent", testRequest())
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	defer func() { _ = body.Close() }()

	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(raw) == 0 {
		t.Error("empty stream body")
	}

	if gotPath != "/v1/agent" {
		t.Errorf("path = %q, want /v1/agent", gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	if gotAccept != "text/event-stream" {
		t.Errorf("accept = %q, want text/event-stream", gotAccept)
	}
	if gotBody.Mode != "code-normal" || len(gotBody.Messages) != 1 {
		t.Errorf("request body = %#v", gotBody)
	}
}

func TestOpenStreamServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, "backend exploded")
		}))
	defer srv.Close()

	adapter := agenthttp.NewAdapter(srv.URL, nil, nil)
	_, err := adapter.OpenStream(context.Background(), "agent", testRequest())
	if err == nil {
		t.Fatal("expected error")
	}

	var statusErr *convoerrs.ServerStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %T %v", err, err)
	}
	if statusErr.StatusCode() != http.StatusInternalServerError {
		t.Errorf("status = %d", statusErr.StatusCode())
	}
	if statusErr.Body() != "backend exploded" {
		t.Errorf("body = %q", statusErr.Body())
	}
	if !convoerrs.IsRetryable(err) {
		t.Error("server errors must be retryable")
	}
}

func TestOpenStreamConnectionRefused(t *testing.T) {
	// A closed server yields a connection-level failure.
	srv := httptest.NewServer(http.HandlerFunc(
		func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	adapter := agenthttp.NewAdapter(srv.URL, nil, nil)
	_, err := adapter.OpenStream(context.Background(), "agent", testRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	if !convoerrs.IsNetworkError(err) {
		t.Errorf("error = %T %v, want network category", err, err)
	}
}

func TestGeneratePlanDecodesDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/plan" {
				t.Errorf("path = %q", r.URL.Path)
			}
			if accept := r.Header.Get("Accept"); accept != "application/json" {
				t.Errorf("accept = %q, want application/json", accept)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{
				"title": "Migration plan",
				"summary": "Move it.",
				"steps": [{"title": "Step one", "description": "Do it."}]
			}`)
		}))
	defer srv.Close()

	adapter := agenthttp.NewAdapter(srv.URL, nil, nil)
	doc, err := adapter.GeneratePlan(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}

	if doc.Title != "Migration plan" || len(doc.Steps) != 1 {
		t.Errorf("doc = %#v", doc)
	}
}

func TestGenerateSpecBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "this is not json")
		}))
	defer srv.Close()

	adapter := agenthttp.NewAdapter(srv.URL, nil, nil)
	_, err := adapter.GenerateSpec(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected error")
	}

	engErr, ok := convoerrs.AsEngineError(err)
	if !ok {
		t.Fatalf("error = %T %v", err, err)
	}
	if engErr.Code() != convoerrs.ErrCodeBadResponse {
		t.Errorf("code = %q, want bad_response", engErr.Code())
	}
}

func TestOpenStreamContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	adapter := agenthttp.NewAdapter(srv.URL, nil, nil)
	_, err := adapter.OpenStream(ctx, "agent", testRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	if !convoerrs.IsNetworkError(err) {
		t.Errorf("error = %T %v, want network wrapper", err, err)
	}
}
