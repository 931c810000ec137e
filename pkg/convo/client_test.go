package convo_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/conneroisu/convo/pkg/convo"
	"github.com/conneroisu/convo/pkg/convo/adapters/memstore"
	"github.com/conneroisu/convo/pkg/convo/options"
)

// newBackend serves a canned frame stream for every agent operation.
func newBackend(t *testing.T, frames ...string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			for _, f := range frames {
				_, _ = io.WriteString(w, f)
			}
			_, _ = io.WriteString(w, "data: [DONE]\n")
		}))
	t.Cleanup(srv.Close)

	return srv
}

func waitTurn(t *testing.T, c *convo.Client) {
	t.Helper()

	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("turn did not finish")
	}
}

func TestClientEndToEnd(t *testing.T) {
	srv := newBackend(t,
		"data: {\"type\":\"text\",\"text\":\"Hello \"}\n",
		"data: {\"type\":\"text\",\"text\":\"world\"}\n",
	)

	store := memstore.NewStore()
	client := convo.NewClient(
		&options.ChatOptions{BaseURL: srv.URL, Provider: "anthropic", ModelID: "m"},
		convo.Config{Store: store},
	)

	ok, err := client.Submit(context.Background(), "hi")
	if err != nil || !ok {
		t.Fatalf("Submit = %v, %v", ok, err)
	}
	waitTurn(t, client)

	msgs := client.Messages()
	if len(msgs) != 2 {
		t.Fatalf("log has %d messages, want 2", len(msgs))
	}
	if msgs[1].Text() != "Hello world" {
		t.Errorf("assistant text = %q", msgs[1].Text())
	}

	// Both appends synced to the same session.
	if store.Len() != 1 {
		t.Errorf("store has %d sessions, want 1", store.Len())
	}
}

func TestClientModeIsSticky(t *testing.T) {
	srv := newBackend(t)
	client := convo.NewClient(
		&options.ChatOptions{BaseURL: srv.URL, Provider: "anthropic"},
		convo.Config{},
	)

	if client.Mode() != convo.ModeCodeNormal {
		t.Errorf("default mode = %q", client.Mode())
	}

	client.SetMode(convo.ModeDesign)
	if client.Mode() != convo.ModeDesign {
		t.Errorf("mode = %q after SetMode", client.Mode())
	}
}

func TestClientImageConsumedOnce(t *testing.T) {
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			bodies = append(bodies, string(raw))
			_, _ = io.WriteString(w, "data: [DONE]\n")
		}))
	t.Cleanup(srv.Close)

	client := convo.NewClient(
		&options.ChatOptions{BaseURL: srv.URL, Provider: "anthropic"},
		convo.Config{},
	)

	client.AttachImage(&convo.Attachment{
		MediaType: "image/png",
		Data:      []byte{1, 2, 3},
	})

	ok, err := client.Submit(context.Background(), "what is this")
	if err != nil || !ok {
		t.Fatalf("Submit = %v, %v", ok, err)
	}
	waitTurn(t, client)

	ok, err = client.Submit(context.Background(), "and now")
	if err != nil || !ok {
		t.Fatalf("Submit = %v, %v", ok, err)
	}
	waitTurn(t, client)

	if len(bodies) != 2 {
		t.Fatalf("backend saw %d requests, want 2", len(bodies))
	}
	if !strings.Contains(bodies[0], `"type":"image"`) {
		t.Error("first request missing image part")
	}
	if strings.Contains(bodies[1], `"type":"image"`) {
		t.Error("image leaked into second request")
	}
}

func TestClientImageSurvivesRejectedSubmit(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			mu.Lock()
			bodies = append(bodies, string(raw))
			hold := len(bodies) == 1
			mu.Unlock()

			if hold {
				<-release
			}
			_, _ = io.WriteString(w, "data: [DONE]\n")
		}))
	t.Cleanup(srv.Close)

	client := convo.NewClient(
		&options.ChatOptions{BaseURL: srv.URL, Provider: "anthropic"},
		convo.Config{},
	)

	ok, err := client.Submit(context.Background(), "hold this turn")
	if err != nil || !ok {
		t.Fatalf("Submit = %v, %v", ok, err)
	}

	// Staged while a request is in flight; the rejected submit must not
	// consume it.
	client.AttachImage(&convo.Attachment{
		MediaType: "image/png",
		Data:      []byte{1, 2, 3},
	})

	ok, err = client.Submit(context.Background(), "with image")
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if ok {
		t.Fatal("second Submit accepted while requesting")
	}

	close(release)
	waitTurn(t, client)

	ok, err = client.Submit(context.Background(), "with image")
	if err != nil || !ok {
		t.Fatalf("resubmit = %v, %v", ok, err)
	}
	waitTurn(t, client)

	mu.Lock()
	defer mu.Unlock()
	if len(bodies) != 2 {
		t.Fatalf("backend saw %d requests, want 2", len(bodies))
	}
	if !strings.Contains(bodies[1], `"type":"image"`) {
		t.Error("staged image was lost by the rejected submit")
	}
}
