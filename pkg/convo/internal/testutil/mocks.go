// Package testutil provides test utilities and mocks.
package testutil

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convo/ports"
)

// MockTransport implements ports.Transport for testing.
type MockTransport struct {
	OpenStreamFunc func(
		context.Context,
		string,
		*messages.AgentRequest,
	) (io.ReadCloser, error)
	GeneratePlanFunc func(
		context.Context,
		*messages.AgentRequest,
	) (*messages.PlanDocument, error)
	GenerateSpecFunc func(
		context.Context,
		*messages.AgentRequest,
	) (*messages.SpecDocument, error)
}

// OpenStream calls the mock function.
func (m *MockTransport) OpenStream(
	ctx context.Context,
	operation string,
	req *messages.AgentRequest,
) (io.ReadCloser, error) {
	if m.OpenStreamFunc != nil {
		return m.OpenStreamFunc(ctx, operation, req)
	}

	return io.NopCloser(strings.NewReader("")), nil
}

// GeneratePlan calls the mock function.
func (m *MockTransport) GeneratePlan(
	ctx context.Context,
	req *messages.AgentRequest,
) (*messages.PlanDocument, error) {
	if m.GeneratePlanFunc != nil {
		return m.GeneratePlanFunc(ctx, req)
	}

	return &messages.PlanDocument{}, nil
}

// GenerateSpec calls the mock function.
func (m *MockTransport) GenerateSpec(
	ctx context.Context,
	req *messages.AgentRequest,
) (*messages.SpecDocument, error) {
	if m.GenerateSpecFunc != nil {
		return m.GenerateSpecFunc(ctx, req)
	}

	return &messages.SpecDocument{}, nil
}

// Verify interface compliance.
var _ ports.Transport = (*MockTransport)(nil)

// MockNotifier records notifications for assertions.
type MockNotifier struct {
	mu            sync.Mutex
	Notifications []ports.Notification
}

// Notify records the notification.
func (m *MockNotifier) Notify(_ context.Context, n ports.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = append(m.Notifications, n)
}

// Last returns the most recent notification.
func (m *MockNotifier) Last() (ports.Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Notifications) == 0 {
		return ports.Notification{}, false
	}

	return m.Notifications[len(m.Notifications)-1], true
}

// Verify interface compliance.
var _ ports.Notifier = (*MockNotifier)(nil)

// MockClarifier records clarification questions.
type MockClarifier struct {
	mu        sync.Mutex
	Questions []string
}

// RequestClarification records the question.
func (m *MockClarifier) RequestClarification(_ context.Context, q string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Questions = append(m.Questions, q)
}

// Asked returns a copy of the recorded questions.
func (m *MockClarifier) Asked() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.Questions...)
}

// Verify interface compliance.
var _ ports.Clarifier = (*MockClarifier)(nil)
