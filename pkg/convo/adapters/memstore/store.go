// Package memstore provides an in-memory session store. It backs tests and
// the example binary; production embedders supply their own persistence
// collaborator.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convo/ports"
	"github.com/google/uuid"
)

// Store implements ports.SessionStore in memory.
type Store struct {
	mu       sync.Mutex
	sessions map[string][]messages.Message
}

// Verify interface compliance at compile time.
var _ ports.SessionStore = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{sessions: make(map[string][]messages.Message)}
}

// CreateSession implements ports.SessionStore.
func (s *Store) CreateSession(
	_ context.Context,
	msgs []messages.Message,
) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.sessions[id] = append([]messages.Message(nil), msgs...)

	return id, nil
}

// UpdateSession implements ports.SessionStore.
func (s *Store) UpdateSession(
	_ context.Context,
	id string,
	msgs []messages.Message,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("unknown session %s", id)
	}
	s.sessions[id] = append([]messages.Message(nil), msgs...)

	return nil
}

// Session returns a copy of a stored session's messages.
func (s *Store) Session(id string) ([]messages.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, ok := s.sessions[id]
	if !ok {
		return nil, false
	}

	return append([]messages.Message(nil), msgs...), true
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}
