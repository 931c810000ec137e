// Package transcript owns the conversation log: a durable, append-only,
// ordered message list. The presentation collaborator reads it at any
// time; the persistence collaborator receives finished message arrays
// after each append.
package transcript

import (
	"context"
	"fmt"
	"sync"

	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convo/ports"
)

// Log is the append-only message log for one chat surface.
// Safe for concurrent readers; appends are serialized.
type Log struct {
	mu        sync.RWMutex
	sessionID string
	msgs      []messages.Message
	store     ports.SessionStore
}

// NewLog creates an empty log synced to the given store. A nil store
// disables external sync.
func NewLog(store ports.SessionStore) *Log {
	return &Log{store: store}
}

// Append adds a finished message and syncs the full array externally:
// update when a session already exists, create otherwise. The local
// append is atomic and survives a failed sync; the sync error is
// returned for the caller to surface.
func (l *Log) Append(ctx context.Context, msg messages.Message) error {
	l.mu.Lock()
	l.msgs = append(l.msgs, msg)
	snapshot := append([]messages.Message(nil), l.msgs...)
	sessionID := l.sessionID
	l.mu.Unlock()

	if l.store == nil {
		return nil
	}

	if sessionID == "" {
		id, err := l.store.CreateSession(ctx, snapshot)
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		l.mu.Lock()
		l.sessionID = id
		l.mu.Unlock()

		return nil
	}

	if err := l.store.UpdateSession(ctx, sessionID, snapshot); err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	return nil
}

// Messages returns a copy of the log, safe to read while a stream is in
// flight.
func (l *Log) Messages() []messages.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return append([]messages.Message(nil), l.msgs...)
}

// Len returns the number of appended messages.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.msgs)
}

// SessionID returns the persisted session id, empty until the first
// successful create.
func (l *Log) SessionID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.sessionID
}
