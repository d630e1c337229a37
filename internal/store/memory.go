// internal/store/memory.go
//
// In-memory session store shared by the three game engines.
// Live sessions are ephemeral by design: best-effort, lost on process
// restart. Durable data (settings, progress, daily results) lives in
// SQLite instead.
//
// Characteristics:
//   - Generic over the session type (one store per engine).
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get for unknown session ids.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for game sessions.
// Implementations may be backed by memory (this package), Redis, SQL, etc.
type Store[T any] interface {
	// Save persists or updates a session.
	Save(ctx context.Context, id string, v T) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (T, error)

	// Delete removes a session by ID; unknown ids are a no-op.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory[T any] struct {
	mu       sync.RWMutex
	sessions map[string]T
}

// NewMemory constructs a new in-memory Store.
func NewMemory[T any]() Store[T] {
	return &memory[T]{sessions: make(map[string]T)}
}

func (m *memory[T]) Save(ctx context.Context, id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = v
	return nil
}

func (m *memory[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.sessions[id]; ok {
		return v, nil
	}
	var zero T
	return zero, ErrNotFound
}

func (m *memory[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
