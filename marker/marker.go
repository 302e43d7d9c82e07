// Package marker persists the one-bit "intro seen" flag read by the intro gate.
package marker

import (
	"context"
	"sync"
)

// Marker reads and writes the persisted "intro seen" flag
type Marker interface {
	Seen(ctx context.Context) (bool, error)
	MarkSeen(ctx context.Context) error
}

// Memory is a process-local marker
type Memory struct {
	mu   sync.Mutex
	seen bool
}

// NewMemory creates a memory marker with the given initial state
func NewMemory(seen bool) *Memory {
	return &Memory{seen: seen}
}

// Seen reports the stored flag
func (m *Memory) Seen(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seen, nil
}

// MarkSeen sets the flag
func (m *Memory) MarkSeen(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = true
	return nil
}
