// Package memory provides an in-memory ConfigStore, used as the default
// backend and as the test double for persistence logic.
package memory

import (
	"context"
	"sync"

	"github.com/labscript-ai/labscript/pkg/domain"
)

// Store implements ports.ConfigStore in memory. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data []byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Save keeps a private copy of the bundle.
func (s *Store) Save(ctx context.Context, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = buf
	return nil
}

// Load returns a copy of the stored bundle.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, domain.ErrConfigNotFound
	}
	buf := make([]byte, len(s.data))
	copy(buf, s.data)
	return buf, nil
}

// Clear drops the entry.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
