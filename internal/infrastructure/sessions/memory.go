// Package sessions provides the in-process session store. It is the default
// backend for single-instance deployments and the test double for the Redis
// store; both satisfy ports.SessionStore.
package sessions

import (
	"context"
	"sync"

	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.SessionData
}

var _ ports.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.SessionData)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.SessionData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	// Copy out so callers never mutate the stored record directly.
	clone := data
	clone.Flashes = append([]domain.Flash(nil), data.Flashes...)
	return &clone, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, data *domain.SessionData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *data
	clone.Flashes = append([]domain.Flash(nil), data.Flashes...)
	s.sessions[id] = clone
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
