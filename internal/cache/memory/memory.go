package memory

import (
	"context"
	"sync"
	"time"

	"github.com/statuswatch/statuswatch/internal/cache"
)

// Store is an in-memory cache store for tests and single-process dev runs.
// Expired rows are reclaimed opportunistically on access.
type Store struct {
	mu      sync.RWMutex
	entries map[string]cache.Entry
}

func New() *Store {
	return &Store{entries: make(map[string]cache.Entry)}
}

func (s *Store) Get(ctx context.Context, key string) (*cache.Entry, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, nil
	}
	// copy so callers cannot mutate the stored payload
	out := e
	out.Payload = append([]byte(nil), e.Payload...)
	return &out, nil
}

func (s *Store) Put(ctx context.Context, e cache.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.Payload = append([]byte(nil), e.Payload...)
	s.entries[e.Key] = e
	return nil
}
