package memory

import (
	"context"
	"sync"

	"dompet/internal/kv"
)

var _ kv.Store = (*Store)(nil)

// Store keeps values in process memory. Contents vanish on exit.
type Store struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

func New() *Store {
	return &Store{values: map[string]string{}}
}

// NewWith returns a store pre-seeded with the given values.
func NewWith(seed map[string]string) *Store {
	s := New()
	for k, v := range seed {
		s.values[k] = v
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.writes++
	return nil
}

// Writes returns how many times Set has been called.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
