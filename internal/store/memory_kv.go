package store

import (
	"context"
	"sync"

	"ustat/internal/domain"
)

// MemoryKV is a process-local KV. Contents are lost on exit.
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

func (s *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *MemoryKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *MemoryKV) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// Len reports the number of stored keys.
func (s *MemoryKV) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

var _ domain.KV = (*MemoryKV)(nil)
