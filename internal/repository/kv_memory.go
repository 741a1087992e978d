package repository

import (
	"context"
	"sync"
)

// MemoryKeyValueStore keeps values in process memory. Nothing survives a restart.
type MemoryKeyValueStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKeyValueStore constructs an empty in-memory store.
func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{data: make(map[string]string)}
}

func (s *MemoryKeyValueStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (s *MemoryKeyValueStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryKeyValueStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryKeyValueStore) Close() error { return nil }
