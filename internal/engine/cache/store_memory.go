package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"transferguard/pkg/sentinel"
)

// InMemoryStore keeps last-known snapshots for the lifetime of the process.
// It is the default when no shared cache is configured.
type InMemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]json.RawMessage
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{snapshots: make(map[string]json.RawMessage)}
}

func (s *InMemoryStore) Save(_ context.Context, key string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[key] = raw
	return nil
}

func (s *InMemoryStore) Load(_ context.Context, key string, out any) error {
	s.mu.RLock()
	raw, ok := s.snapshots[key]
	s.mu.RUnlock()
	if !ok {
		return sentinel.ErrNotFound
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal snapshot %s: %w", key, err)
	}
	return nil
}
