package review

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemorySink holds queue items in process. It backs local development
// (no upstream queue API) and the reconciler tests.
type InMemorySink struct {
	mu    sync.RWMutex
	items []QueueItem
	clock func() time.Time
}

func NewInMemorySink() *InMemorySink {
	return &InMemorySink{clock: time.Now}
}

// WithClock overrides item creation timestamps for deterministic tests.
func (s *InMemorySink) WithClock(clock func() time.Time) *InMemorySink {
	s.clock = clock
	return s
}

func (s *InMemorySink) Create(_ context.Context, item NewQueueItem) (QueueItem, error) {
	created := QueueItem{
		ID:              uuid.NewString(),
		EvidenceEventID: item.EvidenceEventID,
		Action:          item.Action,
		Context:         item.Context,
		Status:          StatusPending,
		CreatedAt:       s.clock(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, created)
	return created, nil
}

func (s *InMemorySink) FetchPending(_ context.Context) ([]QueueItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]QueueItem, 0, len(s.items))
	for _, item := range s.items {
		if item.Status == StatusPending {
			pending = append(pending, item)
		}
	}
	return pending, nil
}

// Len reports the total number of items ever created.
func (s *InMemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
