package ratelimit

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count   int64
	expires time.Time
}

// MemoryStore is process-local; counters are lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || !now.Before(e.expires) {
		e = &entry{expires: now.Add(window)}
		s.entries[key] = e
	}
	e.count++

	if len(s.entries) > 10000 {
		s.sweep(now)
	}
	return e.count, nil
}

func (s *MemoryStore) sweep(now time.Time) {
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
