package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowEntry struct {
	start time.Time
	count int64
}

// MemoryStore is a process-local fixed-window counter. It satisfies the
// same IncrWithTTL surface as the redis client so deployments without
// redis still get per-instance limiting.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

// IncrWithTTL bumps the counter for key, resetting it when the window
// anchored at the first hit has elapsed. The returned value includes the
// current hit.
func (s *MemoryStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || (ttl > 0 && now.Sub(entry.start) >= ttl) {
		entry = &windowEntry{start: now}
		s.entries[key] = entry
	}
	entry.count++
	return entry.count, nil
}

// Sweep drops expired windows. Callers run it periodically to keep the
// map from growing with one entry per client ever seen.
func (s *MemoryStore) Sweep(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if now.Sub(entry.start) >= ttl {
			delete(s.entries, key)
		}
	}
}
