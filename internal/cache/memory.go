package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	at      time.Time
	payload []byte
}

// MemoryStore is a mutex-guarded in-process store. Capacity-bounded: inserting
// past capacity evicts the oldest entry. The lock is not held across compute,
// so concurrent misses for one key may each run compute; the last write wins.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	capacity int
	now      func() time.Time
}

// NewMemoryStore builds a store holding at most capacity entries
// (<=0 falls back to 4096).
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 4096
	}
	return &MemoryStore{
		entries:  make(map[string]memoryEntry),
		capacity: capacity,
		now:      time.Now,
	}
}

func cacheKey(namespace, key string) string { return namespace + ":" + key }

func (s *MemoryStore) GetOrCompute(ctx context.Context, namespace, key string, ttl time.Duration, compute func(context.Context) ([]byte, error)) ([]byte, error) {
	k := cacheKey(namespace, key)

	s.mu.Lock()
	if e, ok := s.entries[k]; ok && s.now().Sub(e.at) < ttl {
		s.mu.Unlock()
		return e.payload, nil
	}
	s.mu.Unlock()

	payload, err := compute(ctx)
	if err != nil {
		// 失败不落缓存
		return nil, err
	}

	s.mu.Lock()
	if _, exists := s.entries[k]; !exists && len(s.entries) >= s.capacity {
		s.evictOldestLocked()
	}
	s.entries[k] = memoryEntry{at: s.now(), payload: payload}
	s.mu.Unlock()
	return payload, nil
}

func (s *MemoryStore) Invalidate(_ context.Context, namespace, key string) error {
	s.mu.Lock()
	delete(s.entries, cacheKey(namespace, key))
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for k, e := range s.entries {
		if first || e.at.Before(oldestAt) {
			oldestKey, oldestAt, first = k, e.at, false
		}
	}
	if oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}

// Len reports the current entry count (used by tests).
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
