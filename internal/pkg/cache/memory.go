package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore keeps entries in process memory. Expired entries are hidden
// on read and removed by Purge.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}

// Purge drops expired entries and returns how many were removed.
func (s *MemoryStore) Purge(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// MemoryVersions is a process-local version map.
type MemoryVersions struct {
	mu       sync.Mutex
	versions map[string]int64
}

func NewMemoryVersions() *MemoryVersions {
	return &MemoryVersions{versions: make(map[string]int64)}
}

func (v *MemoryVersions) Version(ctx context.Context, scope string) (int64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if current, ok := v.versions[scope]; ok {
		return current, nil
	}
	v.versions[scope] = 1
	return 1, nil
}

func (v *MemoryVersions) Bump(ctx context.Context, scope string) (int64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	current, ok := v.versions[scope]
	if !ok {
		current = 1
	}
	current++
	v.versions[scope] = current
	return current, nil
}
