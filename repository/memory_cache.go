package repository

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultMemoryCacheEntries = 10_000
	memorySweepInterval       = time.Minute
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero = never
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCache is a process-local CacheRepository used when no Redis address
// is configured, and in tests. Expired entries are swept on write, at most
// once per memorySweepInterval, and the cache never holds more than
// maxEntries values.
type MemoryCache struct {
	mu         sync.Mutex
	data       map[string]memoryEntry
	maxEntries int
	nextSweep  time.Time
	now        func() time.Time
}

// NewMemoryCache creates a cache bounded to maxEntries values; maxEntries <= 0
// uses DefaultMemoryCacheEntries.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryCacheEntries
	}
	return &MemoryCache{
		data:       make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	if e.expired(m.now()) {
		delete(m.data, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if !now.Before(m.nextSweep) {
		m.sweep(now)
		m.nextSweep = now.Add(memorySweepInterval)
	}

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	if _, exists := m.data[key]; !exists && len(m.data) >= m.maxEntries {
		m.sweep(now)
		if len(m.data) >= m.maxEntries {
			m.evictOne()
		}
	}
	m.data[key] = e
	return nil
}

func (m *MemoryCache) sweep(now time.Time) {
	for k, e := range m.data {
		if e.expired(now) {
			delete(m.data, k)
		}
	}
}

// evictOne drops the entry closest to expiry. Entries without a TTL go last.
func (m *MemoryCache) evictOne() {
	var (
		victim string
		soon   time.Time
		found  bool
	)
	for k, e := range m.data {
		switch {
		case !found:
		case e.expiresAt.IsZero():
			continue
		case !soon.IsZero() && !e.expiresAt.Before(soon):
			continue
		}
		victim, soon, found = k, e.expiresAt, true
	}
	if found {
		delete(m.data, victim)
	}
}

func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
