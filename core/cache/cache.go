package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Entry is a cached value with its build time.
type Entry[T any] struct {
	Value T
	Built time.Time
	TTL   time.Duration
}

// IsExpired returns true if this entry has expired based on its TTL.
func (e *Entry[T]) IsExpired() bool {
	if e.TTL == 0 {
		return true // No caching
	}
	return time.Since(e.Built) > e.TTL
}

// Store is a keyed read-through cache with stampede protection.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]*Entry[T]
	sf      singleflight.Group
	ttl     time.Duration
	// gen is bumped by every invalidation; loads started under an older
	// generation are returned to their callers but never stored.
	gen uint64
}

// New creates a store whose entries live for ttl.
func New[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries: make(map[string]*Entry[T]),
		ttl:     ttl,
	}
}

// FromConfig creates a store using the configured TTL.
func FromConfig[T any](cfg Config) *Store[T] {
	return New[T](time.Duration(cfg.TTLSeconds) * time.Second)
}

// GetOrLoad returns the cached value for key, or calls load to build it.
// Concurrent callers for the same key share a single load.
func (s *Store[T]) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (T, error)) (T, error) {
	// Fast path: check if entry exists and is fresh
	s.mu.RLock()
	entry, exists := s.entries[key]
	gen := s.gen
	s.mu.RUnlock()

	if exists && !entry.IsExpired() {
		return entry.Value, nil
	}

	// Callers arriving after an invalidation must not join a stale load
	flightKey := strconv.FormatUint(gen, 10) + ":" + key
	result, err, _ := s.sf.Do(flightKey, func() (any, error) {
		// Double-check after acquiring singleflight lock
		s.mu.RLock()
		entry, exists := s.entries[key]
		s.mu.RUnlock()

		if exists && !entry.IsExpired() {
			return entry.Value, nil
		}

		value, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if s.ttl > 0 {
			s.mu.Lock()
			if s.gen == gen {
				s.entries[key] = &Entry[T]{Value: value, Built: time.Now(), TTL: s.ttl}
			}
			s.mu.Unlock()
		}

		return value, nil
	})

	if err != nil {
		var zero T
		return zero, err
	}

	return result.(T), nil
}

// Invalidate removes the entry for key.
func (s *Store[T]) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.gen++
	s.mu.Unlock()
}

// InvalidateAll empties the store.
func (s *Store[T]) InvalidateAll() {
	s.mu.Lock()
	s.entries = make(map[string]*Entry[T])
	s.gen++
	s.mu.Unlock()
}
