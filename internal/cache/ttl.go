package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is a small in-process TTL cache used for toolkit responses that are
// expensive or rate-limited upstream.
type Store struct {
	mu    sync.RWMutex
	items map[string]entry
}

func NewStore() *Store {
	return &Store{items: map[string]entry{}}
}

func (s *Store) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, false
	}
	return item.value, true
}

func (s *Store) Set(key string, value any, ttl time.Duration) {
	if s == nil || key == "" {
		return
	}
	expiry := time.Time{}
	if ttl > 0 {
		expiry = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.items[key] = entry{value: value, expiresAt: expiry}
	s.mu.Unlock()
}

func (s *Store) Delete(key string) {
	if s == nil || key == "" {
		return
	}
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// GetOrFill returns the cached value for key, or runs fill and caches its
// result for ttl. A fill error is returned without caching anything.
func (s *Store) GetOrFill(key string, ttl time.Duration, fill func() (any, error)) (any, error) {
	if value, ok := s.Get(key); ok {
		return value, nil
	}
	value, err := fill()
	if err != nil {
		return nil, err
	}
	s.Set(key, value, ttl)
	return value, nil
}
