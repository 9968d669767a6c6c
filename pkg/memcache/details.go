// pkg/memcache/details.go
package mem

import (
	"sync"
	"time"
)

type DetailStore interface {
	Set(placeName, location, details string)

	// Get returns the cached description for the place if not expired.
	Get(placeName, location string) (string, bool)

	Len() int
}

type entry struct {
	details   string
	expiresAt time.Time
}

type key struct {
	placeName string
	location  string
}

type DetailCache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	now  func() time.Time
	data map[key]entry
}

func NewDetailCache(ttl time.Duration) *DetailCache {
	return &DetailCache{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[key]entry),
	}
}

func (s *DetailCache) Set(placeName, location, details string) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.data[key{placeName, location}] = entry{
		details:   details,
		expiresAt: s.now().Add(s.ttl),
	}
}

func (s *DetailCache) Get(placeName, location string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key{placeName, location}]
	if !ok || s.now().After(e.expiresAt) {
		return "", false
	}
	return e.details, true
}

func (s *DetailCache) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// sweepLocked drops expired entries so the map only grows with live places.
func (s *DetailCache) sweepLocked() {
	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
}
