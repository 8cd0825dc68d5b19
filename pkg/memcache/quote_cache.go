// pkg/mem/quote_cache.go
package mem

import (
	"sync"
	"time"
)

// QuoteStore keeps short-lived values from external APIs, keyed by request
// shape. Quotes from the swap aggregator only stay valid for a handful of
// seconds, so entries carry their own TTL.
type QuoteStore interface {
	Set(key string, value interface{}, ttl time.Duration)

	// Get returns the cached value if present and not expired.
	Get(key string) (interface{}, bool)

	// Delete removes a key regardless of expiry.
	Delete(key string)
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

type Quotes struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewQuotes() *Quotes {
	return &Quotes{
		data: make(map[string]entry),
	}
}

func (s *Quotes) Set(key string, value interface{}, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *Quotes) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, key) // cleanup expired
		return nil, false
	}
	return e.value, true
}

func (s *Quotes) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}
