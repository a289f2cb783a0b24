// Package dedup keeps the session set of tickers that have already been
// surfaced as trade ideas.
package dedup

import (
	"sort"
	"strings"
	"sync"
)

// Store is a session-scoped ticker set. It is safe for concurrent use.
// Entries are only forgotten through Clear.
type Store struct {
	mu     sync.RWMutex
	posted map[string]struct{}
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{posted: make(map[string]struct{})}
}

// Normalize uppercases and trims a ticker symbol.
func Normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Has reports whether ticker was added since the last Clear.
func (s *Store) Has(ticker string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.posted[Normalize(ticker)]
	return ok
}

// Add records ticker as posted.
func (s *Store) Add(ticker string) {
	key := Normalize(ticker)
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posted[key] = struct{}{}
}

// Clear forgets every posted ticker.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posted = make(map[string]struct{})
}

// Len returns the number of posted tickers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posted)
}

// List returns the posted tickers sorted alphabetically.
func (s *Store) List() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.posted))
	for t := range s.posted {
		out = append(out, t)
	}
	s.mu.RUnlock()
	sort.Strings(out)
	return out
}
