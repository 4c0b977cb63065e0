// Package tabs holds per-tab page state in memory. Nothing here
// survives a restart; durable state belongs to the history store.
package tabs

import (
	"sync"

	"github.com/google/uuid"

	"nectar/page"
)

// Store maps tab identifiers to the most recent page loaded in each
// tab. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	tabs map[string]*page.Result
}

// NewStore returns an empty tab store.
func NewStore() *Store {
	return &Store{tabs: make(map[string]*page.Result)}
}

// Open creates a new empty tab and returns its identifier.
func (s *Store) Open() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.tabs[id] = nil
	s.mu.Unlock()
	return id
}

// Set replaces the page displayed in tab id. An unknown id is created
// on the fly, so a caller that skipped Open still gets a live tab.
func (s *Store) Set(id string, result *page.Result) {
	s.mu.Lock()
	s.tabs[id] = result
	s.mu.Unlock()
}

// Get returns the page last stored for tab id. The second return
// value is false if the tab doesn't exist; a live tab that hasn't
// loaded anything yet returns (nil, true).
func (s *Store) Get(id string) (*page.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.tabs[id]
	return result, ok
}

// Close discards tab id and its page. Closing an unknown tab is a
// no-op.
func (s *Store) Close(id string) {
	s.mu.Lock()
	delete(s.tabs, id)
	s.mu.Unlock()
}

// Len returns the number of open tabs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tabs)
}

// IDs returns the identifiers of all open tabs, in no particular
// order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.tabs))
	for id := range s.tabs {
		ids = append(ids, id)
	}
	return ids
}
