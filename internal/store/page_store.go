package store

import (
	"sync"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
)

// PageStore keeps the most recent page in memory. Readers get the page by value; the
// slices inside are never mutated after a refresh produces them.
type PageStore struct {
	mu   sync.RWMutex
	page aggregate.Page
	set  bool
}

// NewPageStore constructs an empty PageStore.
func NewPageStore() *PageStore {
	return &PageStore{}
}

// Page returns the latest page and whether one has been stored.
func (s *PageStore) Page() (aggregate.Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page, s.set
}

// League returns one league view of the latest page.
func (s *PageStore) League(id string) (aggregate.LeagueView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return aggregate.LeagueView{}, false
	}
	return s.page.League(id)
}

// SetPage replaces the stored page.
func (s *PageStore) SetPage(page aggregate.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
	s.set = true
}
