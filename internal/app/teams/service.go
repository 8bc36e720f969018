package teams

import (
	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
	"github.com/preston-bernstein/sports-page-service/internal/domain/favorites"
	"github.com/preston-bernstein/sports-page-service/internal/domain/teams"
)

// Store defines the contract for reading league rosters.
type Store interface {
	League(id string) (aggregate.LeagueView, bool)
}

// Favorites reports the current favorite teams.
type Favorites interface {
	Favorites() favorites.Set
}

// Entry is a roster team marked with its favorite state.
type Entry struct {
	teams.Team
	Favorite bool `json:"favorite"`
}

// Service coordinates roster reads for the team picker.
type Service struct {
	store Store
	favs  Favorites
}

// NewService constructs a Service. favs may be nil, in which case no team is a favorite.
func NewService(store Store, favs Favorites) *Service {
	return &Service{store: store, favs: favs}
}

// Teams returns the roster of a league from the latest page, in feed order.
func (s *Service) Teams(leagueID string) ([]Entry, bool) {
	view, ok := s.store.League(leagueID)
	if !ok {
		return nil, false
	}
	var set favorites.Set
	if s.favs != nil {
		set = s.favs.Favorites()
	}
	out := make([]Entry, 0, len(view.Teams))
	for _, t := range view.Teams {
		out = append(out, Entry{Team: t, Favorite: set.Has(view.League.ID, t.ID)})
	}
	return out, true
}

// TeamByID returns a single roster entry if present.
func (s *Service) TeamByID(leagueID, teamID string) (Entry, bool) {
	entries, ok := s.Teams(leagueID)
	if !ok {
		return Entry{}, false
	}
	for _, e := range entries {
		if e.ID == teamID {
			return e, true
		}
	}
	return Entry{}, false
}
