package page

import (
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
	"github.com/preston-bernstein/sports-page-service/internal/domain/games"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/present"
)

// Store defines the contract for reading the latest page.
type Store interface {
	Page() (aggregate.Page, bool)
	League(id string) (aggregate.LeagueView, bool)
}

// CardSection is a display day rendered as score cards.
type CardSection struct {
	Label     string              `json:"label"`
	Date      string              `json:"date"`
	Favorites []present.ScoreCard `json:"favorites"`
	Others    []present.ScoreCard `json:"others"`
}

// Service coordinates page reads using a Store.
type Service struct {
	store Store
	loc   *time.Location
}

// NewService constructs a Service. Cards are rendered in loc, or the local zone when nil.
func NewService(store Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, loc: loc}
}

// Page returns the latest page if one has been built.
func (s *Service) Page() (aggregate.Page, bool) {
	return s.store.Page()
}

// League returns one league view of the latest page.
func (s *Service) League(id string) (aggregate.LeagueView, bool) {
	return s.store.League(id)
}

// Cards renders a league of the latest page as score cards.
func (s *Service) Cards(id string) ([]CardSection, bool) {
	view, ok := s.store.League(id)
	if !ok {
		return nil, false
	}
	return s.Render(view), true
}

// Render turns a league view's sections into score cards. Games without both a home and an
// away team are left out.
func (s *Service) Render(view aggregate.LeagueView) []CardSection {
	out := make([]CardSection, 0, len(view.Sections))
	for _, sec := range view.Sections {
		out = append(out, CardSection{
			Label:     sec.Label,
			Date:      sec.Date,
			Favorites: s.cards(sec.Favorites, view.League.Sport, true),
			Others:    s.cards(sec.Others, view.League.Sport, false),
		})
	}
	return out
}

func (s *Service) cards(gs []games.Game, sport leagues.Sport, favorite bool) []present.ScoreCard {
	out := make([]present.ScoreCard, 0, len(gs))
	for _, g := range gs {
		if card, ok := present.BuildScoreCard(g, sport, favorite, s.loc); ok {
			out = append(out, card)
		}
	}
	return out
}
