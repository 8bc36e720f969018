package aggregate

import (
	"strings"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/domain/games"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-page-service/internal/domain/teams"
)

// Section is one display day of a league, split into favorite and other games.
type Section struct {
	Label     string       `json:"label"`
	Date      string       `json:"date"`
	Favorites []games.Game `json:"favorites"`
	Others    []games.Game `json:"others"`
}

// Len is the number of games in the section.
func (s Section) Len() int {
	return len(s.Favorites) + len(s.Others)
}

// LeagueView is the normalized model for one league.
type LeagueView struct {
	League    leagues.League     `json:"league"`
	Sections  []Section          `json:"sections"`
	Standings []standings.Group  `json:"standings"`
	Columns   []standings.Column `json:"columns"`
	Teams     []teams.Team       `json:"teams"`
	// Failed names the feeds that could not be fetched this cycle.
	Failed []string `json:"failed,omitempty"`
}

// GameCount is the number of games across all sections.
func (v LeagueView) GameCount() int {
	n := 0
	for _, s := range v.Sections {
		n += s.Len()
	}
	return n
}

// Game finds a game by id in any section.
func (v LeagueView) Game(id string) (games.Game, bool) {
	for _, s := range v.Sections {
		for _, side := range [][]games.Game{s.Favorites, s.Others} {
			for _, g := range side {
				if g.ID == id {
					return g, true
				}
			}
		}
	}
	return games.Game{}, false
}

// Page is the result of one refresh across every active league, in the order requested.
type Page struct {
	RefreshID   string       `json:"refreshId"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Favorites   []string     `json:"favorites"`
	Leagues     []LeagueView `json:"leagues"`
}

// League returns the view for a league id, matched case-insensitively.
func (p Page) League(id string) (LeagueView, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, v := range p.Leagues {
		if v.League.ID == id {
			return v, true
		}
	}
	return LeagueView{}, false
}

// FailedLeagues counts leagues with at least one failed feed.
func (p Page) FailedLeagues() int {
	n := 0
	for _, v := range p.Leagues {
		if len(v.Failed) > 0 {
			n++
		}
	}
	return n
}

// IsZero reports whether the page has never been populated.
func (p Page) IsZero() bool {
	return p.RefreshID == "" && p.GeneratedAt.IsZero() && len(p.Leagues) == 0
}
