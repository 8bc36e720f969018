package testutil

import (
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
	"github.com/preston-bernstein/sports-page-service/internal/domain/games"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/domain/teams"
)

// SampleTime is the generation instant used by page fixtures.
var SampleTime = time.Date(2024, 10, 13, 18, 0, 0, 0, time.UTC)

// SampleGame returns a not-started home/away matchup fixture with the provided id.
func SampleGame(id string) games.Game {
	return games.Game{
		ID:           id,
		Name:         "Boston Celtics at Los Angeles Lakers",
		ScheduledAt:  SampleTime.Add(5 * time.Hour),
		Status:       games.StatusNotStarted,
		StatusDetail: "7:30 PM ET",
		Teams: []games.TeamEntry{
			{TeamID: "13", Abbreviation: "LAL", DisplayName: "Los Angeles Lakers", ShortName: "Lakers", HomeAway: games.Home},
			{TeamID: "2", Abbreviation: "BOS", DisplayName: "Boston Celtics", ShortName: "Celtics", HomeAway: games.Away},
		},
	}
}

// SampleLeague returns a registry league, panicking on unknown ids; intended for tests.
func SampleLeague(id string) leagues.League {
	l, ok := leagues.Lookup(id)
	if !ok {
		panic("unknown league " + id)
	}
	return l
}

// SamplePage builds a page with one NBA league holding a favorite and an other game.
func SamplePage(refreshID string) aggregate.Page {
	return aggregate.Page{
		RefreshID:   refreshID,
		GeneratedAt: SampleTime,
		Favorites:   []string{"nba:13"},
		Leagues: []aggregate.LeagueView{{
			League: SampleLeague("nba"),
			Sections: []aggregate.Section{{
				Label:     "TODAY",
				Date:      SampleTime.Format(time.DateOnly),
				Favorites: []games.Game{SampleGame("fav-1")},
				Others:    []games.Game{SampleGame("other-1")},
			}},
			Teams: []teams.Team{
				{ID: "13", Abbreviation: "LAL", ShortName: "Lakers"},
				{ID: "2", Abbreviation: "BOS", ShortName: "Celtics"},
			},
		}},
	}
}
