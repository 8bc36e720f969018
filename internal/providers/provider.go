package providers

import (
	"context"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/feed"
)

// Feed names used in logs and metrics.
const (
	FeedScoreboard = "scoreboard"
	FeedStandings  = "standings"
	FeedTeams      = "teams"
)

// FeedFetcher retrieves raw league payloads from an upstream source.
// day is interpreted as a calendar date; only its year, month and day are used.
type FeedFetcher interface {
	FetchScoreboard(ctx context.Context, league leagues.League, day time.Time) (feed.Scoreboard, error)
	FetchStandings(ctx context.Context, league leagues.League) (feed.Standings, error)
	FetchTeams(ctx context.Context, league leagues.League) (feed.Teams, error)
}
