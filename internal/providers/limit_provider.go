package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/feed"
)

const defaultMaxInFlight = 6

// limitedFetcher caps the number of concurrent upstream requests across all leagues.
type limitedFetcher struct {
	next   FeedFetcher
	slots  chan struct{}
	logger *slog.Logger
	name   string
}

// NewLimitedFetcher returns a FeedFetcher that allows at most maxInFlight calls to next at once.
// Callers block for a free slot until their context ends.
func NewLimitedFetcher(next FeedFetcher, maxInFlight int, logger *slog.Logger) FeedFetcher {
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxInFlight
	}
	return &limitedFetcher{
		next:   next,
		slots:  make(chan struct{}, maxInFlight),
		logger: logger,
		name:   "limited",
	}
}

func (p *limitedFetcher) FetchScoreboard(ctx context.Context, league leagues.League, day time.Time) (feed.Scoreboard, error) {
	release, err := p.acquire(ctx, league, FeedScoreboard)
	if err != nil {
		return feed.Scoreboard{}, err
	}
	defer release()
	return p.next.FetchScoreboard(ctx, league, day)
}

func (p *limitedFetcher) FetchStandings(ctx context.Context, league leagues.League) (feed.Standings, error) {
	release, err := p.acquire(ctx, league, FeedStandings)
	if err != nil {
		return feed.Standings{}, err
	}
	defer release()
	return p.next.FetchStandings(ctx, league)
}

func (p *limitedFetcher) FetchTeams(ctx context.Context, league leagues.League) (feed.Teams, error) {
	release, err := p.acquire(ctx, league, FeedTeams)
	if err != nil {
		return feed.Teams{}, err
	}
	defer release()
	return p.next.FetchTeams(ctx, league)
}

func (p *limitedFetcher) acquire(ctx context.Context, league leagues.League, feedName string) (func(), error) {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider unavailable")
		return nil, ErrProviderUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "limited fetch canceled",
			"league", league.ID, "feed", feedName)
		return nil, ctx.Err()
	case p.slots <- struct{}{}:
	}
	return func() { <-p.slots }, nil
}

// InFlight reports how many calls currently hold a slot.
func (p *limitedFetcher) InFlight() int {
	return len(p.slots)
}
