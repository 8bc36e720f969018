package teststubs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/feed"
)

// StubFetcher is a test double for providers.FeedFetcher.
// Per-league errors take precedence over the shared Err.
type StubFetcher struct {
	Scoreboard feed.Scoreboard
	// ScoreboardByDay overrides Scoreboard for specific YYYYMMDD days.
	ScoreboardByDay map[string]feed.Scoreboard
	Standings       feed.Standings
	Teams           feed.Teams

	Err           error
	ScoreboardErr error
	StandingsErr  error
	TeamsErr      error
	LeagueErr     map[string]error

	// Block, when set, holds every call until it is closed or ctx ends.
	Block  chan struct{}
	Notify chan struct{}

	Calls atomic.Int32

	mu   sync.Mutex
	days []string
}

func (s *StubFetcher) FetchScoreboard(ctx context.Context, league leagues.League, day time.Time) (feed.Scoreboard, error) {
	key := day.Format("20060102")
	s.mu.Lock()
	s.days = append(s.days, league.ID+"/"+key)
	s.mu.Unlock()

	if err := s.enter(ctx, league, s.ScoreboardErr); err != nil {
		return feed.Scoreboard{}, err
	}
	if board, ok := s.ScoreboardByDay[key]; ok {
		return board, nil
	}
	return s.Scoreboard, nil
}

func (s *StubFetcher) FetchStandings(ctx context.Context, league leagues.League) (feed.Standings, error) {
	if err := s.enter(ctx, league, s.StandingsErr); err != nil {
		return feed.Standings{}, err
	}
	return s.Standings, nil
}

func (s *StubFetcher) FetchTeams(ctx context.Context, league leagues.League) (feed.Teams, error) {
	if err := s.enter(ctx, league, s.TeamsErr); err != nil {
		return feed.Teams{}, err
	}
	return s.Teams, nil
}

// Days returns the "league/YYYYMMDD" scoreboard requests seen so far.
func (s *StubFetcher) Days() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.days...)
}

func (s *StubFetcher) enter(ctx context.Context, league leagues.League, feedErr error) error {
	s.Calls.Add(1)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err, ok := s.LeagueErr[league.ID]; ok {
		return err
	}
	if feedErr != nil {
		return feedErr
	}
	return s.Err
}
