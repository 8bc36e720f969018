package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/sports-page-service/internal/bucket"
	"github.com/preston-bernstein/sports-page-service/internal/domain/favorites"
	"github.com/preston-bernstein/sports-page-service/internal/domain/games"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-page-service/internal/domain/teams"
	"github.com/preston-bernstein/sports-page-service/internal/feed"
	"github.com/preston-bernstein/sports-page-service/internal/logging"
	"github.com/preston-bernstein/sports-page-service/internal/metrics"
	"github.com/preston-bernstein/sports-page-service/internal/providers"
	"github.com/preston-bernstein/sports-page-service/internal/ranking"
	"github.com/preston-bernstein/sports-page-service/internal/timeutil"
)

// Orchestrator fetches, normalizes and groups every active league into a Page.
type Orchestrator struct {
	fetcher  providers.FeedFetcher
	logger   *slog.Logger
	recorder *metrics.Recorder
	newID    func() string
}

// NewOrchestrator builds an orchestrator over the given fetcher. logger and recorder may be nil.
func NewOrchestrator(fetcher providers.FeedFetcher, logger *slog.Logger, recorder *metrics.Recorder) *Orchestrator {
	return &Orchestrator{
		fetcher:  fetcher,
		logger:   logger,
		recorder: recorder,
		newID:    uuid.NewString,
	}
}

// RefreshAll builds a fresh Page. Each league is processed in its own goroutine and a failure in
// one league only empties the affected slice of that league. It returns once every fetch has settled.
func (o *Orchestrator) RefreshAll(ctx context.Context, active []leagues.League, favs favorites.Set, now time.Time) Page {
	page := Page{
		RefreshID:   o.newID(),
		GeneratedAt: now,
		Favorites:   favs.Strings(),
		Leagues:     make([]LeagueView, len(active)),
	}
	logger := o.logger
	if logger != nil {
		logger = logger.With(logging.FieldRefreshID, page.RefreshID)
	}

	var wg sync.WaitGroup
	for i, league := range active {
		wg.Add(1)
		go func(i int, league leagues.League) {
			defer wg.Done()
			page.Leagues[i] = o.refreshLeague(ctx, logger, league, favs, now)
		}(i, league)
	}
	wg.Wait()
	return page
}

func (o *Orchestrator) refreshLeague(ctx context.Context, logger *slog.Logger, league leagues.League, favs favorites.Set, now time.Time) (view LeagueView) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(logger, "league refresh panicked", fmt.Errorf("%v", r), logging.FieldLeague, league.ID)
			view = emptyView(league, now, "panic")
		}
	}()
	if o.fetcher == nil {
		logging.Warn(logger, "no fetcher configured", logging.FieldLeague, league.ID)
		return emptyView(league, now, providers.FeedScoreboard, providers.FeedStandings, providers.FeedTeams)
	}

	var (
		wg        sync.WaitGroup
		gs        []games.Game
		groups    []standings.Group
		roster    []teams.Team
		boardErr  error
		tableErr  error
		rosterErr error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		defer recoverFetch(logger, league, providers.FeedScoreboard, &boardErr)
		gs, boardErr = o.fetchGames(ctx, logger, league, now)
	}()
	go func() {
		defer wg.Done()
		defer recoverFetch(logger, league, providers.FeedStandings, &tableErr)
		groups, tableErr = o.fetchStandings(ctx, logger, league)
	}()
	go func() {
		defer wg.Done()
		defer recoverFetch(logger, league, providers.FeedTeams, &rosterErr)
		roster, rosterErr = o.fetchTeams(ctx, logger, league)
	}()
	wg.Wait()

	view = LeagueView{
		League:    league,
		Sections:  buildSections(gs, league, favs, now),
		Standings: orEmptyGroups(groups),
		Columns:   standings.Columns(league.Sport),
		Teams:     orEmptyTeams(roster),
	}
	if boardErr != nil {
		view.Failed = append(view.Failed, providers.FeedScoreboard)
	}
	if tableErr != nil {
		view.Failed = append(view.Failed, providers.FeedStandings)
	}
	if rosterErr != nil {
		view.Failed = append(view.Failed, providers.FeedTeams)
	}
	logging.Debug(logger, "league refreshed", logging.FieldLeague, league.ID, logging.FieldCount, len(gs), "failed", view.Failed)
	return view
}

// fetchGames requests every day in the league's window concurrently and concatenates the results in
// day order. A failed day contributes nothing; the error reported is the first failure.
func (o *Orchestrator) fetchGames(ctx context.Context, logger *slog.Logger, league leagues.League, now time.Time) ([]games.Game, error) {
	days := timeutil.DaysAround(now, league.WindowDays())
	boards := make([]feed.Scoreboard, len(days))
	errs := make([]error, len(days))

	var wg sync.WaitGroup
	for i, day := range days {
		wg.Add(1)
		go func(i int, day time.Time) {
			defer wg.Done()
			defer recoverFetch(logger, league, providers.FeedScoreboard, &errs[i])
			start := time.Now()
			boards[i], errs[i] = o.fetcher.FetchScoreboard(ctx, league, day)
			o.recorder.RecordFeedFetch(league.ID, providers.FeedScoreboard, time.Since(start), errs[i])
			if errs[i] != nil {
				logging.Warn(logger, "scoreboard fetch failed", logging.FieldLeague, league.ID,
					logging.FieldDate, timeutil.FormatDate(day), "error", errs[i])
			}
		}(i, day)
	}
	wg.Wait()

	var firstErr error
	for _, err := range errs {
		if err != nil {
			firstErr = err
			break
		}
	}
	return dedupe(feed.AdaptScoreboard(league, feed.Merge(boards...))), firstErr
}

func (o *Orchestrator) fetchStandings(ctx context.Context, logger *slog.Logger, league leagues.League) ([]standings.Group, error) {
	start := time.Now()
	raw, err := o.fetcher.FetchStandings(ctx, league)
	o.recorder.RecordFeedFetch(league.ID, providers.FeedStandings, time.Since(start), err)
	if err != nil {
		logging.Warn(logger, "standings fetch failed", logging.FieldLeague, league.ID, "error", err)
		return []standings.Group{}, err
	}
	return ranking.RankGroups(feed.AdaptStandings(league, raw), league.Sport), nil
}

func (o *Orchestrator) fetchTeams(ctx context.Context, logger *slog.Logger, league leagues.League) ([]teams.Team, error) {
	start := time.Now()
	raw, err := o.fetcher.FetchTeams(ctx, league)
	o.recorder.RecordFeedFetch(league.ID, providers.FeedTeams, time.Since(start), err)
	if err != nil {
		logging.Warn(logger, "teams fetch failed", logging.FieldLeague, league.ID, "error", err)
		return []teams.Team{}, err
	}
	return feed.AdaptTeams(league, raw), nil
}

// dedupe keeps the first game seen for each id. Games without an id are always kept.
func dedupe(gs []games.Game) []games.Game {
	seen := make(map[string]struct{}, len(gs))
	out := make([]games.Game, 0, len(gs))
	for _, g := range gs {
		if g.ID != "" {
			if _, dup := seen[g.ID]; dup {
				continue
			}
			seen[g.ID] = struct{}{}
		}
		out = append(out, g)
	}
	return out
}

// buildSections splits the games, buckets each side, and lines the sides up by date in the order
// the combined bucketing produces.
func buildSections(gs []games.Game, league leagues.League, favs favorites.Set, now time.Time) []Section {
	split := favorites.Split(gs, league.ID, favs)
	favByDay := byDate(bucket.Group(split.Favorites, league, now))
	otherByDay := byDate(bucket.Group(split.Others, league, now))

	layout := bucket.Group(gs, league, now)
	out := make([]Section, 0, len(layout))
	for _, b := range layout {
		key := timeutil.FormatDate(b.Date)
		out = append(out, Section{
			Label:     b.Label,
			Date:      key,
			Favorites: orEmpty(favByDay[key]),
			Others:    orEmpty(otherByDay[key]),
		})
	}
	return out
}

func byDate(buckets []bucket.Bucket) map[string][]games.Game {
	out := make(map[string][]games.Game, len(buckets))
	for _, b := range buckets {
		out[timeutil.FormatDate(b.Date)] = b.Games
	}
	return out
}

func orEmpty(gs []games.Game) []games.Game {
	if gs == nil {
		return []games.Game{}
	}
	return gs
}

func orEmptyGroups(gs []standings.Group) []standings.Group {
	if gs == nil {
		return []standings.Group{}
	}
	return gs
}

func orEmptyTeams(ts []teams.Team) []teams.Team {
	if ts == nil {
		return []teams.Team{}
	}
	return ts
}

// recoverFetch turns a panic in a fetch goroutine into an error for that fetch.
func recoverFetch(logger *slog.Logger, league leagues.League, feedName string, errp *error) {
	if r := recover(); r != nil {
		*errp = fmt.Errorf("panic: %v", r)
		logging.Error(logger, "feed fetch panicked", *errp, logging.FieldLeague, league.ID, logging.FieldFeed, feedName)
	}
}

func emptyView(league leagues.League, now time.Time, failed ...string) LeagueView {
	return LeagueView{
		League:    league,
		Sections:  buildSections(nil, league, favorites.Set{}, now),
		Standings: []standings.Group{},
		Columns:   standings.Columns(league.Sport),
		Teams:     []teams.Team{},
		Failed:    failed,
	}
}
