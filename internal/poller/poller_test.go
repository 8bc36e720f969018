package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
	"github.com/preston-bernstein/sports-page-service/internal/domain/favorites"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/metrics"
	"github.com/preston-bernstein/sports-page-service/internal/preferences"
	"github.com/preston-bernstein/sports-page-service/internal/store"
	"github.com/preston-bernstein/sports-page-service/internal/teststubs"
)

type stubRefresher struct {
	mu      sync.Mutex
	calls   int
	failAll bool
	block   chan struct{}
	started chan struct{}

	lastActive []leagues.League
	lastFavs   favorites.Set
	lastNow    time.Time
}

func (s *stubRefresher) RefreshAll(ctx context.Context, active []leagues.League, favs favorites.Set, now time.Time) aggregate.Page {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.lastActive, s.lastFavs, s.lastNow = active, favs, now
	failAll := s.failAll
	s.mu.Unlock()

	if s.started != nil {
		select {
		case s.started <- struct{}{}:
		default:
		}
	}
	if s.block != nil {
		<-s.block
	}

	page := aggregate.Page{RefreshID: fmt.Sprintf("r%d", n), GeneratedAt: now}
	for _, l := range active {
		view := aggregate.LeagueView{League: l}
		if failAll {
			view.Failed = []string{"scoreboard"}
		}
		page.Leagues = append(page.Leagues, view)
	}
	return page
}

func (s *stubRefresher) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubRefresher) setFailAll(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAll = v
}

type staticPrefs struct {
	active []leagues.League
	favs   favorites.Set
}

func (p staticPrefs) ActiveLeagues() []leagues.League { return p.active }
func (p staticPrefs) Favorites() favorites.Set        { return p.favs }

type recordingWriter struct {
	mu      sync.Mutex
	written []string
	err     error
}

func (w *recordingWriter) WritePageSnapshot(page aggregate.Page) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.written = append(w.written, page.RefreshID)
	return w.err
}

func twoLeagues() staticPrefs {
	return staticPrefs{
		active: leagues.Filter([]string{"nba", "nhl"}),
		favs:   favorites.NewSet(favorites.NewKey("nba", "13")),
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestRefreshNowPublishesPage(t *testing.T) {
	ref := &stubRefresher{}
	pages := store.NewPageStore()
	writer := &recordingWriter{}
	rec := metrics.NewRecorder()
	p := New(ref, twoLeagues(), pages, writer, nil, rec, Config{})

	page, err := p.RefreshNow(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if page.RefreshID != "r1" || len(page.Leagues) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	stored, ok := pages.Page()
	if !ok || stored.RefreshID != "r1" {
		t.Fatalf("expected page published to sink")
	}
	if len(writer.written) != 1 || writer.written[0] != "r1" {
		t.Fatalf("expected snapshot written, got %v", writer.written)
	}
	if !ref.lastFavs.Has("nba", "13") || len(ref.lastActive) != 2 {
		t.Fatalf("expected preferences passed through")
	}

	st := p.Status()
	if !st.IsReady() || st.Cycles != 1 || st.LastRefreshID != "r1" || st.LastError != "" {
		t.Fatalf("unexpected status %+v", st)
	}
	if snap := rec.RefreshSnapshot(); snap.Cycles != 1 || snap.FailedCycles != 0 {
		t.Fatalf("unexpected refresh metrics %+v", snap)
	}
}

func TestRefreshNowAllLeaguesFailed(t *testing.T) {
	ref := &stubRefresher{failAll: true}
	rec := metrics.NewRecorder()
	p := New(ref, twoLeagues(), nil, nil, nil, rec, Config{})

	page, err := p.RefreshNow(context.Background())
	if !errors.Is(err, ErrAllLeaguesFailed) {
		t.Fatalf("expected ErrAllLeaguesFailed, got %v", err)
	}
	if len(page.Leagues) != 2 {
		t.Fatalf("expected page returned alongside error")
	}
	st := p.Status()
	if st.ConsecutiveFailures != 1 || st.LastError == "" || st.FailedLeagues != 2 {
		t.Fatalf("unexpected status %+v", st)
	}
	if snap := rec.RefreshSnapshot(); snap.FailedCycles != 1 || snap.LeagueFailures != 2 {
		t.Fatalf("unexpected refresh metrics %+v", snap)
	}

	ref.setFailAll(false)
	if _, err := p.RefreshNow(context.Background()); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if st := p.Status(); st.ConsecutiveFailures != 0 || !st.IsReady() {
		t.Fatalf("expected failures reset, got %+v", st)
	}
}

func TestPartialFailureStillSucceeds(t *testing.T) {
	fetcher := &teststubs.StubFetcher{LeagueErr: map[string]error{"nhl": errors.New("down")}}
	orch := aggregate.NewOrchestrator(fetcher, nil, nil)
	prefs := preferences.Load(context.Background(), nil, preferences.Overrides{Leagues: []string{"nba", "nhl"}}, nil)
	p := New(orch, prefs, nil, nil, nil, nil, Config{})

	page, err := p.RefreshNow(context.Background())
	if err != nil {
		t.Fatalf("expected partial failure to succeed, got %v", err)
	}
	nhl, _ := page.League("nhl")
	nba, _ := page.League("nba")
	if len(nhl.Failed) != 3 || len(nba.Failed) != 0 {
		t.Fatalf("expected only nhl feeds failed, got nba=%v nhl=%v", nba.Failed, nhl.Failed)
	}
	if p.Status().FailedLeagues != 1 {
		t.Fatalf("expected one failed league in status")
	}
}

func TestRefreshWithNoActiveLeagues(t *testing.T) {
	p := New(&stubRefresher{}, staticPrefs{}, nil, nil, nil, nil, Config{})
	page, err := p.RefreshNow(context.Background())
	if err != nil || len(page.Leagues) != 0 {
		t.Fatalf("expected empty successful page, got %+v err %v", page, err)
	}
}

func TestSnapshotWriteFailureDoesNotFailCycle(t *testing.T) {
	writer := &recordingWriter{err: errors.New("disk full")}
	p := New(&stubRefresher{}, twoLeagues(), nil, writer, nil, nil, Config{})
	if _, err := p.RefreshNow(context.Background()); err != nil {
		t.Fatalf("expected snapshot failure to be tolerated, got %v", err)
	}
	if !p.Status().IsReady() {
		t.Fatalf("expected ready after successful refresh")
	}
}

func TestRefreshNowCanceledContext(t *testing.T) {
	ref := &stubRefresher{}
	p := New(ref, twoLeagues(), nil, nil, nil, nil, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.RefreshNow(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if ref.Calls() != 0 {
		t.Fatalf("expected no refresh on canceled context")
	}
}

func TestRefreshUsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("PDT", -7*3600)
	ref := &stubRefresher{}
	p := New(ref, twoLeagues(), nil, nil, nil, nil, Config{Location: loc})
	if _, err := p.RefreshNow(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if ref.lastNow.Location() != loc {
		t.Fatalf("expected now in configured location, got %s", ref.lastNow.Location())
	}
}

func TestScheduledRefreshSkipsWhileRunning(t *testing.T) {
	ref := &stubRefresher{block: make(chan struct{}), started: make(chan struct{}, 1)}
	p := New(ref, twoLeagues(), nil, nil, nil, nil, Config{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.RefreshNow(context.Background())
	}()
	select {
	case <-ref.started:
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for refresh to start")
	}

	p.scheduledRefresh(context.Background())
	if ref.Calls() != 1 {
		t.Fatalf("expected scheduled refresh to be skipped, got %d calls", ref.Calls())
	}

	close(ref.block)
	<-done
	p.scheduledRefresh(context.Background())
	if ref.Calls() != 2 {
		t.Fatalf("expected scheduled refresh once idle, got %d calls", ref.Calls())
	}
}

func TestStartRunsInitialRefreshAndStops(t *testing.T) {
	ref := &stubRefresher{}
	pages := store.NewPageStore()
	p := New(ref, twoLeagues(), pages, nil, nil, nil, Config{Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	p.Start(ctx)

	waitFor(t, func() bool { return p.Status().IsReady() })
	if ref.Calls() != 1 {
		t.Fatalf("expected exactly one initial refresh, got %d", ref.Calls())
	}
	if _, ok := pages.Page(); !ok {
		t.Fatalf("expected initial page stored")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := p.Stop(stopCtx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := p.Stop(stopCtx); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestStopWaitsForInitialRefresh(t *testing.T) {
	ref := &stubRefresher{block: make(chan struct{}), started: make(chan struct{}, 1)}
	writer := &recordingWriter{}
	p := New(ref, twoLeagues(), nil, writer, nil, nil, Config{Interval: time.Hour})

	p.Start(context.Background())
	select {
	case <-ref.started:
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for initial refresh")
	}

	stopped := make(chan error, 1)
	go func() { stopped <- p.Stop(context.Background()) }()

	select {
	case err := <-stopped:
		t.Fatalf("stop returned while initial refresh was running: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(ref.block)
	select {
	case err := <-stopped:
		if err != nil {
			t.Fatalf("stop: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("stop did not return after initial refresh finished")
	}
	writer.mu.Lock()
	defer writer.mu.Unlock()
	if len(writer.written) != 1 {
		t.Fatalf("expected initial snapshot written before stop returned, got %v", writer.written)
	}
}

func TestStopTimesOutOnSlowInitialRefresh(t *testing.T) {
	ref := &stubRefresher{block: make(chan struct{}), started: make(chan struct{}, 1)}
	defer close(ref.block)
	p := New(ref, twoLeagues(), nil, nil, nil, nil, Config{Interval: time.Hour})

	p.Start(context.Background())
	<-ref.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.Stop(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestStopBeforeStart(t *testing.T) {
	p := New(&stubRefresher{}, nil, nil, nil, nil, nil, Config{})
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestNewDefaultsInterval(t *testing.T) {
	if got := New(nil, nil, nil, nil, nil, nil, Config{}).Interval(); got != defaultInterval {
		t.Fatalf("expected default interval, got %s", got)
	}
}

func TestRefreshWithoutRefresher(t *testing.T) {
	if _, err := New(nil, nil, nil, nil, nil, nil, Config{}).RefreshNow(context.Background()); err == nil {
		t.Fatalf("expected error without refresher")
	}
}

func TestStatusIsReady(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name   string
		status Status
		want   bool
	}{
		{"never succeeded", Status{}, false},
		{"recent success", Status{LastSuccess: now}, true},
		{"some failures", Status{LastSuccess: now, ConsecutiveFailures: 2}, true},
		{"failing repeatedly", Status{LastSuccess: now, ConsecutiveFailures: 3}, false},
	}
	for _, tc := range cases {
		if got := tc.status.IsReady(); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
