package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
	"github.com/preston-bernstein/sports-page-service/internal/domain/favorites"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/logging"
	"github.com/preston-bernstein/sports-page-service/internal/metrics"
)

const (
	defaultInterval = 5 * time.Minute
	readyFailures   = 3
)

// ErrAllLeaguesFailed is reported when every active league lost at least one feed in a cycle.
var ErrAllLeaguesFailed = errors.New("every active league failed to refresh")

// Refresher builds a page for the given leagues and favorites.
type Refresher interface {
	RefreshAll(ctx context.Context, active []leagues.League, favs favorites.Set, now time.Time) aggregate.Page
}

// Preferences supplies the active leagues and favorites at the start of each cycle.
type Preferences interface {
	ActiveLeagues() []leagues.League
	Favorites() favorites.Set
}

// PageSink receives every page the poller builds.
type PageSink interface {
	SetPage(page aggregate.Page)
}

// SnapshotWriter persists page snapshots to disk.
type SnapshotWriter interface {
	WritePageSnapshot(page aggregate.Page) error
}

// Config tunes the poller. Zero values take defaults.
type Config struct {
	Interval time.Duration
	// Location is the display timezone passed to the refresher as "now".
	Location *time.Location
}

// Poller refreshes the page on a cron schedule and on demand. Scheduled runs are skipped
// while a refresh is still in flight; on-demand runs wait for it.
type Poller struct {
	refresher Refresher
	prefs     Preferences
	sink      PageSink
	writer    SnapshotWriter
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	now       func() time.Time

	refreshMu sync.Mutex

	startMu  sync.Mutex
	started  bool
	stopped  bool
	cron     *cron.Cron
	stopOnce sync.Once
	initial  sync.WaitGroup

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	Cycles              int
	LastError           string
	LastRefreshID       string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastDuration        time.Duration
	FailedLeagues       int
}

// IsReady reports whether the poller has had a success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailures
}

// New constructs a Poller. sink, writer, logger and recorder may be nil.
func New(refresher Refresher, prefs Preferences, sink PageSink, writer SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Poller{
		refresher: refresher,
		prefs:     prefs,
		sink:      sink,
		writer:    writer,
		logger:    logger,
		metrics:   recorder,
		interval:  cfg.Interval,
		now:       func() time.Time { return time.Now().In(loc) },
	}
}

// Interval returns the schedule period.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start runs one refresh immediately, then schedules refreshes every interval until ctx
// is cancelled or Stop is called. Calling Start twice is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.started {
		return
	}
	p.started = true

	p.cron = cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cronLogger{p.logger}), cron.SkipIfStillRunning(cronLogger{p.logger})),
	)
	p.cron.Schedule(cron.Every(p.interval), cron.FuncJob(func() { p.scheduledRefresh(ctx) }))

	logging.Info(p.logger, "poller started", logging.FieldDurationMS, p.interval.Milliseconds())
	p.initial.Add(1)
	go func() {
		defer p.initial.Done()
		p.scheduledRefresh(ctx)
		p.startMu.Lock()
		defer p.startMu.Unlock()
		if !p.stopped {
			p.cron.Start()
		}
	}()
	go func() {
		<-ctx.Done()
		_ = p.Stop(context.Background())
	}()
}

// Stop halts the schedule and waits for a running refresh, including the initial one, to
// finish or ctx to end.
func (p *Poller) Stop(ctx context.Context) error {
	p.startMu.Lock()
	c := p.cron
	p.stopped = true
	p.startMu.Unlock()
	if c == nil {
		return nil
	}
	var err error
	p.stopOnce.Do(func() {
		done := make(chan struct{})
		go func() {
			p.initial.Wait()
			<-c.Stop().Done()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			err = ctx.Err()
		}
		logging.Info(p.logger, "poller stopped")
	})
	return err
}

// RefreshNow runs a refresh immediately, waiting for any refresh already in flight.
func (p *Poller) RefreshNow(ctx context.Context) (aggregate.Page, error) {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()
	return p.refresh(ctx, "manual")
}

func (p *Poller) scheduledRefresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if !p.refreshMu.TryLock() {
		logging.Debug(p.logger, "refresh skipped, previous cycle still running")
		return
	}
	defer p.refreshMu.Unlock()
	_, _ = p.refresh(ctx, "scheduled")
}

func (p *Poller) refresh(ctx context.Context, trigger string) (aggregate.Page, error) {
	if p.refresher == nil {
		return aggregate.Page{}, errors.New("poller has no refresher")
	}
	if err := ctx.Err(); err != nil {
		return aggregate.Page{}, err
	}
	start := p.now()
	p.recordAttempt(start)

	var (
		active []leagues.League
		favs   favorites.Set
	)
	if p.prefs != nil {
		active, favs = p.prefs.ActiveLeagues(), p.prefs.Favorites()
	}

	page := p.refresher.RefreshAll(ctx, active, favs, start)
	if p.sink != nil {
		p.sink.SetPage(page)
	}
	if p.writer != nil {
		if err := p.writer.WritePageSnapshot(page); err != nil {
			logging.Error(p.logger, "page snapshot write failed", err, logging.FieldRefreshID, page.RefreshID)
		}
	}

	duration := time.Since(start)
	failed := page.FailedLeagues()
	var err error
	if len(active) > 0 && failed == len(active) {
		err = fmt.Errorf("%w (%d leagues)", ErrAllLeaguesFailed, failed)
	}
	p.metrics.RecordRefreshCycle(duration, failed, err)

	attrs := []any{
		logging.FieldRefreshID, page.RefreshID,
		"trigger", trigger,
		logging.FieldCount, len(page.Leagues),
		"failed_leagues", failed,
		logging.FieldDurationMS, duration.Milliseconds(),
	}
	if err != nil {
		logging.Error(p.logger, "page refresh failed", err, attrs...)
		p.recordFailure(err, page, duration)
		return page, err
	}
	logging.Info(p.logger, "page refreshed", attrs...)
	p.recordSuccess(start, page, duration)
	return page, nil
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, page aggregate.Page, duration time.Duration) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.Cycles++
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastRefreshID = page.RefreshID
	p.status.LastDuration = duration
	p.status.FailedLeagues = page.FailedLeagues()
}

func (p *Poller) recordFailure(err error, page aggregate.Page, duration time.Duration) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.Cycles++
	p.status.ConsecutiveFailures++
	p.status.LastError = err.Error()
	p.status.LastRefreshID = page.RefreshID
	p.status.LastDuration = duration
	p.status.FailedLeagues = page.FailedLeagues()
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
