package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type feedStats struct {
	fetches     int
	failures    int
	lastLatency time.Duration
}

type refreshStats struct {
	cycles         int
	failedCycles   int
	leagueFailures int
	lastDuration   time.Duration
}

// Recorder captures lightweight, in-memory metrics about upstream calls and refresh cycles.
// When telemetry is enabled the same events are forwarded to OpenTelemetry instruments.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*providerStats
	feeds   map[feedKey]*feedStats
	refresh refreshStats
	otel    *otelInstruments
}

type feedKey struct {
	league string
	feed   string
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		feeds: make(map[feedKey]*feedStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordFeedFetch tracks one scoreboard, standings or teams fetch for a league.
func (r *Recorder) RecordFeedFetch(league, feed string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	key := feedKey{league: league, feed: feed}
	stats, ok := r.feeds[key]
	if !ok {
		stats = &feedStats{}
		r.feeds[key] = stats
	}
	stats.fetches++
	stats.lastLatency = duration
	if err != nil {
		stats.failures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFeedFetch(league, feed, duration, err)
	}
}

// RecordRefreshCycle tracks one full refresh. failedLeagues counts leagues that fell back to an empty view.
func (r *Recorder) RecordRefreshCycle(duration time.Duration, failedLeagues int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.refresh.cycles++
	r.refresh.lastDuration = duration
	r.refresh.leagueFailures += failedLeagues
	if err != nil {
		r.refresh.failedCycles++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRefresh(duration, failedLeagues, err)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// FeedSnapshot is a copy of the fetch counters for one league feed.
type FeedSnapshot struct {
	Fetches     int
	Failures    int
	LastLatency time.Duration
}

func (r *Recorder) FeedSnapshot(league, feed string) FeedSnapshot {
	if r == nil {
		return FeedSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.feeds[feedKey{league: league, feed: feed}]
	if !ok {
		return FeedSnapshot{}
	}
	return FeedSnapshot{Fetches: stats.fetches, Failures: stats.failures, LastLatency: stats.lastLatency}
}

// RefreshSnapshot is a copy of the refresh cycle counters.
type RefreshSnapshot struct {
	Cycles         int
	FailedCycles   int
	LeagueFailures int
	LastDuration   time.Duration
}

func (r *Recorder) RefreshSnapshot() RefreshSnapshot {
	if r == nil {
		return RefreshSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return RefreshSnapshot{
		Cycles:         r.refresh.cycles,
		FailedCycles:   r.refresh.failedCycles,
		LeagueFailures: r.refresh.leagueFailures,
		LastDuration:   r.refresh.lastDuration,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ensureStats must be called with mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
