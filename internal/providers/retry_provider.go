package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/feed"
	"github.com/preston-bernstein/sports-page-service/internal/metrics"
)

const (
	defaultRetryAttempts = 1
	defaultBackoff       = 200 * time.Millisecond
	maxBackoffInterval   = 5 * time.Second
	maxRetryAfter        = 10 * time.Second
)

// retryingFetcher wraps a FeedFetcher with exponential backoff. Every attempt is recorded on the metrics recorder.
type retryingFetcher struct {
	inner        FeedFetcher
	logger       *slog.Logger
	recorder     *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingFetcher wraps inner with retries. maxAttempts <= 0 means a single attempt; baseDelay <= 0 uses the default.
func NewRetryingFetcher(inner FeedFetcher, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, baseDelay time.Duration) FeedFetcher {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if baseDelay <= 0 {
		baseDelay = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	return &retryingFetcher{
		inner:        inner,
		logger:       logger,
		recorder:     recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			exp := backoff.NewExponentialBackOff()
			exp.InitialInterval = baseDelay
			exp.MaxInterval = maxBackoffInterval
			exp.MaxElapsedTime = 0
			return exp
		},
	}
}

func (r *retryingFetcher) FetchScoreboard(ctx context.Context, league leagues.League, day time.Time) (feed.Scoreboard, error) {
	return retry(ctx, r, league, FeedScoreboard, func(ctx context.Context) (feed.Scoreboard, error) {
		return r.inner.FetchScoreboard(ctx, league, day)
	})
}

func (r *retryingFetcher) FetchStandings(ctx context.Context, league leagues.League) (feed.Standings, error) {
	return retry(ctx, r, league, FeedStandings, func(ctx context.Context) (feed.Standings, error) {
		return r.inner.FetchStandings(ctx, league)
	})
}

func (r *retryingFetcher) FetchTeams(ctx context.Context, league leagues.League) (feed.Teams, error) {
	return retry(ctx, r, league, FeedTeams, func(ctx context.Context) (feed.Teams, error) {
		return r.inner.FetchTeams(ctx, league)
	})
}

func retry[T any](ctx context.Context, r *retryingFetcher, league leagues.League, feedName string, fn func(context.Context) (T, error)) (T, error) {
	var out T
	if r.inner == nil {
		return out, ErrProviderUnavailable
	}

	hint := &retryAfterBackOff{BackOff: r.newBackOff()}
	policy := backoff.WithContext(backoff.WithMaxRetries(hint, uint64(r.maxAttempts-1)), ctx)

	attempts := 0
	operation := func() error {
		attempts++
		start := time.Now()
		v, err := fn(ctx)
		r.recorder.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			out = v
			return nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.providerName, rl.RetryAfter)
			hint.next = min(rl.RetryAfter, maxRetryAfter)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return backoff.Permanent(errors.Join(err, ctxErr))
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "feed fetch retry",
			"league", league.ID, "feed", feedName, "attempt", attempts, "max_attempts", r.maxAttempts,
			"wait_ms", wait.Milliseconds(), "err", err)
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		if r.maxAttempts > 1 {
			logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "feed fetch failed",
				"league", league.ID, "feed", feedName, "attempts", attempts, "err", err)
		}
		var zero T
		return zero, err
	}
	return out, nil
}

// retryAfterBackOff substitutes a pending Retry-After hint for the next computed delay.
type retryAfterBackOff struct {
	backoff.BackOff
	next time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	d := b.BackOff.NextBackOff()
	if d == backoff.Stop {
		return d
	}
	if b.next > 0 {
		d, b.next = b.next, 0
	}
	return d
}

func (b *retryAfterBackOff) Reset() {
	b.next = 0
	b.BackOff.Reset()
}
