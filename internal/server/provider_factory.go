package server

import (
	"log/slog"

	"github.com/preston-bernstein/sports-page-service/internal/config"
	"github.com/preston-bernstein/sports-page-service/internal/metrics"
	"github.com/preston-bernstein/sports-page-service/internal/providers"
)

// providerFactory assembles the feed fetcher with shared wrappers (in-flight limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.FeedFetcher {
	return f.wrap(cfg, selectFetcher(cfg, f.logger))
}

// wrap limits concurrent upstream requests, then retries each request independently.
func (f providerFactory) wrap(cfg config.Config, base providers.FeedFetcher) providers.FeedFetcher {
	limited := providers.NewLimitedFetcher(base, cfg.Feeds.MaxInFlight, f.logger)
	return providers.NewRetryingFetcher(limited, f.logger, f.metrics, providerName(cfg.Provider, base), cfg.Feeds.RetryAttempts, cfg.Feeds.RetryDelay)
}
