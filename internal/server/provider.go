package server

import (
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/sports-page-service/internal/config"
	"github.com/preston-bernstein/sports-page-service/internal/providers"
	"github.com/preston-bernstein/sports-page-service/internal/providers/espn"
	"github.com/preston-bernstein/sports-page-service/internal/providers/fixture"
)

func selectFetcher(cfg config.Config, logger *slog.Logger) providers.FeedFetcher {
	switch cfg.Provider {
	case config.ProviderESPN, "":
		return espn.NewClient(espn.Config{
			BaseURL:          cfg.Feeds.BaseURL,
			StandingsBaseURL: cfg.Feeds.StandingsBaseURL,
			UserAgent:        cfg.Feeds.UserAgent,
			HTTPClient:       &http.Client{Timeout: cfg.Feeds.Timeout},
		})
	case config.ProviderFixture:
		return fixture.New()
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
