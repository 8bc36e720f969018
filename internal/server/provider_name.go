package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/sports-page-service/internal/config"
	"github.com/preston-bernstein/sports-page-service/internal/providers"
	"github.com/preston-bernstein/sports-page-service/internal/providers/espn"
	"github.com/preston-bernstein/sports-page-service/internal/providers/fixture"
)

// providerName is the label used for provider metrics and logs. The configured name wins;
// otherwise it is derived from the fetcher.
func providerName(raw string, fetcher providers.FeedFetcher) string {
	if name := strings.ToLower(strings.TrimSpace(raw)); name != "" {
		return name
	}
	switch f := fetcher.(type) {
	case *espn.Client:
		return config.ProviderESPN
	case *fixture.Provider:
		return config.ProviderFixture
	case nil:
		return "provider"
	default:
		return strings.ToLower(fmt.Sprintf("%T", f))
	}
}
