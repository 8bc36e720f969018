package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/feed"
	"github.com/preston-bernstein/sports-page-service/internal/providers"
	"github.com/preston-bernstein/sports-page-service/internal/timeutil"
)

// Config controls how the client reaches the ESPN site API.
type Config struct {
	BaseURL          string
	StandingsBaseURL string
	UserAgent        string
	HTTPClient       *http.Client
}

// Client fetches raw scoreboard, standings and roster payloads.
type Client struct {
	baseURL      string
	standingsURL string
	userAgent    string
	httpClient   httpDoer
	now          func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:      normalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		standingsURL: normalizeBaseURL(cfg.StandingsBaseURL, defaultStandingsURL),
		userAgent:    ua,
		httpClient:   resolveHTTPClient(cfg.HTTPClient),
		now:          time.Now,
	}
}

// FetchScoreboard retrieves the scoreboard for one calendar day.
func (c *Client) FetchScoreboard(ctx context.Context, league leagues.League, day time.Time) (feed.Scoreboard, error) {
	query := url.Values{"dates": []string{timeutil.FormatFeedDate(day)}}
	body, err := c.get(ctx, providers.FeedScoreboard, c.baseURL+"/"+league.FeedPath+"/scoreboard", query)
	if err != nil {
		return feed.Scoreboard{}, err
	}
	board, err := feed.DecodeScoreboard(body)
	if err != nil {
		return feed.Scoreboard{}, fmt.Errorf("espn: decode %s scoreboard: %w", league.ID, err)
	}
	return board, nil
}

// FetchStandings retrieves the current standings tree.
func (c *Client) FetchStandings(ctx context.Context, league leagues.League) (feed.Standings, error) {
	body, err := c.get(ctx, providers.FeedStandings, c.standingsURL+"/"+league.FeedPath+"/standings", nil)
	if err != nil {
		return feed.Standings{}, err
	}
	st, err := feed.DecodeStandings(body)
	if err != nil {
		return feed.Standings{}, fmt.Errorf("espn: decode %s standings: %w", league.ID, err)
	}
	return st, nil
}

// FetchTeams retrieves the league roster.
func (c *Client) FetchTeams(ctx context.Context, league leagues.League) (feed.Teams, error) {
	body, err := c.get(ctx, providers.FeedTeams, c.baseURL+"/"+league.FeedPath+"/teams", nil)
	if err != nil {
		return feed.Teams{}, err
	}
	roster, err := feed.DecodeTeams(body)
	if err != nil {
		return feed.Teams{}, fmt.Errorf("espn: decode %s teams: %w", league.ID, err)
	}
	return roster, nil
}

func (c *Client) get(ctx context.Context, feedName, endpoint string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("espn: build %s request: %w", feedName, err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("espn: %s request: %w", feedName, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "espn " + feedName + " rate limited",
		}
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, &providers.StatusError{Provider: providerName, Feed: feedName, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("espn: read %s body: %w", feedName, err)
	}
	return body, nil
}
