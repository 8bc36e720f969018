package espn

import "time"

const (
	providerName              = "espn"
	defaultBaseURL            = "https://site.api.espn.com/apis/site/v2/sports"
	defaultStandingsURL       = "https://site.web.api.espn.com/apis/v2/sports"
	defaultHTTPTimeout        = 10 * time.Second
	defaultUserAgent          = "sports-page-service/1.0"
	maxResponseBytes    int64 = 8 << 20
)
