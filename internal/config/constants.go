package config

import "time"

const (
	envConfigFile      = "CONFIG_FILE"
	envPort            = "PORT"
	envRefreshInterval = "REFRESH_INTERVAL"
	envProvider        = "PROVIDER"
	envTimezone        = "TZ_DISPLAY"
	envLeagues         = "LEAGUES"
	envFavorites       = "FAV_TEAMS"
	envHeadless        = "HEADLESS"
	envExportPath      = "EXPORT_PATH"
	envAdminToken      = "ADMIN_TOKEN"
	envCORSOrigins     = "CORS_ORIGINS"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"

	envESPNBaseURL      = "ESPN_BASE_URL"
	envESPNStandingsURL = "ESPN_STANDINGS_URL"
	envESPNUserAgent    = "ESPN_USER_AGENT"
	envESPNTimeout      = "ESPN_TIMEOUT"
	envMaxInFlight      = "FEED_MAX_IN_FLIGHT"
	envRetryAttempts    = "FEED_RETRY_ATTEMPTS"
	envRetryDelay       = "FEED_RETRY_DELAY"

	envRedisURL    = "REDIS_URL"
	envRedisPrefix = "REDIS_KEY_PREFIX"

	envSnapshotsOn       = "SNAPSHOTS_ENABLED"
	envSnapshotFolder    = "SNAPSHOT_FOLDER"
	envSnapshotRetention = "SNAPSHOT_RETENTION_DAYS"
	envMetricsPort       = "METRICS_PORT"
	envMetricsOn         = "METRICS_ENABLED"
	envOtelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService       = "OTEL_SERVICE_NAME"
	envOtelInsecure      = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort            = "4000"
	defaultRefreshInterval = 5 * Duration(time.Minute)
	defaultProvider        = ProviderESPN
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultESPNTimeout     = 10 * Duration(time.Second)
	// Caps concurrent upstream requests across every league of a refresh.
	defaultMaxInFlight = 6
	// The periodic refresh is the recovery path, so one attempt per request.
	defaultRetryAttempts     = 1
	defaultRetryDelay        = 200 * Duration(time.Millisecond)
	defaultRedisPrefix       = "sports-page:"
	defaultSnapshotFolder    = "data/snapshots"
	defaultSnapshotRetention = 14
	defaultMetricsPort       = "9090"
	defaultServiceName       = "sports-page-service"
)

// Provider names.
const (
	ProviderESPN    = "espn"
	ProviderFixture = "fixture"
)
