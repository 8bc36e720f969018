package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port            string   `yaml:"port"`
	RefreshInterval Duration `yaml:"refresh_interval"`
	Provider        string   `yaml:"provider"`
	// Timezone is the IANA zone pages are bucketed in. Empty means the host zone.
	Timezone string `yaml:"timezone"`
	// Leagues and Favorites are start-up overrides. Nil means not given.
	Leagues     []string `yaml:"leagues"`
	Favorites   []string `yaml:"favorites"`
	Headless    bool     `yaml:"headless"`
	ExportPath  string   `yaml:"export_path"`
	AdminToken  string   `yaml:"admin_token"`
	CORSOrigins []string `yaml:"cors_origins"`
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`

	Feeds     FeedConfig     `yaml:"feeds"`
	Store     StoreConfig    `yaml:"store"`
	Snapshots SnapshotConfig `yaml:"snapshots"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:            defaultPort,
		RefreshInterval: defaultRefreshInterval,
		Provider:        defaultProvider,
		CORSOrigins:     []string{"*"},
		LogLevel:        defaultLogLevel,
		LogFormat:       defaultLogFormat,
		Feeds:           defaultFeeds(),
		Store:           defaultStore(),
		Snapshots:       defaultSnapshots(),
		Metrics:         defaultMetrics(),
	}
}

// Load reads configuration from environment variables over the defaults. When CONFIG_FILE
// is set, that YAML file is applied first.
func Load() (Config, error) {
	return LoadFile(os.Getenv(envConfigFile))
}

// LoadFile applies the YAML file at path over the defaults, then environment variables.
// An empty path skips the file.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	return cfg.fromEnv().normalized(), nil
}

func (c Config) fromEnv() Config {
	c.Port = envOrDefault(envPort, c.Port)
	c.RefreshInterval = durationEnvOrDefault(envRefreshInterval, c.RefreshInterval)
	c.Provider = envOrDefault(envProvider, c.Provider)
	c.Timezone = envOrDefault(envTimezone, c.Timezone)
	c.Leagues = listEnvOrDefault(envLeagues, c.Leagues)
	c.Favorites = listEnvOrDefault(envFavorites, c.Favorites)
	c.Headless = boolEnvOrDefault(envHeadless, c.Headless)
	c.ExportPath = envOrDefault(envExportPath, c.ExportPath)
	c.AdminToken = envOrDefault(envAdminToken, c.AdminToken)
	c.CORSOrigins = listEnvOrDefault(envCORSOrigins, c.CORSOrigins)
	c.LogLevel = envOrDefault(envLogLevel, c.LogLevel)
	c.LogFormat = envOrDefault(envLogFormat, c.LogFormat)
	c.Feeds = c.Feeds.fromEnv()
	c.Store = c.Store.fromEnv()
	c.Snapshots = c.Snapshots.fromEnv()
	c.Metrics = c.Metrics.fromEnv()
	return c
}

// normalized repairs values a file may have zeroed or mistyped.
func (c Config) normalized() Config {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = defaultProvider
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = defaultRefreshInterval
	}
	if c.Port == "" {
		c.Port = defaultPort
	}
	if c.Feeds.MaxInFlight <= 0 {
		c.Feeds.MaxInFlight = defaultMaxInFlight
	}
	if c.Feeds.RetryAttempts <= 0 {
		c.Feeds.RetryAttempts = defaultRetryAttempts
	}
	if c.Snapshots.RetentionDays <= 0 {
		c.Snapshots.RetentionDays = defaultSnapshotRetention
	}
	return c
}
