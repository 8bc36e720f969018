package config

// FeedConfig controls how the ESPN feeds are requested. Empty URLs use the client defaults.
type FeedConfig struct {
	BaseURL          string   `yaml:"base_url"`
	StandingsBaseURL string   `yaml:"standings_base_url"`
	UserAgent        string   `yaml:"user_agent"`
	Timeout          Duration `yaml:"timeout"`
	MaxInFlight      int      `yaml:"max_in_flight"`
	RetryAttempts    int      `yaml:"retry_attempts"`
	RetryDelay       Duration `yaml:"retry_delay"`
}

func defaultFeeds() FeedConfig {
	return FeedConfig{
		Timeout:       defaultESPNTimeout,
		MaxInFlight:   defaultMaxInFlight,
		RetryAttempts: defaultRetryAttempts,
		RetryDelay:    defaultRetryDelay,
	}
}

func (f FeedConfig) fromEnv() FeedConfig {
	f.BaseURL = envOrDefault(envESPNBaseURL, f.BaseURL)
	f.StandingsBaseURL = envOrDefault(envESPNStandingsURL, f.StandingsBaseURL)
	f.UserAgent = envOrDefault(envESPNUserAgent, f.UserAgent)
	f.Timeout = durationEnvOrDefault(envESPNTimeout, f.Timeout)
	f.MaxInFlight = intEnvOrDefault(envMaxInFlight, f.MaxInFlight)
	f.RetryAttempts = intEnvOrDefault(envRetryAttempts, f.RetryAttempts)
	f.RetryDelay = durationEnvOrDefault(envRetryDelay, f.RetryDelay)
	return f
}

// StoreConfig selects the preference store. An empty RedisURL keeps preferences in memory.
type StoreConfig struct {
	RedisURL  string `yaml:"redis_url"`
	KeyPrefix string `yaml:"key_prefix"`
}

func defaultStore() StoreConfig {
	return StoreConfig{KeyPrefix: defaultRedisPrefix}
}

func (s StoreConfig) fromEnv() StoreConfig {
	s.RedisURL = envOrDefault(envRedisURL, s.RedisURL)
	s.KeyPrefix = envOrDefault(envRedisPrefix, s.KeyPrefix)
	return s
}
