package server

import "time"

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second

	redisDialTimeout = 3 * time.Second
)

// shutdownTimeout and changeRefreshTimeout remain vars for tests to override.
var (
	shutdownTimeout      = 10 * time.Second
	changeRefreshTimeout = 2 * time.Minute
)
