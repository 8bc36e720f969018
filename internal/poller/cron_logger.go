package poller

import (
	"log/slog"

	"github.com/preston-bernstein/sports-page-service/internal/logging"
)

// cronLogger adapts slog to cron's logger so skipped and panicking jobs are visible.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logging.Debug(l.logger, "cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logging.Error(l.logger, "cron: "+msg, err, keysAndValues...)
}
