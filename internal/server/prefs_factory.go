package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/sports-page-service/internal/config"
	"github.com/preston-bernstein/sports-page-service/internal/kvstore"
	"github.com/preston-bernstein/sports-page-service/internal/logging"
)

var dialRedis = kvstore.DialRedis

// buildPreferenceStore connects to Redis when configured. Any failure, now or later, degrades
// to an in-memory store so preferences keep working for the life of the process.
func buildPreferenceStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (kvstore.Store, func() error) {
	if cfg.Store.RedisURL == "" {
		return kvstore.NewFallbackStore(nil, logger), nil
	}
	dialCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()

	rs, err := dialRedis(dialCtx, cfg.Store.RedisURL, cfg.Store.KeyPrefix)
	if err != nil {
		logging.Warn(logger, "redis unavailable, preferences kept in memory", "err", err)
		return kvstore.NewFallbackStore(nil, logger), nil
	}
	logging.Info(logger, "preferences stored in redis", "key_prefix", cfg.Store.KeyPrefix)
	return kvstore.NewFallbackStore(rs, logger), rs.Close
}
