package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
	"github.com/preston-bernstein/sports-page-service/internal/app/page"
	"github.com/preston-bernstein/sports-page-service/internal/app/teams"
	"github.com/preston-bernstein/sports-page-service/internal/config"
	httpserver "github.com/preston-bernstein/sports-page-service/internal/http"
	"github.com/preston-bernstein/sports-page-service/internal/http/handlers"
	"github.com/preston-bernstein/sports-page-service/internal/logging"
	"github.com/preston-bernstein/sports-page-service/internal/metrics"
	"github.com/preston-bernstein/sports-page-service/internal/poller"
	"github.com/preston-bernstein/sports-page-service/internal/preferences"
	"github.com/preston-bernstein/sports-page-service/internal/providers"
	"github.com/preston-bernstein/sports-page-service/internal/snapshots"
	"github.com/preston-bernstein/sports-page-service/internal/store"
)

const stdoutPath = "-"

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	pageStore     *store.PageStore
	prefs         *preferences.Preferences
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	closers       []func() error
	out           io.Writer
}

// New constructs a server with the configured feed provider, preference store and poller.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithFetcher(ctx, cfg, logger, nil, nil)
}

// newServerWithFetcher wires every component. A nil fetcher is built from cfg; a nil recorder
// is built by metrics setup.
func newServerWithFetcher(ctx context.Context, cfg config.Config, logger *slog.Logger, fetcher providers.FeedFetcher, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	if fetcher == nil {
		fetcher = newProviderFactory(logger, recorder).build(cfg)
	}
	loc := providers.ResolveTimezone(cfg.Timezone, time.Local)

	kv, closeKV := buildPreferenceStore(ctx, cfg, logger)
	prefs := preferences.Load(ctx, kv, preferences.Overrides{Leagues: cfg.Leagues, Favorites: cfg.Favorites}, logger)
	pageStore := store.NewPageStore()
	snaps := buildSnapshots(cfg)

	orchestrator := aggregate.NewOrchestrator(fetcher, logger, recorder)
	plr := poller.New(orchestrator, prefs, pageStore, snaps.writer, logger, recorder, poller.Config{
		Interval: cfg.RefreshInterval,
		Location: loc,
	})

	s := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		pageStore:     pageStore,
		prefs:         prefs,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
		out:           os.Stdout,
	}
	if closeKV != nil {
		s.closers = append(s.closers, closeKV)
	}
	s.httpServer = s.buildHTTPServer(page.NewService(pageStore, loc), teams.NewService(pageStore, prefs), snaps.store)
	return s
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, pageStore *store.PageStore, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		pageStore:  pageStore,
		httpServer: httpSrv,
		poller:     plr,
		out:        io.Discard,
	}
}

func (s *Server) buildHTTPServer(pages *page.Service, teamSvc *teams.Service, snaps snapshots.Store) httpServer {
	logger := s.logger
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	routes := httpserver.RouterConfig{
		Handler:     handlers.NewHandler(pages, teamSvc, snaps, logger, s.poller.Status),
		Prefs:       handlers.NewPreferencesHandler(s.prefs, s.refreshOnChange, logger),
		Logger:      logger,
		Metrics:     s.metrics,
		CORSOrigins: s.cfg.CORSOrigins,
	}
	// The admin refresh endpoint is only mounted when a token is configured.
	if s.cfg.AdminToken != "" {
		routes.Admin = handlers.NewAdminHandler(s.poller, s.cfg.AdminToken, logger)
	}

	srv := &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      httpserver.NewRouter(routes),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

// refreshOnChange rebuilds the page in the background after a preference change.
func (s *Server) refreshOnChange() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), changeRefreshTimeout)
		defer cancel()
		if _, err := s.poller.RefreshNow(ctx); err != nil {
			logging.Warn(s.logger, "refresh after preference change failed", "err", err)
		}
	}()
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

// RunHeadless builds the page once, exports it as JSON and returns without serving HTTP.
// The page is exported even when every league failed; the failure is still returned.
func (s *Server) RunHeadless(ctx context.Context) error {
	defer s.closeResources()

	p, refreshErr := s.poller.RefreshNow(ctx)
	if p.IsZero() {
		if refreshErr == nil {
			refreshErr = errors.New("headless refresh produced no page")
		}
		return fmt.Errorf("headless refresh: %w", refreshErr)
	}

	target := s.cfg.ExportPath
	var err error
	if target == "" || target == stdoutPath {
		target = stdoutPath
		err = snapshots.ExportPage(s.out, p)
	} else {
		err = snapshots.ExportFile(target, p)
	}
	if err != nil {
		return fmt.Errorf("headless export: %w", err)
	}

	logging.Info(s.logger, "headless export ready",
		slog.String("export_path", target),
		slog.String(logging.FieldRefreshID, p.RefreshID),
		slog.Int(logging.FieldCount, len(p.Leagues)),
		slog.Int("failed_leagues", p.FailedLeagues()),
	)
	return refreshErr
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	s.closeResourcesWith(shutdownCtx)

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func (s *Server) closeResources() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.closeResourcesWith(ctx)
}

// closeResourcesWith flushes telemetry and closes the preference store connection.
func (s *Server) closeResourcesWith(ctx context.Context) {
	if s.metricsStop != nil {
		if err := s.metricsStop(ctx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil && s.logger != nil {
			s.logger.Warn("resource close failed", "error", err)
		}
	}
	s.closers = nil
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
