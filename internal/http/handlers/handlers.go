package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
	"github.com/preston-bernstein/sports-page-service/internal/app/page"
	"github.com/preston-bernstein/sports-page-service/internal/app/teams"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/logging"
	"github.com/preston-bernstein/sports-page-service/internal/poller"
	"github.com/preston-bernstein/sports-page-service/internal/snapshots"
	"github.com/preston-bernstein/sports-page-service/internal/timeutil"
)

const (
	sourceLive     = "live"
	sourceSnapshot = "snapshot"
	headerSource   = "X-Page-Source"
)

// Handler wires HTTP routes to the page and team services.
type Handler struct {
	pages    *page.Service
	teams    *teams.Service
	snaps    snapshots.Store
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. snaps and statusFn may be nil.
func NewHandler(pages *page.Service, teamSvc *teams.Service, snaps snapshots.Store, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		pages:    pages,
		teams:    teamSvc,
		snaps:    snaps,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether a refresh has succeeded recently enough to serve traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Page returns the latest page. With ?date=YYYY-MM-DD it serves that day's snapshot instead.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if date := strings.TrimSpace(r.URL.Query().Get("date")); date != "" {
		h.pageForDate(w, r, date)
		return
	}
	p, source, ok := h.currentPage(r)
	if !ok {
		writeError(w, r, http.StatusServiceUnavailable, "page not ready", logger)
		return
	}
	logging.Info(logger, "served page",
		slog.String("source", source),
		slog.String(logging.FieldRefreshID, p.RefreshID),
		slog.Int(logging.FieldCount, len(p.Leagues)),
	)
	w.Header().Set(headerSource, source)
	writeJSON(w, http.StatusOK, p, logger)
}

func (h *Handler) pageForDate(w http.ResponseWriter, r *http.Request, date string) {
	logger := loggerFromContext(r, h.logger)
	if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return
	}
	if h.snaps == nil {
		writeError(w, r, http.StatusNotFound, "snapshots not enabled", logger)
		return
	}
	p, err := h.snaps.LoadPage(date)
	if err != nil {
		if errors.Is(err, snapshots.ErrNoSnapshot) {
			writeError(w, r, http.StatusNotFound, "no snapshot for date", logger)
			return
		}
		logging.Warn(logger, "snapshot load failed", slog.String(logging.FieldDate, date), slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, "snapshot unavailable", logger)
		return
	}
	logging.Info(logger, "served page", slog.String("source", sourceSnapshot), slog.String(logging.FieldDate, date))
	w.Header().Set(headerSource, sourceSnapshot)
	writeJSON(w, http.StatusOK, p, logger)
}

// League returns one league view of the latest page.
func (h *Handler) League(w http.ResponseWriter, r *http.Request) {
	view, source, ok := h.leagueView(w, r)
	if !ok {
		return
	}
	w.Header().Set(headerSource, source)
	writeJSON(w, http.StatusOK, view, loggerFromContext(r, h.logger))
}

// Cards returns one league of the latest page rendered as score cards.
func (h *Handler) Cards(w http.ResponseWriter, r *http.Request) {
	view, source, ok := h.leagueView(w, r)
	if !ok {
		return
	}
	w.Header().Set(headerSource, source)
	writeJSON(w, http.StatusOK, map[string]any{
		"league":   view.League,
		"sections": h.pages.Render(view),
		"failed":   view.Failed,
	}, loggerFromContext(r, h.logger))
}

// Teams returns a league's roster with favorite flags, for the team picker.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id := urlParam(r, "league")
	if !leagues.Known(id) {
		writeError(w, r, http.StatusNotFound, "unknown league", logger)
		return
	}
	if h.teams == nil {
		writeError(w, r, http.StatusServiceUnavailable, "page not ready", logger)
		return
	}
	entries, ok := h.teams.Teams(id)
	if !ok {
		h.missingLeague(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"league": strings.ToLower(id), "teams": entries}, logger)
}

// NotFound answers unmatched routes with a JSON error.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", loggerFromContext(r, h.logger))
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", loggerFromContext(r, h.logger))
}

func (h *Handler) leagueView(w http.ResponseWriter, r *http.Request) (aggregate.LeagueView, string, bool) {
	logger := loggerFromContext(r, h.logger)
	id := urlParam(r, "league")
	if !leagues.Known(id) {
		writeError(w, r, http.StatusNotFound, "unknown league", logger)
		return aggregate.LeagueView{}, "", false
	}
	p, source, ok := h.currentPage(r)
	if !ok {
		writeError(w, r, http.StatusServiceUnavailable, "page not ready", logger)
		return aggregate.LeagueView{}, "", false
	}
	view, ok := p.League(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "league not active", logger)
		return aggregate.LeagueView{}, "", false
	}
	return view, source, true
}

func (h *Handler) missingLeague(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.pages == nil {
		writeError(w, r, http.StatusServiceUnavailable, "page not ready", logger)
		return
	}
	if _, ok := h.pages.Page(); !ok {
		writeError(w, r, http.StatusServiceUnavailable, "page not ready", logger)
		return
	}
	writeError(w, r, http.StatusNotFound, "league not active", logger)
}

// currentPage prefers the live page and falls back to the newest snapshot before the first refresh.
func (h *Handler) currentPage(r *http.Request) (aggregate.Page, string, bool) {
	if h.pages != nil {
		if p, ok := h.pages.Page(); ok {
			return p, sourceLive, true
		}
	}
	if h.snaps == nil {
		return aggregate.Page{}, "", false
	}
	p, err := h.snaps.LoadLatest()
	if err != nil {
		if !errors.Is(err, snapshots.ErrNoSnapshot) {
			logging.Warn(loggerFromContext(r, h.logger), "latest snapshot load failed", slog.Any("err", err))
		}
		return aggregate.Page{}, "", false
	}
	return p, sourceSnapshot, true
}
