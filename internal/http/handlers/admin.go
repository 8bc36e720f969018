package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
	"github.com/preston-bernstein/sports-page-service/internal/http/requestutil"
	"github.com/preston-bernstein/sports-page-service/internal/logging"
	"github.com/preston-bernstein/sports-page-service/internal/poller"
)

// Refresher rebuilds the page on demand.
type Refresher interface {
	RefreshNow(ctx context.Context) (aggregate.Page, error)
}

// AdminHandler exposes admin-only endpoints (e.g., an immediate page refresh).
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables every admin endpoint.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// Refresh rebuilds the page immediately. Guarded by a bearer token; returns 401 if missing/invalid.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresher not configured", logger)
		return
	}

	page, err := h.refresher.RefreshNow(r.Context())
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, poller.ErrAllLeaguesFailed) {
			status = http.StatusBadGateway
		}
		logging.Warn(logger, "admin refresh failed", slog.String(logging.FieldRefreshID, page.RefreshID), slog.Any("err", err))
		writeError(w, r, status, err.Error(), logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"refreshId":     page.RefreshID,
		"generatedAt":   page.GeneratedAt.Format(time.RFC3339),
		"leagues":       len(page.Leagues),
		"failedLeagues": page.FailedLeagues(),
		"status":        "ok",
	}, logger)
	logging.Info(logger, "admin refresh complete",
		slog.String(logging.FieldRefreshID, page.RefreshID),
		slog.Int("failed_leagues", page.FailedLeagues()),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	token, ok := requestutil.BearerToken(r)
	return ok && requestutil.TokenMatches(token, h.token)
}
