package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/sports-page-service/internal/domain/favorites"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/logging"
	"github.com/preston-bernstein/sports-page-service/internal/preferences"
)

// PreferenceStore reads and changes favorite teams and active leagues.
type PreferenceStore interface {
	Favorites() favorites.Set
	ActiveIDs() []string
	Sources() (favSource, leagueSource preferences.Source)
	SetFavorite(ctx context.Context, key favorites.Key, on bool) error
	SetLeague(ctx context.Context, id string, on bool) error
}

// PreferencesHandler exposes favorite and league selection. onChange runs after every change
// so the page can be rebuilt.
type PreferencesHandler struct {
	prefs    PreferenceStore
	onChange func()
	logger   *slog.Logger
}

type preferencesResponse struct {
	Favorites []string          `json:"favorites"`
	Leagues   []string          `json:"leagues"`
	Sources   map[string]string `json:"sources"`
	Persisted *bool             `json:"persisted,omitempty"`
}

// NewPreferencesHandler constructs a PreferencesHandler. onChange may be nil.
func NewPreferencesHandler(prefs PreferenceStore, onChange func(), logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs, onChange: onChange, logger: logger}
}

// Get returns the current favorites and active leagues.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshot(nil), loggerFromContext(r, h.logger))
}

// Favorite adds (PUT) or removes (DELETE) a favorite team.
func (h *PreferencesHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	leagueID := strings.ToLower(strings.TrimSpace(urlParam(r, "league")))
	teamID := strings.TrimSpace(urlParam(r, "team"))
	if !leagues.Known(leagueID) {
		writeError(w, r, http.StatusNotFound, "unknown league", logger)
		return
	}
	if teamID == "" || strings.ContainsAny(teamID, ": \t") {
		writeError(w, r, http.StatusBadRequest, "invalid team id", logger)
		return
	}

	key := favorites.NewKey(leagueID, teamID)
	on := r.Method == http.MethodPut
	changed := h.prefs.Favorites().Contains(key) != on
	err := h.prefs.SetFavorite(r.Context(), key, on)
	h.respond(w, r, changed, err, slog.String(logging.FieldTeam, string(key)), slog.Bool("favorite", on))
}

// League activates (PUT) or deactivates (DELETE) a league.
func (h *PreferencesHandler) League(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	leagueID := strings.ToLower(strings.TrimSpace(urlParam(r, "league")))
	on := r.Method == http.MethodPut
	changed := containsID(h.prefs.ActiveIDs(), leagueID) != on

	err := h.prefs.SetLeague(r.Context(), leagueID, on)
	if errors.Is(err, preferences.ErrUnknownLeague) {
		writeError(w, r, http.StatusNotFound, "unknown league", logger)
		return
	}
	h.respond(w, r, changed, err, slog.String(logging.FieldLeague, leagueID), slog.Bool("active", on))
}

// respond treats a persistence failure as non-fatal: the change is live for this process.
func (h *PreferencesHandler) respond(w http.ResponseWriter, r *http.Request, changed bool, err error, attrs ...any) {
	logger := loggerFromContext(r, h.logger)
	persisted := err == nil
	if err != nil {
		logging.Warn(logger, "preference not persisted", append(attrs, slog.Any("err", err))...)
	}
	if changed {
		logging.Info(logger, "preference changed", attrs...)
		if h.onChange != nil {
			h.onChange()
		}
	}
	writeJSON(w, http.StatusOK, h.snapshot(&persisted), logger)
}

func (h *PreferencesHandler) snapshot(persisted *bool) preferencesResponse {
	favSource, leagueSource := h.prefs.Sources()
	return preferencesResponse{
		Favorites: h.prefs.Favorites().Strings(),
		Leagues:   h.prefs.ActiveIDs(),
		Sources: map[string]string{
			"favorites": string(favSource),
			"leagues":   string(leagueSource),
		},
		Persisted: persisted,
	}
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
