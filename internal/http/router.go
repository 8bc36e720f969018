package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/sports-page-service/internal/http/handlers"
	"github.com/preston-bernstein/sports-page-service/internal/http/middleware"
	"github.com/preston-bernstein/sports-page-service/internal/metrics"
)

// RouterConfig carries the handlers and cross-cutting settings for NewRouter.
// Prefs and Admin are optional; their routes are only mounted when set.
type RouterConfig struct {
	Handler     *handlers.Handler
	Prefs       *handlers.PreferencesHandler
	Admin       *handlers.AdminHandler
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	CORSOrigins []string
}

// NewRouter registers HTTP routes on a chi router.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Page-Source"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := cfg.Handler
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/page", h.Page)
	r.Get("/page/{league}", h.League)
	r.Get("/page/{league}/cards", h.Cards)
	r.Get("/teams/{league}", h.Teams)

	if p := cfg.Prefs; p != nil {
		r.Get("/preferences", p.Get)
		r.Put("/favorites/{league}/{team}", p.Favorite)
		r.Delete("/favorites/{league}/{team}", p.Favorite)
		r.Put("/leagues/{league}", p.League)
		r.Delete("/leagues/{league}", p.League)
	}
	if cfg.Admin != nil {
		r.Post("/refresh", cfg.Admin.Refresh)
	}
	return r
}
