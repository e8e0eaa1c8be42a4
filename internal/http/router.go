package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/gmontenegrodev/web-app/internal/http/handlers"
	"github.com/gmontenegrodev/web-app/internal/http/middleware"
	"github.com/gmontenegrodev/web-app/internal/metrics"
)

// RouterDeps are the handlers and cross-cutting settings mounted by NewRouter.
type RouterDeps struct {
	Handler *handlers.Handler
	// Admin routes are mounted only when Admin.Enabled().
	Admin *handlers.AdminHandler
	// Stream serves /ws/schedule when set.
	Stream      nethttp.Handler
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	CORSOrigins []string
}

// NewRouter registers the HTTP routes on a chi mux.
func NewRouter(deps RouterDeps) *chi.Mux {
	h := deps.Handler
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(deps.Logger, deps.Metrics))
	r.Use(chimw.Recoverer)

	c := corslib.New(corslib.Options{
		AllowedOrigins: corsOrigins(deps.CORSOrigins),
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
	})
	r.Use(c.Handler)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	// Websocket upgrades need the raw writer, so compression stays off this route.
	if deps.Stream != nil {
		r.Method(nethttp.MethodGet, "/ws/schedule", deps.Stream)
	}

	r.Group(func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Get("/schedule", h.Schedule)
		r.Get("/org-chart", h.OrgChart)
		r.Get("/leaderboards", h.Leaderboards)

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.Teams)
			r.Get("/{id}/roster", h.TeamRoster)
			r.Get("/{id}/stats", h.TeamStats)
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.Players)
			r.Get("/{id}/stats", h.PlayerStats)
			r.Get("/{id}/gamelogs", h.PlayerGameLogs)
		})
	})

	if deps.Admin.Enabled() {
		r.Post("/admin/refresh", deps.Admin.RefreshSchedule)
	}

	return r
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
