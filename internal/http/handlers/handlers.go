package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
	"github.com/gmontenegrodev/web-app/internal/poller"
	"github.com/gmontenegrodev/web-app/internal/store"
	"github.com/gmontenegrodev/web-app/internal/timeutil"
)

// ScheduleService serves resolved schedule days.
type ScheduleService interface {
	Day(ctx context.Context, date string) (store.ScheduleDay, error)
	ResolveDate(date string) string
	TeamIDs() []int
}

// TeamService serves team metadata and team season stats.
type TeamService interface {
	EnsureMetadata(ctx context.Context) error
	Metadata() map[int]teams.Team
	Teams() []teams.Team
	TeamByID(id int) (teams.Team, bool)
	TeamStats(ctx context.Context, teamID, season int) (players.Stats, error)
}

// PlayerService serves rosters, player stats and the player index.
type PlayerService interface {
	Roster(ctx context.Context, teamID int) ([]teams.RosterEntry, error)
	FetchPlayerStats(ctx context.Context, playerID, season int) (players.Stats, error)
	FetchPlayerGameLogs(ctx context.Context, playerID, season int) ([]players.GameLog, error)
	LeaderboardStats(ctx context.Context, teamID, season int) ([]players.LeaderRow, error)
	EnsureOrgPlayers(ctx context.Context, teamIDs []int) []teams.RosterEntry
	SearchPlayers(query string) []teams.RosterEntry
	PlayersByTeam(teamID int) []teams.RosterEntry
}

// Deps are the collaborators a Handler reads from.
type Deps struct {
	Schedule ScheduleService
	Teams    TeamService
	Players  PlayerService
	// Season is used when a request names none.
	Season   int
	Location *time.Location
	Logger   *slog.Logger
	StatusFn func() poller.Status
}

// Handler wires HTTP routes to the app services.
type Handler struct {
	schedule ScheduleService
	teams    TeamService
	players  PlayerService
	season   int
	loc      *time.Location
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(deps Deps) *Handler {
	loc := deps.Location
	if loc == nil {
		loc = timeutil.LocationOrDefault("")
	}
	season := deps.Season
	if season <= 0 {
		season = time.Now().In(loc).Year()
	}
	return &Handler{
		schedule: deps.Schedule,
		teams:    deps.Teams,
		players:  deps.Players,
		season:   season,
		loc:      loc,
		logger:   deps.Logger,
		statusFn: deps.StatusFn,
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

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
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

// NotFound is the JSON 404 for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed is the JSON 405 for known routes hit with the wrong verb.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}
