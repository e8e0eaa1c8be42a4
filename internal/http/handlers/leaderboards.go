package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/registry"
	"github.com/gmontenegrodev/web-app/internal/viewmodel"
)

// LeaderboardResponse is the top of one team's roster for one stat.
type LeaderboardResponse struct {
	Filters viewmodel.Filters       `json:"filters"`
	Label   string                  `json:"label"`
	Entries []viewmodel.LeaderEntry `json:"entries"`
}

// Leaderboards ranks a team's rostered players by ?stat= within ?group=.
// Without ?teamId= the big-league club is used.
func (h *Handler) Leaderboards(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	filters, err := h.leaderboardFilters(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}

	rows, err := h.players.LeaderboardStats(r.Context(), filters.TeamID, filters.Season)
	if err != nil {
		writeUpstreamError(w, r, err, logger)
		return
	}

	def, _ := viewmodel.LookupStat(filters.Group, filters.Stat)
	entries := viewmodel.Leaderboard(rows, filters.Group, filters.Stat)
	logging.Info(logger, "served leaderboard",
		slog.Int(logging.FieldTeamID, filters.TeamID),
		slog.Int(logging.FieldSeason, filters.Season),
		slog.String(logging.FieldGroup, string(filters.Group)),
		slog.Int(logging.FieldCount, len(entries)),
	)
	writeJSON(w, http.StatusOK, LeaderboardResponse{Filters: filters, Label: def.Label, Entries: entries}, logger)
}

func (h *Handler) leaderboardFilters(r *http.Request) (viewmodel.Filters, error) {
	filters := viewmodel.NewFilters(h.season)
	season, err := queryInt(r, "season", h.season)
	if err != nil {
		return filters, errInvalidParam
	}
	if season != h.season {
		filters.SetSeason(season)
	}
	if group := strings.TrimSpace(r.URL.Query().Get("group")); group != "" {
		filters.SetGroup(players.Group(group))
	}
	if stat := strings.TrimSpace(r.URL.Query().Get("stat")); stat != "" {
		filters.Stat = stat
	}
	teamID, err := queryInt(r, "teamId", registry.MainOrgTeamIDs()[0])
	if err != nil {
		return filters, errInvalidParam
	}
	filters.TeamID = teamID
	if err := filters.Validate(); err != nil {
		return filters, err
	}
	return filters, nil
}
