package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/viewmodel"
)

// RosterResponse lists a team's active roster.
type RosterResponse struct {
	TeamID  int                 `json:"teamId"`
	Players []teams.RosterEntry `json:"players"`
}

// StatsResponse carries raw stat lines plus their display strings per group.
type StatsResponse struct {
	players.Stats
	Display map[players.Group]map[string]string `json:"display"`
}

func statsView(stats players.Stats) StatsResponse {
	display := make(map[players.Group]map[string]string, 2)
	for _, group := range players.Groups() {
		line := stats.Group(group)
		formatted := make(map[string]string)
		for _, def := range viewmodel.StatDefs(group) {
			formatted[def.Key] = viewmodel.FormatStat(def.Key, line)
		}
		display[group] = formatted
	}
	return StatsResponse{Stats: stats, Display: display}
}

// Teams lists the org teams in league rank order.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if err := h.teams.EnsureMetadata(r.Context()); err != nil {
		writeUpstreamError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, h.teams.Teams(), logger)
}

// OrgChart groups the org teams by level.
func (h *Handler) OrgChart(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if err := h.teams.EnsureMetadata(r.Context()); err != nil {
		writeUpstreamError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, viewmodel.OrgChart(h.teams.Metadata(), h.schedule.TeamIDs()), logger)
}

// TeamRoster returns the active roster for {id}.
func (h *Handler) TeamRoster(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	teamID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid team id", logger)
		return
	}
	roster, err := h.players.Roster(r.Context(), teamID)
	if err != nil {
		writeUpstreamError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, RosterResponse{TeamID: teamID, Players: roster}, logger)
}

// TeamStats returns the merged hitting and pitching season record for {id}.
func (h *Handler) TeamStats(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	teamID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid team id", logger)
		return
	}
	season, err := queryInt(r, "season", h.season)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid season", logger)
		return
	}
	stats, err := h.teams.TeamStats(r.Context(), teamID, season)
	if err != nil {
		writeUpstreamError(w, r, err, logger)
		return
	}
	logging.Info(logger, "served team stats", slog.Int(logging.FieldTeamID, teamID), slog.Int(logging.FieldSeason, season))
	writeJSON(w, http.StatusOK, statsView(stats), logger)
}
