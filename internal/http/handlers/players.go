package handlers

import (
	"net/http"
	"strings"

	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
	"github.com/gmontenegrodev/web-app/internal/registry"
)

// PlayersResponse is a page of the org player index.
type PlayersResponse struct {
	Query   string              `json:"query,omitempty"`
	TeamID  int                 `json:"teamId,omitempty"`
	Players []teams.RosterEntry `json:"players"`
}

// GameLogsResponse lists a player's most recent games.
type GameLogsResponse struct {
	PlayerID int               `json:"playerId"`
	Season   int               `json:"season"`
	Logs     []players.GameLog `json:"logs"`
}

// Players searches the org player index by ?q= or filters it by ?teamId=.
// The index is built from the main clubs' rosters on first use.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	teamID, err := queryInt(r, "teamId", 0)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid team id", logger)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	h.players.EnsureOrgPlayers(r.Context(), registry.MainOrgTeamIDs())

	resp := PlayersResponse{Query: query, TeamID: teamID}
	if teamID > 0 {
		resp.Players = h.players.PlayersByTeam(teamID)
	} else {
		resp.Players = h.players.SearchPlayers(query)
	}
	writeJSON(w, http.StatusOK, resp, logger)
}

// PlayerStats returns a player's season record for ?season=.
func (h *Handler) PlayerStats(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	playerID, season, ok := h.playerSeason(w, r)
	if !ok {
		return
	}
	stats, err := h.players.FetchPlayerStats(r.Context(), playerID, season)
	if err != nil {
		writeUpstreamError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, statsView(stats), logger)
}

// PlayerGameLogs returns a player's most recent games, newest first.
func (h *Handler) PlayerGameLogs(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	playerID, season, ok := h.playerSeason(w, r)
	if !ok {
		return
	}
	logs, err := h.players.FetchPlayerGameLogs(r.Context(), playerID, season)
	if err != nil {
		writeUpstreamError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, GameLogsResponse{PlayerID: playerID, Season: season, Logs: logs}, logger)
}

func (h *Handler) playerSeason(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	logger := loggerFromContext(r, h.logger)
	playerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid player id", logger)
		return 0, 0, false
	}
	season, err := queryInt(r, "season", h.season)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid season", logger)
		return 0, 0, false
	}
	return playerID, season, true
}
