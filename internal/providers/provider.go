package providers

import (
	"context"

	"github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
)

// Upstream operation names used in errors, logs and metrics.
const (
	OpSchedule    = "schedule"
	OpTeams       = "teams"
	OpLiveFeed    = "live_feed"
	OpRoster      = "roster"
	OpPlayerStats = "player_stats"
	OpGameLogs    = "game_logs"
	OpTeamStats   = "team_stats"
)

// ScheduleProvider fetches the organization's games for a date.
// An empty date means the upstream's notion of "today".
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, date string) ([]games.Game, error)
}

// LiveProvider fetches a single game's live feed.
type LiveProvider interface {
	FetchGameLive(ctx context.Context, gamePk int) (games.LiveFeed, error)
}

// TeamProvider fetches team metadata, rosters and team season stats.
type TeamProvider interface {
	FetchTeamsMetadata(ctx context.Context, ids []int) (map[int]teams.Team, error)
	FetchRoster(ctx context.Context, teamID int, rosterType string) ([]teams.RosterEntry, error)
	FetchTeamStats(ctx context.Context, teamID, season int, group players.Group) (players.StatLine, error)
}

// PlayerProvider fetches player season stats and game logs.
type PlayerProvider interface {
	FetchPlayerStats(ctx context.Context, playerID, season int, group players.Group) (players.StatLine, error)
	FetchPlayerGameLogs(ctx context.Context, playerID, season int) ([]players.GameLog, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	ScheduleProvider
	LiveProvider
	TeamProvider
	PlayerProvider
}
