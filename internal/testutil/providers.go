package testutil

import (
	"context"

	domaingames "github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
	"github.com/gmontenegrodev/web-app/internal/providers"
)

// ErrProvider fails every call with Err, wrapped with the call's operation.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchSchedule(ctx context.Context, date string) ([]domaingames.Game, error) {
	return nil, providers.Wrap(providers.OpSchedule, p.Err)
}

func (p ErrProvider) FetchGameLive(ctx context.Context, gamePk int) (domaingames.LiveFeed, error) {
	return domaingames.LiveFeed{}, providers.Wrap(providers.OpLiveFeed, p.Err)
}

func (p ErrProvider) FetchTeamsMetadata(ctx context.Context, ids []int) (map[int]teams.Team, error) {
	return nil, providers.Wrap(providers.OpTeams, p.Err)
}

func (p ErrProvider) FetchRoster(ctx context.Context, teamID int, rosterType string) ([]teams.RosterEntry, error) {
	return nil, providers.Wrap(providers.OpRoster, p.Err)
}

func (p ErrProvider) FetchTeamStats(ctx context.Context, teamID, season int, group players.Group) (players.StatLine, error) {
	return nil, providers.Wrap(providers.OpTeamStats, p.Err)
}

func (p ErrProvider) FetchPlayerStats(ctx context.Context, playerID, season int, group players.Group) (players.StatLine, error) {
	return nil, providers.Wrap(providers.OpPlayerStats, p.Err)
}

func (p ErrProvider) FetchPlayerGameLogs(ctx context.Context, playerID, season int) ([]players.GameLog, error) {
	return nil, providers.Wrap(providers.OpGameLogs, p.Err)
}

// UnavailableProvider fails every call with ErrProviderUnavailable.
func UnavailableProvider() ErrProvider {
	return ErrProvider{Err: providers.ErrProviderUnavailable}
}
