package teams

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/providers"
	"github.com/gmontenegrodev/web-app/internal/registry"
)

// Store defines the contract for persisting and retrieving team data.
type Store interface {
	SetTeams(meta map[int]teams.Team)
	Teams() map[int]teams.Team
	Team(id int) (teams.Team, bool)
	HasTeams() bool
	SetTeamStats(stats players.Stats)
	TeamStats(teamID, season int) (players.Stats, bool)
}

// Provider is the upstream surface the service reads from.
type Provider interface {
	FetchTeamsMetadata(ctx context.Context, ids []int) (map[int]teams.Team, error)
	FetchTeamStats(ctx context.Context, teamID, season int, group players.Group) (players.StatLine, error)
}

// Service coordinates team metadata and team stats using a Store.
type Service struct {
	store    Store
	provider Provider
	teamIDs  []int
	logger   *slog.Logger
}

// NewService constructs a Service for the given team ids; empty ids use the org registry.
func NewService(store Store, provider Provider, teamIDs []int, logger *slog.Logger) *Service {
	if len(teamIDs) == 0 {
		teamIDs = registry.OrgTeamIDs()
	}
	return &Service{store: store, provider: provider, teamIDs: teamIDs, logger: logger}
}

// TeamIDs returns the ids this service loads metadata for.
func (s *Service) TeamIDs() []int {
	return append([]int(nil), s.teamIDs...)
}

// LoadMetadata fetches metadata for every team id and replaces the stored set.
// Loading twice yields the same records.
func (s *Service) LoadMetadata(ctx context.Context) error {
	if s.provider == nil {
		return providers.Wrap(providers.OpTeams, providers.ErrProviderUnavailable)
	}
	meta, err := s.provider.FetchTeamsMetadata(ctx, s.teamIDs)
	if err != nil {
		return err
	}
	s.store.SetTeams(meta)
	logging.Info(logging.FromContext(ctx, s.logger), "team metadata loaded", slog.Int(logging.FieldCount, len(meta)))
	return nil
}

// EnsureMetadata loads metadata only when none is stored yet.
func (s *Service) EnsureMetadata(ctx context.Context) error {
	if s.store.HasTeams() {
		return nil
	}
	return s.LoadMetadata(ctx)
}

// Metadata returns the stored metadata keyed by team id.
func (s *Service) Metadata() map[int]teams.Team {
	return s.store.Teams()
}

// Teams returns the stored org teams ordered by league rank, then registry order.
func (s *Service) Teams() []teams.Team {
	meta := s.store.Teams()
	out := make([]teams.Team, 0, len(s.teamIDs))
	for _, id := range s.teamIDs {
		if t, ok := meta[id]; ok {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return registry.LeagueRank(out[i].LeagueName) < registry.LeagueRank(out[j].LeagueName)
	})
	return out
}

// TeamByID returns a single team if present.
func (s *Service) TeamByID(id int) (teams.Team, bool) {
	return s.store.Team(id)
}

// TeamStats returns a team's merged season record, fetching both groups on a cache miss.
// An upstream 404 for a group yields an empty line; any other failure is returned.
func (s *Service) TeamStats(ctx context.Context, teamID, season int) (players.Stats, error) {
	if cached, ok := s.store.TeamStats(teamID, season); ok {
		return cached, nil
	}
	if s.provider == nil {
		return players.Stats{}, providers.Wrap(providers.OpTeamStats, providers.ErrProviderUnavailable)
	}

	stats := players.Stats{TeamID: teamID, Season: season}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		line, err := s.fetchGroup(gctx, teamID, season, players.GroupHitting)
		stats.Hitting = line
		return err
	})
	g.Go(func() error {
		line, err := s.fetchGroup(gctx, teamID, season, players.GroupPitching)
		stats.Pitching = line
		return err
	})
	if err := g.Wait(); err != nil {
		return players.Stats{}, err
	}

	s.store.SetTeamStats(stats)
	stored, _ := s.store.TeamStats(teamID, season)
	return stored, nil
}

func (s *Service) fetchGroup(ctx context.Context, teamID, season int, group players.Group) (players.StatLine, error) {
	line, err := s.provider.FetchTeamStats(ctx, teamID, season, group)
	if providers.IsNotFound(err) {
		return players.StatLine{}, nil
	}
	if err != nil {
		return nil, err
	}
	if line == nil {
		line = players.StatLine{}
	}
	return line, nil
}
