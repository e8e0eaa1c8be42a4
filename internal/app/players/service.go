package players

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/metrics"
	"github.com/gmontenegrodev/web-app/internal/providers"
)

const (
	// DefaultRosterCap bounds how many roster entries a leaderboard fetches stats for.
	DefaultRosterCap = 25
	// GameLogLimit is the number of most recent games kept per player.
	GameLogLimit = 10
	// SearchLimit caps player search results.
	SearchLimit = 20

	defaultConcurrency = 8
	defaultRosterType  = "active"

	// indexRetryAfter spaces out rebuilds of an index that came back empty.
	indexRetryAfter = 30 * time.Second
)

// Store defines the contract for caching rosters and player stats.
type Store interface {
	SetRoster(teamID int, roster []teams.RosterEntry)
	Roster(teamID int) ([]teams.RosterEntry, bool)
	SetPlayerStats(stats players.Stats)
	PlayerStats(playerID, season int) (players.Stats, bool)
	SetGameLogs(playerID, season int, logs []players.GameLog)
	GameLogs(playerID, season int) ([]players.GameLog, bool)
	SetPlayerIndex(entries []teams.RosterEntry)
	PlayerIndex() []teams.RosterEntry
}

// Provider is the upstream surface the service reads from.
type Provider interface {
	FetchRoster(ctx context.Context, teamID int, rosterType string) ([]teams.RosterEntry, error)
	providers.PlayerProvider
}

// Config tunes the fan-out behavior.
type Config struct {
	RosterCap   int
	Concurrency int
}

// Service fetches rosters and player stats and caches them in a Store.
type Service struct {
	store       Store
	provider    Provider
	recorder    *metrics.Recorder
	logger      *slog.Logger
	rosterCap   int
	concurrency int
	now         func() time.Time

	indexMu      sync.Mutex
	indexAttempt time.Time
}

// NewService constructs a Service with the provided Store and Provider.
func NewService(store Store, provider Provider, cfg Config, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	if cfg.RosterCap <= 0 {
		cfg.RosterCap = DefaultRosterCap
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return &Service{
		store:       store,
		provider:    provider,
		recorder:    recorder,
		logger:      logger,
		rosterCap:   cfg.RosterCap,
		concurrency: cfg.Concurrency,
		now:         time.Now,
	}
}

// FetchRoster always hits upstream and replaces the cached roster for teamID.
func (s *Service) FetchRoster(ctx context.Context, teamID int, rosterType string) ([]teams.RosterEntry, error) {
	if s.provider == nil {
		return nil, providers.Wrap(providers.OpRoster, providers.ErrProviderUnavailable)
	}
	if rosterType == "" {
		rosterType = defaultRosterType
	}
	roster, err := s.provider.FetchRoster(ctx, teamID, rosterType)
	if err != nil {
		return nil, err
	}
	for i := range roster {
		if roster[i].TeamID == 0 {
			roster[i].TeamID = teamID
		}
	}
	s.store.SetRoster(teamID, roster)
	return roster, nil
}

// Roster returns the cached roster, fetching the active roster on a miss.
func (s *Service) Roster(ctx context.Context, teamID int) ([]teams.RosterEntry, error) {
	if roster, ok := s.store.Roster(teamID); ok {
		return roster, nil
	}
	return s.FetchRoster(ctx, teamID, defaultRosterType)
}

// FetchPlayerStats returns a player's merged season record. Hitting and
// pitching are fetched concurrently; if one group fails it is reported empty,
// and only when both fail is the error returned. Partial records are not cached.
func (s *Service) FetchPlayerStats(ctx context.Context, playerID, season int) (players.Stats, error) {
	if cached, ok := s.store.PlayerStats(playerID, season); ok {
		return cached, nil
	}
	if s.provider == nil {
		return players.Stats{}, providers.Wrap(providers.OpPlayerStats, providers.ErrProviderUnavailable)
	}

	var (
		hitting, pitching       players.StatLine
		hittingErr, pitchingErr error
		g                       errgroup.Group
	)
	g.Go(func() error {
		hitting, hittingErr = s.fetchGroup(ctx, playerID, season, players.GroupHitting)
		return nil
	})
	g.Go(func() error {
		pitching, pitchingErr = s.fetchGroup(ctx, playerID, season, players.GroupPitching)
		return nil
	})
	_ = g.Wait()

	if hittingErr != nil && pitchingErr != nil {
		return players.Stats{}, errors.Join(hittingErr, pitchingErr)
	}

	stats := players.Stats{
		PlayerID: playerID,
		Season:   season,
		Hitting:  nonNil(hitting),
		Pitching: nonNil(pitching),
	}
	if hittingErr == nil && pitchingErr == nil {
		s.store.SetPlayerStats(stats)
	} else {
		logging.Warn(logging.FromContext(ctx, s.logger), "partial player stats",
			slog.Int(logging.FieldPlayerID, playerID),
			slog.Int(logging.FieldSeason, season),
			"error", errors.Join(hittingErr, pitchingErr),
		)
	}
	return stats, nil
}

// fetchGroup treats an upstream 404 as an empty line.
func (s *Service) fetchGroup(ctx context.Context, playerID, season int, group players.Group) (players.StatLine, error) {
	line, err := s.provider.FetchPlayerStats(ctx, playerID, season, group)
	if providers.IsNotFound(err) {
		return players.StatLine{}, nil
	}
	return line, err
}

// FetchPlayerGameLogs returns the most recent games first, capped at GameLogLimit.
func (s *Service) FetchPlayerGameLogs(ctx context.Context, playerID, season int) ([]players.GameLog, error) {
	if cached, ok := s.store.GameLogs(playerID, season); ok {
		return cached, nil
	}
	if s.provider == nil {
		return nil, providers.Wrap(providers.OpGameLogs, providers.ErrProviderUnavailable)
	}

	logs, err := s.provider.FetchPlayerGameLogs(ctx, playerID, season)
	if providers.IsNotFound(err) {
		logs, err = []players.GameLog{}, nil
	}
	if err != nil {
		return nil, err
	}

	logs = RecentGameLogs(logs, GameLogLimit)
	s.store.SetGameLogs(playerID, season, logs)
	return logs, nil
}

// RecentGameLogs orders logs newest first and keeps at most limit entries.
// Upstream splits are chronological, so games sharing a date keep reverse
// upstream order and the second game of a doubleheader leads.
func RecentGameLogs(logs []players.GameLog, limit int) []players.GameLog {
	out := make([]players.GameLog, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		out = append(out, logs[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// LeaderboardStats fetches stats for the first RosterCap roster entries of a team.
// Rows keep roster order; a failed fetch yields a row with Available=false.
func (s *Service) LeaderboardStats(ctx context.Context, teamID, season int) ([]players.LeaderRow, error) {
	roster, err := s.Roster(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if len(roster) > s.rosterCap {
		roster = roster[:s.rosterCap]
	}

	rows := make([]players.LeaderRow, len(roster))
	var (
		mu          sync.Mutex
		unavailable int
		g           errgroup.Group
	)
	g.SetLimit(s.concurrency)
	logger := logging.FromContext(ctx, s.logger)

	for i, entry := range roster {
		i, entry := i, entry
		g.Go(func() error {
			stats, err := s.FetchPlayerStats(ctx, entry.PlayerID, season)
			row := players.LeaderRow{Player: entry, Stats: stats, Available: err == nil}
			if err != nil {
				row.Stats = players.Stats{
					PlayerID: entry.PlayerID,
					Season:   season,
					Hitting:  players.StatLine{},
					Pitching: players.StatLine{},
				}
				mu.Lock()
				unavailable++
				mu.Unlock()
				logging.Warn(logger, "leaderboard stats unavailable",
					slog.Int(logging.FieldPlayerID, entry.PlayerID),
					slog.Int(logging.FieldTeamID, teamID),
					"error", err,
				)
			}
			rows[i] = row
			return nil
		})
	}
	_ = g.Wait()

	s.recorder.RecordBatch(providers.OpPlayerStats, len(rows), unavailable)
	return rows, nil
}

func nonNil(line players.StatLine) players.StatLine {
	if line == nil {
		return players.StatLine{}
	}
	return line
}

// LoadOrgPlayers builds the org-wide player index from the given teams'
// active rosters. A failing roster is skipped with a warning.
func (s *Service) LoadOrgPlayers(ctx context.Context, teamIDs []int) []teams.RosterEntry {
	rosters := make([][]teams.RosterEntry, len(teamIDs))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	logger := logging.FromContext(ctx, s.logger)

	for i, teamID := range teamIDs {
		i, teamID := i, teamID
		g.Go(func() error {
			roster, err := s.FetchRoster(ctx, teamID, defaultRosterType)
			if err != nil {
				logging.Warn(logger, "skipping roster for player index",
					slog.Int(logging.FieldTeamID, teamID),
					"error", err,
				)
				return nil
			}
			rosters[i] = roster
			return nil
		})
	}
	_ = g.Wait()

	index := make([]teams.RosterEntry, 0)
	for _, roster := range rosters {
		index = append(index, roster...)
	}
	s.store.SetPlayerIndex(index)
	logging.Info(logger, "player index loaded", slog.Int(logging.FieldCount, len(index)))
	return index
}

// EnsureOrgPlayers returns the player index, building it on first use. An
// empty index is rebuilt at most once per indexRetryAfter; concurrent callers
// wait for the build in flight.
func (s *Service) EnsureOrgPlayers(ctx context.Context, teamIDs []int) []teams.RosterEntry {
	if index := s.store.PlayerIndex(); len(index) > 0 {
		return index
	}

	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	if index := s.store.PlayerIndex(); len(index) > 0 {
		return index
	}
	now := s.now()
	if !s.indexAttempt.IsZero() && now.Sub(s.indexAttempt) < indexRetryAfter {
		return []teams.RosterEntry{}
	}
	s.indexAttempt = now
	return s.LoadOrgPlayers(ctx, teamIDs)
}

// SearchPlayers matches a case-insensitive substring of the player's name.
// An empty query returns the first entries of the index.
func (s *Service) SearchPlayers(query string) []teams.RosterEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]teams.RosterEntry, 0, SearchLimit)
	for _, entry := range s.store.PlayerIndex() {
		if len(out) == SearchLimit {
			break
		}
		if query == "" || strings.Contains(strings.ToLower(entry.FullName), query) {
			out = append(out, entry)
		}
	}
	return out
}

// PlayersByTeam filters the index to one team, preserving roster order.
func (s *Service) PlayersByTeam(teamID int) []teams.RosterEntry {
	out := make([]teams.RosterEntry, 0)
	for _, entry := range s.store.PlayerIndex() {
		if entry.TeamID == teamID {
			out = append(out, entry)
		}
	}
	return out
}

// PlayerByID looks a player up in the index.
func (s *Service) PlayerByID(playerID int) (teams.RosterEntry, bool) {
	for _, entry := range s.store.PlayerIndex() {
		if entry.PlayerID == playerID {
			return entry, true
		}
	}
	return teams.RosterEntry{}, false
}
