package store

import (
	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
)

// SetRoster stores a team's roster in upstream order.
func (s *Store) SetRoster(teamID int, roster []teams.RosterEntry) {
	cp := append([]teams.RosterEntry{}, roster...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosters[teamID] = cp
}

// Roster retrieves a copy of a team's roster.
func (s *Store) Roster(teamID int) ([]teams.RosterEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rosters[teamID]
	if !ok {
		return nil, false
	}
	return append([]teams.RosterEntry{}, r...), true
}

// SetPlayerStats stores a merged season record keyed by (player, season).
func (s *Store) SetPlayerStats(stats players.Stats) {
	stats = cloneStats(stats)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerStats[seasonKey{stats.PlayerID, stats.Season}] = stats
}

// PlayerStats retrieves a player's season record.
func (s *Store) PlayerStats(playerID, season int) (players.Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.playerStats[seasonKey{playerID, season}]
	if !ok {
		return players.Stats{}, false
	}
	return cloneStats(stats), true
}

// SetTeamStats stores a merged team season record keyed by (team, season).
func (s *Store) SetTeamStats(stats players.Stats) {
	stats = cloneStats(stats)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.teamStats[seasonKey{stats.TeamID, stats.Season}] = stats
}

// TeamStats retrieves a team's season record.
func (s *Store) TeamStats(teamID, season int) (players.Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.teamStats[seasonKey{teamID, season}]
	if !ok {
		return players.Stats{}, false
	}
	return cloneStats(stats), true
}

// SetGameLogs stores a player's game logs keyed by (player, season).
func (s *Store) SetGameLogs(playerID, season int, logs []players.GameLog) {
	cp := append([]players.GameLog{}, logs...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameLogs[seasonKey{playerID, season}] = cp
}

// GameLogs retrieves a player's stored game logs.
func (s *Store) GameLogs(playerID, season int) ([]players.GameLog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs, ok := s.gameLogs[seasonKey{playerID, season}]
	if !ok {
		return nil, false
	}
	return append([]players.GameLog{}, logs...), true
}

// SetPlayerIndex replaces the org-wide player index.
func (s *Store) SetPlayerIndex(entries []teams.RosterEntry) {
	cp := append([]teams.RosterEntry{}, entries...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerIndex = cp
}

// PlayerIndex returns a copy of the org-wide player index.
func (s *Store) PlayerIndex() []teams.RosterEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]teams.RosterEntry{}, s.playerIndex...)
}

func cloneStats(s players.Stats) players.Stats {
	s.Hitting = s.Hitting.Clone()
	s.Pitching = s.Pitching.Clone()
	return s
}
