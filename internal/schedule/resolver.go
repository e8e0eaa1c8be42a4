// Package schedule reconciles a date's games against the organization's team ids.
package schedule

import "github.com/gmontenegrodev/web-app/internal/domain/games"

// Resolution maps every requested team id to its game, or nil for "no game".
type Resolution map[int]*games.Game

// Resolve assigns each team the first game in gamesForDate where it plays on
// either side. A later game for the same team (the second half of a
// double-header) is not surfaced. Shared games are not deduplicated: two org
// teams playing each other both point at the same game.
func Resolve(gamesForDate []games.Game, teamIDs []int) Resolution {
	out := make(Resolution, len(teamIDs))
	for _, id := range teamIDs {
		out[id] = nil
		for i := range gamesForDate {
			if gamesForDate[i].Involves(id) {
				g := gamesForDate[i]
				out[id] = &g
				break
			}
		}
	}
	return out
}

// GamePks returns the distinct game pks in teamIDs order.
func (r Resolution) GamePks(teamIDs []int) []int {
	seen := make(map[int]struct{}, len(r))
	out := make([]int, 0, len(r))
	for _, id := range teamIDs {
		g := r[id]
		if g == nil {
			continue
		}
		if _, ok := seen[g.GamePk]; ok {
			continue
		}
		seen[g.GamePk] = struct{}{}
		out = append(out, g.GamePk)
	}
	return out
}

// Game returns the resolved game for teamID.
func (r Resolution) Game(teamID int) (*games.Game, bool) {
	g := r[teamID]
	return g, g != nil
}
