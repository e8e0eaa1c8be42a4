package viewmodel

import (
	"sort"

	"github.com/gmontenegrodev/web-app/internal/domain/players"
)

// LeaderboardSize is the number of leaders shown.
const LeaderboardSize = 10

// LeaderEntry is one ranked row of a leaderboard.
// Value is the sort key; a missing stat sorts as 0 with HasValue false.
type LeaderEntry struct {
	Rank     int     `json:"rank"`
	PlayerID int     `json:"playerId"`
	FullName string  `json:"fullName"`
	Position string  `json:"position"`
	TeamID   int     `json:"teamId"`
	Stat     string  `json:"stat"`
	Display  string  `json:"display"`
	Value    float64 `json:"value"`
	HasValue bool    `json:"hasValue"`
}

type leaderCandidate struct {
	row   players.LeaderRow
	line  players.StatLine
	value float64
	has   bool
}

// Leaderboard ranks rows with any stat in group by stat, using the stat's
// direction, and keeps the top LeaderboardSize. Unknown stats sort descending.
func Leaderboard(rows []players.LeaderRow, group players.Group, stat string) []LeaderEntry {
	def, ok := LookupStat(group, stat)
	if !ok {
		def = StatDef{Key: stat, Direction: Descending}
	}

	candidates := make([]leaderCandidate, 0, len(rows))
	for _, row := range rows {
		line := row.Stats.Group(group)
		if len(line) == 0 {
			continue
		}
		v, has := line.Float(stat)
		candidates = append(candidates, leaderCandidate{row: row, line: line, value: v, has: has})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if def.Direction == Ascending {
			return candidates[i].value < candidates[j].value
		}
		return candidates[i].value > candidates[j].value
	})
	if len(candidates) > LeaderboardSize {
		candidates = candidates[:LeaderboardSize]
	}

	out := make([]LeaderEntry, 0, len(candidates))
	for i, c := range candidates {
		out = append(out, LeaderEntry{
			Rank:     i + 1,
			PlayerID: c.row.Player.PlayerID,
			FullName: c.row.Player.FullName,
			Position: c.row.Player.Position,
			TeamID:   c.row.Player.TeamID,
			Stat:     stat,
			Display:  FormatStat(stat, c.line),
			Value:    c.value,
			HasValue: c.has,
		})
	}
	return out
}
