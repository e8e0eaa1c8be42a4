package players

import (
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
)

// Group is a stat category.
type Group string

const (
	GroupHitting  Group = "hitting"
	GroupPitching Group = "pitching"
)

// Valid reports whether g is a known group.
func (g Group) Valid() bool {
	return g == GroupHitting || g == GroupPitching
}

// Groups lists both stat groups in display order.
func Groups() []Group {
	return []Group{GroupHitting, GroupPitching}
}

// Stats is one player's (or team's) season record with both groups present.
type Stats struct {
	PlayerID int      `json:"playerId,omitempty"`
	TeamID   int      `json:"teamId,omitempty"`
	Season   int      `json:"season"`
	Hitting  StatLine `json:"hitting"`
	Pitching StatLine `json:"pitching"`
}

// Group returns the stat line for g, never nil.
func (s Stats) Group(g Group) StatLine {
	var line StatLine
	switch g {
	case GroupHitting:
		line = s.Hitting
	case GroupPitching:
		line = s.Pitching
	}
	if line == nil {
		return StatLine{}
	}
	return line
}

// GameLog is a single game's stat split.
type GameLog struct {
	Date         string   `json:"date"`
	GamePk       int      `json:"gamePk,omitempty"`
	OpponentID   int      `json:"opponentId,omitempty"`
	OpponentName string   `json:"opponentName"`
	IsHome       bool     `json:"isHome"`
	Group        Group    `json:"group,omitempty"`
	Stat         StatLine `json:"stat"`
}

// LeaderRow pairs a rostered player with the stats fetched for a leaderboard.
// Available is false when the stat fetch failed for this player.
type LeaderRow struct {
	Player    teams.RosterEntry `json:"player"`
	Stats     Stats             `json:"stats"`
	Available bool              `json:"available"`
}
