package viewmodel

import "github.com/gmontenegrodev/web-app/internal/domain/players"

// Direction is the sort order that makes a stat's leader first.
type Direction int

const (
	Descending Direction = iota
	Ascending
)

// StatDef describes one leaderboard stat.
type StatDef struct {
	Key       string    `json:"key"`
	Label     string    `json:"label"`
	Direction Direction `json:"-"`
}

// Descending reports whether larger values lead.
func (d StatDef) Descending() bool {
	return d.Direction == Descending
}

var hittingStats = []StatDef{
	{Key: "homeRuns", Label: "Home Runs"},
	{Key: "rbi", Label: "RBIs"},
	{Key: "avg", Label: "Batting Average"},
	{Key: "obp", Label: "On-Base %"},
	{Key: "slg", Label: "Slugging %"},
	{Key: "ops", Label: "OPS"},
	{Key: "hits", Label: "Hits"},
	{Key: "doubles", Label: "Doubles"},
	{Key: "triples", Label: "Triples"},
	{Key: "stolenBases", Label: "Stolen Bases"},
	{Key: "baseOnBalls", Label: "Walks"},
	{Key: "strikeOuts", Label: "Strikeouts"},
}

var pitchingStats = []StatDef{
	{Key: "wins", Label: "Wins"},
	{Key: "losses", Label: "Losses", Direction: Ascending},
	{Key: "era", Label: "ERA", Direction: Ascending},
	{Key: "strikeOuts", Label: "Strikeouts"},
	{Key: "saves", Label: "Saves"},
	{Key: "inningsPitched", Label: "Innings Pitched"},
	{Key: "whip", Label: "WHIP", Direction: Ascending},
	{Key: "avg", Label: "Opponent AVG", Direction: Ascending},
}

// StatDefs lists the leaderboard stats for a group in display order.
func StatDefs(group players.Group) []StatDef {
	switch group {
	case players.GroupHitting:
		return append([]StatDef(nil), hittingStats...)
	case players.GroupPitching:
		return append([]StatDef(nil), pitchingStats...)
	}
	return nil
}

// LookupStat finds a stat definition within a group.
func LookupStat(group players.Group, key string) (StatDef, bool) {
	for _, def := range StatDefs(group) {
		if def.Key == key {
			return def, true
		}
	}
	return StatDef{}, false
}

// DefaultStat is the first stat listed for a group.
func DefaultStat(group players.Group) string {
	defs := StatDefs(group)
	if len(defs) == 0 {
		return ""
	}
	return defs[0].Key
}
