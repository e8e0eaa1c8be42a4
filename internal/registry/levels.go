package registry

import "strings"

// Level is the affiliate classification derived from a league name.
type Level string

const (
	LevelMLB     Level = "MLB"
	LevelAAA     Level = "AAA"
	LevelAA      Level = "AA"
	LevelHighA   Level = "HIGH_A"
	LevelA       Level = "A"
	LevelFCL     Level = "FCL"
	LevelDSL     Level = "DSL"
	LevelUnknown Level = "UNKNOWN"
)

// UnrankedLeague sorts after every recognized level.
const UnrankedLeague = 99

type levelRule struct {
	keyword string
	level   Level
}

// Checked in order; the first keyword contained in the league name wins.
var levelRules = []levelRule{
	{"Major League", LevelMLB},
	{"National League", LevelMLB},
	{"American League", LevelMLB},
	{"Triple-A", LevelAAA},
	{"International League", LevelAAA},
	{"Pacific Coast League", LevelAAA},
	{"Double-A", LevelAA},
	{"Southern League", LevelAA},
	{"Eastern League", LevelAA},
	{"Texas League", LevelAA},
	{"High-A", LevelHighA},
	{"Midwest League", LevelHighA},
	{"South Atlantic League", LevelHighA},
	{"Northwest League", LevelHighA},
	{"Single-A", LevelA},
	{"Florida State League", LevelA},
	{"Carolina League", LevelA},
	{"Florida Complex", LevelFCL},
	{"Dominican Summer", LevelDSL},
}

var levelRanks = map[Level]int{
	LevelMLB:   0,
	LevelAAA:   1,
	LevelAA:    2,
	LevelHighA: 3,
	LevelA:     4,
	LevelFCL:   5,
	LevelDSL:   6,
}

var levelLabels = map[Level]string{
	LevelMLB:   "MLB",
	LevelAAA:   "AAA",
	LevelAA:    "AA",
	LevelHighA: "High-A",
	LevelA:     "A",
	LevelFCL:   "FCL",
	LevelDSL:   "DSL",
}

// ClassifyLevel maps a free-text league name to a Level. It never fails.
func ClassifyLevel(leagueName string) Level {
	if leagueName == "" {
		return LevelUnknown
	}
	for _, rule := range levelRules {
		if strings.Contains(leagueName, rule.keyword) {
			return rule.level
		}
	}
	return LevelUnknown
}

// Rank orders levels from MLB (0) down to DSL (6); unknown levels get UnrankedLeague.
func (l Level) Rank() int {
	if rank, ok := levelRanks[l]; ok {
		return rank
	}
	return UnrankedLeague
}

// Label is the short display label, empty for LevelUnknown.
func (l Level) Label() string {
	return levelLabels[l]
}

// LeagueRank classifies the league name and returns its rank.
func LeagueRank(leagueName string) int {
	return ClassifyLevel(leagueName).Rank()
}

// LevelLabel returns the short label, falling back to the league name itself when unrecognized.
func LevelLabel(leagueName string) string {
	if label := ClassifyLevel(leagueName).Label(); label != "" {
		return label
	}
	return leagueName
}

// IsMLB reports whether the league name is a major league.
func IsMLB(leagueName string) bool {
	return ClassifyLevel(leagueName) == LevelMLB
}
