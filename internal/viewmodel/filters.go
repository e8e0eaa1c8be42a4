package viewmodel

import (
	"fmt"

	"github.com/gmontenegrodev/web-app/internal/domain/players"
)

// Filter defaults.
const (
	DefaultGroup   = players.GroupHitting
	DefaultStatKey = "homeRuns"
)

// Filters is the leaderboard and stats selection state.
// TeamID 0 means no team is selected.
type Filters struct {
	Season int           `json:"season"`
	TeamID int           `json:"teamId,omitempty"`
	Group  players.Group `json:"group"`
	Stat   string        `json:"stat"`
}

// NewFilters returns the defaults for season.
func NewFilters(season int) Filters {
	f := Filters{Season: season}
	f.Reset()
	return f
}

// Reset restores team, stat and group defaults; the season is kept.
func (f *Filters) Reset() {
	f.TeamID = 0
	f.Group = DefaultGroup
	f.Stat = DefaultStatKey
}

// SetSeason changes the season and resets the group and stat.
func (f *Filters) SetSeason(season int) {
	f.Season = season
	f.Group = DefaultGroup
	f.Stat = DefaultStatKey
}

// SetGroup changes the group and resets the stat to the group's first stat.
func (f *Filters) SetGroup(group players.Group) {
	f.Group = group
	f.Stat = DefaultStat(group)
}

// Validate checks the group and that the stat belongs to it.
func (f Filters) Validate() error {
	if !f.Group.Valid() {
		return fmt.Errorf("unknown stat group %q", f.Group)
	}
	if _, ok := LookupStat(f.Group, f.Stat); !ok {
		return fmt.Errorf("unknown %s stat %q", f.Group, f.Stat)
	}
	if f.Season <= 0 {
		return fmt.Errorf("invalid season %d", f.Season)
	}
	return nil
}
