package viewmodel

import (
	"sort"

	"github.com/gmontenegrodev/web-app/internal/domain/teams"
	"github.com/gmontenegrodev/web-app/internal/registry"
)

// OrgLevel groups the organization's teams at one level.
type OrgLevel struct {
	Level string       `json:"level"`
	Rank  int          `json:"rank"`
	Teams []teams.Team `json:"teams"`
}

// OrgChart groups teamIDs by level label in rank order. Teams without metadata are skipped.
func OrgChart(meta map[int]teams.Team, teamIDs []int) []OrgLevel {
	if len(teamIDs) == 0 {
		teamIDs = registry.OrgTeamIDs()
	}

	byLabel := make(map[string]*OrgLevel)
	order := make([]*OrgLevel, 0)
	for _, id := range teamIDs {
		t, ok := meta[id]
		if !ok {
			continue
		}
		label := registry.LevelLabel(t.LeagueName)
		lvl, ok := byLabel[label]
		if !ok {
			lvl = &OrgLevel{Level: label, Rank: registry.LeagueRank(t.LeagueName)}
			byLabel[label] = lvl
			order = append(order, lvl)
		}
		lvl.Teams = append(lvl.Teams, t)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Rank < order[j].Rank
	})
	out := make([]OrgLevel, 0, len(order))
	for _, lvl := range order {
		out = append(out, *lvl)
	}
	return out
}
