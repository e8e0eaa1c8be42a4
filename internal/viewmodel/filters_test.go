package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
)

func TestFiltersDefaultsAndReset(t *testing.T) {
	f := NewFilters(2025)
	assert.Equal(t, Filters{Season: 2025, Group: players.GroupHitting, Stat: "homeRuns"}, f)
	require.NoError(t, f.Validate())

	f.TeamID = 385
	f.SetGroup(players.GroupPitching)
	assert.Equal(t, "wins", f.Stat)
	f.Stat = "era"

	f.Reset()
	assert.Equal(t, 0, f.TeamID)
	assert.Equal(t, players.GroupHitting, f.Group)
	assert.Equal(t, "homeRuns", f.Stat)
	assert.Equal(t, 2025, f.Season)
}

func TestFiltersSetSeasonResetsSelection(t *testing.T) {
	f := NewFilters(2025)
	f.SetGroup(players.GroupPitching)
	f.SetSeason(2024)
	assert.Equal(t, 2024, f.Season)
	assert.Equal(t, players.GroupHitting, f.Group)
	assert.Equal(t, "homeRuns", f.Stat)
}

func TestFiltersValidate(t *testing.T) {
	f := NewFilters(2025)
	f.Stat = "era"
	assert.Error(t, f.Validate())

	f.Group = "fielding"
	assert.Error(t, f.Validate())

	f = NewFilters(0)
	assert.Error(t, f.Validate())
}

func TestOrgChartGroupsByLevel(t *testing.T) {
	meta := orgMeta()
	chart := OrgChart(meta, []int{3276, 146, 385, 4124, 999})

	require.Len(t, chart, 3)
	assert.Equal(t, "MLB", chart[0].Level)
	assert.Equal(t, "AAA", chart[1].Level)
	assert.Equal(t, "DSL", chart[2].Level)
	assert.Equal(t, []teams.Team{meta[3276], meta[4124]}, chart[2].Teams)
}
