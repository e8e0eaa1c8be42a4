package viewmodel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
)

func pitcherRow(id int, line players.StatLine) players.LeaderRow {
	return players.LeaderRow{
		Player:    teams.RosterEntry{PlayerID: id, FullName: fmt.Sprintf("P%d", id), Position: "P"},
		Stats:     players.Stats{PlayerID: id, Hitting: players.StatLine{}, Pitching: line},
		Available: true,
	}
}

func TestLeaderboardEraAscendingWithMissingAsZero(t *testing.T) {
	rows := []players.LeaderRow{
		pitcherRow(1, players.StatLine{"era": "4.50", "wins": 3}),
		pitcherRow(2, players.StatLine{"era": "2.10", "wins": 1}),
		pitcherRow(3, players.StatLine{"era": 3.3, "wins": 2}),
		pitcherRow(4, players.StatLine{"wins": 0}),
	}

	got := Leaderboard(rows, players.GroupPitching, "era")
	require.Len(t, got, 4)
	assert.Equal(t, []int{4, 2, 3, 1}, []int{got[0].PlayerID, got[1].PlayerID, got[2].PlayerID, got[3].PlayerID})
	assert.False(t, got[0].HasValue)
	assert.Equal(t, Missing, got[0].Display)
	assert.Equal(t, "2.10", got[1].Display)
	assert.Equal(t, "4.50", got[3].Display)
	assert.Equal(t, 1, got[0].Rank)
}

func TestLeaderboardTreatsNonFiniteAsMissing(t *testing.T) {
	rows := []players.LeaderRow{
		pitcherRow(1, players.StatLine{"era": "3.30"}),
		pitcherRow(2, players.StatLine{"era": "NaN"}),
		pitcherRow(3, players.StatLine{"era": "1.50"}),
		pitcherRow(4, players.StatLine{"era": "Infinity"}),
	}

	got := Leaderboard(rows, players.GroupPitching, "era")
	require.Len(t, got, 4)
	assert.Equal(t, []int{2, 4, 3, 1}, []int{got[0].PlayerID, got[1].PlayerID, got[2].PlayerID, got[3].PlayerID})
	assert.False(t, got[0].HasValue)
	assert.Zero(t, got[0].Value)
	assert.Equal(t, Missing, got[1].Display)
}

func TestLeaderboardFiltersRowsWithoutGroupStats(t *testing.T) {
	rows := []players.LeaderRow{
		pitcherRow(1, players.StatLine{"era": "3.00"}),
		{Player: teams.RosterEntry{PlayerID: 2}, Stats: players.Stats{Hitting: players.StatLine{"homeRuns": 4}, Pitching: players.StatLine{}}},
		{Player: teams.RosterEntry{PlayerID: 3}, Available: false},
	}

	got := Leaderboard(rows, players.GroupPitching, "era")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].PlayerID)
}

func TestLeaderboardTopTenDescending(t *testing.T) {
	rows := make([]players.LeaderRow, 0, 15)
	for i := 1; i <= 15; i++ {
		rows = append(rows, players.LeaderRow{
			Player: teams.RosterEntry{PlayerID: i},
			Stats:  players.Stats{Hitting: players.StatLine{"homeRuns": fmt.Sprint(i)}},
		})
	}

	got := Leaderboard(rows, players.GroupHitting, "homeRuns")
	require.Len(t, got, LeaderboardSize)
	assert.Equal(t, 15, got[0].PlayerID)
	assert.Equal(t, "15", got[0].Display)
	assert.Equal(t, 6, got[9].PlayerID)
}

func TestLeaderboardHitterStrikeoutsDescending(t *testing.T) {
	rows := []players.LeaderRow{
		{Player: teams.RosterEntry{PlayerID: 1}, Stats: players.Stats{Hitting: players.StatLine{"strikeOuts": 40}}},
		{Player: teams.RosterEntry{PlayerID: 2}, Stats: players.Stats{Hitting: players.StatLine{"strikeOuts": 90}}},
	}
	got := Leaderboard(rows, players.GroupHitting, "strikeOuts")
	assert.Equal(t, 2, got[0].PlayerID)
}

func TestLeaderboardStableTies(t *testing.T) {
	rows := []players.LeaderRow{
		pitcherRow(1, players.StatLine{"losses": 2}),
		pitcherRow(2, players.StatLine{"losses": 2}),
		pitcherRow(3, players.StatLine{"losses": 1}),
	}
	got := Leaderboard(rows, players.GroupPitching, "losses")
	assert.Equal(t, []int{3, 1, 2}, []int{got[0].PlayerID, got[1].PlayerID, got[2].PlayerID})
}

func TestStatDirections(t *testing.T) {
	for _, def := range StatDefs(players.GroupHitting) {
		assert.True(t, def.Descending(), def.Key)
	}
	ascending := map[string]bool{"losses": true, "era": true, "whip": true, "avg": true}
	for _, def := range StatDefs(players.GroupPitching) {
		assert.Equal(t, !ascending[def.Key], def.Descending(), def.Key)
	}
	assert.Nil(t, StatDefs(players.Group("fielding")))
}
