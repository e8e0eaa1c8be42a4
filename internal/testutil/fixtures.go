package testutil

import (
	domaingames "github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
)

// SampleGame returns a scheduled game between two teams.
func SampleGame(gamePk, homeID, awayID int, state domaingames.AbstractState) domaingames.Game {
	return domaingames.Game{
		GamePk:        gamePk,
		GameDate:      "2025-06-01T23:10:00Z",
		OfficialDate:  "2025-06-01",
		AbstractState: state,
		DetailedState: string(state),
		Home:          domaingames.Side{Team: domaingames.TeamRef{ID: homeID, Name: SampleTeams()[homeID].Name}},
		Away:          domaingames.Side{Team: domaingames.TeamRef{ID: awayID, Name: SampleTeams()[awayID].Name}},
		VenueName:     "loanDepot park",
	}
}

// SampleLive returns a mid-game live state for gamePk.
func SampleLive(gamePk int) *domaingames.LiveState {
	return &domaingames.LiveState{
		GamePk:     gamePk,
		Score:      domaingames.Score{Home: 3, Away: 1},
		Inning:     6,
		InningHalf: "Top",
		Outs:       2,
		Bases:      domaingames.Bases{First: true},
		Pitcher:    "Sandy Alcantara",
		Batter:     "Pete Alonso",
	}
}

// SampleTeams returns metadata for the big-league club, its Triple-A affiliate and one opponent.
func SampleTeams() map[int]teams.Team {
	return map[int]teams.Team{
		146: {ID: 146, Name: "Miami Marlins", TeamName: "Marlins", LeagueName: "National League", FranchiseName: "Miami"},
		385: {ID: 385, Name: "Jacksonville Jumbo Shrimp", TeamName: "Jumbo Shrimp", LeagueName: "International League", ParentOrgName: "Miami Marlins"},
		121: {ID: 121, Name: "New York Mets", TeamName: "Mets", LeagueName: "National League"},
	}
}
