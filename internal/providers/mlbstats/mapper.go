package mlbstats

import (
	"strings"

	"github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
)

func mapGame(g scheduleGame) games.Game {
	return games.Game{
		GamePk:        g.GamePk,
		GameDate:      g.GameDate,
		OfficialDate:  g.OfficialDate,
		AbstractState: games.AbstractState(strings.TrimSpace(g.Status.AbstractGameState)),
		DetailedState: g.Status.DetailedState,
		Home:          mapSide(g.Teams.Home),
		Away:          mapSide(g.Teams.Away),
		VenueName:     g.Venue.Name,
		DoubleHeader:  g.DoubleHeader,
		GameNumber:    g.GameNumber,
	}
}

func mapSide(s scheduleSide) games.Side {
	side := games.Side{
		Team:  games.TeamRef{ID: s.Team.ID, Name: s.Team.Name},
		Score: s.Score,
	}
	if s.ProbablePitcher != nil {
		side.ProbablePitcher = s.ProbablePitcher.FullName
	}
	return side
}

func mapTeam(t teamPayload) teams.Team {
	return teams.Team{
		ID:            t.ID,
		Name:          t.Name,
		TeamName:      t.TeamName,
		ShortName:     t.ShortName,
		Abbreviation:  t.Abbreviation,
		LeagueName:    t.League.Name,
		DivisionName:  t.Division.Name,
		ParentOrgID:   t.ParentOrgID,
		ParentOrgName: t.ParentOrgName,
		FranchiseName: t.FranchiseName,
		VenueName:     t.Venue.Name,
		SportID:       t.Sport.ID,
	}
}

func mapRosterEntry(teamID int, r rosterPayload) teams.RosterEntry {
	return teams.RosterEntry{
		PlayerID:     r.Person.ID,
		FullName:     r.Person.FullName,
		Position:     r.Position.Abbreviation,
		PositionType: r.Position.Type,
		JerseyNumber: r.JerseyNumber,
		TeamID:       teamID,
	}
}

func mapGameLog(group players.Group, s statSplit) players.GameLog {
	return players.GameLog{
		Date:         s.Date,
		GamePk:       s.Game.GamePk,
		OpponentID:   s.Opponent.ID,
		OpponentName: s.Opponent.Name,
		IsHome:       s.IsHome,
		Group:        group,
		Stat:         statLine(s.Stat),
	}
}

// firstSplitStat returns the season line, or an empty line when upstream has no splits.
func firstSplitStat(resp statsResponse) players.StatLine {
	for _, group := range resp.Stats {
		if len(group.Splits) > 0 {
			return statLine(group.Splits[0].Stat)
		}
	}
	return players.StatLine{}
}

func statLine(raw map[string]any) players.StatLine {
	line := make(players.StatLine, len(raw))
	for k, v := range raw {
		line[k] = v
	}
	return line
}
