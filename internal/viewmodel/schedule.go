// Package viewmodel composes stored schedule, live and stat records into display structs.
// It only reads its inputs and always builds new values.
package viewmodel

import (
	"sort"
	"time"

	"github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
	"github.com/gmontenegrodev/web-app/internal/registry"
	"github.com/gmontenegrodev/web-app/internal/schedule"
)

// StateNoGame marks a team without a game on the date.
const StateNoGame = "NO_GAME"

// LiveUnavailable marks a started game whose live feed could not be fetched.
const LiveUnavailable = "unavailable"

// State priorities; lower sorts first.
const (
	priorityLive    = 0
	priorityPreview = 1
	priorityOther   = 2
	priorityNoGame  = 3
)

// ScheduleInput is everything the schedule view is composed from.
type ScheduleInput struct {
	Date     string
	TeamIDs  []int
	Teams    map[int]teams.Team
	Games    []games.Game
	Live     map[int]*games.LiveState
	Location *time.Location
}

// Pitchers lists the probable starters for a preview.
type Pitchers struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// LiveSnapshot is the in-progress view of a game.
type LiveSnapshot struct {
	Score      games.Score `json:"score"`
	Inning     int         `json:"inning"`
	InningHalf string      `json:"inningHalf"`
	Outs       int         `json:"outs"`
	Runners    []string    `json:"runners"`
	Pitcher    string      `json:"pitcher"`
	Batter     string      `json:"batter"`
}

// FinalSummary is the view of a completed game.
type FinalSummary struct {
	Score     games.Score     `json:"score"`
	Decisions games.Decisions `json:"decisions"`
}

// ScheduleEntry is one registry team's display record for a date.
type ScheduleEntry struct {
	TeamID          int           `json:"teamId"`
	TeamName        string        `json:"teamName"`
	Level           string        `json:"level"`
	LeagueRank      int           `json:"leagueRank"`
	State           string        `json:"state"`
	DetailedState   string        `json:"detailedState,omitempty"`
	GamePk          int           `json:"gamePk,omitempty"`
	HomeTeam        string        `json:"homeTeam,omitempty"`
	AwayTeam        string        `json:"awayTeam,omitempty"`
	IsHome          bool          `json:"isHome"`
	Opponent        string        `json:"opponent,omitempty"`
	OpponentParent  string        `json:"opponentParent,omitempty"`
	Venue           string        `json:"venue,omitempty"`
	GameDate        string        `json:"gameDate,omitempty"`
	StartTime       string        `json:"startTime,omitempty"`
	StartingPitcher string        `json:"startingPitcher,omitempty"`
	Probables       *Pitchers     `json:"probables,omitempty"`
	Live            *LiveSnapshot `json:"live,omitempty"`
	Final           *FinalSummary `json:"final,omitempty"`
	LiveStatus      string        `json:"liveStatus,omitempty"`

	priority int
}

// ComposeSchedule returns one entry per team id, ordered by game-state
// priority (Live, Preview, Final or other, no game) then league rank.
// Ties keep team id order.
func ComposeSchedule(in ScheduleInput) []ScheduleEntry {
	teamIDs := in.TeamIDs
	if len(teamIDs) == 0 {
		teamIDs = registry.OrgTeamIDs()
	}
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	resolution := schedule.Resolve(in.Games, teamIDs)
	out := make([]ScheduleEntry, 0, len(teamIDs))
	for _, id := range teamIDs {
		out = append(out, composeEntry(id, resolution[id], in, loc))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].priority != out[j].priority {
			return out[i].priority < out[j].priority
		}
		return out[i].LeagueRank < out[j].LeagueRank
	})
	return out
}

func composeEntry(teamID int, g *games.Game, in ScheduleInput, loc *time.Location) ScheduleEntry {
	meta := in.Teams[teamID]
	entry := ScheduleEntry{
		TeamID:     teamID,
		TeamName:   meta.DisplayName(),
		Level:      registry.LevelLabel(meta.LeagueName),
		LeagueRank: registry.LeagueRank(meta.LeagueName),
	}

	if g == nil {
		entry.State = StateNoGame
		entry.priority = priorityNoGame
		return entry
	}

	opp := g.Opponent(teamID)
	if entry.TeamName == "" {
		if g.IsHome(teamID) {
			entry.TeamName = g.Home.Team.Name
		} else {
			entry.TeamName = g.Away.Team.Name
		}
	}
	entry.State = string(g.AbstractState)
	entry.DetailedState = g.DetailedState
	entry.GamePk = g.GamePk
	entry.HomeTeam = g.Home.Team.Name
	entry.AwayTeam = g.Away.Team.Name
	entry.IsHome = g.IsHome(teamID)
	entry.Opponent = opp.Team.Name
	entry.OpponentParent = OpponentParent(in.Teams, opp.Team.ID)
	entry.Venue = g.VenueName
	entry.GameDate = g.GameDate
	entry.StartTime = FormatLocalTime(g.GameDate, loc)

	state, fetched := in.Live[g.GamePk]
	switch g.AbstractState {
	case games.StateLive:
		entry.priority = priorityLive
		if state == nil {
			entry.LiveStatus = LiveUnavailable
			break
		}
		entry.Live = &LiveSnapshot{
			Score:      state.Score,
			Inning:     state.Inning,
			InningHalf: state.InningHalf,
			Outs:       state.Outs,
			Runners:    state.Bases.Occupied(),
			Pitcher:    state.Pitcher,
			Batter:     state.Batter,
		}
	case games.StatePreview:
		entry.priority = priorityPreview
		entry.Probables = &Pitchers{
			Home: orTBD(g.Home.ProbablePitcher),
			Away: orTBD(g.Away.ProbablePitcher),
		}
		own := g.Away
		if entry.IsHome {
			own = g.Home
		}
		entry.StartingPitcher = orTBD(own.ProbablePitcher)
	case games.StateFinal:
		entry.priority = priorityOther
		final := &FinalSummary{Score: scheduleScore(*g)}
		if state != nil {
			final.Score = state.Score
			final.Decisions = state.Decisions
		} else if fetched {
			entry.LiveStatus = LiveUnavailable
		}
		entry.Final = final
	default:
		entry.priority = priorityOther
	}
	return entry
}

func scheduleScore(g games.Game) games.Score {
	var s games.Score
	if g.Home.Score != nil {
		s.Home = *g.Home.Score
	}
	if g.Away.Score != nil {
		s.Away = *g.Away.Score
	}
	return s
}

func orTBD(name string) string {
	if name == "" {
		return TBD
	}
	return name
}

// OpponentParent qualifies an opponent: an MLB club shows its own team name,
// an affiliate shows its parent organization. Unknown metadata yields "".
func OpponentParent(meta map[int]teams.Team, opponentID int) string {
	t, ok := meta[opponentID]
	if !ok {
		return ""
	}
	if registry.IsMLB(t.LeagueName) {
		if t.TeamName != "" {
			return t.TeamName
		}
		return t.Name
	}
	if t.ParentOrgName != "" {
		return t.ParentOrgName
	}
	return t.FranchiseName
}
