package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
	"github.com/gmontenegrodev/web-app/internal/providers"
)

// ProviderName identifies the fixture provider in logs and metrics.
const ProviderName = "fixture"

// Game pks served by the fixture schedule.
const (
	PreviewGamePk = 900001
	LiveGamePk    = 900002
	FinalGamePk   = 900003
)

// Provider returns a static organization slate useful for local testing and bootstrapping.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

var teamMetadata = map[int]teams.Team{
	146:  {ID: 146, Name: "Miami Marlins", TeamName: "Marlins", Abbreviation: "MIA", LeagueName: "National League", DivisionName: "National League East", FranchiseName: "Miami", VenueName: "loanDepot park", SportID: 1},
	385:  {ID: 385, Name: "Jacksonville Jumbo Shrimp", TeamName: "Jumbo Shrimp", Abbreviation: "JAX", LeagueName: "International League", ParentOrgID: 146, ParentOrgName: "Miami Marlins", VenueName: "VyStar Ballpark", SportID: 11},
	467:  {ID: 467, Name: "Pensacola Blue Wahoos", TeamName: "Blue Wahoos", Abbreviation: "PNS", LeagueName: "Southern League", ParentOrgID: 146, ParentOrgName: "Miami Marlins", VenueName: "Blue Wahoos Stadium", SportID: 12},
	564:  {ID: 564, Name: "Beloit Sky Carp", TeamName: "Sky Carp", Abbreviation: "BEL", LeagueName: "Midwest League", ParentOrgID: 146, ParentOrgName: "Miami Marlins", VenueName: "ABC Supply Stadium", SportID: 13},
	554:  {ID: 554, Name: "Jupiter Hammerheads", TeamName: "Hammerheads", Abbreviation: "JUP", LeagueName: "Florida State League", ParentOrgID: 146, ParentOrgName: "Miami Marlins", VenueName: "Roger Dean Chevrolet Stadium", SportID: 14},
	619:  {ID: 619, Name: "FCL Marlins", TeamName: "FCL Marlins", LeagueName: "Florida Complex League", ParentOrgID: 146, ParentOrgName: "Miami Marlins", SportID: 16},
	3276: {ID: 3276, Name: "DSL Marlins", TeamName: "DSL Marlins", LeagueName: "Dominican Summer League", ParentOrgID: 146, ParentOrgName: "Miami Marlins", SportID: 16},
	4124: {ID: 4124, Name: "DSL Marlins Bautista", TeamName: "DSL Bautista", LeagueName: "Dominican Summer League", ParentOrgID: 146, ParentOrgName: "Miami Marlins", SportID: 16},
	3277: {ID: 3277, Name: "DSL Marlins San Pedro", TeamName: "DSL San Pedro", LeagueName: "Dominican Summer League", ParentOrgID: 146, ParentOrgName: "Miami Marlins", SportID: 16},
	479:  {ID: 479, Name: "DSL Marlins Blue", TeamName: "DSL Blue", LeagueName: "Dominican Summer League", ParentOrgID: 146, ParentOrgName: "Miami Marlins", SportID: 16},
	2127: {ID: 2127, Name: "DSL Marlins Orange", TeamName: "DSL Orange", LeagueName: "Dominican Summer League", ParentOrgID: 146, ParentOrgName: "Miami Marlins", SportID: 16},
	// Opponents referenced by the fixture schedule.
	121:  {ID: 121, Name: "New York Mets", TeamName: "Mets", Abbreviation: "NYM", LeagueName: "National League", SportID: 1},
	234:  {ID: 234, Name: "Durham Bulls", TeamName: "Bulls", Abbreviation: "DUR", LeagueName: "International League", ParentOrgID: 139, ParentOrgName: "Tampa Bay Rays", SportID: 11},
	5015: {ID: 5015, Name: "Biloxi Shuckers", TeamName: "Shuckers", Abbreviation: "BLX", LeagueName: "Southern League", ParentOrgID: 158, ParentOrgName: "Milwaukee Brewers", SportID: 12},
}

var rosters = map[int][]teams.RosterEntry{
	146: {
		{PlayerID: 645261, FullName: "Sandy Alcantara", Position: "P", PositionType: "Pitcher", JerseyNumber: "22"},
		{PlayerID: 669203, FullName: "Xavier Edwards", Position: "SS", PositionType: "Infielder", JerseyNumber: "63"},
		{PlayerID: 665862, FullName: "Kyle Stowers", Position: "LF", PositionType: "Outfielder", JerseyNumber: "28"},
		{PlayerID: 671212, FullName: "Otto Lopez", Position: "2B", PositionType: "Infielder", JerseyNumber: "61"},
	},
	385: {
		{PlayerID: 700001, FullName: "Jakob Marsee", Position: "CF", PositionType: "Outfielder", JerseyNumber: "7"},
		{PlayerID: 700002, FullName: "Robby Snelling", Position: "P", PositionType: "Pitcher", JerseyNumber: "45"},
	},
	467: {
		{PlayerID: 700003, FullName: "Deyvison De Los Santos", Position: "3B", PositionType: "Infielder", JerseyNumber: "24"},
	},
	564: {
		{PlayerID: 700004, FullName: "Thomas White", Position: "P", PositionType: "Pitcher", JerseyNumber: "19"},
	},
	554: {
		{PlayerID: 700005, FullName: "Starlyn Caba", Position: "SS", PositionType: "Infielder", JerseyNumber: "2"},
	},
}

// FetchSchedule returns three games: a Marlins preview, a Triple-A live game and a Double-A final.
func (p *Provider) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, providers.Wrap(providers.OpSchedule, err)
	}

	day := p.now().UTC()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err == nil {
			day = parsed.UTC()
		}
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	official := day.Format("2006-01-02")
	homeRuns, awayRuns := 5, 2

	return []games.Game{
		{
			GamePk:        PreviewGamePk,
			GameDate:      day.Add(23*time.Hour + 10*time.Minute).Format(time.RFC3339),
			OfficialDate:  official,
			AbstractState: games.StatePreview,
			DetailedState: "Scheduled",
			Home:          side(146, "John Doe"),
			Away:          side(121, "Kodai Senga"),
			VenueName:     "loanDepot park",
			DoubleHeader:  "N",
			GameNumber:    1,
		},
		{
			GamePk:        LiveGamePk,
			GameDate:      day.Add(22*time.Hour + 5*time.Minute).Format(time.RFC3339),
			OfficialDate:  official,
			AbstractState: games.StateLive,
			DetailedState: "In Progress",
			Home:          side(234, ""),
			Away:          side(385, ""),
			VenueName:     "Durham Bulls Athletic Park",
			DoubleHeader:  "N",
			GameNumber:    1,
		},
		{
			GamePk:        FinalGamePk,
			GameDate:      day.Add(17 * time.Hour).Format(time.RFC3339),
			OfficialDate:  official,
			AbstractState: games.StateFinal,
			DetailedState: "Final",
			Home:          games.Side{Team: teamRef(467), Score: &homeRuns},
			Away:          games.Side{Team: teamRef(5015), Score: &awayRuns},
			VenueName:     "Blue Wahoos Stadium",
			DoubleHeader:  "N",
			GameNumber:    1,
		},
	}, nil
}

// FetchTeamsMetadata returns the known metadata for ids; empty ids returns everything.
func (p *Provider) FetchTeamsMetadata(ctx context.Context, ids []int) (map[int]teams.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, providers.Wrap(providers.OpTeams, err)
	}
	out := make(map[int]teams.Team)
	if len(ids) == 0 {
		for id, t := range teamMetadata {
			out[id] = t
		}
		return out, nil
	}
	for _, id := range ids {
		if t, ok := teamMetadata[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

// FetchGameLive returns a feed for the live and final fixture games.
func (p *Provider) FetchGameLive(ctx context.Context, gamePk int) (games.LiveFeed, error) {
	if err := ctx.Err(); err != nil {
		return games.LiveFeed{}, providers.Wrap(providers.OpLiveFeed, err)
	}

	switch gamePk {
	case LiveGamePk:
		top := false
		feed := games.LiveFeed{GamePk: gamePk}
		ls := &feed.LiveData.Linescore
		ls.CurrentInning = 6
		ls.IsTopInning = &top
		ls.InningState = "Bottom"
		ls.Outs = 1
		ls.Teams.Home.Runs = 3
		ls.Teams.Away.Runs = 4
		ls.Defense.Pitcher = games.PersonRef{ID: 700002}
		ls.Offense.Batter = games.PersonRef{ID: 680000}
		feed.LiveData.Boxscore.Players = map[string]games.FeedBoxPlayer{
			"ID700002": {Person: games.PersonRef{ID: 700002, FullName: "Robby Snelling"}},
			"ID680000": {Person: games.PersonRef{ID: 680000, FullName: "Carson Williams"}},
		}
		first, third := games.BaseCode("1B"), games.BaseCode("3B")
		feed.LiveData.Plays.CurrentPlay = &games.FeedPlay{
			Runners: []games.FeedRunner{
				{Movement: games.FeedMovement{End: &first}},
				{Movement: games.FeedMovement{End: &third}},
			},
		}
		return feed, nil
	case FinalGamePk:
		feed := games.LiveFeed{GamePk: gamePk}
		ls := &feed.LiveData.Linescore
		ls.CurrentInning = 9
		ls.InningState = "End"
		ls.Outs = 3
		ls.Teams.Home.Runs = 5
		ls.Teams.Away.Runs = 2
		feed.LiveData.Decisions = games.FeedDecisions{
			Winner: games.PersonRef{ID: 700010, FullName: "Adam Mazur"},
			Loser:  games.PersonRef{ID: 700011, FullName: "Logan Henderson"},
			Save:   games.PersonRef{ID: 700012, FullName: "Josh White"},
		}
		return feed, nil
	}
	return games.LiveFeed{}, providers.Wrap(providers.OpLiveFeed, providers.ErrNotFound)
}

// FetchRoster returns the fixture roster for a team, tagged with its id.
func (p *Provider) FetchRoster(ctx context.Context, teamID int, rosterType string) ([]teams.RosterEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, providers.Wrap(providers.OpRoster, err)
	}
	src := rosters[teamID]
	out := make([]teams.RosterEntry, 0, len(src))
	for _, r := range src {
		r.TeamID = teamID
		out = append(out, r)
	}
	return out, nil
}

// FetchPlayerStats derives a deterministic line from the player id.
// Pitchers have no hitting line and position players no pitching line.
func (p *Provider) FetchPlayerStats(ctx context.Context, playerID, season int, group players.Group) (players.StatLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, providers.Wrap(providers.OpPlayerStats, err)
	}
	entry, ok := findPlayer(playerID)
	if !ok {
		return players.StatLine{}, nil
	}
	if entry.IsPitcher() != (group == players.GroupPitching) {
		return players.StatLine{}, nil
	}
	return statLineFor(playerID, group), nil
}

// FetchTeamStats returns a fixed team line per group.
func (p *Provider) FetchTeamStats(ctx context.Context, teamID, season int, group players.Group) (players.StatLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, providers.Wrap(providers.OpTeamStats, err)
	}
	if _, ok := teamMetadata[teamID]; !ok {
		return nil, providers.Wrap(providers.OpTeamStats, providers.ErrNotFound)
	}
	return statLineFor(teamID, group), nil
}

// FetchPlayerGameLogs returns three games in chronological order.
func (p *Provider) FetchPlayerGameLogs(ctx context.Context, playerID, season int) ([]players.GameLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, providers.Wrap(providers.OpGameLogs, err)
	}
	entry, ok := findPlayer(playerID)
	if !ok {
		return []players.GameLog{}, nil
	}
	group := players.GroupHitting
	if entry.IsPitcher() {
		group = players.GroupPitching
	}
	out := make([]players.GameLog, 0, 3)
	for i := 0; i < 3; i++ {
		out = append(out, players.GameLog{
			Date:         fmt.Sprintf("%d-05-%02d", season, 10+i),
			GamePk:       800000 + i,
			OpponentID:   121,
			OpponentName: "New York Mets",
			IsHome:       i%2 == 0,
			Group:        group,
			Stat:         statLineFor(playerID+i, group),
		})
	}
	return out, nil
}

func side(teamID int, probable string) games.Side {
	return games.Side{Team: teamRef(teamID), ProbablePitcher: probable}
}

func teamRef(id int) games.TeamRef {
	return games.TeamRef{ID: id, Name: teamMetadata[id].Name}
}

func findPlayer(playerID int) (teams.RosterEntry, bool) {
	for _, roster := range rosters {
		for _, r := range roster {
			if r.PlayerID == playerID {
				return r, true
			}
		}
	}
	return teams.RosterEntry{}, false
}

func statLineFor(seed int, group players.Group) players.StatLine {
	n := seed % 17
	if group == players.GroupPitching {
		return players.StatLine{
			"wins":           3 + n%5,
			"losses":         2 + n%4,
			"era":            fmt.Sprintf("%.2f", 2.5+float64(n)/10),
			"strikeOuts":     60 + n*3,
			"saves":          n % 3,
			"inningsPitched": fmt.Sprintf("%d.%d", 50+n, n%3),
			"whip":           fmt.Sprintf("%.2f", 1.0+float64(n)/50),
			"avg":            fmt.Sprintf(".%03d", 200+n*3),
		}
	}
	return players.StatLine{
		"homeRuns":    5 + n,
		"rbi":         20 + n*2,
		"avg":         fmt.Sprintf(".%03d", 240+n*3),
		"obp":         fmt.Sprintf(".%03d", 300+n*3),
		"slg":         fmt.Sprintf(".%03d", 380+n*5),
		"ops":         fmt.Sprintf(".%03d", 680+n*8),
		"hits":        60 + n*2,
		"doubles":     10 + n,
		"triples":     n % 4,
		"stolenBases": n % 9,
		"baseOnBalls": 20 + n,
		"strikeOuts":  50 + n*2,
	}
}
