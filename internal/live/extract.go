// Package live derives presentation state from upstream live feeds.
package live

import (
	"strconv"
	"strings"

	"github.com/gmontenegrodev/web-app/internal/domain/games"
)

// nameSource is one way of finding a player's name in a feed; it returns "" when it has nothing.
type nameSource func(feed games.LiveFeed) string

// Pitcher sources in priority order.
var pitcherSources = []nameSource{
	func(f games.LiveFeed) string { return boxscoreName(f, f.LiveData.Linescore.Defense.Pitcher.ID) },
	func(f games.LiveFeed) string { return currentMatchup(f).Pitcher.FullName },
	func(f games.LiveFeed) string { return lastMatchup(f).Pitcher.FullName },
	func(f games.LiveFeed) string {
		box := f.LiveData.Boxscore.Teams
		return firstListed(f, box.Home.Pitchers, box.Away.Pitchers)
	},
}

// Batter sources in priority order.
var batterSources = []nameSource{
	func(f games.LiveFeed) string { return boxscoreName(f, f.LiveData.Linescore.Offense.Batter.ID) },
	func(f games.LiveFeed) string { return currentMatchup(f).Batter.FullName },
	func(f games.LiveFeed) string { return lastMatchup(f).Batter.FullName },
	func(f games.LiveFeed) string {
		box := f.LiveData.Boxscore.Teams
		return firstListed(f, box.Home.Batters, box.Away.Batters)
	},
}

// Extract reduces a live feed to the fields the schedule view shows.
// Missing fields default to zero values; pitcher and batter fall back to UnknownPlayer.
func Extract(feed games.LiveFeed) games.LiveState {
	ls := feed.LiveData.Linescore
	d := feed.LiveData.Decisions

	return games.LiveState{
		GamePk: feed.GamePk,
		Score: games.Score{
			Home: ls.Teams.Home.Runs,
			Away: ls.Teams.Away.Runs,
		},
		Inning:     ls.CurrentInning,
		InningHalf: inningHalf(ls),
		Outs:       ls.Outs,
		Bases:      runnersOn(feed),
		Pitcher:    firstName(feed, pitcherSources),
		Batter:     firstName(feed, batterSources),
		Decisions: games.Decisions{
			Winner: d.Winner.FullName,
			Loser:  d.Loser.FullName,
			Save:   d.Save.FullName,
		},
	}
}

func firstName(feed games.LiveFeed, sources []nameSource) string {
	for _, src := range sources {
		if name := strings.TrimSpace(src(feed)); name != "" {
			return name
		}
	}
	return games.UnknownPlayer
}

func boxscoreName(feed games.LiveFeed, id int) string {
	if id == 0 {
		return ""
	}
	return feed.LiveData.Boxscore.Players["ID"+strconv.Itoa(id)].Person.FullName
}

func currentMatchup(feed games.LiveFeed) games.FeedMatchup {
	if cp := feed.LiveData.Plays.CurrentPlay; cp != nil {
		return cp.Matchup
	}
	return games.FeedMatchup{}
}

func lastMatchup(feed games.LiveFeed) games.FeedMatchup {
	plays := feed.LiveData.Plays.AllPlays
	if len(plays) == 0 {
		return games.FeedMatchup{}
	}
	return plays[len(plays)-1].Matchup
}

// firstListed takes the first entry across the home then away lists.
// Upstream lists are usually bare ids, so names are resolved through the boxscore.
func firstListed(feed games.LiveFeed, home, away []games.PersonRef) string {
	all := append(append([]games.PersonRef{}, home...), away...)
	if len(all) == 0 {
		return ""
	}
	if all[0].FullName != "" {
		return all[0].FullName
	}
	return boxscoreName(feed, all[0].ID)
}

func inningHalf(ls games.FeedLinescore) string {
	if ls.IsTopInning != nil {
		if *ls.IsTopInning {
			return "Top"
		}
		return "Bot"
	}
	return ls.InningState
}

// runnersOn marks bases from current-play runners with a null start and a set end.
func runnersOn(feed games.LiveFeed) games.Bases {
	var bases games.Bases
	cp := feed.LiveData.Plays.CurrentPlay
	if cp == nil {
		return bases
	}
	for _, r := range cp.Runners {
		if r.Movement.Start != nil || r.Movement.End == nil {
			continue
		}
		switch strings.ToUpper(strings.TrimSpace(string(*r.Movement.End))) {
		case "1B", "1":
			bases.First = true
		case "2B", "2":
			bases.Second = true
		case "3B", "3":
			bases.Third = true
		}
	}
	return bases
}
