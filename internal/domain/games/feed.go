package games

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// LiveFeed is the subset of the upstream live feed the aggregator reads.
// Every field is optional upstream; missing values decode to zero values.
type LiveFeed struct {
	GamePk   int          `json:"gamePk"`
	LiveData FeedLiveData `json:"liveData"`
}

type FeedLiveData struct {
	Linescore FeedLinescore `json:"linescore"`
	Boxscore  FeedBoxscore  `json:"boxscore"`
	Plays     FeedPlays     `json:"plays"`
	Decisions FeedDecisions `json:"decisions"`
}

type FeedLinescore struct {
	CurrentInning int    `json:"currentInning"`
	IsTopInning   *bool  `json:"isTopInning"`
	InningState   string `json:"inningState"`
	Outs          int    `json:"outs"`
	Teams         struct {
		Home FeedLineTeam `json:"home"`
		Away FeedLineTeam `json:"away"`
	} `json:"teams"`
	Defense struct {
		Pitcher PersonRef `json:"pitcher"`
	} `json:"defense"`
	Offense struct {
		Batter PersonRef `json:"batter"`
	} `json:"offense"`
}

type FeedLineTeam struct {
	Runs int `json:"runs"`
}

type FeedBoxscore struct {
	// Keyed by "ID<playerId>".
	Players map[string]FeedBoxPlayer `json:"players"`
	Teams   struct {
		Home FeedBoxTeam `json:"home"`
		Away FeedBoxTeam `json:"away"`
	} `json:"teams"`
}

type FeedBoxPlayer struct {
	Person PersonRef `json:"person"`
}

type FeedBoxTeam struct {
	Pitchers []PersonRef `json:"pitchers"`
	Batters  []PersonRef `json:"batters"`
}

type FeedPlays struct {
	CurrentPlay *FeedPlay  `json:"currentPlay"`
	AllPlays    []FeedPlay `json:"allPlays"`
}

type FeedPlay struct {
	Matchup FeedMatchup  `json:"matchup"`
	Runners []FeedRunner `json:"runners"`
}

type FeedMatchup struct {
	Batter  PersonRef `json:"batter"`
	Pitcher PersonRef `json:"pitcher"`
}

type FeedRunner struct {
	Movement FeedMovement `json:"movement"`
}

// FeedMovement positions are nil when null or absent.
type FeedMovement struct {
	Start *BaseCode `json:"start"`
	End   *BaseCode `json:"end"`
}

type FeedDecisions struct {
	Winner PersonRef `json:"winner"`
	Loser  PersonRef `json:"loser"`
	Save   PersonRef `json:"save"`
}

// PersonRef accepts a bare numeric id, a {id, fullName} object, or a
// boxscore entry nesting the same object under "person".
type PersonRef struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

func (p *PersonRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] != '{' {
		var id json.Number
		if err := json.Unmarshal(data, &id); err != nil {
			// Unexpected encodings are treated as absent.
			return nil
		}
		if n, err := id.Int64(); err == nil {
			p.ID = int(n)
		}
		return nil
	}

	var raw struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
		Person   *struct {
			ID       int    `json:"id"`
			FullName string `json:"fullName"`
		} `json:"person"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	p.ID = raw.ID
	p.FullName = raw.FullName
	if raw.Person != nil {
		if p.ID == 0 {
			p.ID = raw.Person.ID
		}
		if p.FullName == "" {
			p.FullName = raw.Person.FullName
		}
	}
	return nil
}

// BaseCode is a runner position such as "1B", "score" or a bare number.
type BaseCode string

func (b *BaseCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = BaseCode(s)
		return nil
	}
	if n, err := strconv.ParseFloat(string(data), 64); err == nil {
		*b = BaseCode(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	*b = BaseCode(data)
	return nil
}
