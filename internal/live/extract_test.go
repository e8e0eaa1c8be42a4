package live

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmontenegrodev/web-app/internal/domain/games"
)

func decodeFeed(t *testing.T, raw string) games.LiveFeed {
	t.Helper()
	var feed games.LiveFeed
	require.NoError(t, json.Unmarshal([]byte(raw), &feed))
	return feed
}

func TestExtractPrefersLinescoreThroughBoxscore(t *testing.T) {
	feed := decodeFeed(t, `{
		"gamePk": 1,
		"liveData": {
			"linescore": {"defense": {"pitcher": {"id": 10}}, "offense": {"batter": {"id": 20}}},
			"boxscore": {"players": {
				"ID10": {"person": {"id": 10, "fullName": "Box Pitcher"}},
				"ID20": {"person": {"id": 20, "fullName": "Box Batter"}}
			}},
			"plays": {"currentPlay": {"matchup": {"pitcher": {"fullName": "Play Pitcher"}, "batter": {"fullName": "Play Batter"}}}}
		}
	}`)

	state := Extract(feed)
	assert.Equal(t, "Box Pitcher", state.Pitcher)
	assert.Equal(t, "Box Batter", state.Batter)
}

func TestExtractFallsBackToLastPlay(t *testing.T) {
	feed := decodeFeed(t, `{
		"liveData": {
			"linescore": {"defense": {"pitcher": {"id": 10}}},
			"boxscore": {"players": {}},
			"plays": {
				"currentPlay": {"matchup": {}},
				"allPlays": [
					{"matchup": {"pitcher": {"fullName": "Early Arm"}, "batter": {"fullName": "Early Bat"}}},
					{"matchup": {"pitcher": {"fullName": "Late Arm"}, "batter": {"fullName": "Late Bat"}}}
				]
			}
		}
	}`)

	state := Extract(feed)
	assert.Equal(t, "Late Arm", state.Pitcher)
	assert.Equal(t, "Late Bat", state.Batter)
}

func TestExtractFallsBackToBoxscoreLists(t *testing.T) {
	feed := decodeFeed(t, `{
		"liveData": {
			"boxscore": {
				"players": {"ID31": {"person": {"id": 31, "fullName": "Away Starter"}}},
				"teams": {"home": {"pitchers": [], "batters": [{"id": 40, "fullName": "Home Leadoff"}]}, "away": {"pitchers": [31]}}
			}
		}
	}`)

	state := Extract(feed)
	assert.Equal(t, "Away Starter", state.Pitcher)
	assert.Equal(t, "Home Leadoff", state.Batter)
}

func TestExtractUnknownWhenEverySourceIsEmpty(t *testing.T) {
	state := Extract(games.LiveFeed{})
	assert.Equal(t, games.UnknownPlayer, state.Pitcher)
	assert.Equal(t, games.UnknownPlayer, state.Batter)
	assert.Zero(t, state.Inning)
	assert.Zero(t, state.Outs)
	assert.True(t, state.Bases.Empty())
	assert.Equal(t, games.Score{}, state.Score)
}

func TestExtractRunnersFirstAndThird(t *testing.T) {
	feed := decodeFeed(t, `{
		"liveData": {"plays": {"currentPlay": {"runners": [
			{"movement": {"start": null, "end": 1}},
			{"movement": {"start": null, "end": null}},
			{"movement": {"start": null, "end": 3}}
		]}}}
	}`)

	bases := Extract(feed).Bases
	assert.Equal(t, games.Bases{First: true, Third: true}, bases)
	assert.Equal(t, []string{"first", "third"}, bases.Occupied())
}

func TestExtractRunnersIgnoreMovedAndScoring(t *testing.T) {
	feed := decodeFeed(t, `{
		"liveData": {"plays": {"currentPlay": {"runners": [
			{"movement": {"start": "1B", "end": "2B"}},
			{"movement": {"start": null, "end": "score"}},
			{"movement": {"start": null, "end": "2B"}}
		]}}}
	}`)

	assert.Equal(t, games.Bases{Second: true}, Extract(feed).Bases)
}

func TestExtractInningHalfAndScore(t *testing.T) {
	feed := decodeFeed(t, `{
		"liveData": {
			"linescore": {"currentInning": 5, "isTopInning": true, "outs": 2, "teams": {"home": {"runs": 1}, "away": {"runs": 4}}}
		}
	}`)
	state := Extract(feed)
	assert.Equal(t, "Top", state.InningHalf)
	assert.Equal(t, 5, state.Inning)
	assert.Equal(t, 2, state.Outs)
	assert.Equal(t, games.Score{Home: 1, Away: 4}, state.Score)

	feed = decodeFeed(t, `{"liveData": {"linescore": {"inningState": "Middle"}}}`)
	assert.Equal(t, "Middle", Extract(feed).InningHalf)

	feed = decodeFeed(t, `{"liveData": {"linescore": {"isTopInning": false}}}`)
	assert.Equal(t, "Bot", Extract(feed).InningHalf)
}

func TestExtractDecisions(t *testing.T) {
	feed := decodeFeed(t, `{
		"liveData": {"decisions": {"winner": {"id": 1, "fullName": "W Guy"}, "loser": {"id": 2, "fullName": "L Guy"}}}
	}`)
	d := Extract(feed).Decisions
	assert.Equal(t, "W Guy", d.Winner)
	assert.Equal(t, "L Guy", d.Loser)
	assert.Empty(t, d.Save)
}
