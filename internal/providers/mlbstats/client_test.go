package mlbstats

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/providers"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(rt roundTripperFunc) *Client {
	return NewClient(Config{
		BaseURL:           "http://example.com/api/",
		HTTPClient:        &http.Client{Transport: rt},
		RequestsPerSecond: 1000,
		Burst:             1000,
	})
}

func TestFetchScheduleBatchesAllTeamsAndSports(t *testing.T) {
	var requests int
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		requests++
		if req.URL.Path != "/api/v1/schedule" {
			t.Fatalf("expected schedule path, got %s", req.URL.Path)
		}
		q := req.URL.Query()
		if got := len(q["teamId"]); got != 11 {
			t.Fatalf("expected 11 teamId params, got %d", got)
		}
		if got := len(q["sportId"]); got != 7 {
			t.Fatalf("expected 7 sportId params, got %d", got)
		}
		if q.Get("date") != "2025-06-01" {
			t.Fatalf("expected date param, got %q", q.Get("date"))
		}
		if q.Get("hydrate") != "probablePitcher" {
			t.Fatalf("expected probablePitcher hydration, got %q", q.Get("hydrate"))
		}
		return jsonResponse(http.StatusOK, `{
			"dates": [{
				"date": "2025-06-01",
				"games": [{
					"gamePk": 777,
					"gameDate": "2025-06-01T17:10:00Z",
					"officialDate": "2025-06-01",
					"status": {"abstractGameState": "Preview", "detailedState": "Scheduled"},
					"teams": {
						"home": {"team": {"id": 146, "name": "Miami Marlins"}, "probablePitcher": {"id": 1, "fullName": "John Doe"}},
						"away": {"team": {"id": 121, "name": "New York Mets"}}
					},
					"venue": {"id": 4169, "name": "loanDepot park"},
					"doubleHeader": "N",
					"gameNumber": 1
				}]
			}]
		}`), nil
	})

	got, err := client.FetchSchedule(context.Background(), "2025-06-01")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if requests != 1 {
		t.Fatalf("expected a single batched request, got %d", requests)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 game, got %d", len(got))
	}
	g := got[0]
	if g.GamePk != 777 || g.AbstractState != games.StatePreview || g.VenueName != "loanDepot park" {
		t.Fatalf("unexpected game %+v", g)
	}
	if g.Home.ProbablePitcher != "John Doe" || g.Away.ProbablePitcher != "" {
		t.Fatalf("unexpected probable pitchers %+v / %+v", g.Home, g.Away)
	}
}

func TestFetchScheduleOmitsDateAndHandlesEmptyDates(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if _, ok := req.URL.Query()["date"]; ok {
			t.Fatalf("expected no date param, got %s", req.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `{"dates": []}`), nil
	})

	got, err := client.FetchSchedule(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFetchTeamsMetadataMapsByID(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if got := req.URL.Query()["teamId"]; len(got) != 2 {
			t.Fatalf("expected 2 team ids, got %v", got)
		}
		return jsonResponse(http.StatusOK, `{"teams": [
			{"id": 146, "name": "Miami Marlins", "teamName": "Marlins", "league": {"name": "National League"}, "venue": {"name": "loanDepot park"}, "sport": {"id": 1}},
			{"id": 385, "name": "Jacksonville Jumbo Shrimp", "teamName": "Jumbo Shrimp", "league": {"name": "International League"}, "parentOrgName": "Miami Marlins", "parentOrgId": 146}
		]}`), nil
	})

	got, err := client.FetchTeamsMetadata(context.Background(), []int{146, 385})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got[146].LeagueName != "National League" || got[146].SportID != 1 {
		t.Fatalf("unexpected marlins metadata %+v", got[146])
	}
	if got[385].ParentOrgName != "Miami Marlins" || got[385].ParentOrgID != 146 {
		t.Fatalf("unexpected affiliate metadata %+v", got[385])
	}
}

func TestFetchGameLiveDecodesFeed(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/v1.1/game/555/feed/live" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{
			"liveData": {
				"linescore": {
					"currentInning": 7, "isTopInning": false, "outs": 2,
					"teams": {"home": {"runs": 4}, "away": {"runs": 3}},
					"defense": {"pitcher": {"id": 10, "fullName": "Ace Arm"}},
					"offense": {"batter": {"id": 20}}
				},
				"boxscore": {"players": {"ID20": {"person": {"id": 20, "fullName": "Big Bat"}}}},
				"plays": {"currentPlay": {"runners": [{"movement": {"start": null, "end": "2B"}}]}}
			}
		}`), nil
	})

	feed, err := client.FetchGameLive(context.Background(), 555)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if feed.GamePk != 555 {
		t.Fatalf("expected game pk backfilled, got %d", feed.GamePk)
	}
	ls := feed.LiveData.Linescore
	if ls.CurrentInning != 7 || ls.IsTopInning == nil || *ls.IsTopInning || ls.Teams.Home.Runs != 4 {
		t.Fatalf("unexpected linescore %+v", ls)
	}
	if ls.Defense.Pitcher.ID != 10 || ls.Offense.Batter.ID != 20 {
		t.Fatalf("unexpected defense/offense refs %+v %+v", ls.Defense, ls.Offense)
	}
	if feed.LiveData.Boxscore.Players["ID20"].Person.FullName != "Big Bat" {
		t.Fatalf("unexpected boxscore players %+v", feed.LiveData.Boxscore.Players)
	}
}

func TestFetchRosterTagsTeam(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/v1/teams/146/roster" || req.URL.Query().Get("rosterType") != "active" {
			t.Fatalf("unexpected roster request %s", req.URL.String())
		}
		return jsonResponse(http.StatusOK, `{"roster": [
			{"person": {"id": 1, "fullName": "Sandy Alcantara"}, "jerseyNumber": "22", "position": {"abbreviation": "P", "type": "Pitcher"}},
			{"person": {"id": 2, "fullName": "Xavier Edwards"}, "position": {"abbreviation": "SS", "type": "Infielder"}}
		]}`), nil
	})

	got, err := client.FetchRoster(context.Background(), 146, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 2 || got[0].FullName != "Sandy Alcantara" || got[0].TeamID != 146 || !got[0].IsPitcher() {
		t.Fatalf("unexpected roster %+v", got)
	}
}

func TestFetchPlayerStatsReturnsFirstSplitOrEmpty(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		if q.Get("stats") != "season" || q.Get("season") != "2025" {
			t.Fatalf("unexpected stats query %s", req.URL.RawQuery)
		}
		if q.Get("group") == "pitching" {
			return jsonResponse(http.StatusOK, `{"stats": [{"group": {"displayName": "pitching"}, "splits": []}]}`), nil
		}
		return jsonResponse(http.StatusOK, `{"stats": [{"group": {"displayName": "hitting"}, "splits": [{"stat": {"homeRuns": 12, "avg": ".285"}}]}]}`), nil
	})

	hitting, err := client.FetchPlayerStats(context.Background(), 9, 2025, players.GroupHitting)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hr, ok := hitting.Float("homeRuns"); !ok || hr != 12 {
		t.Fatalf("expected 12 home runs, got %v (%v)", hr, ok)
	}
	if avg, ok := hitting.Float("avg"); !ok || avg != 0.285 {
		t.Fatalf("expected .285 avg, got %v (%v)", avg, ok)
	}

	pitching, err := client.FetchPlayerStats(context.Background(), 9, 2025, players.GroupPitching)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pitching == nil || len(pitching) != 0 {
		t.Fatalf("expected empty pitching line, got %#v", pitching)
	}
}

func TestFetchPlayerGameLogsFlattensGroups(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("stats") != "gameLog" {
			t.Fatalf("expected gameLog stats mode, got %s", req.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `{"stats": [
			{"group": {"displayName": "hitting"}, "splits": [
				{"date": "2025-04-01", "isHome": true, "opponent": {"id": 121, "name": "New York Mets"}, "game": {"gamePk": 1}, "stat": {"hits": 2}},
				{"date": "2025-04-02", "opponent": {"id": 121, "name": "New York Mets"}, "game": {"gamePk": 2}, "stat": {"hits": 0}}
			]}
		]}`), nil
	})

	logs, err := client.FetchPlayerGameLogs(context.Background(), 9, 2025)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(logs) != 2 || logs[0].Group != players.GroupHitting || logs[0].OpponentName != "New York Mets" || !logs[0].IsHome {
		t.Fatalf("unexpected logs %+v", logs)
	}
	if logs[1].GamePk != 2 {
		t.Fatalf("expected upstream order preserved, got %+v", logs[1])
	}
}

func TestNonOKStatusesMapToTypedErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		header string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				if !providers.IsNotFound(err) {
					t.Fatalf("expected not found, got %v", err)
				}
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			header: "7",
			check: func(t *testing.T, err error) {
				rl, ok := providers.AsRateLimitError(err)
				if !ok || rl.RetryAfter != 7*time.Second {
					t.Fatalf("expected rate limit with retry-after, got %v", err)
				}
			},
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			check: func(t *testing.T, err error) {
				if !strings.Contains(err.Error(), "unexpected status 502") {
					t.Fatalf("expected status in error, got %v", err)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(func(req *http.Request) (*http.Response, error) {
				resp := jsonResponse(tc.status, `{"message": "nope"}`)
				if tc.header != "" {
					resp.Header.Set("Retry-After", tc.header)
				}
				return resp, nil
			})

			_, err := client.FetchRoster(context.Background(), 146, "active")
			upErr, ok := providers.AsUpstreamError(err)
			if !ok || upErr.Op != providers.OpRoster {
				t.Fatalf("expected upstream roster error, got %v", err)
			}
			tc.check(t, err)
		})
	}
}

func TestTransportAndDecodeFailuresAreUpstreamErrors(t *testing.T) {
	boom := errors.New("dial tcp: refused")
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, boom
	})
	_, err := client.FetchSchedule(context.Background(), "")
	if upErr, ok := providers.AsUpstreamError(err); !ok || upErr.Op != providers.OpSchedule || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}

	client = newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{not json`), nil
	})
	_, err = client.FetchTeamsMetadata(context.Background(), []int{146})
	if upErr, ok := providers.AsUpstreamError(err); !ok || upErr.Op != providers.OpTeams {
		t.Fatalf("expected wrapped decode error, got %v", err)
	}
}

func TestCanceledContextStopsBeforeRequest(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		t.Fatal("request should not be sent")
		return nil, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.FetchGameLive(ctx, 1); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
