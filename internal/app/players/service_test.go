package players

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
	"github.com/gmontenegrodev/web-app/internal/metrics"
	"github.com/gmontenegrodev/web-app/internal/providers"
	"github.com/gmontenegrodev/web-app/internal/store"
)

type stubProvider struct {
	mu          sync.Mutex
	rosters     map[int][]teams.RosterEntry
	rosterErr   map[int]error
	lines       map[string]players.StatLine
	statErr     map[string]error
	logs        []players.GameLog
	statCalls   int
	rosterCalls int
}

func statKey(playerID int, group players.Group) string {
	return fmt.Sprintf("%d/%s", playerID, group)
}

func (s *stubProvider) FetchRoster(ctx context.Context, teamID int, rosterType string) ([]teams.RosterEntry, error) {
	s.mu.Lock()
	s.rosterCalls++
	s.mu.Unlock()
	if err := s.rosterErr[teamID]; err != nil {
		return nil, err
	}
	return append([]teams.RosterEntry(nil), s.rosters[teamID]...), nil
}

func (s *stubProvider) FetchPlayerStats(ctx context.Context, playerID, season int, group players.Group) (players.StatLine, error) {
	s.mu.Lock()
	s.statCalls++
	s.mu.Unlock()
	key := statKey(playerID, group)
	if err := s.statErr[key]; err != nil {
		return nil, err
	}
	if line, ok := s.lines[key]; ok {
		return line.Clone(), nil
	}
	return players.StatLine{}, nil
}

func (s *stubProvider) FetchPlayerGameLogs(ctx context.Context, playerID, season int) ([]players.GameLog, error) {
	return s.logs, nil
}

func newService(p *stubProvider, rosterCap int) (*Service, *store.Store) {
	st := store.New()
	return NewService(st, p, Config{RosterCap: rosterCap, Concurrency: 4}, metrics.NewRecorder(), nil), st
}

func TestFetchPlayerStatsMergesGroups(t *testing.T) {
	p := &stubProvider{lines: map[string]players.StatLine{
		statKey(1, players.GroupHitting): {"homeRuns": 12},
	}}
	svc, _ := newService(p, 0)

	stats, err := svc.FetchPlayerStats(context.Background(), 1, 2025)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hr, ok := stats.Hitting.Float("homeRuns"); !ok || hr != 12 {
		t.Fatalf("expected 12 home runs, got %v (%v)", hr, ok)
	}
	if stats.Pitching == nil || len(stats.Pitching) != 0 {
		t.Fatalf("expected empty non-nil pitching line, got %#v", stats.Pitching)
	}

	if _, err := svc.FetchPlayerStats(context.Background(), 1, 2025); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.statCalls != 2 {
		t.Fatalf("expected second call served from the store, got %d upstream calls", p.statCalls)
	}
}

func TestFetchPlayerStatsOneGroupFailing(t *testing.T) {
	p := &stubProvider{
		lines:   map[string]players.StatLine{statKey(1, players.GroupPitching): {"era": "3.10"}},
		statErr: map[string]error{statKey(1, players.GroupHitting): errors.New("boom")},
	}
	svc, st := newService(p, 0)

	stats, err := svc.FetchPlayerStats(context.Background(), 1, 2025)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(stats.Hitting) != 0 || !stats.Pitching.Has("era") {
		t.Fatalf("unexpected partial stats %+v", stats)
	}
	if _, cached := st.PlayerStats(1, 2025); cached {
		t.Fatalf("expected partial record not to be cached")
	}
}

func TestFetchPlayerStatsBothFailing(t *testing.T) {
	p := &stubProvider{statErr: map[string]error{
		statKey(1, players.GroupHitting):  errors.New("hit boom"),
		statKey(1, players.GroupPitching): errors.New("pitch boom"),
	}}
	svc, _ := newService(p, 0)

	_, err := svc.FetchPlayerStats(context.Background(), 1, 2025)
	if err == nil || !strings.Contains(err.Error(), "hit boom") {
		t.Fatalf("expected joined error, got %v", err)
	}
}

func TestFetchPlayerStatsNotFoundIsEmpty(t *testing.T) {
	p := &stubProvider{statErr: map[string]error{
		statKey(1, players.GroupHitting):  providers.Wrap(providers.OpPlayerStats, providers.ErrNotFound),
		statKey(1, players.GroupPitching): providers.Wrap(providers.OpPlayerStats, providers.ErrNotFound),
	}}
	svc, _ := newService(p, 0)

	stats, err := svc.FetchPlayerStats(context.Background(), 1, 2025)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(stats.Hitting) != 0 || len(stats.Pitching) != 0 {
		t.Fatalf("expected empty lines, got %+v", stats)
	}
}

func TestFetchPlayerGameLogsNewestFirstCapped(t *testing.T) {
	logs := make([]players.GameLog, 0, 12)
	for day := 1; day <= 12; day++ {
		logs = append(logs, players.GameLog{Date: fmt.Sprintf("2025-05-%02d", day)})
	}
	svc, _ := newService(&stubProvider{logs: logs}, 0)

	got, err := svc.FetchPlayerGameLogs(context.Background(), 1, 2025)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != GameLogLimit {
		t.Fatalf("expected %d logs, got %d", GameLogLimit, len(got))
	}
	if got[0].Date != "2025-05-12" || got[9].Date != "2025-05-03" {
		t.Fatalf("unexpected order %s..%s", got[0].Date, got[9].Date)
	}
}

func TestRecentGameLogsDoubleheaderLaterGameFirst(t *testing.T) {
	logs := []players.GameLog{
		{Date: "2025-06-01", GamePk: 100},
		{Date: "2025-06-08", GamePk: 200},
		{Date: "2025-06-08", GamePk: 201},
	}

	got := RecentGameLogs(logs, 2)
	if len(got) != 2 || got[0].GamePk != 201 || got[1].GamePk != 200 {
		t.Fatalf("expected doubleheader game 2 then game 1, got %+v", got)
	}
	if logs[0].GamePk != 100 {
		t.Fatalf("expected input left untouched, got %+v", logs)
	}
}

func TestLeaderboardStatsCapsRosterAndKeepsPlaceholders(t *testing.T) {
	roster := make([]teams.RosterEntry, 0, 30)
	for i := 1; i <= 30; i++ {
		roster = append(roster, teams.RosterEntry{PlayerID: i, FullName: fmt.Sprintf("Player %d", i)})
	}
	p := &stubProvider{
		rosters: map[int][]teams.RosterEntry{146: roster},
		statErr: map[string]error{
			statKey(2, players.GroupHitting):  errors.New("down"),
			statKey(2, players.GroupPitching): errors.New("down"),
		},
		lines: map[string]players.StatLine{statKey(1, players.GroupHitting): {"homeRuns": 3}},
	}
	svc, _ := newService(p, 25)

	rows, err := svc.LeaderboardStats(context.Background(), 146, 2025)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 25 {
		t.Fatalf("expected 25 rows, got %d", len(rows))
	}
	if rows[0].Player.PlayerID != 1 || rows[0].Player.TeamID != 146 || !rows[0].Available {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].Available || rows[1].Stats.Hitting == nil {
		t.Fatalf("expected unavailable placeholder with empty lines, got %+v", rows[1])
	}
	if rows[24].Player.PlayerID != 25 {
		t.Fatalf("expected roster order kept, got last player %d", rows[24].Player.PlayerID)
	}
}

func TestLeaderboardStatsRosterFailureSurfaces(t *testing.T) {
	p := &stubProvider{rosterErr: map[int]error{146: errors.New("roster down")}}
	svc, _ := newService(p, 0)

	if _, err := svc.LeaderboardStats(context.Background(), 146, 2025); err == nil {
		t.Fatalf("expected roster error")
	}
}

func TestRosterUsesCacheAfterFetch(t *testing.T) {
	p := &stubProvider{rosters: map[int][]teams.RosterEntry{146: {{PlayerID: 1}}}}
	svc, _ := newService(p, 0)

	for i := 0; i < 2; i++ {
		if _, err := svc.Roster(context.Background(), 146); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	if p.rosterCalls != 1 {
		t.Fatalf("expected one roster call, got %d", p.rosterCalls)
	}

	if _, err := svc.FetchRoster(context.Background(), 146, ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.rosterCalls != 2 {
		t.Fatalf("expected FetchRoster to hit upstream, got %d calls", p.rosterCalls)
	}
}

func TestLoadOrgPlayersSkipsFailingRosters(t *testing.T) {
	p := &stubProvider{
		rosters: map[int][]teams.RosterEntry{
			146: {{PlayerID: 1, FullName: "Sandy Alcantara"}, {PlayerID: 2, FullName: "Xavier Edwards"}},
			467: {{PlayerID: 3, FullName: "Deyvison De Los Santos"}},
		},
		rosterErr: map[int]error{385: errors.New("down")},
	}
	svc, _ := newService(p, 0)

	index := svc.LoadOrgPlayers(context.Background(), []int{146, 385, 467})
	if len(index) != 3 || index[0].TeamID != 146 || index[2].TeamID != 467 {
		t.Fatalf("unexpected index %+v", index)
	}
	if len(svc.PlayersByTeam(146)) != 2 || len(svc.PlayersByTeam(385)) != 0 {
		t.Fatalf("unexpected team filter results")
	}

	found := svc.SearchPlayers("  EDWARDS ")
	if len(found) != 1 || found[0].PlayerID != 2 {
		t.Fatalf("unexpected search result %+v", found)
	}

	entry, ok := svc.PlayerByID(3)
	if !ok || entry.TeamID != 467 {
		t.Fatalf("unexpected lookup %+v (%v)", entry, ok)
	}
}

func TestEnsureOrgPlayersBacksOffAfterEmptyBuild(t *testing.T) {
	p := &stubProvider{rosterErr: map[int]error{146: errors.New("down"), 385: errors.New("down")}}
	svc, _ := newService(p, 0)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()
	ids := []int{146, 385}

	svc.EnsureOrgPlayers(ctx, ids)
	svc.EnsureOrgPlayers(ctx, ids)
	if p.rosterCalls != 2 {
		t.Fatalf("expected one build within the backoff, got %d roster calls", p.rosterCalls)
	}

	p.mu.Lock()
	p.rosterErr = nil
	p.rosters = map[int][]teams.RosterEntry{146: {{PlayerID: 1, FullName: "Sandy Alcantara"}}}
	p.mu.Unlock()
	now = now.Add(indexRetryAfter)

	if index := svc.EnsureOrgPlayers(ctx, ids); len(index) != 1 {
		t.Fatalf("expected rebuilt index after the backoff, got %+v", index)
	}
	svc.EnsureOrgPlayers(ctx, ids)
	if p.rosterCalls != 4 {
		t.Fatalf("expected a populated index to be reused, got %d roster calls", p.rosterCalls)
	}
}

func TestSearchPlayersCapsResults(t *testing.T) {
	roster := make([]teams.RosterEntry, 0, 30)
	for i := 0; i < 30; i++ {
		roster = append(roster, teams.RosterEntry{PlayerID: i, FullName: fmt.Sprintf("Player %d", i)})
	}
	svc, _ := newService(&stubProvider{rosters: map[int][]teams.RosterEntry{146: roster}}, 0)
	svc.LoadOrgPlayers(context.Background(), []int{146})

	if got := len(svc.SearchPlayers("")); got != SearchLimit {
		t.Fatalf("expected %d results for empty query, got %d", SearchLimit, got)
	}
	if got := len(svc.SearchPlayers("player")); got != SearchLimit {
		t.Fatalf("expected %d results, got %d", SearchLimit, got)
	}
	if got := len(svc.SearchPlayers("nobody")); got != 0 {
		t.Fatalf("expected no results, got %d", got)
	}
}
