package games

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domaingames "github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/providers"
	"github.com/gmontenegrodev/web-app/internal/store"
)

type stubSchedule struct {
	mu     sync.Mutex
	games  []domaingames.Game
	err    error
	dates  []string
	before func()
}

func (s *stubSchedule) FetchSchedule(ctx context.Context, date string) ([]domaingames.Game, error) {
	s.mu.Lock()
	s.dates = append(s.dates, date)
	before := s.before
	s.mu.Unlock()
	if before != nil {
		before()
	}
	return s.games, s.err
}

type stubLive struct {
	requested []int
}

func (s *stubLive) FetchAll(ctx context.Context, gamePks []int) map[int]*domaingames.LiveState {
	s.requested = append(s.requested, gamePks...)
	out := make(map[int]*domaingames.LiveState, len(gamePks))
	for _, pk := range gamePks {
		out[pk] = &domaingames.LiveState{GamePk: pk, Inning: 4}
	}
	return out
}

func game(pk, home, away int, state domaingames.AbstractState) domaingames.Game {
	return domaingames.Game{
		GamePk:        pk,
		AbstractState: state,
		Home:          domaingames.Side{Team: domaingames.TeamRef{ID: home}},
		Away:          domaingames.Side{Team: domaingames.TeamRef{ID: away}},
	}
}

func TestLoadScheduleFetchesLiveForStartedGamesOnly(t *testing.T) {
	sched := &stubSchedule{games: []domaingames.Game{
		game(1, 146, 121, domaingames.StatePreview),
		game(2, 385, 234, domaingames.StateLive),
		game(3, 467, 5015, domaingames.StateFinal),
		game(4, 999, 998, domaingames.StateLive),
	}}
	live := &stubLive{}
	st := store.New()
	svc := NewService(st, sched, live, []int{146, 385, 467}, time.UTC, nil)

	day, err := svc.LoadSchedule(context.Background(), "2025-06-01")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(live.requested) != 2 || live.requested[0] != 2 || live.requested[1] != 3 {
		t.Fatalf("expected live fetch for games 2 and 3, got %v", live.requested)
	}
	if day.Live[2] == nil || day.Live[2].Inning != 4 {
		t.Fatalf("expected live state for game 2, got %+v", day.Live)
	}
	if _, ok := st.ScheduleDay("2025-06-01"); !ok {
		t.Fatalf("expected day committed to store")
	}
}

func TestLoadScheduleEmptyDateUsesToday(t *testing.T) {
	sched := &stubSchedule{}
	svc := NewService(store.New(), sched, nil, []int{146}, time.UTC, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 2, 3, 0, 0, 0, time.UTC) }

	day, err := svc.LoadSchedule(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if day.Date != "2025-06-02" || sched.dates[0] != "2025-06-02" {
		t.Fatalf("expected today's date, got %q / %v", day.Date, sched.dates)
	}
}

func TestLoadScheduleFailureDoesNotCommit(t *testing.T) {
	sched := &stubSchedule{err: providers.Wrap(providers.OpSchedule, errors.New("down"))}
	st := store.New()
	svc := NewService(st, sched, nil, []int{146}, time.UTC, nil)

	if _, err := svc.LoadSchedule(context.Background(), "2025-06-01"); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := st.ScheduleDay("2025-06-01"); ok {
		t.Fatalf("expected nothing committed on failure")
	}
}

func TestLoadScheduleSupersededLoadIsDiscarded(t *testing.T) {
	st := store.New()
	sched := &stubSchedule{games: []domaingames.Game{game(1, 146, 121, domaingames.StatePreview)}}
	svc := NewService(st, sched, nil, []int{146}, time.UTC, nil)

	// A newer generation starts while the first fetch is in flight.
	sched.before = func() {
		sched.mu.Lock()
		sched.before = nil
		sched.mu.Unlock()
		st.Generations().Next("2025-06-01")
	}

	_, err := svc.LoadSchedule(context.Background(), "2025-06-01")
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected superseded error, got %v", err)
	}
	if _, ok := st.ScheduleDay("2025-06-01"); ok {
		t.Fatalf("expected superseded load not to commit")
	}
}

func TestDayServesCacheThenLoads(t *testing.T) {
	sched := &stubSchedule{games: []domaingames.Game{game(1, 146, 121, domaingames.StatePreview)}}
	svc := NewService(store.New(), sched, nil, []int{146}, time.UTC, nil)

	for i := 0; i < 3; i++ {
		day, err := svc.Day(context.Background(), "2025-06-01")
		if err != nil || len(day.Games) != 1 {
			t.Fatalf("unexpected day %+v (%v)", day, err)
		}
	}
	if len(sched.dates) != 1 {
		t.Fatalf("expected one upstream fetch, got %d", len(sched.dates))
	}
	if _, ok := svc.Cached("2025-06-01"); !ok {
		t.Fatalf("expected cached day")
	}
}

func TestLoadScheduleWithoutProvider(t *testing.T) {
	svc := NewService(store.New(), nil, nil, nil, nil, nil)
	_, err := svc.LoadSchedule(context.Background(), "2025-06-01")
	if !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}
}

type countingLive struct {
	mu    sync.Mutex
	calls int
}

func (c *countingLive) FetchAll(ctx context.Context, gamePks []int) map[int]*domaingames.LiveState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	out := make(map[int]*domaingames.LiveState, len(gamePks))
	for _, pk := range gamePks {
		out[pk] = &domaingames.LiveState{GamePk: pk, Score: domaingames.Score{Home: c.calls}}
	}
	return out
}

func TestDayReloadsLiveStateAfterDateChange(t *testing.T) {
	sched := &stubSchedule{games: []domaingames.Game{game(7, 146, 121, domaingames.StateLive)}}
	live := &countingLive{}
	st := store.New()
	svc := NewService(st, sched, live, []int{146}, time.UTC, nil)
	now := time.Date(2025, 6, 3, 16, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	first, err := svc.Day(ctx, "2025-06-01")
	if err != nil || first.Live[7].Score.Home != 1 {
		t.Fatalf("unexpected first load %+v (%v)", first.Live[7], err)
	}
	if _, err := svc.Day(ctx, "2025-06-02"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	back, err := svc.Day(ctx, "2025-06-01")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if back.Live[7].Score.Home != 3 {
		t.Fatalf("expected live state re-fetched after date change, got home=%d", back.Live[7].Score.Home)
	}
	if len(sched.dates) != 3 {
		t.Fatalf("expected three schedule fetches, got %v", sched.dates)
	}
	if dates := st.Dates(); len(dates) != 1 || dates[0] != "2025-06-01" {
		t.Fatalf("expected only the selected day retained, got %v", dates)
	}
}

func TestDayRefreshesStaleLiveGames(t *testing.T) {
	sched := &stubSchedule{games: []domaingames.Game{game(7, 146, 121, domaingames.StateLive)}}
	live := &countingLive{}
	svc := NewService(store.New(), sched, live, []int{146}, time.UTC, nil)
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := svc.Day(ctx, "2025-06-01"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	now = now.Add(5 * time.Second)
	if day, _ := svc.Day(ctx, "2025-06-01"); day.Live[7].Score.Home != 1 {
		t.Fatalf("expected fresh cached live state, got %+v", day.Live[7])
	}
	now = now.Add(liveRefreshAfter)
	if day, _ := svc.Day(ctx, "2025-06-01"); day.Live[7].Score.Home != 2 {
		t.Fatalf("expected stale live state reloaded, got %+v", day.Live[7])
	}
	if len(sched.dates) != 2 {
		t.Fatalf("expected two schedule fetches, got %v", sched.dates)
	}
}

func TestLoadScheduleRetainsTodayAndSelection(t *testing.T) {
	st := store.New()
	svc := NewService(st, &stubSchedule{}, nil, []int{146}, time.UTC, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	for _, date := range []string{"2025-06-10", "2025-06-01", "2025-06-02", "2025-06-03"} {
		if _, err := svc.Day(ctx, date); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	dates := st.Dates()
	if len(dates) != 2 || dates[0] != "2025-06-03" || dates[1] != "2025-06-10" {
		t.Fatalf("expected today and the selected date only, got %v", dates)
	}
}
