package games

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	domaingames "github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/providers"
	"github.com/gmontenegrodev/web-app/internal/registry"
	"github.com/gmontenegrodev/web-app/internal/schedule"
	"github.com/gmontenegrodev/web-app/internal/store"
	"github.com/gmontenegrodev/web-app/internal/timeutil"
)

// liveRefreshAfter is how long a cached day with a game in progress is served before reloading.
const liveRefreshAfter = 15 * time.Second

// ErrSuperseded is returned when a newer load for the same date started while this one was in flight.
var ErrSuperseded = errors.New("schedule load superseded")

// Store defines the contract for persisting and retrieving schedule days.
type Store interface {
	SetScheduleDay(day store.ScheduleDay)
	ScheduleDay(date string) (store.ScheduleDay, bool)
	RetainScheduleDays(keep ...string)
	Generations() *store.Generations
}

// LiveFetcher fetches live states for many games, nil meaning unavailable.
type LiveFetcher interface {
	FetchAll(ctx context.Context, gamePks []int) map[int]*domaingames.LiveState
}

// Service loads a date's schedule, resolves it against the org teams and
// attaches live state for games that have started.
type Service struct {
	store    Store
	provider providers.ScheduleProvider
	live     LiveFetcher
	teamIDs  []int
	loc      *time.Location
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	selected string
}

// NewService constructs a Service. Empty teamIDs use the org registry; a nil loc uses the org timezone.
func NewService(store Store, provider providers.ScheduleProvider, live LiveFetcher, teamIDs []int, loc *time.Location, logger *slog.Logger) *Service {
	if len(teamIDs) == 0 {
		teamIDs = registry.OrgTeamIDs()
	}
	if loc == nil {
		loc = timeutil.LocationOrDefault("")
	}
	return &Service{
		store:    store,
		provider: provider,
		live:     live,
		teamIDs:  teamIDs,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

// TeamIDs returns the ids schedules are resolved against.
func (s *Service) TeamIDs() []int {
	return append([]int(nil), s.teamIDs...)
}

// Today returns the current date in the service's timezone.
func (s *Service) Today() string {
	return timeutil.Today(s.now(), s.loc)
}

// ResolveDate maps an empty date to today.
func (s *Service) ResolveDate(date string) string {
	if date = strings.TrimSpace(date); date != "" {
		return date
	}
	return s.Today()
}

// LoadSchedule fetches the schedule and live states for date and commits them
// to the store unless a newer load for the same date started meanwhile.
func (s *Service) LoadSchedule(ctx context.Context, date string) (store.ScheduleDay, error) {
	date = s.ResolveDate(date)
	if s.provider == nil {
		return store.ScheduleDay{}, providers.Wrap(providers.OpSchedule, providers.ErrProviderUnavailable)
	}

	gens := s.store.Generations()
	token := gens.Next(date)
	logger := logging.FromContext(ctx, s.logger)

	list, err := s.provider.FetchSchedule(ctx, date)
	if err != nil {
		return store.ScheduleDay{}, err
	}

	resolution := schedule.Resolve(list, s.teamIDs)
	live := map[int]*domaingames.LiveState{}
	if s.live != nil {
		live = s.live.FetchAll(ctx, startedGamePks(resolution, s.teamIDs))
	}

	day := store.ScheduleDay{
		Date:      date,
		Games:     list,
		Live:      live,
		FetchedAt: s.now(),
	}
	if !gens.IsCurrent(date, token) {
		logging.Info(logger, "discarding superseded schedule load", slog.String(logging.FieldDate, date))
		return day, ErrSuperseded
	}
	s.store.SetScheduleDay(day)
	s.store.RetainScheduleDays(date, s.Today(), s.selectedDate())
	logging.Info(logger, "schedule loaded",
		slog.String(logging.FieldDate, date),
		slog.Int(logging.FieldCount, len(list)),
	)
	return day, nil
}

// Day returns the schedule for date. The stored day is served only while the
// same date stays selected and it has no stale game in progress; anything else reloads.
func (s *Service) Day(ctx context.Context, date string) (store.ScheduleDay, error) {
	date = s.ResolveDate(date)
	changed := s.selectDate(date)
	if day, ok := s.store.ScheduleDay(date); ok && !changed && !s.liveStale(day) {
		return day, nil
	}
	day, err := s.LoadSchedule(ctx, date)
	if errors.Is(err, ErrSuperseded) {
		// A concurrent load owns the commit; serve whatever it stored, else ours.
		if stored, ok := s.store.ScheduleDay(date); ok {
			return stored, nil
		}
		return day, nil
	}
	return day, err
}

// selectDate records date as the one being viewed and reports whether it
// differs from the previous selection.
func (s *Service) selectDate(date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.selected != "" && s.selected != date
	s.selected = date
	return changed
}

func (s *Service) selectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *Service) liveStale(day store.ScheduleDay) bool {
	if s.now().Sub(day.FetchedAt) < liveRefreshAfter {
		return false
	}
	for _, g := range day.Games {
		if g.AbstractState == domaingames.StateLive {
			return true
		}
	}
	return false
}

// Cached returns the stored schedule for date without loading.
func (s *Service) Cached(date string) (store.ScheduleDay, bool) {
	return s.store.ScheduleDay(s.ResolveDate(date))
}

// startedGamePks lists resolved games in Live or Final state; previews have no feed worth fetching.
func startedGamePks(res schedule.Resolution, teamIDs []int) []int {
	out := make([]int, 0)
	for _, pk := range res.GamePks(teamIDs) {
		for _, id := range teamIDs {
			g := res[id]
			if g == nil || g.GamePk != pk {
				continue
			}
			if g.AbstractState == domaingames.StateLive || g.AbstractState == domaingames.StateFinal {
				out = append(out, pk)
			}
			break
		}
	}
	return out
}
