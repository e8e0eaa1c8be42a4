package store

import (
	"sort"
	"sync"
	"time"

	"github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
)

// ScheduleDay is everything loaded for one schedule date.
// Live holds a nil value for games whose live fetch failed.
type ScheduleDay struct {
	Date      string
	Games     []games.Game
	Live      map[int]*games.LiveState
	FetchedAt time.Time
}

type seasonKey struct {
	id     int
	season int
}

// Store is the keyed in-memory state shared by the HTTP server, poller and CLI.
// Writes to the same key are last-write-wins; callers that need ordering use Generations.
type Store struct {
	mu          sync.RWMutex
	teams       map[int]teams.Team
	days        map[string]ScheduleDay
	rosters     map[int][]teams.RosterEntry
	playerStats map[seasonKey]players.Stats
	gameLogs    map[seasonKey][]players.GameLog
	teamStats   map[seasonKey]players.Stats
	playerIndex []teams.RosterEntry

	generations *Generations
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		teams:       make(map[int]teams.Team),
		days:        make(map[string]ScheduleDay),
		rosters:     make(map[int][]teams.RosterEntry),
		playerStats: make(map[seasonKey]players.Stats),
		gameLogs:    make(map[seasonKey][]players.GameLog),
		teamStats:   make(map[seasonKey]players.Stats),
		generations: NewGenerations(),
	}
}

// Generations returns the store's request-generation counter.
func (s *Store) Generations() *Generations {
	return s.generations
}

// SetTeams replaces the team metadata wholesale.
func (s *Store) SetTeams(meta map[int]teams.Team) {
	next := make(map[int]teams.Team, len(meta))
	for id, t := range meta {
		next[id] = t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = next
}

// Teams returns a copy of the team metadata.
func (s *Store) Teams() map[int]teams.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int]teams.Team, len(s.teams))
	for id, t := range s.teams {
		out[id] = t
	}
	return out
}

// Team retrieves one team's metadata.
func (s *Store) Team(id int) (teams.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[id]
	return t, ok
}

// HasTeams reports whether metadata has been loaded.
func (s *Store) HasTeams() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.teams) > 0
}

// SetScheduleDay stores the games and live states for day.Date, replacing any previous load of that date.
func (s *Store) SetScheduleDay(day ScheduleDay) {
	day = copyDay(day)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[day.Date] = day
}

// ScheduleDay retrieves a copy of the stored load for date.
func (s *Store) ScheduleDay(date string) (ScheduleDay, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day, ok := s.days[date]
	if !ok {
		return ScheduleDay{}, false
	}
	return copyDay(day), true
}

// RetainScheduleDays drops every stored schedule day whose date is not in keep.
func (s *Store) RetainScheduleDays(keep ...string) {
	wanted := make(map[string]struct{}, len(keep))
	for _, date := range keep {
		wanted[date] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for date := range s.days {
		if _, ok := wanted[date]; !ok {
			delete(s.days, date)
		}
	}
}

// Dates lists stored schedule dates in ascending order.
func (s *Store) Dates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.days))
	for date := range s.days {
		out = append(out, date)
	}
	sort.Strings(out)
	return out
}

func copyDay(day ScheduleDay) ScheduleDay {
	out := ScheduleDay{
		Date:      day.Date,
		Games:     append([]games.Game(nil), day.Games...),
		Live:      make(map[int]*games.LiveState, len(day.Live)),
		FetchedAt: day.FetchedAt,
	}
	if out.Games == nil {
		out.Games = []games.Game{}
	}
	for pk, state := range day.Live {
		if state == nil {
			out.Live[pk] = nil
			continue
		}
		cp := *state
		out.Live[pk] = &cp
	}
	return out
}
