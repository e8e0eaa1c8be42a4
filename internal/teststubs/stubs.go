package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gmontenegrodev/web-app/internal/store"
)

// StubLoader is a test double for poller.Loader.
type StubLoader struct {
	TodayDate string
	Day       store.ScheduleDay
	Err       error
	Calls     atomic.Int32
	Notify    chan struct{}

	mu    sync.Mutex
	dates []string
}

// Today returns the configured date.
func (s *StubLoader) Today() string {
	return s.TodayDate
}

// LoadSchedule returns the configured day and error while tracking calls.
func (s *StubLoader) LoadSchedule(ctx context.Context, date string) (store.ScheduleDay, error) {
	_ = ctx
	s.mu.Lock()
	s.dates = append(s.dates, date)
	s.mu.Unlock()
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	day := s.Day
	if day.Date == "" {
		day.Date = date
	}
	return day, s.Err
}

// Dates returns every date LoadSchedule was called with, in order.
func (s *StubLoader) Dates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dates...)
}

// StubListener records refresh broadcasts.
type StubListener struct {
	mu   sync.Mutex
	days []store.ScheduleDay
}

// ScheduleRefreshed records day.
func (l *StubListener) ScheduleRefreshed(day store.ScheduleDay) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.days = append(l.days, day)
}

// Days returns the recorded broadcasts.
func (l *StubListener) Days() []store.ScheduleDay {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]store.ScheduleDay(nil), l.days...)
}
