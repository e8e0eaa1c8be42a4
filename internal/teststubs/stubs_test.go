package teststubs

import (
	"context"
	"errors"
	"testing"

	"github.com/gmontenegrodev/web-app/internal/store"
)

func TestStubLoaderTracksCalls(t *testing.T) {
	err := errors.New("boom")
	l := &StubLoader{TodayDate: "2025-06-01", Err: err, Notify: make(chan struct{})}
	day, got := l.LoadSchedule(context.Background(), "2025-06-02")
	if !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if day.Date != "2025-06-02" {
		t.Fatalf("expected requested date echoed, got %s", day.Date)
	}
	if l.Calls.Load() != 1 {
		t.Fatalf("expected call count 1, got %d", l.Calls.Load())
	}
	select {
	case <-l.Notify:
	default:
		t.Fatalf("expected notify channel closed")
	}
	// A second call must not panic on the closed channel.
	_, _ = l.LoadSchedule(context.Background(), "2025-06-03")
	if dates := l.Dates(); len(dates) != 2 || dates[1] != "2025-06-03" {
		t.Fatalf("unexpected dates %v", dates)
	}
	if l.Today() != "2025-06-01" {
		t.Fatalf("expected configured today")
	}
}

func TestStubListenerRecordsDays(t *testing.T) {
	l := &StubListener{}
	l.ScheduleRefreshed(store.ScheduleDay{Date: "2025-06-01"})
	days := l.Days()
	if len(days) != 1 || days[0].Date != "2025-06-01" {
		t.Fatalf("unexpected days %+v", days)
	}
}
