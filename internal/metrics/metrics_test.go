package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksUpstreamCallsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordUpstreamCall("schedule", 10*time.Millisecond, nil)
	rec.RecordUpstreamCall("schedule", 15*time.Millisecond, errors.New("boom"))

	if got := rec.Calls("schedule"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.Errors("schedule"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}

	snap := rec.Snapshot("schedule")
	if snap.Calls != 2 || snap.Errors != 1 || snap.LastCallLatency != 15*time.Millisecond {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if other := rec.Snapshot("live_feed"); other.Calls != 0 {
		t.Fatalf("expected operations to be tracked separately, got %+v", other)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("roster", 5*time.Second)
	rec.RecordRateLimit("roster", 0)

	if got := rec.RateLimitHits("roster"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.Snapshot("roster").LastRetryAfter; got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksBatchUnavailable(t *testing.T) {
	rec := NewRecorder()
	rec.RecordBatch("live_feed", 4, 1)
	rec.RecordBatch("live_feed", 3, 2)

	if got := rec.Snapshot("live_feed").Unavailable; got != 3 {
		t.Fatalf("expected 3 unavailable items, got %d", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordUpstreamCall("schedule", time.Millisecond, nil)
	rec.RecordRateLimit("schedule", time.Second)
	rec.RecordBatch("schedule", 1, 1)
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	rec.RecordPollerCycle(time.Millisecond, nil)
	if snap := rec.Snapshot("schedule"); snap != (Snapshot{}) {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}
