package metrics

import (
	"sync"
	"time"
)

type upstreamStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	unavailable     int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory counters per upstream operation
// and forwards them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*upstreamStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*upstreamStats),
		otel:  otel,
	}
}

// RecordUpstreamCall increments counters for an upstream call and stores the last observed latency.
func (r *Recorder) RecordUpstreamCall(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.update(op, func(s *upstreamStats) {
		s.calls++
		s.lastCallLatency = duration
		if err != nil {
			s.errors++
		}
	})
	if r.otel != nil {
		r.otel.recordUpstreamCall(op, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(op string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.update(op, func(s *upstreamStats) {
		s.rateLimitHits++
		if retryAfter > 0 {
			s.lastRetryAfter = retryAfter
		}
	})
	if r.otel != nil {
		r.otel.recordRateLimit(op, retryAfter)
	}
}

// RecordBatch tracks a concurrent fan-out and how many items degraded to "unavailable".
func (r *Recorder) RecordBatch(op string, size, unavailable int) {
	if r == nil {
		return
	}

	r.update(op, func(s *upstreamStats) {
		s.unavailable += unavailable
	})
	if r.otel != nil {
		r.otel.recordBatch(op, size, unavailable)
	}
}

// Calls returns the total attempts recorded for an operation.
func (r *Recorder) Calls(op string) int {
	return r.Snapshot(op).Calls
}

// Errors returns the total failed attempts recorded for an operation.
func (r *Recorder) Errors(op string) int {
	return r.Snapshot(op).Errors
}

// RateLimitHits returns the number of rate limit events seen for an operation.
func (r *Recorder) RateLimitHits(op string) int {
	return r.Snapshot(op).RateLimitHits
}

// Snapshot is a copy of the current stats for an operation.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	Unavailable     int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(op string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[op]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		Unavailable:     stats.unavailable,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

func (r *Recorder) update(op string, fn func(*upstreamStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[op]
	if !ok {
		stats = &upstreamStats{}
		r.stats[op] = stats
	}
	fn(stats)
}
