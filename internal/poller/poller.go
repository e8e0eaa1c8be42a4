package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	appgames "github.com/gmontenegrodev/web-app/internal/app/games"
	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/metrics"
	"github.com/gmontenegrodev/web-app/internal/store"
)

const defaultInterval = time.Minute

// Loader refreshes one schedule date. The games service satisfies it.
type Loader interface {
	Today() string
	LoadSchedule(ctx context.Context, date string) (store.ScheduleDay, error)
}

// Listener is told about every committed refresh.
type Listener interface {
	ScheduleRefreshed(day store.ScheduleDay)
}

// Poller reloads today's schedule on an interval and fans the result out to a listener.
type Poller struct {
	loader   Loader
	listener Listener
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastDate            string
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. A nil listener is allowed.
func New(loader Loader, listener Listener, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		loader:   loader,
		listener: listener,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Warm today's schedule on boot.
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// RefreshNow runs one cycle synchronously for date, or today when date is empty.
func (p *Poller) RefreshNow(ctx context.Context, date string) (store.ScheduleDay, error) {
	return p.refresh(ctx, date)
}

func (p *Poller) fetchOnce(ctx context.Context) {
	_, _ = p.refresh(ctx, "")
}

func (p *Poller) refresh(ctx context.Context, date string) (store.ScheduleDay, error) {
	start := time.Now()
	p.recordAttempt(start)
	if p.loader == nil {
		err := errors.New("poller has no loader")
		p.recordFailure(err, start)
		return store.ScheduleDay{}, err
	}
	if date == "" {
		date = p.loader.Today()
	}

	day, err := p.loader.LoadSchedule(ctx, date)
	if errors.Is(err, appgames.ErrSuperseded) {
		// A newer load for the date owns the commit and the broadcast.
		p.metrics.RecordPollerCycle(time.Since(start), nil)
		p.recordSuccess(start, date)
		return day, nil
	}
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "poller refresh failed", err,
			slog.String(logging.FieldDate, date),
			slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
		)
		p.recordFailure(err, start)
		return day, err
	}

	if p.listener != nil {
		p.listener.ScheduleRefreshed(day)
	}
	p.recordSuccess(start, date)
	logging.Info(p.logger, "poller refreshed schedule",
		slog.String(logging.FieldDate, date),
		slog.Int(logging.FieldCount, len(day.Games)),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return day, nil
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, date string) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastDate = date
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
