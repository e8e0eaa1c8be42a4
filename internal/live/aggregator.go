package live

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/metrics"
	"github.com/gmontenegrodev/web-app/internal/providers"
)

const defaultConcurrency = 8

// Aggregator fetches live feeds for many games at once.
type Aggregator struct {
	provider    providers.LiveProvider
	concurrency int
	recorder    *metrics.Recorder
	logger      *slog.Logger
}

// NewAggregator constructs an Aggregator; concurrency <= 0 uses a default bound.
func NewAggregator(provider providers.LiveProvider, concurrency int, recorder *metrics.Recorder, logger *slog.Logger) *Aggregator {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Aggregator{
		provider:    provider,
		concurrency: concurrency,
		recorder:    recorder,
		logger:      logger,
	}
}

// FetchAll returns one entry per distinct gamePk. A nil value means the feed
// could not be fetched; one failure never cancels the other fetches.
func (a *Aggregator) FetchAll(ctx context.Context, gamePks []int) map[int]*games.LiveState {
	out := make(map[int]*games.LiveState, len(gamePks))
	if len(gamePks) == 0 {
		return out
	}

	var (
		mu          sync.Mutex
		unavailable int
		g           errgroup.Group
	)
	g.SetLimit(a.concurrency)
	logger := logging.FromContext(ctx, a.logger)

	for _, pk := range dedupe(gamePks) {
		pk := pk
		g.Go(func() error {
			state, err := a.fetchOne(ctx, pk)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				unavailable++
				out[pk] = nil
				logging.Warn(logger, "live feed unavailable",
					slog.Int(logging.FieldGamePk, pk),
					"error", err,
				)
				return nil
			}
			out[pk] = state
			return nil
		})
	}
	_ = g.Wait()

	a.recorder.RecordBatch(providers.OpLiveFeed, len(out), unavailable)
	return out
}

func (a *Aggregator) fetchOne(ctx context.Context, gamePk int) (*games.LiveState, error) {
	if a.provider == nil {
		return nil, providers.Wrap(providers.OpLiveFeed, providers.ErrProviderUnavailable)
	}
	feed, err := a.provider.FetchGameLive(ctx, gamePk)
	if err != nil {
		return nil, err
	}
	if feed.GamePk == 0 {
		feed.GamePk = gamePk
	}
	state := Extract(feed)
	return &state, nil
}

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
