package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/metrics"
)

// instrumentedProvider wraps a DataProvider, recording per-operation metrics
// and logging failures. It never retries.
type instrumentedProvider struct {
	inner    DataProvider
	name     string
	recorder *metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewInstrumentedProvider decorates inner with metrics and logging.
// Errors returned by inner are wrapped as UpstreamError when they are not already.
func NewInstrumentedProvider(inner DataProvider, name string, recorder *metrics.Recorder, logger *slog.Logger) DataProvider {
	if name == "" {
		name = "upstream"
	}
	return &instrumentedProvider{
		inner:    inner,
		name:     name,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *instrumentedProvider) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	var out []games.Game
	err := p.observe(ctx, OpSchedule, func() (err error) {
		out, err = p.inner.FetchSchedule(ctx, date)
		return err
	}, slog.String(logging.FieldDate, date))
	return out, err
}

func (p *instrumentedProvider) FetchGameLive(ctx context.Context, gamePk int) (games.LiveFeed, error) {
	var out games.LiveFeed
	err := p.observe(ctx, OpLiveFeed, func() (err error) {
		out, err = p.inner.FetchGameLive(ctx, gamePk)
		return err
	}, slog.Int(logging.FieldGamePk, gamePk))
	return out, err
}

func (p *instrumentedProvider) FetchTeamsMetadata(ctx context.Context, ids []int) (map[int]teams.Team, error) {
	var out map[int]teams.Team
	err := p.observe(ctx, OpTeams, func() (err error) {
		out, err = p.inner.FetchTeamsMetadata(ctx, ids)
		return err
	}, slog.Int(logging.FieldCount, len(ids)))
	return out, err
}

func (p *instrumentedProvider) FetchRoster(ctx context.Context, teamID int, rosterType string) ([]teams.RosterEntry, error) {
	var out []teams.RosterEntry
	err := p.observe(ctx, OpRoster, func() (err error) {
		out, err = p.inner.FetchRoster(ctx, teamID, rosterType)
		return err
	}, slog.Int(logging.FieldTeamID, teamID))
	return out, err
}

func (p *instrumentedProvider) FetchTeamStats(ctx context.Context, teamID, season int, group players.Group) (players.StatLine, error) {
	var out players.StatLine
	err := p.observe(ctx, OpTeamStats, func() (err error) {
		out, err = p.inner.FetchTeamStats(ctx, teamID, season, group)
		return err
	}, slog.Int(logging.FieldTeamID, teamID), slog.Int(logging.FieldSeason, season), slog.String(logging.FieldGroup, string(group)))
	return out, err
}

func (p *instrumentedProvider) FetchPlayerStats(ctx context.Context, playerID, season int, group players.Group) (players.StatLine, error) {
	var out players.StatLine
	err := p.observe(ctx, OpPlayerStats, func() (err error) {
		out, err = p.inner.FetchPlayerStats(ctx, playerID, season, group)
		return err
	}, slog.Int(logging.FieldPlayerID, playerID), slog.Int(logging.FieldSeason, season), slog.String(logging.FieldGroup, string(group)))
	return out, err
}

func (p *instrumentedProvider) FetchPlayerGameLogs(ctx context.Context, playerID, season int) ([]players.GameLog, error) {
	var out []players.GameLog
	err := p.observe(ctx, OpGameLogs, func() (err error) {
		out, err = p.inner.FetchPlayerGameLogs(ctx, playerID, season)
		return err
	}, slog.Int(logging.FieldPlayerID, playerID), slog.Int(logging.FieldSeason, season))
	return out, err
}

func (p *instrumentedProvider) observe(ctx context.Context, op string, call func() error, attrs ...any) error {
	if p == nil || p.inner == nil {
		return Wrap(op, ErrProviderUnavailable)
	}

	start := p.now()
	err := call()
	elapsed := p.now().Sub(start)
	p.recorder.RecordUpstreamCall(op, elapsed, err)
	if err == nil {
		return nil
	}

	if rl, ok := AsRateLimitError(err); ok {
		p.recorder.RecordRateLimit(op, rl.RetryAfter)
	}

	args := append([]any{slog.String(logging.FieldOp, op), slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()), "error", err}, attrs...)
	level := slog.LevelWarn
	if errors.Is(err, context.Canceled) {
		level = slog.LevelDebug
	}
	logWithProvider(ctx, p.logger, level, p.name, "upstream call failed", args...)
	return Wrap(op, err)
}
