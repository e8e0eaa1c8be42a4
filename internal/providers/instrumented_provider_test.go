package providers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
	"github.com/gmontenegrodev/web-app/internal/metrics"
)

type stubDataProvider struct {
	schedule []games.Game
	err      error
	calls    int
}

func (s *stubDataProvider) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	s.calls++
	return s.schedule, s.err
}

func (s *stubDataProvider) FetchGameLive(ctx context.Context, gamePk int) (games.LiveFeed, error) {
	s.calls++
	return games.LiveFeed{GamePk: gamePk}, s.err
}

func (s *stubDataProvider) FetchTeamsMetadata(ctx context.Context, ids []int) (map[int]teams.Team, error) {
	s.calls++
	return map[int]teams.Team{}, s.err
}

func (s *stubDataProvider) FetchRoster(ctx context.Context, teamID int, rosterType string) ([]teams.RosterEntry, error) {
	s.calls++
	return nil, s.err
}

func (s *stubDataProvider) FetchTeamStats(ctx context.Context, teamID, season int, group players.Group) (players.StatLine, error) {
	s.calls++
	return players.StatLine{}, s.err
}

func (s *stubDataProvider) FetchPlayerStats(ctx context.Context, playerID, season int, group players.Group) (players.StatLine, error) {
	s.calls++
	return players.StatLine{}, s.err
}

func (s *stubDataProvider) FetchPlayerGameLogs(ctx context.Context, playerID, season int) ([]players.GameLog, error) {
	s.calls++
	return nil, s.err
}

func TestInstrumentedProviderRecordsSuccess(t *testing.T) {
	inner := &stubDataProvider{schedule: []games.Game{{GamePk: 1}}}
	rec := metrics.NewRecorder()
	p := NewInstrumentedProvider(inner, "stub", rec, nil)

	got, err := p.FetchSchedule(context.Background(), "2025-06-01")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 1 || inner.calls != 1 {
		t.Fatalf("expected passthrough, got %v (calls=%d)", got, inner.calls)
	}
	if rec.Calls(OpSchedule) != 1 || rec.Errors(OpSchedule) != 0 {
		t.Fatalf("unexpected metrics calls=%d errors=%d", rec.Calls(OpSchedule), rec.Errors(OpSchedule))
	}
}

func TestInstrumentedProviderDoesNotRetryAndWrapsErrors(t *testing.T) {
	inner := &stubDataProvider{err: errors.New("boom")}
	rec := metrics.NewRecorder()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	p := NewInstrumentedProvider(inner, "stub", rec, logger)

	_, err := p.FetchRoster(context.Background(), 146, "active")
	upErr, ok := AsUpstreamError(err)
	if !ok || upErr.Op != OpRoster {
		t.Fatalf("expected roster upstream error, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected exactly one call, got %d", inner.calls)
	}
	if rec.Errors(OpRoster) != 1 {
		t.Fatalf("expected error recorded, got %d", rec.Errors(OpRoster))
	}
	out := buf.String()
	if !strings.Contains(out, "upstream call failed") || !strings.Contains(out, "provider=stub") || !strings.Contains(out, "team_id=146") {
		t.Fatalf("expected failure log with provider and team, got %q", out)
	}
}

func TestInstrumentedProviderRecordsRateLimits(t *testing.T) {
	inner := &stubDataProvider{err: &UpstreamError{Op: OpPlayerStats, Err: &RateLimitError{RetryAfter: 3 * time.Second}}}
	rec := metrics.NewRecorder()
	p := NewInstrumentedProvider(inner, "", rec, nil)

	if _, err := p.FetchPlayerStats(context.Background(), 1, 2025, players.GroupHitting); err == nil {
		t.Fatal("expected error")
	}
	snap := rec.Snapshot(OpPlayerStats)
	if snap.RateLimitHits != 1 || snap.LastRetryAfter != 3*time.Second {
		t.Fatalf("unexpected rate limit snapshot %+v", snap)
	}
}

func TestInstrumentedProviderWithoutInner(t *testing.T) {
	p := NewInstrumentedProvider(nil, "stub", nil, nil)
	_, err := p.FetchGameLive(context.Background(), 1)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}
}
