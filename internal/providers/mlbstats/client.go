package mlbstats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/gmontenegrodev/web-app/internal/domain/games"
	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/domain/teams"
	"github.com/gmontenegrodev/web-app/internal/providers"
	"github.com/gmontenegrodev/web-app/internal/registry"
)

// Config controls how the client reaches the MLB stats API.
type Config struct {
	BaseURL           string
	HTTPClient        *http.Client
	Timeout           time.Duration
	RequestsPerSecond int
	Burst             int
	// TeamIDs and SportIDs default to the organization registry.
	TeamIDs  []int
	SportIDs []int
}

// Client fetches schedule, live feed, roster and stat data from statsapi and maps them to domain models.
type Client struct {
	baseURL    string
	httpClient httpDoer
	limiter    *rate.Limiter
	teamIDs    []int
	sportIDs   []int
	now        func() time.Time
}

// NewClient constructs a statsapi client with the provided configuration.
func NewClient(cfg Config) *Client {
	teamIDs := cfg.TeamIDs
	if len(teamIDs) == 0 {
		teamIDs = registry.OrgTeamIDs()
	}
	sportIDs := cfg.SportIDs
	if len(sportIDs) == 0 {
		sportIDs = registry.SportIDs()
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		limiter:    resolveLimiter(cfg.RequestsPerSecond, cfg.Burst),
		teamIDs:    teamIDs,
		sportIDs:   sportIDs,
		now:        time.Now,
	}
}

// FetchSchedule issues one batched schedule request covering every team and sport id.
// Only the first date bucket is used; an empty date lets upstream pick "today".
func (c *Client) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	q := url.Values{}
	q["teamId"] = intStrings(c.teamIDs)
	q["sportId"] = intStrings(c.sportIDs)
	q.Set("hydrate", "probablePitcher")
	if date = strings.TrimSpace(date); date != "" {
		q.Set("date", date)
	}

	var payload scheduleResponse
	if err := c.getJSON(ctx, providers.OpSchedule, "/v1/schedule", q, &payload); err != nil {
		return nil, err
	}
	if len(payload.Dates) == 0 {
		return []games.Game{}, nil
	}

	bucket := payload.Dates[0].Games
	out := make([]games.Game, 0, len(bucket))
	for _, g := range bucket {
		out = append(out, mapGame(g))
	}
	return out, nil
}

// FetchTeamsMetadata issues one batched request for the given team ids.
func (c *Client) FetchTeamsMetadata(ctx context.Context, ids []int) (map[int]teams.Team, error) {
	if len(ids) == 0 {
		ids = c.teamIDs
	}
	q := url.Values{}
	q["teamId"] = intStrings(ids)

	var payload teamsResponse
	if err := c.getJSON(ctx, providers.OpTeams, "/v1/teams", q, &payload); err != nil {
		return nil, err
	}

	out := make(map[int]teams.Team, len(payload.Teams))
	for _, t := range payload.Teams {
		out[t.ID] = mapTeam(t)
	}
	return out, nil
}

// FetchGameLive retrieves the v1.1 live feed for a single game.
func (c *Client) FetchGameLive(ctx context.Context, gamePk int) (games.LiveFeed, error) {
	var feed games.LiveFeed
	path := fmt.Sprintf("/v1.1/game/%d/feed/live", gamePk)
	if err := c.getJSON(ctx, providers.OpLiveFeed, path, nil, &feed); err != nil {
		return games.LiveFeed{}, err
	}
	if feed.GamePk == 0 {
		feed.GamePk = gamePk
	}
	return feed, nil
}

// FetchRoster retrieves a team's roster in upstream order.
func (c *Client) FetchRoster(ctx context.Context, teamID int, rosterType string) ([]teams.RosterEntry, error) {
	if rosterType == "" {
		rosterType = defaultRosterType
	}
	q := url.Values{}
	q.Set("rosterType", rosterType)

	var payload rosterResponse
	path := fmt.Sprintf("/v1/teams/%d/roster", teamID)
	if err := c.getJSON(ctx, providers.OpRoster, path, q, &payload); err != nil {
		return nil, err
	}

	out := make([]teams.RosterEntry, 0, len(payload.Roster))
	for _, r := range payload.Roster {
		out = append(out, mapRosterEntry(teamID, r))
	}
	return out, nil
}

// FetchPlayerStats retrieves one group's season line for a player.
func (c *Client) FetchPlayerStats(ctx context.Context, playerID, season int, group players.Group) (players.StatLine, error) {
	path := fmt.Sprintf("/v1/people/%d/stats", playerID)
	return c.fetchSeasonLine(ctx, providers.OpPlayerStats, path, season, group)
}

// FetchTeamStats retrieves one group's season line for a team.
func (c *Client) FetchTeamStats(ctx context.Context, teamID, season int, group players.Group) (players.StatLine, error) {
	path := fmt.Sprintf("/v1/teams/%d/stats", teamID)
	return c.fetchSeasonLine(ctx, providers.OpTeamStats, path, season, group)
}

// FetchPlayerGameLogs retrieves per-game splits for both groups in upstream order.
func (c *Client) FetchPlayerGameLogs(ctx context.Context, playerID, season int) ([]players.GameLog, error) {
	q := url.Values{}
	q.Set("stats", "gameLog")
	q.Set("season", strconv.Itoa(season))
	q.Set("group", string(players.GroupHitting)+","+string(players.GroupPitching))

	var payload statsResponse
	path := fmt.Sprintf("/v1/people/%d/stats", playerID)
	if err := c.getJSON(ctx, providers.OpGameLogs, path, q, &payload); err != nil {
		return nil, err
	}

	out := make([]players.GameLog, 0)
	for _, group := range payload.Stats {
		g := players.Group(strings.ToLower(group.Group.DisplayName))
		for _, split := range group.Splits {
			out = append(out, mapGameLog(g, split))
		}
	}
	return out, nil
}

func (c *Client) fetchSeasonLine(ctx context.Context, op, path string, season int, group players.Group) (players.StatLine, error) {
	q := url.Values{}
	q.Set("stats", "season")
	q.Set("season", strconv.Itoa(season))
	q.Set("group", string(group))

	var payload statsResponse
	if err := c.getJSON(ctx, op, path, q, &payload); err != nil {
		return nil, err
	}
	return firstSplitStat(payload), nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return providers.Wrap(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return providers.Wrap(op, err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return providers.Wrap(op, fmt.Errorf("http request %s: %w", path, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return providers.Wrap(op, providers.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return providers.Wrap(op, &providers.RateLimitError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    "statsapi rate limited",
		})
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return providers.Wrap(op, fmt.Errorf("statsapi: unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		return providers.Wrap(op, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

func intStrings(ids []int) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strconv.Itoa(id))
	}
	return out
}
