package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	appgames "github.com/gmontenegrodev/web-app/internal/app/games"
	appplayers "github.com/gmontenegrodev/web-app/internal/app/players"
	appteams "github.com/gmontenegrodev/web-app/internal/app/teams"
	"github.com/gmontenegrodev/web-app/internal/config"
	"github.com/gmontenegrodev/web-app/internal/domain/players"
	"github.com/gmontenegrodev/web-app/internal/live"
	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/providers"
	"github.com/gmontenegrodev/web-app/internal/providers/fixture"
	"github.com/gmontenegrodev/web-app/internal/providers/mlbstats"
	"github.com/gmontenegrodev/web-app/internal/registry"
	"github.com/gmontenegrodev/web-app/internal/store"
	"github.com/gmontenegrodev/web-app/internal/timeutil"
	"github.com/gmontenegrodev/web-app/internal/viewmodel"
)

type options struct {
	provider string
	jsonOut  bool
	timeout  time.Duration
	logLevel string
}

// core is the service graph every subcommand reads from.
type core struct {
	cfg     config.Config
	loc     *time.Location
	logger  *slog.Logger
	games   *appgames.Service
	teams   *appteams.Service
	players *appplayers.Service
}

// newProvider is swapped in tests.
var newProvider = func(name string, cfg config.Config) (providers.DataProvider, error) {
	switch strings.ToLower(name) {
	case "fixture":
		return fixture.New(), nil
	case "mlbstats":
		return mlbstats.NewClient(mlbstats.Config{
			BaseURL:           cfg.MLB.BaseURL,
			Timeout:           cfg.MLB.Timeout,
			RequestsPerSecond: cfg.MLB.RequestsPerSecond,
			Burst:             cfg.MLB.Burst,
			TeamIDs:           registry.OrgTeamIDs(),
			SportIDs:          registry.SportIDs(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want mlbstats or fixture)", name)
	}
}

func newCore(opts *options, stderr io.Writer) (*core, error) {
	cfg := config.Load()
	name := opts.provider
	if name == "" {
		name = cfg.Provider
	}
	logger := logging.NewLogger(logging.Config{Level: opts.logLevel, Service: "orgctl", Output: stderr})
	base, err := newProvider(name, cfg)
	if err != nil {
		return nil, err
	}
	provider := providers.NewInstrumentedProvider(base, name, nil, logger)

	st := store.New()
	loc := timeutil.LocationOrDefault(cfg.MLB.Timezone)
	aggregator := live.NewAggregator(provider, cfg.Aggregation.LiveConcurrency, nil, logger)
	return &core{
		cfg:    cfg,
		loc:    loc,
		logger: logger,
		games:  appgames.NewService(st, provider, aggregator, registry.OrgTeamIDs(), loc, logger),
		teams:  appteams.NewService(st, provider, registry.OrgTeamIDs(), logger),
		players: appplayers.NewService(st, provider, appplayers.Config{
			RosterCap:   cfg.Aggregation.RosterCap,
			Concurrency: cfg.Aggregation.LiveConcurrency,
		}, nil, logger),
	}, nil
}

func (c *core) season(flag int) int {
	if flag > 0 {
		return flag
	}
	if c.cfg.MLB.Season > 0 {
		return c.cfg.MLB.Season
	}
	return time.Now().In(c.loc).Year()
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "orgctl",
		Short:         "Marlins organization schedule and stats CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.provider, "provider", "", "Data provider (mlbstats, fixture); defaults to PROVIDER")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print JSON instead of a table")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Overall request timeout")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level for diagnostics on stderr")

	root.AddCommand(scheduleCmd(opts))
	root.AddCommand(teamsCmd(opts))
	root.AddCommand(rosterCmd(opts))
	root.AddCommand(playerCmd(opts))
	root.AddCommand(leadersCmd(opts))
	root.AddCommand(searchCmd(opts))
	return root
}

// run builds the core and a timeout context, then hands both to fn.
func run(cmd *cobra.Command, opts *options, fn func(ctx context.Context, c *core) error) error {
	c, err := newCore(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()
	return fn(ctx, c)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func scheduleCmd(opts *options) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show every org team's game for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				if _, err := timeutil.ParseDate(date); err != nil {
					return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
				}
			}
			return run(cmd, opts, func(ctx context.Context, c *core) error {
				if err := c.teams.EnsureMetadata(ctx); err != nil {
					logging.Warn(c.logger, "team metadata unavailable", "error", err)
				}
				day, err := c.games.LoadSchedule(ctx, c.games.ResolveDate(date))
				if err != nil {
					return err
				}
				entries := viewmodel.ComposeSchedule(viewmodel.ScheduleInput{
					Date:     day.Date,
					TeamIDs:  c.games.TeamIDs(),
					Teams:    c.teams.Metadata(),
					Games:    day.Games,
					Live:     day.Live,
					Location: c.loc,
				})
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return printJSON(out, entries)
				}
				fmt.Fprintf(out, "Schedule for %s\n", day.Date)
				tw := newTable(out)
				fmt.Fprintln(tw, "LEVEL\tTEAM\tSTATE\tOPPONENT\tDETAIL")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Level, e.TeamName, e.State, e.Opponent, scheduleDetail(e))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD); defaults to today in America/New_York")
	return cmd
}

func scheduleDetail(e viewmodel.ScheduleEntry) string {
	switch {
	case e.Live != nil:
		return fmt.Sprintf("%d-%d %s %d, P: %s", e.Live.Score.Away, e.Live.Score.Home, e.Live.InningHalf, e.Live.Inning, e.Live.Pitcher)
	case e.Final != nil:
		return fmt.Sprintf("Final %d-%d", e.Final.Score.Away, e.Final.Score.Home)
	case e.LiveStatus != "":
		return "live data " + e.LiveStatus
	case e.StartingPitcher != "":
		return fmt.Sprintf("%s, SP: %s", e.StartTime, e.StartingPitcher)
	}
	return ""
}

func teamsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List the organization's teams by level",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, c *core) error {
				if err := c.teams.LoadMetadata(ctx); err != nil {
					return err
				}
				chart := viewmodel.OrgChart(c.teams.Metadata(), c.teams.TeamIDs())
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return printJSON(out, chart)
				}
				tw := newTable(out)
				fmt.Fprintln(tw, "LEVEL\tID\tTEAM\tLEAGUE")
				for _, lvl := range chart {
					for _, t := range lvl.Teams {
						fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", lvl.Level, t.ID, t.Name, t.LeagueName)
					}
				}
				return tw.Flush()
			})
		},
	}
}

func parseID(raw, what string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, raw)
	}
	return id, nil
}

func rosterCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "roster <teamId>",
		Short: "Show a team's active roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := parseID(args[0], "team id")
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, c *core) error {
				roster, err := c.players.Roster(ctx, teamID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return printJSON(out, roster)
				}
				tw := newTable(out)
				fmt.Fprintln(tw, "#\tID\tNAME\tPOS")
				for _, r := range roster {
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.JerseyNumber, r.PlayerID, r.FullName, r.Position)
				}
				return tw.Flush()
			})
		},
	}
}

func playerCmd(opts *options) *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "player <playerId>",
		Short: "Show a player's season line and recent games",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := parseID(args[0], "player id")
			if err != nil {
				return err
			}
			return run(cmd, opts, func(ctx context.Context, c *core) error {
				yr := c.season(season)
				stats, err := c.players.FetchPlayerStats(ctx, playerID, yr)
				if err != nil {
					return err
				}
				logs, err := c.players.FetchPlayerGameLogs(ctx, playerID, yr)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return printJSON(out, map[string]any{"stats": stats, "gameLogs": logs})
				}
				fmt.Fprintf(out, "Player %d, %d season\n", playerID, yr)
				tw := newTable(out)
				for _, group := range players.Groups() {
					line := stats.Group(group)
					if len(line) == 0 {
						continue
					}
					fmt.Fprintf(tw, "%s\t", group)
					for _, def := range viewmodel.StatDefs(group) {
						fmt.Fprintf(tw, "%s %s\t", def.Label, viewmodel.FormatStat(def.Key, line))
					}
					fmt.Fprintln(tw)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintln(out, "Recent games")
				tw = newTable(out)
				for _, g := range logs {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", g.Date, g.OpponentName, summarizeLog(g))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year; defaults to MLB_SEASON")
	return cmd
}

func summarizeLog(g players.GameLog) string {
	if g.Group == players.GroupPitching {
		return fmt.Sprintf("%s IP, %s K", viewmodel.FormatStat("inningsPitched", g.Stat), viewmodel.FormatStat("strikeOuts", g.Stat))
	}
	return fmt.Sprintf("%s H, %s HR", viewmodel.FormatStat("hits", g.Stat), viewmodel.FormatStat("homeRuns", g.Stat))
}

func leadersCmd(opts *options) *cobra.Command {
	var (
		teamID int
		season int
		group  string
		stat   string
	)
	cmd := &cobra.Command{
		Use:   "leaders",
		Short: "Rank a team's players by one stat",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, c *core) error {
				filters := viewmodel.NewFilters(c.season(0))
				if season > 0 {
					filters.SetSeason(season)
				}
				if group != "" {
					filters.SetGroup(players.Group(group))
				}
				if stat != "" {
					filters.Stat = stat
				}
				filters.TeamID = teamID
				if err := filters.Validate(); err != nil {
					return err
				}

				rows, err := c.players.LeaderboardStats(ctx, filters.TeamID, filters.Season)
				if err != nil {
					return err
				}
				entries := viewmodel.Leaderboard(rows, filters.Group, filters.Stat)
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return printJSON(out, entries)
				}
				def, _ := viewmodel.LookupStat(filters.Group, filters.Stat)
				fmt.Fprintf(out, "%s leaders, team %d, %d\n", def.Label, filters.TeamID, filters.Season)
				tw := newTable(out)
				for _, e := range entries {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.Rank, e.FullName, e.Position, e.Display)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&teamID, "team", registry.MainOrgTeamIDs()[0], "Team id")
	cmd.Flags().IntVar(&season, "season", 0, "Season year; defaults to MLB_SEASON")
	cmd.Flags().StringVar(&group, "group", string(viewmodel.DefaultGroup), "Stat group (hitting, pitching)")
	cmd.Flags().StringVar(&stat, "stat", "", "Stat key; defaults to the group's default stat")
	return cmd
}

func searchCmd(opts *options) *cobra.Command {
	var teamID int
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the org player index by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return run(cmd, opts, func(ctx context.Context, c *core) error {
				c.players.EnsureOrgPlayers(ctx, registry.MainOrgTeamIDs())
				found := c.players.SearchPlayers(query)
				if teamID > 0 {
					found = c.players.PlayersByTeam(teamID)
				}
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return printJSON(out, found)
				}
				tw := newTable(out)
				fmt.Fprintln(tw, "ID\tNAME\tPOS\tTEAM")
				for _, r := range found {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", r.PlayerID, r.FullName, r.Position, r.TeamID)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&teamID, "team", 0, "List one team's players instead of searching")
	return cmd
}
