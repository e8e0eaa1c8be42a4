package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	appgames "github.com/gmontenegrodev/web-app/internal/app/games"
	appplayers "github.com/gmontenegrodev/web-app/internal/app/players"
	appteams "github.com/gmontenegrodev/web-app/internal/app/teams"
	"github.com/gmontenegrodev/web-app/internal/config"
	httpserver "github.com/gmontenegrodev/web-app/internal/http"
	"github.com/gmontenegrodev/web-app/internal/http/handlers"
	"github.com/gmontenegrodev/web-app/internal/http/stream"
	"github.com/gmontenegrodev/web-app/internal/live"
	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/metrics"
	"github.com/gmontenegrodev/web-app/internal/poller"
	"github.com/gmontenegrodev/web-app/internal/providers"
	"github.com/gmontenegrodev/web-app/internal/registry"
	"github.com/gmontenegrodev/web-app/internal/store"
	"github.com/gmontenegrodev/web-app/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg            config.Config
	logger         *slog.Logger
	metrics        *metrics.Recorder
	store          *store.Store
	gamesService   *appgames.Service
	teamsService   *appteams.Service
	playersService *appplayers.Service
	hub            *stream.Hub
	httpServer     httpServer
	metricsServer  httpServer
	poller         Poller
	metricsStop    func(context.Context) error
}

type services struct {
	store   *store.Store
	games   *appgames.Service
	teams   *appteams.Service
	players *appplayers.Service
}

// New constructs a server with the configured provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}

	svc := buildServices(cfg, provider, recorder, logger)

	var handler *handlers.Handler
	hub := stream.NewHub(func(day store.ScheduleDay) any {
		return handler.ScheduleView(day)
	}, logger, 0)
	plr := poller.New(svc.games, hub, logger, recorder, cfg.PollInterval)
	handler = buildHandler(cfg, svc, logger, plr.Status)
	httpSrv := buildHTTPServer(cfg, handler, plr, hub, logger, recorder)

	return &Server{
		cfg:            cfg,
		logger:         logger,
		metrics:        recorder,
		store:          svc.store,
		gamesService:   svc.games,
		teamsService:   svc.teams,
		playersService: svc.players,
		hub:            hub,
		httpServer:     httpSrv,
		metricsServer:  metricsSrv,
		poller:         plr,
		metricsStop:    metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildServices(cfg config.Config, provider providers.DataProvider, recorder *metrics.Recorder, logger *slog.Logger) services {
	st := store.New()
	loc := timeutil.LocationOrDefault(cfg.MLB.Timezone)
	aggregator := live.NewAggregator(provider, cfg.Aggregation.LiveConcurrency, recorder, logger)
	return services{
		store: st,
		games: appgames.NewService(st, provider, aggregator, registry.OrgTeamIDs(), loc, logger),
		teams: appteams.NewService(st, provider, registry.OrgTeamIDs(), logger),
		players: appplayers.NewService(st, provider, appplayers.Config{
			RosterCap:   cfg.Aggregation.RosterCap,
			Concurrency: cfg.Aggregation.LiveConcurrency,
		}, recorder, logger),
	}
}

func buildHandler(cfg config.Config, svc services, logger *slog.Logger, statusFn func() poller.Status) *handlers.Handler {
	return handlers.NewHandler(handlers.Deps{
		Schedule: svc.games,
		Teams:    svc.teams,
		Players:  svc.players,
		Season:   cfg.MLB.Season,
		Location: timeutil.LocationOrDefault(cfg.MLB.Timezone),
		Logger:   logger,
		StatusFn: statusFn,
	})
}

func buildHTTPServer(cfg config.Config, handler *handlers.Handler, plr Poller, hub *stream.Hub, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	router := httpserver.NewRouter(httpserver.RouterDeps{
		Handler:     handler,
		Admin:       handlers.NewAdminHandler(plr, cfg.HTTP.AdminToken, logger),
		Stream:      stream.NewHandler(hub, cfg.HTTP.CORSOrigins, logger),
		Logger:      logger,
		Metrics:     recorder,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	if s.hub != nil {
		go s.hub.Run()
	}
	s.startServer(stop)
	s.warmMetadata(ctx)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

// warmMetadata loads team names before the first poll so composed tiles carry them.
func (s *Server) warmMetadata(ctx context.Context) {
	if s.teamsService == nil {
		return
	}
	warmCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := s.teamsService.LoadMetadata(warmCtx); err != nil {
		logging.Warn(s.logger, "team metadata warmup failed", "error", err)
	}
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	// Websocket connections are hijacked, so Shutdown does not wait for them.
	if s.hub != nil {
		s.hub.Stop()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}
	if !cfg.Metrics.Enabled {
		return metrics.NewRecorder(), nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           mux,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
