package config

import "time"

const (
	envPort            = "PORT"
	envPollInterval    = "POLL_INTERVAL"
	envProvider        = "PROVIDER"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken      = "ADMIN_TOKEN"
	envCORSOrigins     = "CORS_ALLOWED_ORIGINS"
	envMLBBaseURL      = "MLB_BASE_URL"
	envMLBTimeout      = "MLB_TIMEOUT"
	envMLBRate         = "MLB_REQUESTS_PER_SECOND"
	envMLBBurst        = "MLB_BURST"
	envMLBTimezone     = "MLB_TIMEZONE"
	envMLBSeason       = "MLB_SEASON"
	envLiveConcurrency = "LIVE_FETCH_CONCURRENCY"
	envRosterCap       = "LEADERBOARD_ROSTER_CAP"

	defaultPort = "4000"
	// Live games change pitch by pitch; a minute keeps tiles fresh without hammering statsapi.
	defaultPollInterval    = Duration(time.Minute)
	defaultProvider        = "mlbstats"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultMetricsPort     = "9090"
	defaultServiceName     = "marlins-org-service"
	defaultMLBBaseURL      = "https://statsapi.mlb.com/api"
	defaultMLBTimeout      = 10 * Duration(time.Second)
	defaultMLBRate         = 10
	defaultMLBBurst        = 10
	defaultMLBTimezone     = "America/New_York"
	defaultMLBSeason       = 2025
	defaultLiveConcurrency = 8
	defaultRosterCap       = 25
)
