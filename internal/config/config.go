package config

// Config holds runtime configuration for the server and CLI.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	Log          LogConfig
	MLB          MLBConfig
	Aggregation  AggregationConfig
	HTTP         HTTPConfig
	Metrics      MetricsConfig
}

// LogConfig controls logger level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     envOrDefault(envProvider, defaultProvider),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		MLB:         loadMLB(),
		Aggregation: loadAggregation(),
		HTTP:        loadHTTP(),
		Metrics:     loadMetrics(),
	}
}
