package config

import "time"

// MLBConfig controls how we talk to the MLB stats API.
type MLBConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond int
	Burst             int
	Timezone          string
	Season            int
}

func loadMLB() MLBConfig {
	return MLBConfig{
		BaseURL:           envOrDefault(envMLBBaseURL, defaultMLBBaseURL),
		Timeout:           durationEnvOrDefault(envMLBTimeout, defaultMLBTimeout),
		RequestsPerSecond: intEnvOrDefault(envMLBRate, defaultMLBRate),
		Burst:             intEnvOrDefault(envMLBBurst, defaultMLBBurst),
		Timezone:          envOrDefault(envMLBTimezone, defaultMLBTimezone),
		Season:            intEnvOrDefault(envMLBSeason, defaultMLBSeason),
	}
}

// AggregationConfig bounds the concurrent fan-outs.
type AggregationConfig struct {
	LiveConcurrency int
	// Only the first RosterCap roster entries get stats fetched for leaderboards.
	RosterCap int
}

func loadAggregation() AggregationConfig {
	return AggregationConfig{
		LiveConcurrency: intEnvOrDefault(envLiveConcurrency, defaultLiveConcurrency),
		RosterCap:       intEnvOrDefault(envRosterCap, defaultRosterCap),
	}
}
