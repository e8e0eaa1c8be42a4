package mlbstats

import "time"

// ProviderName identifies this client in logs and metrics.
const ProviderName = "mlbstats"

const (
	defaultBaseURL           = "https://statsapi.mlb.com/api"
	defaultHTTPTimeout       = 10 * time.Second
	defaultRequestsPerSecond = 10
	defaultBurst             = 10
	defaultRosterType        = "active"
	maxErrorBody             = 512
)
