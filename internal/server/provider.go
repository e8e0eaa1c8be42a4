package server

import (
	"log/slog"

	"github.com/gmontenegrodev/web-app/internal/config"
	"github.com/gmontenegrodev/web-app/internal/providers"
	"github.com/gmontenegrodev/web-app/internal/providers/fixture"
	"github.com/gmontenegrodev/web-app/internal/providers/mlbstats"
	"github.com/gmontenegrodev/web-app/internal/registry"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch normalizeProviderName(cfg.Provider, nil) {
	case "fixture":
		return fixture.New()
	case "mlbstats", "provider":
		return mlbstats.NewClient(mlbstats.Config{
			BaseURL:           cfg.MLB.BaseURL,
			Timeout:           cfg.MLB.Timeout,
			RequestsPerSecond: cfg.MLB.RequestsPerSecond,
			Burst:             cfg.MLB.Burst,
			TeamIDs:           registry.OrgTeamIDs(),
			SportIDs:          registry.SportIDs(),
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
