package server

import (
	"log/slog"

	"github.com/gmontenegrodev/web-app/internal/config"
	"github.com/gmontenegrodev/web-app/internal/metrics"
	"github.com/gmontenegrodev/web-app/internal/providers"
)

// providerFactory assembles the configured provider with the shared instrumentation wrapper.
// Rate limiting lives in the mlbstats client; nothing here retries.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

func (f providerFactory) wrap(cfg config.Config, base providers.DataProvider) providers.DataProvider {
	return providers.NewInstrumentedProvider(base, normalizeProviderName(cfg.Provider, base), f.metrics, f.logger)
}
