package server

import (
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/goal-light/internal/config"
	"github.com/preston-bernstein/goal-light/internal/metrics"
	"github.com/preston-bernstein/goal-light/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	clock   clockwork.Clock
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder, clk clockwork.Clock) providerFactory {
	return providerFactory{logger: logger, metrics: metrics, clock: clk}
}

func (f providerFactory) build(cfg config.Config) providers.ScheduleProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger, f.clock))
}

// wrap puts base behind the upstream quota and the retry policy. Retries sit
// outside the limiter so every attempt waits for a token.
func (f providerFactory) wrap(cfg config.Config, base providers.ScheduleProvider) providers.ScheduleProvider {
	limited := providers.NewRateLimitedProvider(base, cfg.Shl.RatePerMinute, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), 0, 0)
}

// NewProvider builds the configured schedule provider with its wrappers.
func NewProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.ScheduleProvider {
	return newProviderFactory(logger, recorder, nil).build(cfg)
}
