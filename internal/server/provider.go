package server

import (
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/goal-light/internal/config"
	"github.com/preston-bernstein/goal-light/internal/logging"
	"github.com/preston-bernstein/goal-light/internal/providers"
	"github.com/preston-bernstein/goal-light/internal/providers/fixture"
	"github.com/preston-bernstein/goal-light/internal/providers/shl"
)

func selectProvider(cfg config.Config, logger *slog.Logger, clk clockwork.Clock) providers.ScheduleProvider {
	switch cfg.Provider {
	case "fixture":
		return fixture.New(cfg.Team, clk)
	case "shl", "":
		if cfg.Shl.ClientID == "" {
			logging.Warn(logger, "no SHL client id configured, requests will be unauthenticated")
		}
		return shl.NewClient(shl.Config{
			BaseURL:  cfg.Shl.BaseURL,
			ClientID: cfg.Shl.ClientID,
			Secret:   cfg.Shl.Secret,
			Timezone: cfg.Timezone,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New(cfg.Team, clk)
	}
}
