package server

import (
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/goal-light/internal/config"
	"github.com/preston-bernstein/goal-light/internal/events"
	"github.com/preston-bernstein/goal-light/internal/history"
	"github.com/preston-bernstein/goal-light/internal/light"
	"github.com/preston-bernstein/goal-light/internal/logging"
	"github.com/preston-bernstein/goal-light/internal/metrics"
	"github.com/preston-bernstein/goal-light/internal/timeutil"
)

// NewHistory builds the status log and restores it from disk when configured.
func NewHistory(cfg config.Config, logger *slog.Logger, clk clockwork.Clock) *history.Log {
	var store history.Store
	if cfg.History.File != "" {
		store = history.NewFileStore(cfg.History.File)
	}
	log := history.New(history.Config{
		Size:    cfg.History.Size,
		Clock:   clk,
		Stamper: timeutil.NewStamper(cfg.Locale, cfg.Timezone),
		Store:   store,
		Logger:  logger,
	})
	if err := log.Restore(); err != nil {
		logging.Warn(logger, "history restore failed, starting empty", "error", err)
	}
	return log
}

// NewTrigger builds the goal light trigger from config.
func NewTrigger(cfg config.Config, notes light.Notes, logger *slog.Logger, recorder *metrics.Recorder, clk clockwork.Clock) *light.Trigger {
	return light.New(light.Config{
		OnCmd:  cfg.Light.OnCmd,
		OffCmd: cfg.Light.OffCmd,
		Exec:   cfg.Light.Exec,
	}, nil, clk, notes, logger, recorder)
}

// buildPublisher returns the Redis stream publisher when a URL is configured.
// The returned closer is nil for the no-op publisher.
func buildPublisher(cfg config.Config, logger *slog.Logger) (events.Publisher, func() error) {
	if cfg.Events.RedisURL == "" {
		return events.Nop{}, nil
	}
	pub, closeFn, err := events.Dial(cfg.Events.RedisURL, cfg.Events.Stream)
	if err != nil {
		logging.Warn(logger, "event publisher disabled", "error", err)
		return events.Nop{}, nil
	}
	logging.Info(logger, "publishing events", slog.String("stream", pub.Stream()))
	return pub, closeFn
}
