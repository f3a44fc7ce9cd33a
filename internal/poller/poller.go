// Package poller follows one team through a season: it waits for each game,
// polls the live report while the game runs, and fires the light on goals.
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/goal-light/internal/clock"
	"github.com/preston-bernstein/goal-light/internal/events"
	"github.com/preston-bernstein/goal-light/internal/logging"
	"github.com/preston-bernstein/goal-light/internal/metrics"
	"github.com/preston-bernstein/goal-light/internal/providers"
)

const (
	reasonGoal  = "goal"
	reasonReady = "ready"
)

// Trigger fires the light without blocking the caller.
type Trigger interface {
	Fire(ctx context.Context, hold time.Duration, reason string)
}

// Journal receives status lines and successful API call marks.
type Journal interface {
	Add(msg string)
	MarkCall()
}

// Deps are the collaborators shared by the tracker and the season runner.
type Deps struct {
	Provider  providers.ScheduleProvider
	Waiter    clock.Waiter
	Trigger   Trigger
	Journal   Journal
	Publisher events.Publisher
	Logger    *slog.Logger
	Metrics   *metrics.Recorder
}

func (d Deps) withDefaults() Deps {
	if d.Waiter == nil {
		d.Waiter = clock.New(nil)
	}
	if d.Publisher == nil {
		d.Publisher = events.Nop{}
	}
	return d
}

func (d Deps) note(msg string) {
	if d.Journal != nil {
		d.Journal.Add(msg)
	}
}

func (d Deps) markCall() {
	if d.Journal != nil {
		d.Journal.MarkCall()
	}
}

func (d Deps) fire(ctx context.Context, hold time.Duration, reason string) {
	if d.Trigger != nil {
		d.Trigger.Fire(ctx, hold, reason)
	}
}

func (d Deps) publish(ctx context.Context, ev events.Event) {
	if err := d.Publisher.Publish(ctx, ev); err != nil {
		logging.Warn(d.Logger, "event publish failed",
			slog.String("event_type", ev.Type),
			slog.String(logging.FieldGameID, ev.GameID),
			"error", err,
		)
	}
}
