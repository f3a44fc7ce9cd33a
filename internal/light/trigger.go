// Package light drives the goal light: an "on" command, a hold, and an "off"
// command, run in the background so polling never waits on it.
package light

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/goal-light/internal/logging"
	"github.com/preston-bernstein/goal-light/internal/metrics"
)

// Reasons passed to Fire by the orchestrator.
const (
	ReasonGoal  = "goal"
	ReasonReady = "ready"
	ReasonTest  = "test"
)

// Notes receives human-readable status lines.
type Notes interface {
	Add(msg string)
}

// Config holds the command pair and whether to execute it.
type Config struct {
	OnCmd  string
	OffCmd string
	Exec   bool
}

// Trigger runs light sequences.
type Trigger struct {
	cfg     Config
	runner  Runner
	clock   clockwork.Clock
	notes   Notes
	logger  *slog.Logger
	metrics *metrics.Recorder

	wg sync.WaitGroup
}

// New builds a trigger; nil runner and clock select the shell runner and real clock.
func New(cfg Config, runner Runner, clk clockwork.Clock, notes Notes, logger *slog.Logger, recorder *metrics.Recorder) *Trigger {
	if runner == nil {
		runner = ShellRunner{}
	}
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Trigger{
		cfg:     cfg,
		runner:  runner,
		clock:   clk,
		notes:   notes,
		logger:  logger,
		metrics: recorder,
	}
}

// Fire starts an on/hold/off sequence in the background and returns at once.
// Command failures are logged and counted, never returned.
func (t *Trigger) Fire(ctx context.Context, hold time.Duration, reason string) {
	if t == nil {
		return
	}
	id := uuid.NewString()
	logging.Info(t.logger, "light triggered",
		slog.String(logging.FieldReason, reason),
		slog.String("trigger_id", id),
		slog.Int64("hold_ms", hold.Milliseconds()),
	)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		err := t.sequence(ctx, hold, reason, id)
		t.metrics.RecordTrigger(reason, err)
	}()
}

// Wait blocks until every started sequence has finished.
func (t *Trigger) Wait() {
	if t == nil {
		return
	}
	t.wg.Wait()
}

func (t *Trigger) sequence(ctx context.Context, hold time.Duration, reason, id string) error {
	t.note("Start the light!")
	onErr := t.run(ctx, t.cfg.OnCmd, reason, id)

	if hold > 0 {
		timer := t.clock.NewTimer(hold)
		select {
		case <-ctx.Done():
		case <-timer.Chan():
		}
		timer.Stop()
	}

	t.note("Turn off the light!")
	// The light must go off even when shutdown interrupted the hold.
	offErr := t.run(context.WithoutCancel(ctx), t.cfg.OffCmd, reason, id)
	return errors.Join(onErr, offErr)
}

func (t *Trigger) run(ctx context.Context, command, reason, id string) error {
	if !t.cfg.Exec || command == "" {
		return nil
	}
	if err := t.runner.Run(ctx, command); err != nil {
		t.note("Could not exec")
		logging.Error(t.logger, "light command failed", err,
			slog.String(logging.FieldReason, reason),
			slog.String("trigger_id", id),
		)
		return err
	}
	return nil
}

func (t *Trigger) note(msg string) {
	if t.notes != nil {
		t.notes.Add(msg)
	}
}
