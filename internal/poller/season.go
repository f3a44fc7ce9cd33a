package poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/goal-light/internal/domain/games"
	"github.com/preston-bernstein/goal-light/internal/events"
	"github.com/preston-bernstein/goal-light/internal/logging"
)

// SeasonRunner sequences games within a season and rediscovers the season
// once a day. It runs until its context is cancelled.
type SeasonRunner struct {
	settings Settings
	deps     Deps
	tracker  *GameTracker
	status   *statusBoard
}

// NewSeasonRunner wires a runner and its game tracker.
func NewSeasonRunner(settings Settings, deps Deps) *SeasonRunner {
	settings = settings.withDefaults()
	deps = deps.withDefaults()
	board := newStatusBoard()
	return &SeasonRunner{
		settings: settings,
		deps:     deps,
		tracker:  newGameTracker(settings, deps, board),
		status:   board,
	}
}

// Status returns a snapshot of the runner's position and fetch health.
func (r *SeasonRunner) Status() Status {
	return r.status.snapshot()
}

// Run is the main loop: find the season, play through its schedule, idle a
// day, repeat. It returns only the context's error.
func (r *SeasonRunner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		season := games.CurrentSeason(r.deps.Waiter.Now())
		logger := r.deps.Logger
		if logger != nil {
			logger = logger.With(slog.Int(logging.FieldSeason, season))
		}

		queue := r.FetchQueue(ctx, season)
		if !queue.Empty() {
			logging.Info(logger, "season schedule loaded", slog.Int(logging.FieldCount, queue.Len()))
			r.deps.fire(ctx, r.settings.ReadyHold, reasonReady)
			r.deps.publish(ctx, events.New(events.TypeReady, r.settings.Team, r.deps.Waiter.Now()))
			if err := r.SeasonLoop(ctx, season, queue); err != nil {
				return err
			}
		}

		r.status.update(func(s *Status) {
			s.Phase = PhaseIdle
			s.GameID = ""
			s.Opponent = ""
			s.NextStart = time.Time{}
		})
		logging.Info(logger, "no more games, idling",
			slog.Int64(logging.FieldWaitMS, r.settings.IdleInterval.Milliseconds()),
		)
		r.deps.note(fmt.Sprintf("No more games for season: %d, checking again tomorrow...", season))
		if err := r.deps.Waiter.Sleep(ctx, r.settings.IdleInterval); err != nil {
			return err
		}
	}
}

// SeasonLoop tracks queued games one after another, refreshing the schedule
// after each. It returns nil once a refresh yields no games.
func (r *SeasonRunner) SeasonLoop(ctx context.Context, season int, queue *games.Queue) error {
	for {
		game, ok, err := r.NextGameWhenLive(ctx, queue)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		outcome, err := r.tracker.Track(ctx, game)
		if err != nil {
			return err
		}

		wait := r.settings.RecheckInterval
		if outcome == OutcomeEnded {
			wait = r.settings.GameEndCooldown
			r.deps.note(fmt.Sprintf("Game ended, refreshing games in %s", wait))
		} else {
			r.deps.note(fmt.Sprintf("Game not live (yet or have ended) refreshing games in %s", wait))
		}
		r.status.update(func(s *Status) { s.Phase = PhaseCooldown })
		logging.Info(r.deps.Logger, "refreshing schedule after game",
			slog.String(logging.FieldGameID, game.ID),
			slog.String(logging.FieldOutcome, outcome.String()),
			slog.Int64(logging.FieldWaitMS, wait.Milliseconds()),
		)
		if err := r.deps.Waiter.Sleep(ctx, wait); err != nil {
			return err
		}

		queue = r.FetchQueue(ctx, season)
		if err := ctx.Err(); err != nil {
			return err
		}
		if queue.Empty() {
			logging.Info(r.deps.Logger, "season schedule exhausted", slog.Int(logging.FieldSeason, season))
			return nil
		}
	}
}

// NextGameWhenLive pops the head of the queue and waits until its scheduled
// start. ok is false when the queue is empty.
func (r *SeasonRunner) NextGameWhenLive(ctx context.Context, queue *games.Queue) (games.Game, bool, error) {
	game, ok := queue.Pop()
	if !ok {
		return games.Game{}, false, nil
	}

	now := r.deps.Waiter.Now()
	delay := game.StartTime.Sub(now)
	r.status.update(func(s *Status) {
		s.Phase = PhaseWaiting
		s.Season = game.Season
		s.GameID = game.ID
		s.Opponent = game.Opponent(r.settings.Team)
		s.NextStart = game.StartTime
	})
	r.deps.note(fmt.Sprintf("Waiting for next game: %s - %s at %s",
		game.HomeTeamCode, game.AwayTeamCode, game.StartTime.Format(time.RFC3339)))

	if delay <= 0 {
		logging.Info(r.deps.Logger, "next game already started",
			slog.String(logging.FieldGameID, game.ID),
			slog.Time("start", game.StartTime),
		)
		return game, true, nil
	}

	logging.Info(r.deps.Logger, "waiting for next game",
		slog.String(logging.FieldGameID, game.ID),
		slog.Time("start", game.StartTime),
		slog.Int64(logging.FieldWaitMS, delay.Milliseconds()),
	)
	if err := r.deps.Waiter.Until(ctx, game.StartTime); err != nil {
		return games.Game{}, false, err
	}
	return game, true, nil
}

// FetchQueue loads the season schedule for the team. Failures yield an empty
// queue.
func (r *SeasonRunner) FetchQueue(ctx context.Context, season int) *games.Queue {
	list, err := r.deps.Provider.FetchSeasonGames(ctx, season, r.settings.Team)
	r.status.recordAttempt(r.deps.Waiter.Now(), err)
	if err != nil {
		if ctx.Err() == nil {
			logging.Warn(r.deps.Logger, "season schedule unavailable",
				slog.Int(logging.FieldSeason, season),
				"error", err,
			)
		}
		return games.NewQueue(nil)
	}
	r.deps.markCall()
	return games.NewQueue(list)
}
