package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/goal-light/internal/domain/games"
	"github.com/preston-bernstein/goal-light/internal/events"
	"github.com/preston-bernstein/goal-light/internal/logging"
)

// Outcome is how tracking of a single game finished.
type Outcome int

const (
	// OutcomeEnded means the game was reported played or finished.
	OutcomeEnded Outcome = iota + 1
	// OutcomeGaveUp means the game never reported live data in time.
	OutcomeGaveUp
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEnded:
		return "ended"
	case OutcomeGaveUp:
		return "gave_up"
	default:
		return "unknown"
	}
}

const (
	stateLive    = "live"
	statePaused  = "paused"
	stateNotLive = "not_live"
	stateEnded   = "ended"
	stateGaveUp  = "gave_up"
)

// GameTracker polls one game's report until it ends or is abandoned.
type GameTracker struct {
	settings Settings
	deps     Deps
	status   *statusBoard
}

// NewGameTracker builds a tracker for the configured team.
func NewGameTracker(settings Settings, deps Deps) *GameTracker {
	return newGameTracker(settings.withDefaults(), deps.withDefaults(), newStatusBoard())
}

func newGameTracker(settings Settings, deps Deps, status *statusBoard) *GameTracker {
	return &GameTracker{settings: settings, deps: deps, status: status}
}

// Status returns the tracker's view of the current game.
func (t *GameTracker) Status() Status {
	return t.status.snapshot()
}

// trackState is the per-game memory of one Track call.
type trackState struct {
	prevScore  int
	prevPaused bool
	lastLive   time.Time
}

// Track polls the game until it ends or gives up. The only error returned is
// the context's, once it is cancelled.
func (t *GameTracker) Track(ctx context.Context, game games.Game) (Outcome, error) {
	logger := t.deps.Logger
	if logger != nil {
		logger = logger.With(
			slog.String(logging.FieldGameID, game.ID),
			slog.String(logging.FieldTeam, t.settings.Team),
		)
	}
	side := game.SideOf(t.settings.Team)
	if side == games.SideNone {
		logging.Warn(logger, "tracked team not in game",
			slog.String("home", game.HomeTeamCode),
			slog.String("away", game.AwayTeamCode),
		)
	}

	t.status.update(func(s *Status) {
		s.Phase = PhaseTracking
		s.Season = game.Season
		s.GameID = game.ID
		s.Opponent = game.Opponent(t.settings.Team)
		s.NextStart = game.StartTime
		s.Score = 0
		s.GameStatus = ""
	})
	t.deps.note("Game should be live now, start checking for goals...")
	logging.Info(logger, "tracking game", slog.Time("start", game.StartTime))

	st := trackState{lastLive: game.StartTime}
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		started := t.deps.Waiter.Now()
		report := t.fetch(ctx, game, logger)
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		if t.finished(report) {
			t.deps.Metrics.RecordPollerCycle(stateEnded, t.since(started))
			t.ended(ctx, game, side, report, logger)
			return OutcomeEnded, nil
		}

		var (
			wait  time.Duration
			state string
		)
		if report.IsLive() {
			wait, state = t.live(ctx, game, side, report, &st, logger)
		} else {
			elapsed := t.deps.Waiter.Now().Sub(st.lastLive)
			if elapsed > t.settings.GiveUpAfter {
				t.deps.Metrics.RecordPollerCycle(stateGaveUp, t.since(started))
				t.gaveUp(ctx, game, elapsed, logger)
				return OutcomeGaveUp, nil
			}
			wait, state = t.settings.RecheckInterval, stateNotLive
		}

		t.deps.Metrics.RecordPollerCycle(state, t.since(started))
		logging.Debug(logger, "poll cycle", slog.String("state", state), slog.Int64(logging.FieldWaitMS, wait.Milliseconds()))
		if err := t.deps.Waiter.Sleep(ctx, wait); err != nil {
			return 0, err
		}
	}
}

func (t *GameTracker) fetch(ctx context.Context, game games.Game, logger *slog.Logger) *games.GameReport {
	report, err := t.deps.Provider.FetchGameReport(ctx, game.Season, game.ID)
	t.status.recordAttempt(t.deps.Waiter.Now(), err)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logging.Warn(logger, "game report unavailable, treating as not live", "error", err)
		}
		return nil
	}
	t.deps.markCall()
	return report
}

func (t *GameTracker) finished(report *games.GameReport) bool {
	if report == nil {
		return false
	}
	if report.Played {
		return true
	}
	return report.IsLive() && t.settings.Finished.MatchString(report.Status())
}

// live handles one cycle with live data and returns the next wait.
func (t *GameTracker) live(ctx context.Context, game games.Game, side games.Side, report *games.GameReport, st *trackState, logger *slog.Logger) (time.Duration, string) {
	st.lastLive = t.deps.Waiter.Now()
	score := report.ScoreFor(side)
	status := report.Status()

	switch {
	case score > st.prevScore:
		t.goal(ctx, game, report, score, st.prevScore, logger)
		st.prevScore = score
	case score < st.prevScore:
		// A disallowed goal lowers the baseline so the next real goal still fires.
		logging.Info(logger, "score decreased", slog.Int(logging.FieldScore, score), slog.Int("previous", st.prevScore))
		st.prevScore = score
	}

	paused := t.settings.Pause.MatchString(status)
	pauseStarted := paused && !st.prevPaused
	st.prevPaused = paused

	t.status.update(func(s *Status) {
		s.Score = score
		s.GameStatus = status
	})

	if pauseStarted {
		logging.Info(logger, "intermission detected",
			slog.String(logging.FieldGameStatus, status),
			slog.Int64(logging.FieldWaitMS, t.settings.PauseInterval.Milliseconds()),
		)
		t.deps.note(fmt.Sprintf("Pause (%s), checking again in %s", status, t.settings.PauseInterval))
		return t.settings.PauseInterval, statePaused
	}
	return t.settings.PollInterval, stateLive
}

func (t *GameTracker) goal(ctx context.Context, game games.Game, report *games.GameReport, score, previous int, logger *slog.Logger) {
	logging.Info(logger, "goal detected",
		slog.Int(logging.FieldScore, score),
		slog.Int("previous", previous),
		slog.String(logging.FieldGameStatus, report.Status()),
	)
	t.deps.note(fmt.Sprintf("New goal (%d > %d) found", score, previous))
	t.deps.Metrics.RecordGoal(t.settings.Team)
	t.deps.fire(ctx, t.settings.GoalHold, reasonGoal)
	t.deps.publish(ctx, t.event(events.TypeGoal, game, report))
}

func (t *GameTracker) ended(ctx context.Context, game games.Game, side games.Side, report *games.GameReport, logger *slog.Logger) {
	home, away := report.ScoreFor(games.SideHome), report.ScoreFor(games.SideAway)
	logging.Info(logger, "game ended",
		slog.String(logging.FieldOutcome, OutcomeEnded.String()),
		slog.Int(logging.FieldScore, report.ScoreFor(side)),
		slog.Int("home_score", home),
		slog.Int("away_score", away),
	)
	t.deps.note(fmt.Sprintf("Game ended: %s %d - %d %s", game.HomeTeamCode, home, away, game.AwayTeamCode))
	t.deps.publish(ctx, t.event(events.TypeGameEnded, game, report))
}

func (t *GameTracker) gaveUp(ctx context.Context, game games.Game, elapsed time.Duration, logger *slog.Logger) {
	logging.Warn(logger, "game never went live, giving up",
		slog.String(logging.FieldOutcome, OutcomeGaveUp.String()),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	t.deps.note(fmt.Sprintf("Game %s - %s not live after %s, giving up", game.HomeTeamCode, game.AwayTeamCode, elapsed.Truncate(time.Minute)))
	t.deps.publish(ctx, t.event(events.TypeGaveUp, game, nil))
}

func (t *GameTracker) event(eventType string, game games.Game, report *games.GameReport) events.Event {
	ev := events.New(eventType, t.settings.Team, t.deps.Waiter.Now())
	ev.Season = game.Season
	ev.GameID = game.ID
	if report != nil {
		ev.Status = report.Status()
		ev.HomeScore = report.ScoreFor(games.SideHome)
		ev.AwayScore = report.ScoreFor(games.SideAway)
	}
	return ev
}

func (t *GameTracker) since(started time.Time) time.Duration {
	return t.deps.Waiter.Now().Sub(started)
}
