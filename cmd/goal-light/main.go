// Command goal-light follows one SHL team through the season and runs the
// goal light commands whenever that team scores.
//
// Usage:
//
//	goal-light run
//	goal-light trigger --hold 5s
//	goal-light schedule --season 2024
//	goal-light season
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/goal-light/internal/config"
	"github.com/preston-bernstein/goal-light/internal/domain/games"
	"github.com/preston-bernstein/goal-light/internal/light"
	"github.com/preston-bernstein/goal-light/internal/logging"
	"github.com/preston-bernstein/goal-light/internal/server"
	"github.com/preston-bernstein/goal-light/internal/timeutil"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "goal-light",
		Short:         "Turn on a light when your SHL team scores",
		Version:       appVersion,
		SilenceUsage:  true,
	}
	root.SetOut(out)

	run := runCmd()
	root.AddCommand(run)
	root.AddCommand(triggerCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(seasonCmd())
	// Bare invocation starts the service.
	root.RunE = run.RunE
	return root
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "goal-light",
		Version: appVersion,
	})
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Poll the schedule, watch live games and serve the status page",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger(cfg)

			srv, err := server.New(cfg, logger)
			if err != nil {
				logging.Error(logger, "server setup failed", err)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv.Run(ctx, stop)
			return nil
		},
	}
}

func triggerCmd() *cobra.Command {
	var hold time.Duration
	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Run the light on/off commands once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger(cfg)
			if hold <= 0 {
				hold = cfg.Light.GoalTime
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			trigger := server.NewTrigger(cfg, printNotes{out: cmd.OutOrStdout()}, logger, nil, nil)
			trigger.Fire(ctx, hold, light.ReasonTest)
			trigger.Wait()
			return nil
		},
	}
	cmd.Flags().DurationVar(&hold, "hold", 0, "How long the light stays on (defaults to GOAL_TIME)")
	return cmd
}

func scheduleCmd() *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the remaining games of a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := newLogger(cfg)
			if season == 0 {
				season = games.CurrentSeason(time.Now())
			}

			provider := server.NewProvider(cfg, logger, nil)
			list, err := provider.FetchSeasonGames(cmd.Context(), season, cfg.Team)
			if err != nil {
				return fmt.Errorf("fetch season %d: %w", season, err)
			}
			return printQueue(cmd.OutOrStdout(), games.NewQueue(list), timeutil.LoadLocation(cfg.Timezone))
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season start year (defaults to the current season)")
	return cmd
}

func seasonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "season",
		Short: "Print the season active today",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), games.CurrentSeason(time.Now()))
			return err
		},
	}
}

func printQueue(out io.Writer, queue *games.Queue, loc *time.Location) error {
	if queue.Empty() {
		_, err := fmt.Fprintln(out, "No games left")
		return err
	}
	for _, g := range queue.Games() {
		if _, err := fmt.Fprintf(out, "%s  %s - %s  (%s)\n",
			g.StartTime.In(loc).Format(time.RFC3339), g.HomeTeamCode, g.AwayTeamCode, g.ID); err != nil {
			return err
		}
	}
	return nil
}

type printNotes struct {
	out io.Writer
}

func (p printNotes) Add(msg string) {
	fmt.Fprintln(p.out, msg)
}
