package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/goal-light/internal/clock"
	"github.com/preston-bernstein/goal-light/internal/config"
	"github.com/preston-bernstein/goal-light/internal/history"
	httpserver "github.com/preston-bernstein/goal-light/internal/http"
	"github.com/preston-bernstein/goal-light/internal/http/handlers"
	"github.com/preston-bernstein/goal-light/internal/light"
	"github.com/preston-bernstein/goal-light/internal/logging"
	"github.com/preston-bernstein/goal-light/internal/metrics"
	"github.com/preston-bernstein/goal-light/internal/poller"
	"github.com/preston-bernstein/goal-light/internal/providers"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	history       *history.Log
	trigger       *light.Trigger
	provider      providers.ScheduleProvider
	runner        Runner
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	closers       []func() error
}

// New constructs a server with the configured provider, light and poller.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(cfg, logger, nil, nil, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.ScheduleProvider, recorder *metrics.Recorder, clk clockwork.Clock) (*Server, error) {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder, clk)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}

	settings, err := poller.SettingsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("poller settings: %w", err)
	}

	journal := NewHistory(cfg, logger, clk)
	trigger := NewTrigger(cfg, journal, logger, recorder, clk)
	publisher, closePublisher := buildPublisher(cfg, logger)

	runner := poller.NewSeasonRunner(settings, poller.Deps{
		Provider:  provider,
		Waiter:    clock.New(clk),
		Trigger:   trigger,
		Journal:   journal,
		Publisher: publisher,
		Logger:    logger,
		Metrics:   recorder,
	})

	s := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		history:       journal,
		trigger:       trigger,
		provider:      provider,
		runner:        runner,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
	if closePublisher != nil {
		s.closers = append(s.closers, closePublisher)
	}
	s.httpServer = buildHTTPServer(cfg, settings.Team, journal, logger, recorder, runner.Status)
	return s, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, journal *history.Log, httpSrv httpServer, runner Runner) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		history:    journal,
		httpServer: httpSrv,
		runner:     runner,
	}
}

func buildHTTPServer(cfg config.Config, team string, journal handlers.Journal, logger *slog.Logger, recorder *metrics.Recorder, statusFn func() poller.Status) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	handler := handlers.NewHandler(team, journal, logger, statusFn)
	router := httpserver.NewRouter(handler, logger, recorder)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the status server and the poller, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.note("Restarting app...")

	done := make(chan struct{})
	go func() {
		defer close(done)
		err := s.runner.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error(s.logger, "poller stopped unexpectedly", err)
			if stop != nil {
				stop()
			}
		}
	}()

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown(done)
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown stops servers, waits for the poller and any running light
// sequence, then flushes history. runnerDone may be nil.
func (s *Server) gracefulShutdown(runnerDone <-chan struct{}) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if runnerDone != nil {
		if err := waitFor(shutdownCtx, runnerDone); err != nil {
			logging.Error(s.logger, "poller did not stop in time", err)
		}
	}

	if s.trigger != nil {
		lightDone := make(chan struct{})
		go func() {
			s.trigger.Wait()
			close(lightDone)
		}()
		if err := waitFor(shutdownCtx, lightDone); err != nil {
			logging.Warn(s.logger, "light sequence still running at shutdown", "error", err)
		}
	}

	if c, ok := s.provider.(providers.Closer); ok {
		c.Close()
	}
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			logging.Warn(s.logger, "close failed", "error", err)
		}
	}

	if s.history != nil {
		if err := s.history.Flush(); err != nil {
			logging.Warn(s.logger, "history flush failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func waitFor(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) note(msg string) {
	if s.history != nil {
		s.history.Add(msg)
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Status reports the poller status.
func (s *Server) Status() poller.Status {
	return s.runner.Status()
}
