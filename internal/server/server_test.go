package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/goal-light/internal/config"
	"github.com/preston-bernstein/goal-light/internal/domain/games"
	"github.com/preston-bernstein/goal-light/internal/history"
	"github.com/preston-bernstein/goal-light/internal/poller"
	"github.com/preston-bernstein/goal-light/internal/providers/fixture"
	"github.com/preston-bernstein/goal-light/internal/providers/shl"
	"github.com/preston-bernstein/goal-light/internal/testutil"
)

type stubRunner struct {
	mu     sync.Mutex
	calls  int
	err    error
	status poller.Status
}

func (r *stubRunner) Run(ctx context.Context) error {
	r.mu.Lock()
	r.calls++
	err := r.err
	r.mu.Unlock()
	if err != nil {
		return err
	}
	<-ctx.Done()
	return ctx.Err()
}

func (r *stubRunner) Status() poller.Status {
	return r.status
}

func (r *stubRunner) runCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Team:     "LIF",
		Locale:   "sv-SE",
		Timezone: "UTC",
		Host:     "127.0.0.1",
		Port:     "0",
		Provider: "fixture",
		History:  config.HistoryConfig{Size: 10, File: filepath.Join(t.TempDir(), "history.json")},
		Metrics:  config.MetricsConfig{Enabled: false},
	}
}

func TestNewConstructsServer(t *testing.T) {
	srv, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
	if srv.Status().Phase != poller.PhaseStarting {
		t.Fatalf("expected starting phase, got %s", srv.Status().Phase)
	}
}

func TestNewRejectsBadPattern(t *testing.T) {
	cfg := testConfig(t)
	cfg.Poller.PausePattern = "("
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected settings error")
	}
}

func TestServerServesStatusPage(t *testing.T) {
	cfg := testConfig(t)
	srv, err := newServerWithMetrics(cfg, nil, testutil.EmptyScheduleProvider(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	srv.history.Add("hello")

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	body := rr.Body.String()
	if !strings.HasPrefix(body, "Running for LIF\nLast call: never\n") || !strings.HasSuffix(body, ": hello") {
		t.Fatalf("unexpected status page %q", body)
	}

	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestSelectProvider(t *testing.T) {
	clk := clockwork.NewFakeClock()
	if _, ok := selectProvider(config.Config{Provider: "fixture"}, nil, clk).(*fixture.Provider); !ok {
		t.Fatalf("expected fixture provider")
	}
	if _, ok := selectProvider(config.Config{Provider: "unknown"}, nil, clk).(*fixture.Provider); !ok {
		t.Fatalf("expected fixture fallback")
	}
	logger, buf := testutil.NewBufferLogger()
	if _, ok := selectProvider(config.Config{Provider: "shl"}, logger, clk).(*shl.Client); !ok {
		t.Fatalf("expected shl provider")
	}
	if !strings.Contains(buf.String(), "unauthenticated") {
		t.Fatalf("expected warning for missing credentials")
	}
}

func TestRunStartsRunnerAndShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	journal := history.New(history.Config{Size: 10})
	runner := &stubRunner{}
	httpSrv := &testutil.FakeHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, journal, httpSrv, runner)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	deadline := time.After(500 * time.Millisecond)
	for runner.runCalls() == 0 {
		select {
		case <-deadline:
			t.Fatal("runner never started")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if httpSrv.ShutdownCalls() != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls())
	}
	lines := journal.Lines()
	if len(lines) != 1 || !strings.HasSuffix(lines[0], "Restarting app...") {
		t.Fatalf("expected restart note, got %v", lines)
	}
}

func TestRunStopsWhenRunnerFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := &stubRunner{err: errors.New("boom")}
	srv := newServerWithDeps(config.Config{}, nil, nil, &testutil.FakeHTTPServer{}, runner)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected runner failure to stop the server")
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	blocking := &testutil.FakeHTTPServer{Unblock: make(chan struct{})}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, nil, blocking, &stubRunner{})

	start := time.Now()
	srv.gracefulShutdown(make(chan struct{}))
	elapsed := time.Since(start)

	if blocking.ShutdownCalls() != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls())
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownFlushesHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	journal := history.New(history.Config{Size: 10, Store: history.NewFileStore(path)})
	journal.MarkCall()
	srv := newServerWithDeps(config.Config{}, nil, journal, &testutil.FakeHTTPServer{}, &stubRunner{})

	srv.gracefulShutdown(nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected flushed history file: %v", err)
	}
	if !strings.Contains(string(data), "lastCall") {
		t.Fatalf("expected last call persisted, got %s", data)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, nil, &testutil.FakeHTTPServer{FailListen: true}, &stubRunner{})

	stopCalled := make(chan struct{})
	var once sync.Once
	srv.startServer(func() { once.Do(func() { close(stopCalled) }) })

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}
}

func TestServerWiresPollerToProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.Shl.RatePerMinute = 6000
	start := time.Date(2025, 1, 15, 19, 0, 0, 0, time.UTC)
	provider := &testutil.ScriptedProvider{
		Schedules: []testutil.ScheduleStep{{Games: []games.Game{testutil.SampleGame("g1", "LIF", "FBK", start.Add(-time.Hour))}}},
		Reports:   []testutil.ReportStep{{Report: testutil.PlayedReport("g1", 2, 0)}},
	}
	clk := clockwork.NewFakeClockAt(start)
	srv, err := newServerWithMetrics(cfg, nil, provider, nil, clk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.runner.Run(ctx) }()

	// Two timers end up blocked: the ready pulse hold and the post-game cooldown.
	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	if err := clk.BlockUntilContext(waitCtx, 2); err != nil {
		t.Fatalf("runner never reached a wait: %v", err)
	}
	if provider.ReportCalls() != 1 {
		t.Fatalf("expected one report fetch, got %d", provider.ReportCalls())
	}
	st := srv.Status()
	if st.Phase != poller.PhaseCooldown || st.LastSuccess.IsZero() {
		t.Fatalf("unexpected status %+v", st)
	}
	if srv.history.LastCall().IsZero() {
		t.Fatalf("expected last call marked")
	}
}
