package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/goal-light/internal/history"
	"github.com/preston-bernstein/goal-light/internal/poller"
	"github.com/preston-bernstein/goal-light/internal/testutil"
)

type stubJournal struct {
	entries  []history.Entry
	lastCall time.Time
}

func (s stubJournal) Entries() []history.Entry { return s.entries }

func (s stubJournal) Lines() []string {
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, s.FormatTime(e.At)+": "+e.Message)
	}
	return out
}

func (s stubJournal) LastCall() time.Time { return s.lastCall }

func (s stubJournal) FormatTime(t time.Time) string { return t.UTC().Format("15:04:05") }

var at = time.Date(2025, 1, 15, 19, 0, 0, 0, time.UTC)

func sampleJournal() stubJournal {
	return stubJournal{
		entries: []history.Entry{
			{At: at, Message: "Restarting app..."},
			{At: at.Add(time.Minute), Message: "New goal (1 > 0) found"},
		},
		lastCall: at.Add(2 * time.Minute),
	}
}

func TestIndexRendersPlainText(t *testing.T) {
	h := NewHandler("LIF", sampleJournal(), nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Index), http.MethodGet, "/", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	want := "Running for LIF\nLast call: 19:02:00\n19:00:00: Restarting app...\n19:01:00: New goal (1 > 0) found"
	if got := rr.Body.String(); got != want {
		t.Fatalf("unexpected body:\n%s\nwant:\n%s", got, want)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text/plain, got %s", ct)
	}
}

func TestIndexWithoutCalls(t *testing.T) {
	h := NewHandler("LIF", stubJournal{}, nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.Index), http.MethodGet, "/", nil)
	if !strings.Contains(rr.Body.String(), "Last call: never") {
		t.Fatalf("expected never, got %q", rr.Body.String())
	}

	h = NewHandler("LIF", nil, nil, nil)
	rr = testutil.Serve(http.HandlerFunc(h.Index), http.MethodGet, "/", nil)
	if rr.Body.String() != "Running for LIF\nLast call: never\n" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestStatusJSON(t *testing.T) {
	status := poller.Status{Phase: poller.PhaseTracking, GameID: "g1", Score: 2, LastSuccess: at}
	h := NewHandler("LIF", sampleJournal(), nil, func() poller.Status { return status })

	rr := testutil.Serve(http.HandlerFunc(h.Status), http.MethodGet, "/status", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp StatusResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Team != "LIF" || len(resp.History) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.History[1].Stamp != "19:01:00" || resp.History[1].Message != "New goal (1 > 0) found" {
		t.Fatalf("unexpected history line %+v", resp.History[1])
	}
	if resp.LastCall == nil || !resp.LastCall.Equal(at.Add(2*time.Minute)) {
		t.Fatalf("unexpected last call %v", resp.LastCall)
	}
	if resp.Poller == nil || resp.Poller.GameID != "g1" || resp.Poller.Phase != poller.PhaseTracking {
		t.Fatalf("unexpected poller status %+v", resp.Poller)
	}
}

func TestStatusJSONEmpty(t *testing.T) {
	h := NewHandler("LIF", nil, nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.Status), http.MethodGet, "/status", nil)

	var resp StatusResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.LastCall != nil || resp.Poller != nil || resp.History == nil {
		t.Fatalf("unexpected empty response %+v", resp)
	}
}

func TestHealth(t *testing.T) {
	h := NewHandler("LIF", nil, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := NewHandler("LIF", nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReady(t *testing.T) {
	cases := []struct {
		name     string
		statusFn func() poller.Status
		want     int
		errMsg   string
	}{
		{name: "no poller", want: http.StatusOK},
		{name: "recent success", statusFn: func() poller.Status { return poller.Status{LastSuccess: at} }, want: http.StatusOK},
		{name: "never reached api", statusFn: func() poller.Status { return poller.Status{} }, want: http.StatusServiceUnavailable, errMsg: "not ready"},
		{
			name: "failing",
			statusFn: func() poller.Status {
				return poller.Status{LastSuccess: at, ConsecutiveFailures: 5, LastError: "upstream down"}
			},
			want:   http.StatusServiceUnavailable,
			errMsg: "upstream down",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler("LIF", nil, nil, tc.statusFn)
			rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
			testutil.AssertStatus(t, rr, tc.want)
			if tc.errMsg != "" {
				var resp map[string]string
				testutil.DecodeJSON(t, rr, &resp)
				if resp["error"] != tc.errMsg {
					t.Fatalf("expected error %q, got %q", tc.errMsg, resp["error"])
				}
			}
		})
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := NewHandler("LIF", nil, nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.NotFound), http.MethodGet, "/nope", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = testutil.Serve(http.HandlerFunc(h.MethodNotAllowed), http.MethodPost, "/status", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}
