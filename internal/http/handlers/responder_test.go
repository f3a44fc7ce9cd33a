package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/goal-light/internal/testutil"
)

func TestWriteErrorEchoesRequestHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusServiceUnavailable, "not ready", nil)
	}), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var body errorBody
	testutil.DecodeJSON(t, rr, &body)
	if body.Error != "not ready" || body.RequestID != "abc123" {
		t.Fatalf("unexpected error body %+v", body)
	}
}

func TestWriteErrorOmitsMissingRequestID(t *testing.T) {
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not found", nil)
	}), http.MethodGet, "/nope", nil)

	if strings.Contains(rr.Body.String(), "requestId") {
		t.Fatalf("expected requestId omitted, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/status", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(buf.String(), "failed to encode response") {
		t.Fatalf("expected encode failure logged, got %q", buf.String())
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	if got := loggerFromContext(nil, logger); got != logger {
		t.Fatalf("expected fallback logger for nil request")
	}
	if got := loggerFromContext(nil, nil); got == nil {
		t.Fatalf("expected default logger when no fallback")
	}
}
