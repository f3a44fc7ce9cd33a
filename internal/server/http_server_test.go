package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestNetHTTPServerShutdownStopsListenAndServe(t *testing.T) {
	mux := http.NewServeMux()
	s := netHTTPServer{srv: &http.Server{Addr: "127.0.0.1:0", Handler: mux}}
	if s.Addr() != "127.0.0.1:0" || s.Handler() != mux {
		t.Fatalf("expected accessors to expose the wrapped server")
	}

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()
	time.Sleep(50 * time.Millisecond)
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("expected ErrServerClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("ListenAndServe did not return after shutdown")
	}
}
