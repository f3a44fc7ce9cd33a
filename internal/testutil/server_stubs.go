package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// ErrListen is what FakeHTTPServer returns from ListenAndServe when FailListen is set.
var ErrListen = errors.New("listen failure")

// FakeHTTPServer stands in for the status and metrics servers.
//
// ListenAndServe returns http.ErrServerClosed unless FailListen is set.
// When Unblock is non-nil, Shutdown waits for it or for ctx.
type FakeHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	FailListen  bool
	ShutdownErr error
	Unblock     chan struct{}

	mu        sync.Mutex
	listens   int
	shutdowns int
}

func (s *FakeHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listens++
	s.mu.Unlock()
	if s.FailListen {
		return ErrListen
	}
	return http.ErrServerClosed
}

func (s *FakeHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdowns++
	s.mu.Unlock()
	if s.Unblock != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Unblock:
		}
	}
	return s.ShutdownErr
}

func (s *FakeHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *FakeHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}

// ListenCalls reports how often ListenAndServe ran.
func (s *FakeHTTPServer) ListenCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listens
}

// ShutdownCalls reports how often Shutdown ran.
func (s *FakeHTTPServer) ShutdownCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdowns
}
