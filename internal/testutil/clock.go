package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustParseRFC3339 parses an RFC3339 timestamp or panics; intended for tests.
func MustParseRFC3339(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}

// InstantWaiter satisfies clock.Waiter by advancing a fake clock instead of
// blocking. Every requested wait is recorded. When Limit is positive the
// waiter cancels via Cancel once that many waits have been requested.
type InstantWaiter struct {
	Clock  *clockwork.FakeClock
	Limit  int
	Cancel context.CancelFunc

	mu    sync.Mutex
	waits []time.Duration
}

// NewInstantWaiter starts a fake clock at start.
func NewInstantWaiter(start time.Time) *InstantWaiter {
	return &InstantWaiter{Clock: clockwork.NewFakeClockAt(start)}
}

func (w *InstantWaiter) Now() time.Time {
	return w.Clock.Now()
}

func (w *InstantWaiter) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d < 0 {
		d = 0
	}
	w.mu.Lock()
	w.waits = append(w.waits, d)
	n := len(w.waits)
	w.mu.Unlock()

	w.Clock.Advance(d)
	if w.Limit > 0 && n >= w.Limit && w.Cancel != nil {
		w.Cancel()
	}
	return ctx.Err()
}

func (w *InstantWaiter) Until(ctx context.Context, t time.Time) error {
	return w.Sleep(ctx, t.Sub(w.Clock.Now()))
}

// Waits returns a copy of the recorded waits.
func (w *InstantWaiter) Waits() []time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]time.Duration(nil), w.waits...)
}
