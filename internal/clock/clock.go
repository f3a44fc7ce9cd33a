// Package clock schedules waits over a clockwork.Clock so that arbitrarily
// long delays never exceed a single timer's range.
package clock

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// MaxSingleWait is the longest delay handed to a single timer (2^31-1 ms).
const MaxSingleWait = time.Duration(1<<31-1) * time.Millisecond

// Waiter suspends the caller for a duration or until a deadline.
type Waiter interface {
	Sleep(ctx context.Context, d time.Duration) error
	Until(ctx context.Context, t time.Time) error
	Now() time.Time
}

// ChunkedWaiter waits in chunks no longer than Max.
type ChunkedWaiter struct {
	clock clockwork.Clock
	max   time.Duration
}

// New returns a waiter backed by clk; a nil clock uses the real clock.
func New(clk clockwork.Clock) *ChunkedWaiter {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &ChunkedWaiter{clock: clk, max: MaxSingleWait}
}

// WithMax overrides the chunk size.
func (w *ChunkedWaiter) WithMax(max time.Duration) *ChunkedWaiter {
	if max > 0 {
		w.max = max
	}
	return w
}

// Now returns the current time of the underlying clock.
func (w *ChunkedWaiter) Now() time.Time {
	return w.clock.Now()
}

// Sleep waits d, split into chunks of at most the configured maximum.
// Non-positive durations return immediately.
func (w *ChunkedWaiter) Sleep(ctx context.Context, d time.Duration) error {
	for _, chunk := range Chunks(d, w.max) {
		if err := w.wait(ctx, chunk); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// Until waits until t, re-evaluating the remaining delay after every chunk.
func (w *ChunkedWaiter) Until(ctx context.Context, t time.Time) error {
	for {
		remaining := t.Sub(w.clock.Now())
		if remaining <= 0 {
			return ctx.Err()
		}
		if remaining > w.max {
			remaining = w.max
		}
		if err := w.wait(ctx, remaining); err != nil {
			return err
		}
	}
}

func (w *ChunkedWaiter) wait(ctx context.Context, d time.Duration) error {
	timer := w.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}

// Chunks splits d into pieces no longer than max whose sum equals d.
func Chunks(d, max time.Duration) []time.Duration {
	if d <= 0 {
		return nil
	}
	if max <= 0 {
		max = MaxSingleWait
	}
	chunks := make([]time.Duration, 0, int(d/max)+1)
	for d > max {
		chunks = append(chunks, max)
		d -= max
	}
	return append(chunks, d)
}
