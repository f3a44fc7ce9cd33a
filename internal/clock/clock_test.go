package clock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestMaxSingleWaitIsInt32Millis(t *testing.T) {
	if MaxSingleWait.Milliseconds() != 2147483647 {
		t.Fatalf("unexpected max single wait %d", MaxSingleWait.Milliseconds())
	}
}

func TestChunksSumToDuration(t *testing.T) {
	cases := []time.Duration{
		time.Millisecond,
		MaxSingleWait,
		MaxSingleWait + time.Millisecond,
		3*MaxSingleWait + 42*time.Second,
		90 * 24 * time.Hour,
	}
	for _, d := range cases {
		chunks := Chunks(d, MaxSingleWait)
		var sum time.Duration
		for _, c := range chunks {
			if c <= 0 || c > MaxSingleWait {
				t.Fatalf("chunk %s out of range for %s", c, d)
			}
			sum += c
		}
		if sum != d {
			t.Fatalf("chunks for %s sum to %s", d, sum)
		}
		if d > MaxSingleWait && len(chunks) < 2 {
			t.Fatalf("expected multiple chunks for %s", d)
		}
	}
}

func TestChunksNonPositive(t *testing.T) {
	if got := Chunks(0, time.Second); got != nil {
		t.Fatalf("expected no chunks for zero, got %v", got)
	}
	if got := Chunks(-time.Minute, time.Second); got != nil {
		t.Fatalf("expected no chunks for negative, got %v", got)
	}
}

func TestSleepCompletesAfterAdvance(t *testing.T) {
	fc := clockwork.NewFakeClock()
	w := New(fc).WithMax(time.Hour)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- w.Sleep(ctx, 150*time.Minute) }()

	for i := 0; i < 3; i++ {
		blockCtx, cancel := context.WithTimeout(ctx, time.Second)
		if err := fc.BlockUntilContext(blockCtx, 1); err != nil {
			cancel()
			t.Fatalf("waiter never blocked on chunk %d: %v", i, err)
		}
		cancel()
		fc.Advance(time.Hour)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("sleep did not return")
	}
}

func TestUntilReturnsImmediatelyForPastTime(t *testing.T) {
	fc := clockwork.NewFakeClock()
	w := New(fc)
	if err := w.Until(context.Background(), fc.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUntilWaitsInChunks(t *testing.T) {
	fc := clockwork.NewFakeClock()
	w := New(fc).WithMax(10 * time.Minute)
	target := fc.Now().Add(25 * time.Minute)

	done := make(chan error, 1)
	go func() { done <- w.Until(context.Background(), target) }()

	for _, step := range []time.Duration{10 * time.Minute, 10 * time.Minute, 5 * time.Minute} {
		blockCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := fc.BlockUntilContext(blockCtx, 1); err != nil {
			cancel()
			t.Fatalf("waiter never blocked: %v", err)
		}
		cancel()
		fc.Advance(step)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("until did not return")
	}
	if fc.Now().Before(target) {
		t.Fatalf("returned before target")
	}
}

func TestSleepHonorsCancellation(t *testing.T) {
	fc := clockwork.NewFakeClock()
	w := New(fc)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Sleep(ctx, time.Hour) }()

	blockCtx, stop := context.WithTimeout(context.Background(), time.Second)
	defer stop()
	if err := fc.BlockUntilContext(blockCtx, 1); err != nil {
		t.Fatalf("waiter never blocked: %v", err)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("sleep ignored cancellation")
	}
}

func TestNewDefaultsToRealClock(t *testing.T) {
	w := New(nil)
	if w.Now().IsZero() {
		t.Fatalf("expected real clock time")
	}
	if err := w.Sleep(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error for zero sleep: %v", err)
	}
}
