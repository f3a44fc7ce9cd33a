package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("shl", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("shl", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("shl"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("shl"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}

	snap := rec.Snapshot("shl")
	if snap.LastCallLatency != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", snap.LastCallLatency)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("shl", 5*time.Second)
	rec.RecordRateLimit("shl", 0)

	if got := rec.RateLimitHits("shl"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.Snapshot("shl").LastRetryAfter; got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksGoalsAndTriggers(t *testing.T) {
	rec := NewRecorder()
	rec.RecordGoal("LIF")
	rec.RecordGoal("LIF")
	rec.RecordTrigger("goal", nil)
	rec.RecordTrigger("goal", errors.New("exit status 1"))
	rec.RecordTrigger("ready", nil)
	rec.RecordPollerCycle("live", time.Millisecond)

	if rec.Goals("LIF") != 2 {
		t.Fatalf("expected 2 goals, got %d", rec.Goals("LIF"))
	}
	if rec.TriggerRuns("goal") != 2 || rec.TriggerFailures("goal") != 1 {
		t.Fatalf("unexpected goal trigger counts runs=%d failures=%d", rec.TriggerRuns("goal"), rec.TriggerFailures("goal"))
	}
	if rec.TriggerRuns("ready") != 1 || rec.TriggerFailures("ready") != 0 {
		t.Fatalf("unexpected ready trigger counts")
	}
	if rec.PollerCycles("live") != 1 {
		t.Fatalf("expected one live cycle")
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("p", time.Millisecond, nil)
	rec.RecordRateLimit("p", time.Second)
	rec.RecordPollerCycle("live", time.Millisecond)
	rec.RecordGoal("LIF")
	rec.RecordTrigger("goal", nil)
	rec.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	if rec.ProviderCalls("p") != 0 || rec.Goals("LIF") != 0 {
		t.Fatalf("nil recorder must report zero")
	}
}

func TestRecorderIsConcurrencySafe(t *testing.T) {
	rec := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.RecordGoal("LIF")
			rec.RecordProviderAttempt("shl", time.Millisecond, nil)
		}()
	}
	wg.Wait()
	if rec.Goals("LIF") != 20 || rec.ProviderCalls("shl") != 20 {
		t.Fatalf("lost updates: goals=%d calls=%d", rec.Goals("LIF"), rec.ProviderCalls("shl"))
	}
}
