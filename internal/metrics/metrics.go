package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type goalStats struct {
	pollerCycles    map[string]int
	goals           map[string]int
	triggerRuns     map[string]int
	triggerFailures map[string]int
}

// Recorder captures in-memory counters about provider calls, poll cycles,
// goals, and light triggers, and mirrors them to otel instruments when set up.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	goal  goalStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		goal: goalStats{
			pollerCycles:    make(map[string]int),
			goals:           make(map[string]int),
			triggerRuns:     make(map[string]int),
			triggerFailures: make(map[string]int),
		},
		otel: otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider)
	}
}

// RecordPollerCycle counts one game tracker cycle labelled with the state it observed.
func (r *Recorder) RecordPollerCycle(state string, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.goal.pollerCycles[state]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPoller(state, duration)
	}
}

// RecordGoal counts a detected goal for the team.
func (r *Recorder) RecordGoal(team string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.goal.goals[team]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordGoal(team)
	}
}

// RecordTrigger counts a light trigger run and whether its commands failed.
func (r *Recorder) RecordTrigger(reason string, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.goal.triggerRuns[reason]++
	if err != nil {
		r.goal.triggerFailures[reason]++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTrigger(reason, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// PollerCycles returns the cycles recorded for a state.
func (r *Recorder) PollerCycles(state string) int {
	return r.count(func(g goalStats) map[string]int { return g.pollerCycles }, state)
}

// Goals returns the goals recorded for a team.
func (r *Recorder) Goals(team string) int {
	return r.count(func(g goalStats) map[string]int { return g.goals }, team)
}

// TriggerRuns returns the trigger runs recorded for a reason.
func (r *Recorder) TriggerRuns(reason string) int {
	return r.count(func(g goalStats) map[string]int { return g.triggerRuns }, reason)
}

// TriggerFailures returns the failed trigger runs recorded for a reason.
func (r *Recorder) TriggerFailures(reason string) int {
	return r.count(func(g goalStats) map[string]int { return g.triggerFailures }, reason)
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) count(pick func(goalStats) map[string]int, key string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return pick(r.goal)[key]
}
