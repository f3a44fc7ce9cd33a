package poller

import (
	"context"
	"sync"
	"time"

	"github.com/preston-bernstein/goal-light/internal/events"
)

type fire struct {
	hold   time.Duration
	reason string
}

type fakeTrigger struct {
	mu    sync.Mutex
	fires []fire
}

func (f *fakeTrigger) Fire(ctx context.Context, hold time.Duration, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fires = append(f.fires, fire{hold: hold, reason: reason})
}

func (f *fakeTrigger) count(reason string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, fr := range f.fires {
		if fr.reason == reason {
			n++
		}
	}
	return n
}

type fakeJournal struct {
	mu    sync.Mutex
	lines []string
	calls int
}

func (j *fakeJournal) Add(msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lines = append(j.lines, msg)
}

func (j *fakeJournal) MarkCall() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls++
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(ctx context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

func testSettings() Settings {
	return Settings{Team: "LIF"}.withDefaults()
}
