package games

import (
	"testing"
	"time"
)

func TestNewQueueFiltersPlayedAndSorts(t *testing.T) {
	base := time.Date(2024, 10, 1, 19, 0, 0, 0, time.UTC)
	q := NewQueue([]Game{
		{ID: "c", StartTime: base.Add(48 * time.Hour)},
		{ID: "played", StartTime: base.Add(-24 * time.Hour), Played: true},
		{ID: "a", StartTime: base},
		{ID: "b", StartTime: base.Add(24 * time.Hour)},
	})

	if q.Len() != 3 {
		t.Fatalf("expected 3 unplayed games, got %d", q.Len())
	}
	var order []string
	for !q.Empty() {
		g, ok := q.Pop()
		if !ok {
			t.Fatalf("pop failed with %d remaining", q.Len())
		}
		order = append(order, g.ID)
	}
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestQueuePeekDoesNotRemove(t *testing.T) {
	q := NewQueue([]Game{{ID: "a"}})
	if g, ok := q.Peek(); !ok || g.ID != "a" {
		t.Fatalf("expected peek a")
	}
	if q.Len() != 1 {
		t.Fatalf("peek must not remove")
	}
}

func TestEmptyAndNilQueue(t *testing.T) {
	var nilQueue *Queue
	if !nilQueue.Empty() || nilQueue.Len() != 0 || nilQueue.Games() != nil {
		t.Fatalf("nil queue must behave as empty")
	}
	if _, ok := nilQueue.Pop(); ok {
		t.Fatalf("pop on nil queue must fail")
	}
	q := NewQueue(nil)
	if !q.Empty() {
		t.Fatalf("expected empty queue")
	}
}

func TestGamesReturnsCopy(t *testing.T) {
	q := NewQueue([]Game{{ID: "a"}, {ID: "b"}})
	out := q.Games()
	out[0].ID = "mutated"
	if g, _ := q.Peek(); g.ID != "a" {
		t.Fatalf("queue mutated through copy")
	}
}
