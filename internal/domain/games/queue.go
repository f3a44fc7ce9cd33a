package games

import "sort"

// Queue holds the unplayed games of a season ordered by start time.
type Queue struct {
	games []Game
}

// NewQueue drops played games and sorts the rest ascending by start time.
// Games with equal start times keep their input order.
func NewQueue(all []Game) *Queue {
	pending := make([]Game, 0, len(all))
	for _, g := range all {
		if g.Played {
			continue
		}
		pending = append(pending, g)
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].StartTime.Before(pending[j].StartTime)
	})
	return &Queue{games: pending}
}

// Len returns the number of queued games.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.games)
}

// Empty reports whether no games remain.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}

// Peek returns the next game without removing it.
func (q *Queue) Peek() (Game, bool) {
	if q.Empty() {
		return Game{}, false
	}
	return q.games[0], true
}

// Pop removes and returns the next game.
func (q *Queue) Pop() (Game, bool) {
	g, ok := q.Peek()
	if !ok {
		return Game{}, false
	}
	q.games = q.games[1:]
	return g, true
}

// Games returns a copy of the queued games in order.
func (q *Queue) Games() []Game {
	if q == nil {
		return nil
	}
	out := make([]Game, len(q.games))
	copy(out, q.games)
	return out
}
