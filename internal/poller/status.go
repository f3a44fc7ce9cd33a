package poller

import (
	"sync"
	"time"
)

// Phase names what the orchestrator is doing right now.
type Phase string

const (
	PhaseStarting Phase = "starting"
	PhaseWaiting  Phase = "waiting"
	PhaseTracking Phase = "tracking"
	PhaseCooldown Phase = "cooldown"
	PhaseIdle     Phase = "idle"
)

// Status describes the recent health and position of the polling loop.
type Status struct {
	Phase               Phase     `json:"phase"`
	Season              int       `json:"season,omitempty"`
	GameID              string    `json:"gameId,omitempty"`
	Opponent            string    `json:"opponent,omitempty"`
	NextStart           time.Time `json:"nextStart,omitempty"`
	Score               int       `json:"score"`
	GameStatus          string    `json:"gameStatus,omitempty"`
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt,omitempty"`
	LastSuccess         time.Time `json:"lastSuccess,omitempty"`
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

type statusBoard struct {
	mu     sync.RWMutex
	status Status
}

func newStatusBoard() *statusBoard {
	return &statusBoard{status: Status{Phase: PhaseStarting}}
}

func (b *statusBoard) update(fn func(*Status)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.status)
}

func (b *statusBoard) recordAttempt(at time.Time, err error) {
	b.update(func(s *Status) {
		s.LastAttempt = at
		if err != nil {
			s.ConsecutiveFailures++
			s.LastError = err.Error()
			return
		}
		s.ConsecutiveFailures = 0
		s.LastError = ""
		s.LastSuccess = at
	})
}

func (b *statusBoard) snapshot() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}
