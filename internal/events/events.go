// Package events publishes goal and game lifecycle events to an optional
// Redis stream so other services can react to them.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	TypeGoal      = "goal"
	TypeGameEnded = "game_ended"
	TypeGaveUp    = "gave_up"
	TypeReady     = "ready"
)

// Event is one lifecycle notification.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Team      string    `json:"team"`
	Season    int       `json:"season,omitempty"`
	GameID    string    `json:"game_id,omitempty"`
	Status    string    `json:"status,omitempty"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	At        time.Time `json:"at"`
}

// New stamps an event with a fresh ID.
func New(eventType, team string, at time.Time) Event {
	return Event{
		ID:   uuid.NewString(),
		Type: eventType,
		Team: team,
		At:   at.UTC(),
	}
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
