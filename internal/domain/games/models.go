package games

import (
	"strings"
	"time"
)

// Side identifies which side of a game a team plays on.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SideNone Side = ""
)

// Game is one scheduled fixture for a season.
type Game struct {
	ID           string    `json:"id"`
	UUID         string    `json:"uuid,omitempty"`
	Season       int       `json:"season"`
	GameType     string    `json:"gameType,omitempty"`
	Round        int       `json:"round,omitempty"`
	StartTime    time.Time `json:"startTime"`
	HomeTeamCode string    `json:"homeTeamCode"`
	AwayTeamCode string    `json:"awayTeamCode"`
	HomeResult   int       `json:"homeResult"`
	AwayResult   int       `json:"awayResult"`
	Played       bool      `json:"played"`
}

// SideOf reports whether team plays home or away in the game.
func (g Game) SideOf(team string) Side {
	switch {
	case team == "":
		return SideNone
	case strings.EqualFold(g.HomeTeamCode, team):
		return SideHome
	case strings.EqualFold(g.AwayTeamCode, team):
		return SideAway
	default:
		return SideNone
	}
}

// Opponent returns the other team's code for the tracked team.
func (g Game) Opponent(team string) string {
	switch g.SideOf(team) {
	case SideHome:
		return g.AwayTeamCode
	case SideAway:
		return g.HomeTeamCode
	default:
		return ""
	}
}

// LiveReport is the in-progress part of a game report.
type LiveReport struct {
	HomeTeamCode string `json:"homeTeamCode,omitempty"`
	AwayTeamCode string `json:"awayTeamCode,omitempty"`
	HomeScore    int    `json:"homeScore"`
	AwayScore    int    `json:"awayScore"`
	StatusString string `json:"statusString"`
	Period       int    `json:"period"`
	GameTime     string `json:"gameTime,omitempty"`
	Round        int    `json:"round,omitempty"`
	Venue        string `json:"venue,omitempty"`
	Attendance   int    `json:"attendance,omitempty"`
}

// GameReport is a single-game snapshot. A nil Live means the game is not live.
type GameReport struct {
	GameID string      `json:"gameId"`
	Played bool        `json:"played"`
	Live   *LiveReport `json:"live,omitempty"`
}

// IsLive reports whether the report carries live data.
func (r *GameReport) IsLive() bool {
	return r != nil && r.Live != nil
}

// ScoreFor returns the live score of the given side, or 0 when not live.
func (r *GameReport) ScoreFor(side Side) int {
	if !r.IsLive() {
		return 0
	}
	switch side {
	case SideHome:
		return r.Live.HomeScore
	case SideAway:
		return r.Live.AwayScore
	default:
		return 0
	}
}

// Status returns the live status string, or "" when not live.
func (r *GameReport) Status() string {
	if !r.IsLive() {
		return ""
	}
	return r.Live.StatusString
}
