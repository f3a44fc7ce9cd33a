package testutil

import (
	"time"

	"github.com/preston-bernstein/goal-light/internal/domain/games"
)

// SampleGame returns an unplayed game between home and away at start.
func SampleGame(id, home, away string, start time.Time) games.Game {
	return games.Game{
		ID:           id,
		UUID:         "uuid-" + id,
		Season:       games.CurrentSeason(start),
		GameType:     "regular",
		StartTime:    start,
		HomeTeamCode: home,
		AwayTeamCode: away,
	}
}

// LiveReport builds a live report for a game in progress.
func LiveReport(gameID string, home, away int, status string) *games.GameReport {
	return &games.GameReport{
		GameID: gameID,
		Live: &games.LiveReport{
			HomeScore:    home,
			AwayScore:    away,
			StatusString: status,
		},
	}
}

// IdleReport builds a report for a game that is not live yet.
func IdleReport(gameID string) *games.GameReport {
	return &games.GameReport{GameID: gameID}
}

// PlayedReport builds a report for a finished game.
func PlayedReport(gameID string, home, away int) *games.GameReport {
	r := LiveReport(gameID, home, away, "Slut")
	r.Played = true
	return r
}
