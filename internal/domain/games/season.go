package games

import "time"

// seasonStartMonth is the first month that belongs to a new season.
const seasonStartMonth = time.July

// CurrentSeason returns the season active at now. Seasons span two calendar
// years and are named by the year they start; before July the active season
// started the previous year.
func CurrentSeason(now time.Time) int {
	if now.Month() < seasonStartMonth {
		return now.Year() - 1
	}
	return now.Year()
}
