package shl

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/goal-light/internal/domain/games"
)

var localStartLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// mapGames converts the schedule payload, dropping games without a usable start time.
func mapGames(payload []gamePayload, loc *time.Location) []games.Game {
	out := make([]games.Game, 0, len(payload))
	for _, p := range payload {
		g, ok := mapGame(p, loc)
		if !ok {
			continue
		}
		out = append(out, g)
	}
	return out
}

func mapGame(p gamePayload, loc *time.Location) (games.Game, bool) {
	start, ok := parseStart(p.StartDateTime, loc)
	if !ok {
		return games.Game{}, false
	}
	return games.Game{
		ID:           strconv.Itoa(int(p.GameID)),
		UUID:         p.GameUUID,
		Season:       int(p.Season),
		GameType:     p.GameType,
		Round:        int(p.RoundNumber),
		StartTime:    start,
		HomeTeamCode: strings.TrimSpace(p.HomeTeamCode),
		AwayTeamCode: strings.TrimSpace(p.AwayTeamCode),
		HomeResult:   int(p.HomeTeamResult),
		AwayResult:   int(p.AwayTeamResult),
		Played:       p.Played,
	}, true
}

func mapReport(p gamePayload) *games.GameReport {
	return &games.GameReport{
		GameID: strconv.Itoa(int(p.GameID)),
		Played: p.Played,
		Live:   mapLive(p.Live),
	}
}

// mapLive returns nil for an absent, null, empty, or malformed live object.
func mapLive(raw json.RawMessage) *games.LiveReport {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
		return nil
	}
	var live livePayload
	if err := json.Unmarshal(raw, &live); err != nil {
		return nil
	}
	return &games.LiveReport{
		HomeTeamCode: live.HomeTeamCode,
		AwayTeamCode: live.AwayTeamCode,
		HomeScore:    int(live.HomeScore),
		AwayScore:    int(live.AwayScore),
		StatusString: strings.TrimSpace(live.StatusString),
		Period:       int(live.Period),
		GameTime:     live.GameTime,
		Round:        int(live.Round),
		Venue:        live.Venue,
		Attendance:   int(live.Attendance),
	}
}

// parseStart accepts RFC3339 timestamps and zone-less local timestamps, the
// latter interpreted in loc.
func parseStart(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range localStartLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
