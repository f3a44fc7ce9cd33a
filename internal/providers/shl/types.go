package shl

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type gamePayload struct {
	GameID         flexInt         `json:"game_id"`
	GameUUID       string          `json:"game_uuid"`
	Season         flexInt         `json:"season"`
	GameType       string          `json:"game_type"`
	RoundNumber    flexInt         `json:"round_number"`
	StartDateTime  string          `json:"start_date_time"`
	HomeTeamCode   string          `json:"home_team_code"`
	HomeTeamResult flexInt         `json:"home_team_result"`
	AwayTeamCode   string          `json:"away_team_code"`
	AwayTeamResult flexInt         `json:"away_team_result"`
	Played         bool            `json:"played"`
	Live           json.RawMessage `json:"live"`
}

type livePayload struct {
	GameTime     string  `json:"gametime"`
	TimePeriod   flexInt `json:"time_period"`
	GameID       flexInt `json:"game_id"`
	Period       flexInt `json:"period"`
	Round        flexInt `json:"round"`
	HomeTeamCode string  `json:"home_team_code"`
	HomeScore    flexInt `json:"home_score"`
	AwayTeamCode string  `json:"away_team_code"`
	AwayScore    flexInt `json:"away_score"`
	Venue        string  `json:"venue"`
	Attendance   flexInt `json:"attendance"`
	StatusString string  `json:"status_string"`
}

// flexInt decodes integers the API sends either as numbers or as strings.
// Unparseable values decode to zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	raw := string(bytes.Trim(data, `"`))
	if n, err := strconv.Atoi(raw); err == nil {
		*f = flexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*f = flexInt(int(v))
		return nil
	}
	*f = 0
	return nil
}
