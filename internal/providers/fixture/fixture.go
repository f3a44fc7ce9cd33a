package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/goal-light/internal/domain/games"
)

const (
	opponent        = "FIX"
	defaultLeadTime = time.Minute
	defaultStep     = 30 * time.Second
)

// Frame is one scripted live state.
type Frame struct {
	Status string
	Team   int
	Other  int
}

// DefaultScript plays a short game with goals on both sides and period breaks.
var DefaultScript = []Frame{
	{Status: "P1", Team: 0, Other: 0},
	{Status: "P1", Team: 1, Other: 0},
	{Status: "P1", Team: 1, Other: 1},
	{Status: "P1/Slut", Team: 1, Other: 1},
	{Status: "P2", Team: 2, Other: 1},
	{Status: "P2/Slut", Team: 2, Other: 1},
	{Status: "P3", Team: 3, Other: 1},
	{Status: "P3", Team: 3, Other: 2},
}

// Provider replays a scripted home game for the tracked team so the service
// can run locally without API credentials.
type Provider struct {
	clock  clockwork.Clock
	team   string
	start  time.Time
	step   time.Duration
	script []Frame
}

// New schedules the scripted game one minute after construction.
func New(team string, clk clockwork.Clock) *Provider {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Provider{
		clock:  clk,
		team:   team,
		start:  clk.Now().Add(defaultLeadTime),
		step:   defaultStep,
		script: DefaultScript,
	}
}

// WithStep changes how long each scripted frame lasts.
func (p *Provider) WithStep(step time.Duration) *Provider {
	if step > 0 {
		p.step = step
	}
	return p
}

// FetchSeasonGames returns the scripted game plus a follow-up fixture a day later.
func (p *Provider) FetchSeasonGames(ctx context.Context, season int, team string) ([]games.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if team == "" {
		team = p.team
	}
	scripted := games.Game{
		ID:           "fixture-1",
		Season:       season,
		GameType:     "regular",
		StartTime:    p.start,
		HomeTeamCode: team,
		AwayTeamCode: opponent,
		Played:       p.finished(),
	}
	if scripted.Played {
		last := p.script[len(p.script)-1]
		scripted.HomeResult, scripted.AwayResult = last.Team, last.Other
	}
	return []games.Game{
		scripted,
		{
			ID:           "fixture-2",
			Season:       season,
			GameType:     "regular",
			StartTime:    p.start.Add(24 * time.Hour),
			HomeTeamCode: opponent,
			AwayTeamCode: team,
		},
	}, nil
}

// FetchGameReport returns the scripted frame for the current time.
func (p *Provider) FetchGameReport(ctx context.Context, season int, gameID string) (*games.GameReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch gameID {
	case "fixture-1":
	case "fixture-2":
		return &games.GameReport{GameID: gameID}, nil
	default:
		return nil, fmt.Errorf("fixture: unknown game %q", gameID)
	}

	report := &games.GameReport{GameID: gameID}
	elapsed := p.clock.Now().Sub(p.start)
	if elapsed < 0 {
		return report, nil
	}
	idx := int(elapsed / p.step)
	if idx >= len(p.script) {
		report.Played = true
		return report, nil
	}
	frame := p.script[idx]
	report.Live = &games.LiveReport{
		HomeTeamCode: p.team,
		AwayTeamCode: opponent,
		HomeScore:    frame.Team,
		AwayScore:    frame.Other,
		StatusString: frame.Status,
		Period:       idx/2 + 1,
	}
	return report, nil
}

func (p *Provider) finished() bool {
	return p.clock.Now().Sub(p.start) >= time.Duration(len(p.script))*p.step
}
