package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/preston-bernstein/goal-light/internal/domain/games"
)

// ErrScripted is returned by scripted steps that fail without a specific error.
var ErrScripted = errors.New("scripted failure")

// ReportStep is one scripted FetchGameReport response.
type ReportStep struct {
	Report *games.GameReport
	Err    error
}

// ScheduleStep is one scripted FetchSeasonGames response.
type ScheduleStep struct {
	Games []games.Game
	Err   error
}

// ScriptedProvider replays schedule and report responses in order. The last
// step of each script repeats once the script is exhausted.
type ScriptedProvider struct {
	Schedules []ScheduleStep
	Reports   []ReportStep

	mu            sync.Mutex
	scheduleCalls int
	reportCalls   int
	seasons       []int
	teams         []string
}

func (p *ScriptedProvider) FetchSeasonGames(ctx context.Context, season int, team string) ([]games.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seasons = append(p.seasons, season)
	p.teams = append(p.teams, team)
	idx := p.scheduleCalls
	p.scheduleCalls++
	if len(p.Schedules) == 0 {
		return nil, nil
	}
	if idx >= len(p.Schedules) {
		idx = len(p.Schedules) - 1
	}
	step := p.Schedules[idx]
	return append([]games.Game(nil), step.Games...), step.Err
}

func (p *ScriptedProvider) FetchGameReport(ctx context.Context, season int, gameID string) (*games.GameReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	idx := p.reportCalls
	p.reportCalls++
	if len(p.Reports) == 0 {
		return nil, ErrScripted
	}
	if idx >= len(p.Reports) {
		idx = len(p.Reports) - 1
	}
	step := p.Reports[idx]
	return step.Report, step.Err
}

// ScheduleCalls reports how many schedule fetches happened.
func (p *ScriptedProvider) ScheduleCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scheduleCalls
}

// ReportCalls reports how many report fetches happened.
func (p *ScriptedProvider) ReportCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reportCalls
}

// Seasons lists the season argument of every schedule fetch.
func (p *ScriptedProvider) Seasons() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.seasons...)
}

// Teams lists the team argument of every schedule fetch.
func (p *ScriptedProvider) Teams() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.teams...)
}

// EmptyScheduleProvider returns a provider with no games and no live data.
func EmptyScheduleProvider() *ScriptedProvider {
	return &ScriptedProvider{
		Schedules: []ScheduleStep{{Games: nil}},
		Reports:   []ReportStep{{Report: nil}},
	}
}
