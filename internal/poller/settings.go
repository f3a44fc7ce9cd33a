package poller

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/preston-bernstein/goal-light/internal/config"
)

const (
	defaultPollInterval    = 10 * time.Second
	defaultPauseInterval   = 15 * time.Minute
	defaultRecheckInterval = 15 * time.Second
	defaultGiveUpAfter     = 2 * time.Hour
	defaultGameEndCooldown = 15 * time.Minute
	defaultIdleInterval    = 24 * time.Hour
	defaultGoalHold        = 10 * time.Second
	defaultReadyHold       = time.Second
)

var (
	defaultPausePattern    = regexp.MustCompile(`(?i)^P\d+/Slut$|paus|intermission`)
	defaultFinishedPattern = regexp.MustCompile(`(?i)^(slut|final|ended|avslutad|game over)$`)
)

// Settings is the cadence and matching policy shared by the tracker and the
// season runner.
type Settings struct {
	Team string

	PollInterval    time.Duration
	PauseInterval   time.Duration
	RecheckInterval time.Duration
	GiveUpAfter     time.Duration
	GameEndCooldown time.Duration
	IdleInterval    time.Duration

	GoalHold  time.Duration
	ReadyHold time.Duration

	Pause    *regexp.Regexp
	Finished *regexp.Regexp
}

// SettingsFromConfig compiles the configured patterns and copies cadences.
func SettingsFromConfig(cfg config.Config) (Settings, error) {
	s := Settings{
		Team:            cfg.Team,
		PollInterval:    cfg.Poller.PollInterval,
		PauseInterval:   cfg.Poller.PauseInterval,
		RecheckInterval: cfg.Poller.RecheckInterval,
		GiveUpAfter:     cfg.Poller.GiveUpAfter,
		GameEndCooldown: cfg.Poller.GameEndCooldown,
		IdleInterval:    cfg.Poller.IdleInterval,
		GoalHold:        cfg.Light.GoalTime,
		ReadyHold:       cfg.Light.ReadyTime,
	}
	var err error
	if s.Pause, err = compile("pause", cfg.Poller.PausePattern); err != nil {
		return Settings{}, err
	}
	if s.Finished, err = compile("finished", cfg.Poller.FinishedPattern); err != nil {
		return Settings{}, err
	}
	return s.withDefaults(), nil
}

func compile(name, pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile %s pattern: %w", name, err)
	}
	return re, nil
}

func (s Settings) withDefaults() Settings {
	s.Team = strings.ToUpper(strings.TrimSpace(s.Team))
	if s.PollInterval <= 0 {
		s.PollInterval = defaultPollInterval
	}
	if s.PauseInterval <= 0 {
		s.PauseInterval = defaultPauseInterval
	}
	if s.RecheckInterval <= 0 {
		s.RecheckInterval = defaultRecheckInterval
	}
	if s.GiveUpAfter <= 0 {
		s.GiveUpAfter = defaultGiveUpAfter
	}
	if s.GameEndCooldown <= 0 {
		s.GameEndCooldown = defaultGameEndCooldown
	}
	if s.IdleInterval <= 0 {
		s.IdleInterval = defaultIdleInterval
	}
	if s.GoalHold <= 0 {
		s.GoalHold = defaultGoalHold
	}
	if s.ReadyHold <= 0 {
		s.ReadyHold = defaultReadyHold
	}
	if s.Pause == nil {
		s.Pause = defaultPausePattern
	}
	if s.Finished == nil {
		s.Finished = defaultFinishedPattern
	}
	return s
}
