package config

import "time"

// PollerConfig holds the cadence of the season orchestrator and game tracker.
type PollerConfig struct {
	PollInterval    time.Duration
	PauseInterval   time.Duration
	RecheckInterval time.Duration
	GiveUpAfter     time.Duration
	GameEndCooldown time.Duration
	IdleInterval    time.Duration
	PausePattern    string
	FinishedPattern string
}

func loadPoller() PollerConfig {
	return PollerConfig{
		PollInterval:    durationEnvOrDefault(envPollInterval, defaultPollInterval),
		PauseInterval:   durationEnvOrDefault(envPauseInterval, defaultPauseInterval),
		RecheckInterval: durationEnvOrDefault(envRecheckInterval, defaultRecheckInterval),
		GiveUpAfter:     durationEnvOrDefault(envGiveUpAfter, defaultGiveUpAfter),
		GameEndCooldown: durationEnvOrDefault(envGameEndCooldown, defaultGameEndCooldown),
		IdleInterval:    durationEnvOrDefault(envIdleInterval, defaultIdleInterval),
		PausePattern:    envOrDefault(envPausePattern, defaultPausePattern),
		FinishedPattern: envOrDefault(envFinishedPattern, defaultFinishedPattern),
	}
}
