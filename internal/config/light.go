package config

import "time"

// LightConfig controls the goal light commands.
type LightConfig struct {
	GoalTime  time.Duration
	ReadyTime time.Duration
	OnCmd     string
	OffCmd    string
	Exec      bool
}

func loadLight() LightConfig {
	return LightConfig{
		GoalTime:  millisOrDuration(envGoalTime, defaultGoalTime),
		ReadyTime: millisOrDuration(envReadyTime, defaultReadyTime),
		OnCmd:     envOrDefault(envGoalOnCmd, ""),
		OffCmd:    envOrDefault(envGoalOffCmd, ""),
		Exec:      boolEnvOrDefault(envExecCmd, false),
	}
}
