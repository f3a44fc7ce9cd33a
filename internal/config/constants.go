package config

import "time"

const (
	envTeam            = "TARGET_TEAM"
	envPollInterval    = "POLL_INTERVAL"
	envPauseInterval   = "PAUSE_INTERVAL"
	envRecheckInterval = "RECHECK_INTERVAL"
	envGiveUpAfter     = "GIVE_UP_AFTER"
	envGameEndCooldown = "GAME_END_COOLDOWN"
	envIdleInterval    = "IDLE_INTERVAL"
	envPausePattern    = "PAUSE_PATTERN"
	envFinishedPattern = "FINISHED_PATTERN"

	envGoalTime   = "GOAL_TIME"
	envReadyTime  = "READY_TIME"
	envGoalOnCmd  = "GOAL_ON_CMD"
	envGoalOffCmd = "GOAL_OFF_CMD"
	envExecCmd    = "EXEC_CMD"

	envLocale   = "LOCALE"
	envTimezone = "TIMEZONE"
	envHost     = "HOSTNAME"
	envPort     = "PORT"
	envProvider = "PROVIDER"

	envShlBaseURL  = "OPENAPI_SHL_BASE_URL"
	envShlClientID = "OPENAPI_SHL_CLIENT_ID"
	envShlSecret   = "OPENAPI_SHL_SECRET"
	envShlRate     = "API_RATE_PER_MINUTE"

	envHistorySize = "HISTORY_SIZE"
	envHistoryFile = "HISTORY_FILE"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envEventsRedisURL = "EVENTS_REDIS_URL"
	envEventsStream   = "EVENTS_STREAM"

	envLogLevel  = "LOG_LEVEL"
	envLogFormat = "LOG_FORMAT"

	defaultTeam            = "LIF"
	defaultPollInterval    = 10 * time.Second
	defaultPauseInterval   = 15 * time.Minute
	defaultRecheckInterval = 15 * time.Second
	defaultGiveUpAfter     = 2 * time.Hour
	defaultGameEndCooldown = 15 * time.Minute
	defaultIdleInterval    = 24 * time.Hour
	// Matches "P1/Slut" style end-of-period markers and explicit intermissions.
	defaultPausePattern    = `(?i)^P\d+/Slut$|paus|intermission`
	defaultFinishedPattern = `(?i)^(slut|final|ended|avslutad|game over)$`

	defaultGoalTime  = 10 * time.Second
	defaultReadyTime = time.Second

	defaultLocale   = "sv-SE"
	defaultTimezone = "Europe/Stockholm"
	defaultHost     = "0.0.0.0"
	defaultPort     = "1337"
	defaultProvider = "shl"

	defaultShlBaseURL = "https://openapi.shl.se"
	defaultShlRate    = 60

	defaultHistorySize = 200
	defaultHistoryFile = "storage/history.json"

	defaultMetricsPort  = "9090"
	defaultServiceName  = "goal-light"
	defaultEventsStream = "goal-light:events"
)
