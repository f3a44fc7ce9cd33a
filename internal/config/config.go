package config

import (
	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the service.
type Config struct {
	Team     string
	Locale   string
	Timezone string
	Host     string
	Port     string
	Provider string
	Poller   PollerConfig
	Light    LightConfig
	Shl      ShlConfig
	History  HistoryConfig
	Metrics  MetricsConfig
	Events   EventsConfig
	Log      LogConfig
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; variables
// already set in the environment win.
func Load() Config {
	_ = godotenv.Load(".env")
	return fromEnv()
}

func fromEnv() Config {
	return Config{
		Team:     envOrDefault(envTeam, defaultTeam),
		Locale:   envOrDefault(envLocale, defaultLocale),
		Timezone: envOrDefault(envTimezone, defaultTimezone),
		Host:     envOrDefault(envHost, defaultHost),
		Port:     envOrDefault(envPort, defaultPort),
		Provider: envOrDefault(envProvider, defaultProvider),
		Poller:   loadPoller(),
		Light:    loadLight(),
		Shl:      loadShl(),
		History:  loadHistory(),
		Metrics:  loadMetrics(),
		Events:   loadEvents(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, "info"),
			Format: envOrDefault(envLogFormat, "text"),
		},
	}
}

// Addr returns the status server bind address.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}
