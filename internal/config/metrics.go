package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

// EventsConfig enables the optional Redis stream publisher.
type EventsConfig struct {
	RedisURL string
	Stream   string
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
}

func loadEvents() EventsConfig {
	return EventsConfig{
		RedisURL: envOrDefault(envEventsRedisURL, ""),
		Stream:   envOrDefault(envEventsStream, defaultEventsStream),
	}
}
