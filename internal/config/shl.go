package config

// ShlConfig controls how we talk to the SHL open API.
type ShlConfig struct {
	BaseURL       string
	ClientID      string
	Secret        string
	RatePerMinute int
}

func loadShl() ShlConfig {
	return ShlConfig{
		BaseURL:       envOrDefault(envShlBaseURL, defaultShlBaseURL),
		ClientID:      envOrDefault(envShlClientID, ""),
		Secret:        envOrDefault(envShlSecret, ""),
		RatePerMinute: intEnvOrDefault(envShlRate, defaultShlRate),
	}
}
