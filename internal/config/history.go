package config

// HistoryConfig controls the status history ring buffer and its file.
type HistoryConfig struct {
	Size int
	File string
}

func loadHistory() HistoryConfig {
	return HistoryConfig{
		Size: intEnvOrDefault(envHistorySize, defaultHistorySize),
		File: envOrDefault(envHistoryFile, defaultHistoryFile),
	}
}
