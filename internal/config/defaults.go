package config

// DefaultConfig returns the built-in defaults, overridable by config
// files and environment variables.
func DefaultConfig() *Config {
	return &Config{
		Environment: string(EnvDevelopment),
		ListenAddr:  ":8080",
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     ".tracking/logs",
			DBPath:  ".tracking/changelog.db",
		},
		Tracker: TrackerConfig{
			BaseURL:        "https://api.clickup.com/api/v2",
			TimeoutSeconds: 10,
		},
	}
}
