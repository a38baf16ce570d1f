package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Concurrency: 5,
		Reporters:   []string{"console"},
		SnapshotDir: ".",
	}
}
