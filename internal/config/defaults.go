package config

import (
	"time"

	"github.com/a-simacov/synncore/internal/constants"
)

// DefaultConfig returns a Config populated with built-in defaults.
// These values match the viper defaults set in load.go.
func DefaultConfig() *Config {
	return &Config{
		Buffer: BufferConfig{
			Capacity: constants.BufferCapacity,
		},
		Search: SearchConfig{
			RemoteFailureMode: "ignore",
			RemoteTimeout:     10 * time.Second,
		},
		Storage: StorageConfig{
			DBPath: ".synncore/facts.db",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}
