// Package config provides configuration management for synncore with
// layered precedence.
//
// Configuration sources are loaded in the following order (highest
// precedence first):
//  1. Environment variables (SYNNCORE_* prefix)
//  2. Project config (.synncore/config.yaml)
//  3. Global config (~/.synncore/config.yaml)
//  4. Built-in defaults
//
// Each higher level completely overrides the lower level for the same
// key.
//
// IMPORTANT: This package may import internal/constants and
// internal/errors, but MUST NOT import internal/domain or other
// internal packages.
package config

import "time"

// Config is the root configuration structure for synncore.
type Config struct {
	// Buffer contains settings for the cross-action quick-recall buffer.
	Buffer BufferConfig `yaml:"buffer" mapstructure:"buffer"`

	// Search contains settings for the action search engine.
	Search SearchConfig `yaml:"search" mapstructure:"search"`

	// Storage contains settings for local fact persistence.
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Logging contains settings for structured log output.
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// BufferConfig contains settings for the quick-recall buffer.
type BufferConfig struct {
	// Capacity is the maximum number of entries retained. Oldest
	// entries are evicted first.
	// Default: 20
	Capacity int `yaml:"capacity" mapstructure:"capacity"`
}

// SearchConfig contains settings for the action search engine.
type SearchConfig struct {
	// RemoteFailureMode controls how a remote lookup failure affects a
	// search that still has local results: "ignore" keeps the local
	// results, "fail" surfaces the failure as a search error.
	// Default: "ignore"
	RemoteFailureMode string `yaml:"remote_failure_mode" mapstructure:"remote_failure_mode"`

	// RemoteTimeout bounds each remote field lookup.
	// Default: 10 seconds
	RemoteTimeout time.Duration `yaml:"remote_timeout" mapstructure:"remote_timeout"`
}

// StorageConfig contains settings for local fact persistence.
type StorageConfig struct {
	// DBPath is the SQLite database file holding recorded fact actions.
	// Default: ".synncore/facts.db"
	DBPath string `yaml:"db_path" mapstructure:"db_path"`
}

// LoggingConfig contains settings for structured log output.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	// Default: "info"
	Level string `yaml:"level" mapstructure:"level"`

	// File is an optional log file path. When set, logs are written to
	// the file with rotation in addition to the console.
	File string `yaml:"file" mapstructure:"file"`

	// MaxSizeMB is the rotation threshold for the log file.
	// Default: 10
	MaxSizeMB int `yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated files to retain.
	// Default: 3
	MaxBackups int `yaml:"max_backups" mapstructure:"max_backups"`

	// MaxAgeDays is the retention period for rotated files.
	// Default: 28
	MaxAgeDays int `yaml:"max_age_days" mapstructure:"max_age_days"`
}
