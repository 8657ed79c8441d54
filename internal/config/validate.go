package config

import (
	"fmt"

	"github.com/a-simacov/synncore/internal/errors"
)

// validLogLevels are the accepted logging.level values.
//
//nolint:gochecknoglobals // Read-only lookup table
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validRemoteFailureModes are the accepted search.remote_failure_mode
// values.
//
//nolint:gochecknoglobals // Read-only lookup table
var validRemoteFailureModes = map[string]bool{
	"ignore": true,
	"fail":   true,
}

// Validate checks a Config for invalid values. It returns an error
// describing the first problem found, or nil when the configuration is
// usable.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if cfg.Buffer.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d",
			errors.ErrConfigInvalidBuffer, cfg.Buffer.Capacity)
	}

	if !validRemoteFailureModes[cfg.Search.RemoteFailureMode] {
		return fmt.Errorf("%w: remote_failure_mode must be one of [ignore fail], got %q",
			errors.ErrConfigInvalidSearch, cfg.Search.RemoteFailureMode)
	}
	if cfg.Search.RemoteTimeout <= 0 {
		return fmt.Errorf("%w: remote_timeout must be positive, got %s",
			errors.ErrConfigInvalidSearch, cfg.Search.RemoteTimeout)
	}

	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("%w: level must be one of [trace debug info warn error], got %q",
			errors.ErrConfigInvalidLogging, cfg.Logging.Level)
	}
	if cfg.Logging.File != "" {
		if cfg.Logging.MaxSizeMB <= 0 {
			return fmt.Errorf("%w: max_size_mb must be positive, got %d",
				errors.ErrConfigInvalidLogging, cfg.Logging.MaxSizeMB)
		}
		if cfg.Logging.MaxBackups < 0 {
			return fmt.Errorf("%w: max_backups must not be negative, got %d",
				errors.ErrConfigInvalidLogging, cfg.Logging.MaxBackups)
		}
		if cfg.Logging.MaxAgeDays < 0 {
			return fmt.Errorf("%w: max_age_days must not be negative, got %d",
				errors.ErrConfigInvalidLogging, cfg.Logging.MaxAgeDays)
		}
	}

	return nil
}
