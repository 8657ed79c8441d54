// Package cli provides the command-line interface for synncore.
package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/a-simacov/synncore/internal/config"
	"github.com/a-simacov/synncore/internal/logging"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger and globalConfig store the initialized logger and
// configuration for use by subcommands. They are set during
// PersistentPreRunE and should be accessed via GetLogger/GetConfig.
// Access is protected by globalMu for thread safety.
var (
	globalLogger zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalConfig *config.Config //nolint:gochecknoglobals // CLI config requires global access
	globalMu     sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger and globalConfig
)

// GetLogger returns the initialized logger for use by subcommands.
//
// IMPORTANT: This function MUST only be called after the root command's
// PersistentPreRunE has executed. Calling it before initialization will
// return a zero-value logger that discards all log output.
func GetLogger() zerolog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// GetConfig returns the loaded configuration for use by subcommands.
// Falls back to built-in defaults when called before initialization.
func GetConfig() *config.Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// newRootCmd creates and returns the root command for the synncore CLI.
// This function-based approach avoids package-level globals, making the
// code more testable.
func newRootCmd(info BuildInfo) *cobra.Command {
	var verbose, quiet bool

	cmd := &cobra.Command{
		Use:   "synncore",
		Short: "synncore - warehouse task execution core",
		Long: `synncore executes warehouse tasks locally: it walks planned actions
through their template steps, validates scanned values against the
plan, records fact actions and resolves scan values to actions.`,
		Version: formatVersion(info),
		// Run displays help when the root command is invoked without
		// subcommands. This ensures PersistentPreRunE is called for
		// flag validation.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}

			if verbose {
				cfg.Logging.Level = "debug"
			} else if quiet {
				cfg.Logging.Level = "warn"
			}

			logger, _, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}

			globalMu.Lock()
			globalLogger = logger
			globalConfig = cfg
			globalMu.Unlock()

			return nil
		},
		// SilenceUsage prevents printing usage on error
		// (we handle our own error messages)
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log warnings and errors only")

	// Add subcommands
	AddRunCommand(cmd)
	AddSearchCommand(cmd)
	AddLintCommand(cmd)
	AddFactsCommand(cmd)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build
// info.
func Execute(ctx context.Context, info BuildInfo) error {
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(info)
	return cmd.ExecuteContext(ctx)
}
