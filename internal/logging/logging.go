// Package logging builds the structured zerolog loggers used across
// synncore: console output with TTY detection, optional rotating file
// output, and level selection from configuration.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/a-simacov/synncore/internal/config"
	"github.com/a-simacov/synncore/internal/errors"
)

// New creates a zerolog.Logger from the logging configuration.
//
// Output format is determined by the terminal:
//   - TTY with colors enabled: Console writer with timestamps
//   - Non-TTY or NO_COLOR set: JSON output to stderr
//
// When cfg.File is set, logs are additionally written to the file with
// rotation. The returned closer releases the file writer; it is a
// no-op closer for console-only loggers.
func New(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	console := selectOutput()

	var (
		writer io.Writer = console
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		fileWriter, err := newFileWriter(cfg)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		writer = zerolog.MultiLevelWriter(console, fileWriter)
		closer = fileWriter
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

// NewWithWriter creates a logger writing to a custom writer. This is
// primarily intended for testing purposes.
func NewWithWriter(levelName string, w io.Writer) (zerolog.Logger, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// ParseLevel converts a configuration level name to a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	switch name {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, errors.Wrapf(errors.ErrConfigInvalidLogging, "unknown log level %q", name)
}

// selectOutput determines the appropriate output writer based on
// terminal capabilities and environment settings.
func selectOutput() io.Writer {
	// Use console writer for TTY without NO_COLOR
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}

	// Default to JSON output for non-TTY or when NO_COLOR is set
	return os.Stderr
}

// newFileWriter creates the rotating log file writer.
func newFileWriter(cfg config.LoggingConfig) (io.WriteCloser, error) {
	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errors.Wrap(err, "failed to create log directory")
		}
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}, nil
}

// nopCloser satisfies io.Closer for console-only loggers.
type nopCloser struct{}

// Close implements io.Closer.
func (nopCloser) Close() error { return nil }
