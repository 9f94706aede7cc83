// Package logging builds the zap loggers used across the application.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects where and how log entries are written.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string

	// File receives log entries when set. Parent directories are created.
	File string

	// JSON writes the file in JSON instead of console format.
	JSON bool

	// Stderr also writes console output to stderr. Leave it off while a
	// full-screen terminal UI owns the tty.
	Stderr bool
}

// ParseLevel parses a level name. An empty name means info; "warning" is
// accepted for warn.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return zapcore.InfoLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// New creates a logger from cfg. The returned cleanup function flushes the
// logger and closes the log file. With no outputs configured it returns a
// no-op logger.
func New(cfg Config) (*zap.Logger, func(), error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var (
		cores   []zapcore.Core
		closeFn = func() {}
	)

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		sink, closeSink, err := zap.Open(cfg.File)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		closeFn = closeSink

		enc := zapcore.NewConsoleEncoder(encoderCfg)
		if cfg.JSON {
			enc = zapcore.NewJSONEncoder(encoderCfg)
		}
		cores = append(cores, zapcore.NewCore(enc, sink, level))
	}

	if cfg.Stderr {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.Lock(os.Stderr),
			level,
		))
	}

	if len(cores) == 0 {
		return zap.NewNop(), closeFn, nil
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.Fields(zap.Int("pid", os.Getpid())))
	cleanup := func() {
		_ = logger.Sync()
		closeFn()
	}
	return logger, cleanup, nil
}
