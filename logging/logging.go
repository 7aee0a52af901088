// Package logging configures the structured logger used across the
// module.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/AttawatThan/etlcore/fsutil"
)

// Config holds logger configuration.
type Config struct {
	Level   string // logrus level name; invalid values fall back to info
	File    string // optional log file; parent directory is created
	Console bool   // write to stdout
}

// DefaultConfig returns a console-only config at info level.
func DefaultConfig() Config {
	return Config{Level: "info", Console: true}
}

// Option configures Setup.
type Option func(*Config)

// WithLevel sets the log level by name.
func WithLevel(level string) Option {
	return func(c *Config) { c.Level = level }
}

// WithFile adds a log file output.
func WithFile(path string) Option {
	return func(c *Config) { c.File = path }
}

// WithConsole toggles stdout output.
func WithConsole(enabled bool) Option {
	return func(c *Config) { c.Console = enabled }
}

// Setup builds a configured logrus logger. The file output, when set, is
// opened in append mode after its directory is created.
func Setup(opts ...Option) (*logrus.Logger, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, os.Stdout)
	}
	if cfg.File != "" {
		if _, err := fsutil.EnsureDir(filepath.Dir(cfg.File)); err != nil {
			return nil, fmt.Errorf("prepare log directory: %w", err)
		}
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %q: %w", cfg.File, err)
		}
		writers = append(writers, file)
	}

	switch len(writers) {
	case 0:
		log.SetOutput(io.Discard)
	case 1:
		log.SetOutput(writers[0])
	default:
		log.SetOutput(io.MultiWriter(writers...))
	}

	return log, nil
}
