package engines

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds factory configuration.
type Config struct {
	ProbeTimeout time.Duration      // upper bound for the liveness probe
	Logger       logrus.FieldLogger // sink for engine lifecycle events
}

// DefaultConfig returns a factory config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ProbeTimeout: 5 * time.Second,
		Logger:       logrus.StandardLogger(),
	}
}

// Option configures the Factory.
type Option func(*Config)

// WithProbeTimeout bounds the liveness probe executed before a handle is
// returned. Non-positive values fall back to the default.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ProbeTimeout = timeout
		}
	}
}

// WithLogger sets the sink for engine_created / engine_creation_failed
// events.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
