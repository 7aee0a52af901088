// Package etlcore wires the pluggable database engine factory together
// with its built-in backend strategies. Most callers construct one
// factory at startup:
//
//	resolver, err := credentials.LoadFile("connections.yaml")
//	...
//	factory, err := etlcore.New(resolver)
//	...
//	engine, err := factory.GetEngine(ctx, "postgres", "warehouse", nil, nil)
package etlcore

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AttawatThan/etlcore/credentials"
	"github.com/AttawatThan/etlcore/engines"
	"github.com/AttawatThan/etlcore/engines/mssql"
	"github.com/AttawatThan/etlcore/engines/mysql"
	"github.com/AttawatThan/etlcore/engines/postgres"
	"github.com/AttawatThan/etlcore/engines/redis"
)

type config struct {
	engineOpts []engines.Option
	builtins   bool
}

// Option is a functional option for configuring the factory.
type Option func(*config)

// WithLogger sets the sink for engine lifecycle events.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		c.engineOpts = append(c.engineOpts, engines.WithLogger(logger))
	}
}

// WithProbeTimeout bounds the liveness probe run before a handle is
// returned.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.engineOpts = append(c.engineOpts, engines.WithProbeTimeout(timeout))
	}
}

// WithoutBuiltins creates the factory with an empty registry. Callers
// then register only the strategies they need.
func WithoutBuiltins() Option {
	return func(c *config) {
		c.builtins = false
	}
}

// New creates an engine factory with the built-in strategies (postgres,
// mysql, mssql, redis) registered.
func New(resolver credentials.Resolver, opts ...Option) (*engines.Factory, error) {
	cfg := config{builtins: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory, err := engines.New(resolver, cfg.engineOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.builtins {
		postgres.Register(factory)
		mysql.Register(factory)
		mssql.Register(factory)
		redis.Register(factory)
	}

	return factory, nil
}
