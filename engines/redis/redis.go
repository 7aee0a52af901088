// Package redis implements a Redis engine strategy on top of go-redis.
// The credential Database field selects the logical database index.
package redis

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/AttawatThan/etlcore/credentials"
	"github.com/AttawatThan/etlcore/engines"
)

// TypeName is the backend type this package registers under.
const TypeName = "redis"

// Hook option keys recognized by CreateHandle.
const (
	OptClientName  = "client_name"
	OptDialTimeout = "dial_timeout"
)

// Engine option keys recognized by the handle.
const (
	OptPoolSize     = "pool_size"
	OptMinIdleConns = "min_idle_conns"
	OptReadTimeout  = "read_timeout"
	OptWriteTimeout = "write_timeout"
)

var hookKeys = []string{OptClientName, OptDialTimeout}

var engineKeys = []string{OptPoolSize, OptMinIdleConns, OptReadTimeout, OptWriteTimeout}

// Strategy builds Redis handles from resolved credentials.
type Strategy struct {
	resolver credentials.Resolver
}

// New creates the strategy. It matches engines.Constructor.
func New(resolver credentials.Resolver) engines.Strategy {
	return &Strategy{resolver: resolver}
}

// Register adds the redis strategy to f under TypeName.
func Register(f *engines.Factory) {
	f.RegisterStrategy(TypeName, New)
}

// CreateHandle resolves id and prepares client options. The client is
// created in the Engine step so pool options bind at creation time.
func (s *Strategy) CreateHandle(ctx context.Context, id string, opts engines.HookOptions) (engines.RawHandle, error) {
	if unknown := engines.UnknownOptionKeys(opts, hookKeys...); len(unknown) > 0 {
		return nil, NewUnknownOptionsError("hook", unknown)
	}

	params, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	port := params.Port
	if port == 0 {
		port = 6379
	}

	db := 0
	if params.Database != "" {
		db, err = strconv.Atoi(params.Database)
		if err != nil {
			return nil, NewInvalidDatabaseError(params.Database, err)
		}
	}

	clientOpts := &redis.Options{
		Addr:     net.JoinHostPort(params.Host, fmt.Sprintf("%d", port)),
		Username: params.User,
		Password: params.Password,
		DB:       db,
	}

	if name, ok, err := engines.OptionString(opts, OptClientName); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		clientOpts.ClientName = name
	}
	if timeout, ok, err := engines.OptionDuration(opts, OptDialTimeout); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		clientOpts.DialTimeout = timeout
	}

	return &Handle{opts: clientOpts}, nil
}

// Handle holds prepared client options awaiting the Engine step.
type Handle struct {
	opts *redis.Options
}

// Options exposes the prepared client options.
func (h *Handle) Options() *redis.Options { return h.opts }

// Engine applies pool options and creates the client.
func (h *Handle) Engine(opts engines.EngineOptions) (engines.Engine, error) {
	if unknown := engines.UnknownOptionKeys(opts, engineKeys...); len(unknown) > 0 {
		return nil, NewUnknownOptionsError("engine", unknown)
	}

	if v, ok, err := engines.OptionInt(opts, OptPoolSize); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		h.opts.PoolSize = v
	}
	if v, ok, err := engines.OptionInt(opts, OptMinIdleConns); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		h.opts.MinIdleConns = v
	}
	if v, ok, err := engines.OptionDuration(opts, OptReadTimeout); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		h.opts.ReadTimeout = v
	}
	if v, ok, err := engines.OptionDuration(opts, OptWriteTimeout); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		h.opts.WriteTimeout = v
	}

	return &Engine{client: redis.NewClient(h.opts)}, nil
}

// Close is a no-op; the handle holds options only.
func (h *Handle) Close() error { return nil }

// Engine wraps a live Redis client.
type Engine struct {
	client *redis.Client
}

// Client exposes the native client.
func (e *Engine) Client() *redis.Client { return e.client }

// Ping executes a PING round trip against the server.
func (e *Engine) Ping(ctx context.Context) error {
	if err := e.client.Ping(ctx).Err(); err != nil {
		return NewPingFailedError(err)
	}
	return nil
}

// Close releases the client.
func (e *Engine) Close() error { return e.client.Close() }
