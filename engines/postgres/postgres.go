// Package postgres implements the PostgreSQL engine strategy on top of
// pgx connection pools.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AttawatThan/etlcore/credentials"
	"github.com/AttawatThan/etlcore/engines"
)

// TypeName is the backend type this package registers under.
const TypeName = "postgres"

// Hook option keys recognized by CreateHandle.
const (
	OptSSLMode        = "sslmode"
	OptSearchPath     = "search_path"
	OptConnectTimeout = "connect_timeout"
)

// Engine option keys recognized by the handle.
const (
	OptMaxConns          = "max_conns"
	OptMinConns          = "min_conns"
	OptMaxConnLifetime   = "max_conn_lifetime"
	OptMaxConnIdleTime   = "max_conn_idle_time"
	OptHealthCheckPeriod = "health_check_period"
)

var hookKeys = []string{OptSSLMode, OptSearchPath, OptConnectTimeout}

var engineKeys = []string{OptMaxConns, OptMinConns, OptMaxConnLifetime, OptMaxConnIdleTime, OptHealthCheckPeriod}

// Strategy builds PostgreSQL handles from resolved credentials.
type Strategy struct {
	resolver credentials.Resolver
}

// New creates the strategy. It matches engines.Constructor.
func New(resolver credentials.Resolver) engines.Strategy {
	return &Strategy{resolver: resolver}
}

// Register adds the postgres strategy to f under TypeName.
func Register(f *engines.Factory) {
	f.RegisterStrategy(TypeName, New)
}

// CreateHandle resolves id and prepares a pool configuration. The pool
// itself is created in the Engine step so sizing options bind at pool
// creation time.
func (s *Strategy) CreateHandle(ctx context.Context, id string, opts engines.HookOptions) (engines.RawHandle, error) {
	if unknown := engines.UnknownOptionKeys(opts, hookKeys...); len(unknown) > 0 {
		return nil, NewUnknownOptionsError("hook", unknown)
	}

	params, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	sslMode, ok, err := engines.OptionString(opts, OptSSLMode)
	if err != nil {
		return nil, NewInvalidOptionError(err)
	}
	if !ok {
		if v, has := params.Options[OptSSLMode]; has {
			sslMode = v
		} else {
			sslMode = "prefer"
		}
	}

	port := params.Port
	if port == 0 {
		port = 5432
	}

	var dsn strings.Builder
	fmt.Fprintf(&dsn, "host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quoteValue(params.Host), port, quoteValue(params.User),
		quoteValue(params.Password), quoteValue(params.Database), quoteValue(sslMode))

	if timeout, ok, err := engines.OptionDuration(opts, OptConnectTimeout); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		fmt.Fprintf(&dsn, " connect_timeout=%d", ceilSeconds(timeout))
	}

	cfg, err := pgxpool.ParseConfig(dsn.String())
	if err != nil {
		return nil, NewInvalidConnStringError(err)
	}

	if searchPath, ok, err := engines.OptionString(opts, OptSearchPath); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		cfg.ConnConfig.RuntimeParams["search_path"] = searchPath
	}

	return &Handle{cfg: cfg}, nil
}

// quoteValue single-quotes a keyword/value DSN value so empty strings
// and embedded spaces or quotes survive parsing as a single value.
func quoteValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// ceilSeconds rounds d up to whole seconds. connect_timeout has second
// granularity and the driver treats zero as no timeout.
func ceilSeconds(d time.Duration) int64 {
	secs := int64(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}

// Handle holds a parsed pool configuration awaiting the Engine step.
type Handle struct {
	cfg *pgxpool.Config
}

// Config exposes the parsed pool configuration.
func (h *Handle) Config() *pgxpool.Config { return h.cfg }

// Engine applies pool options and creates the connection pool.
func (h *Handle) Engine(opts engines.EngineOptions) (engines.Engine, error) {
	if unknown := engines.UnknownOptionKeys(opts, engineKeys...); len(unknown) > 0 {
		return nil, NewUnknownOptionsError("engine", unknown)
	}

	if v, ok, err := engines.OptionInt(opts, OptMaxConns); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		h.cfg.MaxConns = int32(v)
	}
	if v, ok, err := engines.OptionInt(opts, OptMinConns); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		h.cfg.MinConns = int32(v)
	}
	if v, ok, err := engines.OptionDuration(opts, OptMaxConnLifetime); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		h.cfg.MaxConnLifetime = v
	}
	if v, ok, err := engines.OptionDuration(opts, OptMaxConnIdleTime); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		h.cfg.MaxConnIdleTime = v
	}
	if v, ok, err := engines.OptionDuration(opts, OptHealthCheckPeriod); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		h.cfg.HealthCheckPeriod = v
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), h.cfg)
	if err != nil {
		return nil, NewPoolCreationFailedError(err)
	}

	return &Engine{pool: pool}, nil
}

// Close is a no-op; the handle holds configuration only.
func (h *Handle) Close() error { return nil }

// Engine wraps a live pgx connection pool.
type Engine struct {
	pool *pgxpool.Pool
}

// Pool exposes the native connection pool.
func (e *Engine) Pool() *pgxpool.Pool { return e.pool }

// Ping executes a round trip against the server.
func (e *Engine) Ping(ctx context.Context) error {
	if err := e.pool.Ping(ctx); err != nil {
		return NewPingFailedError(err)
	}
	return nil
}

// Close releases the pool.
func (e *Engine) Close() error {
	e.pool.Close()
	return nil
}
