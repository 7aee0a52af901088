// Package mssql implements the SQL Server engine strategy on top of
// database/sql and the go-mssqldb driver.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/AttawatThan/etlcore/credentials"
	"github.com/AttawatThan/etlcore/engines"
)

// TypeName is the backend type this package registers under.
const TypeName = "mssql"

// Hook option keys recognized by CreateHandle.
const (
	OptInstance    = "instance"
	OptEncrypt     = "encrypt"
	OptAppName     = "app_name"
	OptDialTimeout = "dial_timeout"
)

// Engine option keys recognized by the handle.
const (
	OptMaxOpenConns    = "max_open_conns"
	OptMaxIdleConns    = "max_idle_conns"
	OptConnMaxLifetime = "conn_max_lifetime"
	OptConnMaxIdleTime = "conn_max_idle_time"
)

var hookKeys = []string{OptInstance, OptEncrypt, OptAppName, OptDialTimeout}

var engineKeys = []string{OptMaxOpenConns, OptMaxIdleConns, OptConnMaxLifetime, OptConnMaxIdleTime}

// Strategy builds SQL Server handles from resolved credentials.
type Strategy struct {
	resolver credentials.Resolver
}

// New creates the strategy. It matches engines.Constructor.
func New(resolver credentials.Resolver) engines.Strategy {
	return &Strategy{resolver: resolver}
}

// Register adds the mssql strategy to f under TypeName.
func Register(f *engines.Factory) {
	f.RegisterStrategy(TypeName, New)
}

// CreateHandle resolves id and opens the database object. database/sql
// dials lazily; connectivity is exercised by the factory's probe.
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
		port = 1433
	}

	query := url.Values{}
	query.Set("database", params.Database)
	for k, v := range params.Options {
		query.Set(k, v)
	}

	if encrypt, ok, err := engines.OptionString(opts, OptEncrypt); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		query.Set("encrypt", encrypt)
	}
	if appName, ok, err := engines.OptionString(opts, OptAppName); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		query.Set("app name", appName)
	}
	if timeout, ok, err := engines.OptionDuration(opts, OptDialTimeout); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		query.Set("dial timeout", fmt.Sprintf("%d", ceilSeconds(timeout)))
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(params.User, params.Password),
		Host:     net.JoinHostPort(params.Host, fmt.Sprintf("%d", port)),
		RawQuery: query.Encode(),
	}
	if instance, ok, err := engines.OptionString(opts, OptInstance); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		u.Path = instance
	}

	db, err := sql.Open("sqlserver", u.String())
	if err != nil {
		return nil, NewOpenFailedError(err)
	}

	return &Handle{db: db, dsn: u}, nil
}

// ceilSeconds rounds d up to whole seconds. The driver reads dial
// timeout with second granularity and treats zero as no timeout.
func ceilSeconds(d time.Duration) int64 {
	secs := int64(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}

// Handle wraps an opened but unprobed database object.
type Handle struct {
	db  *sql.DB
	dsn *url.URL
}

// DSN exposes the connection URL built from the resolved credentials.
func (h *Handle) DSN() *url.URL { return h.dsn }

// Engine applies pool options to the database object.
func (h *Handle) Engine(opts engines.EngineOptions) (engines.Engine, error) {
	if unknown := engines.UnknownOptionKeys(opts, engineKeys...); len(unknown) > 0 {
		return nil, NewUnknownOptionsError("engine", unknown)
	}

	if v, ok, err := engines.OptionInt(opts, OptMaxOpenConns); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		h.db.SetMaxOpenConns(v)
	}
	if v, ok, err := engines.OptionInt(opts, OptMaxIdleConns); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		h.db.SetMaxIdleConns(v)
	}
	if v, ok, err := engines.OptionDuration(opts, OptConnMaxLifetime); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		h.db.SetConnMaxLifetime(v)
	}
	if v, ok, err := engines.OptionDuration(opts, OptConnMaxIdleTime); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		h.db.SetConnMaxIdleTime(v)
	}

	return &Engine{db: h.db}, nil
}

// Close releases the database object.
func (h *Handle) Close() error { return h.db.Close() }

// Engine wraps a live SQL Server database object.
type Engine struct {
	db *sql.DB
}

// DB exposes the native database object.
func (e *Engine) DB() *sql.DB { return e.db }

// Ping executes a SELECT 1 round trip against the server.
func (e *Engine) Ping(ctx context.Context) error {
	var one int
	if err := e.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return NewPingFailedError(err)
	}
	return nil
}

// Close releases the database object.
func (e *Engine) Close() error { return e.db.Close() }
