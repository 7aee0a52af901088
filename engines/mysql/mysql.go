// Package mysql implements the MySQL engine strategy on top of
// database/sql and the go-sql-driver driver.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"

	mysqldrv "github.com/go-sql-driver/mysql"

	"github.com/AttawatThan/etlcore/credentials"
	"github.com/AttawatThan/etlcore/engines"
)

// TypeName is the backend type this package registers under.
const TypeName = "mysql"

// Hook option keys recognized by CreateHandle.
const (
	OptCharset   = "charset"
	OptParseTime = "parse_time"
	OptTimeout   = "timeout"
	OptTLS       = "tls"
)

// Engine option keys recognized by the handle.
const (
	OptMaxOpenConns    = "max_open_conns"
	OptMaxIdleConns    = "max_idle_conns"
	OptConnMaxLifetime = "conn_max_lifetime"
	OptConnMaxIdleTime = "conn_max_idle_time"
)

var hookKeys = []string{OptCharset, OptParseTime, OptTimeout, OptTLS}

var engineKeys = []string{OptMaxOpenConns, OptMaxIdleConns, OptConnMaxLifetime, OptConnMaxIdleTime}

// Strategy builds MySQL handles from resolved credentials.
type Strategy struct {
	resolver credentials.Resolver
}

// New creates the strategy. It matches engines.Constructor.
func New(resolver credentials.Resolver) engines.Strategy {
	return &Strategy{resolver: resolver}
}

// Register adds the mysql strategy to f under TypeName.
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
		port = 3306
	}

	cfg := mysqldrv.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(params.Host, fmt.Sprintf("%d", port))
	cfg.User = params.User
	cfg.Passwd = params.Password
	cfg.DBName = params.Database

	for k, v := range params.Options {
		if cfg.Params == nil {
			cfg.Params = make(map[string]string)
		}
		cfg.Params[k] = v
	}

	if charset, ok, err := engines.OptionString(opts, OptCharset); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		if cfg.Params == nil {
			cfg.Params = make(map[string]string)
		}
		cfg.Params["charset"] = charset
	}
	if parseTime, ok, err := engines.OptionBool(opts, OptParseTime); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		cfg.ParseTime = parseTime
	}
	if timeout, ok, err := engines.OptionDuration(opts, OptTimeout); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		cfg.Timeout = timeout
	}
	if tlsName, ok, err := engines.OptionString(opts, OptTLS); err != nil {
		return nil, NewInvalidOptionError(err)
	} else if ok {
		cfg.TLSConfig = tlsName
	}

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, NewOpenFailedError(err)
	}

	return &Handle{db: db}, nil
}

// Handle wraps an opened but unprobed database object.
type Handle struct {
	db *sql.DB
}

// Engine applies pool options to the database object.
func (h *Handle) Engine(opts engines.EngineOptions) (engines.Engine, error) {
	if unknown := engines.UnknownOptionKeys(opts, engineKeys...); len(unknown) > 0 {
		return nil, NewUnknownOptionsError("engine", unknown)
	}
	if err := applyPoolOptions(h.db, opts); err != nil {
		return nil, err
	}
	return &Engine{db: h.db}, nil
}

// Close releases the database object.
func (h *Handle) Close() error { return h.db.Close() }

func applyPoolOptions(db *sql.DB, opts engines.EngineOptions) error {
	if v, ok, err := engines.OptionInt(opts, OptMaxOpenConns); err != nil {
		return NewInvalidOptionError(err)
	} else if ok {
		db.SetMaxOpenConns(v)
	}
	if v, ok, err := engines.OptionInt(opts, OptMaxIdleConns); err != nil {
		return NewInvalidOptionError(err)
	} else if ok {
		db.SetMaxIdleConns(v)
	}
	if v, ok, err := engines.OptionDuration(opts, OptConnMaxLifetime); err != nil {
		return NewInvalidOptionError(err)
	} else if ok {
		db.SetConnMaxLifetime(v)
	}
	if v, ok, err := engines.OptionDuration(opts, OptConnMaxIdleTime); err != nil {
		return NewInvalidOptionError(err)
	} else if ok {
		db.SetConnMaxIdleTime(v)
	}
	return nil
}

// Engine wraps a live MySQL database object.
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
