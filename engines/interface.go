// Package engines provides a pluggable factory for validated database
// engine handles. Backend types are registered as strategies; the factory
// resolves a type name to a strategy, builds a handle and probes it for
// liveness before handing it to the caller.
package engines

import (
	"context"

	"github.com/AttawatThan/etlcore/credentials"
)

// Strategy encapsulates backend-specific construction of a raw connection
// handle. Implementations resolve the identifier through their credential
// resolver and prepare the backend-native client. Liveness validation is
// not a strategy concern; the factory probes the finished engine.
type Strategy interface {
	// CreateHandle builds a raw handle for the credentials stored under id.
	// opts carries backend-specific construction options; unrecognized
	// keys are rejected rather than forwarded to the native driver.
	CreateHandle(ctx context.Context, id string, opts HookOptions) (RawHandle, error)
}

// Constructor builds a Strategy bound to a credential resolver. The
// factory invokes it once per GetEngine call, so strategies need not be
// safe for reuse across calls.
type Constructor func(resolver credentials.Resolver) Strategy

// RawHandle is a prepared but not yet validated backend client. Engine
// applies runtime options (pool sizing and the like) and produces the
// final handle. Close releases whatever the handle holds; it is called by
// the factory when the Engine step fails.
type RawHandle interface {
	Engine(opts EngineOptions) (Engine, error)
	Close() error
}

// Engine is a live backend handle. Ownership transfers fully to the
// caller once GetEngine returns it; the factory keeps no reference.
// Concrete engines additionally expose their native client.
type Engine interface {
	// Ping executes a minimal round trip against the backend.
	Ping(ctx context.Context) error

	// Close releases the native resources held by the engine.
	Close() error
}
