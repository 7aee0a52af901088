package engines

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AttawatThan/etlcore/credentials"
)

// Factory is the single entry point for obtaining validated engine
// handles. It owns a registry of backend strategies keyed by lower-cased
// type name. Each process should construct one Factory at startup rather
// than sharing implicit global state.
//
// Registration and lookup are guarded by a read-write lock, so GetEngine
// calls never serialize against each other.
type Factory struct {
	mu       sync.RWMutex
	registry map[string]Constructor

	resolver     credentials.Resolver
	logger       logrus.FieldLogger
	probeTimeout time.Duration
}

// ErrNilResolver is returned by New when no credential resolver is given.
var ErrNilResolver = errors.New("credential resolver is required")

// New creates a Factory with an empty registry. Strategies are added with
// RegisterStrategy; the etlcore root package registers the built-in set.
func New(resolver credentials.Resolver, opts ...Option) (*Factory, error) {
	if resolver == nil {
		return nil, ErrNilResolver
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Factory{
		registry:     make(map[string]Constructor),
		resolver:     resolver,
		logger:       cfg.Logger,
		probeTimeout: cfg.ProbeTimeout,
	}, nil
}

// RegisterStrategy registers ctor under typeName. Names are
// case-insensitive; registering an existing name replaces the previous
// constructor. Registration is expected at process-initialization time
// but is safe to interleave with lookups.
func (f *Factory) RegisterStrategy(typeName string, ctor Constructor) {
	name := normalizeTypeName(typeName)

	f.mu.Lock()
	f.registry[name] = ctor
	f.mu.Unlock()
}

// Strategies returns the sorted list of registered backend type names.
func (f *Factory) Strategies() []string {
	f.mu.RLock()
	names := make([]string, 0, len(f.registry))
	for name := range f.registry {
		names = append(names, name)
	}
	f.mu.RUnlock()

	sort.Strings(names)
	return names
}

// GetEngine resolves typeName to a strategy, builds a handle for the
// credentials stored under id and probes it for liveness. The returned
// engine is owned by the caller. Every failure is surfaced immediately;
// the factory performs no retries and no fallback between backends.
//
// Failure kinds, in order of checking: ErrInvalidArgument (empty id,
// checked before any registry or network activity), ErrUnsupportedBackend
// (unknown type name, credential resolution never attempted),
// ErrCredentialResolution, ErrHandleConstruction, ErrValidation. A handle
// that fails the probe is closed before the error propagates.
func (f *Factory) GetEngine(ctx context.Context, typeName, id string, hookOpts HookOptions, engineOpts EngineOptions) (Engine, error) {
	if strings.TrimSpace(id) == "" {
		return nil, f.fail(typeName, id, NewInvalidArgumentError("connection identifier must not be empty"))
	}

	name := normalizeTypeName(typeName)

	f.mu.RLock()
	ctor, ok := f.registry[name]
	f.mu.RUnlock()
	if !ok {
		return nil, f.fail(name, id, NewUnsupportedBackendError(typeName, f.Strategies()))
	}

	strategy := ctor(f.resolver)
	raw, err := strategy.CreateHandle(ctx, id, hookOpts)
	if err != nil {
		return nil, f.fail(name, id, classifyCreateError(name, id, err))
	}

	engine, err := raw.Engine(engineOpts)
	if err != nil {
		_ = raw.Close()
		return nil, f.fail(name, id, NewConstructionError(name, id, err))
	}

	probeCtx, cancel := context.WithTimeout(ctx, f.probeTimeout)
	defer cancel()
	if err := engine.Ping(probeCtx); err != nil {
		_ = engine.Close()
		return nil, f.fail(name, id, NewValidationError(name, id, err))
	}

	f.logger.WithFields(logrus.Fields{
		"conn_id": id,
		"backend": name,
	}).Info("engine_created")

	return engine, nil
}

// classifyCreateError maps a strategy failure onto the factory taxonomy.
// Credential-resolution failures pass through unchanged; everything else
// is backend-native construction.
func classifyCreateError(backend, id string, err error) error {
	if errors.Is(err, ErrCredentialResolution) {
		return err
	}
	if errors.Is(err, credentials.ErrNotFound) {
		return NewCredentialError(id, err)
	}
	return NewConstructionError(backend, id, err)
}

func (f *Factory) fail(backend, id string, err error) error {
	f.logger.WithFields(logrus.Fields{
		"conn_id": id,
		"backend": backend,
		"reason":  err.Error(),
	}).Error("engine_creation_failed")
	return err
}

func normalizeTypeName(typeName string) string {
	return strings.ToLower(strings.TrimSpace(typeName))
}
