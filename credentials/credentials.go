// Package credentials resolves opaque connection identifiers to backend
// connection parameters. The engine factory never builds parameters itself;
// it delegates every lookup to a Resolver.
package credentials

import (
	"context"
	"strings"
	"sync"
)

// Params holds the connection parameters a resolver returns for an
// identifier. Options carries backend-specific extras (e.g. sslmode)
// that a strategy may consult.
type Params struct {
	Host     string            `mapstructure:"host" json:"host"`
	Port     int               `mapstructure:"port" json:"port"`
	User     string            `mapstructure:"user" json:"user"`
	Password string            `mapstructure:"password" json:"password"`
	Database string            `mapstructure:"database" json:"database"`
	Options  map[string]string `mapstructure:"options" json:"options,omitempty"`
}

// Resolver looks up connection parameters by identifier.
type Resolver interface {
	// Resolve returns the parameters stored under id, or an error
	// matching ErrNotFound when the identifier is unknown.
	Resolve(ctx context.Context, id string) (Params, error)
}

// Static is an in-memory resolver. Useful for tests and local runs.
type Static struct {
	mu     sync.RWMutex
	params map[string]Params
}

// NewStatic creates an empty in-memory resolver.
func NewStatic() *Static {
	return &Static{params: make(map[string]Params)}
}

// Set stores parameters under id, replacing any previous entry.
func (s *Static) Set(id string, p Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params[strings.TrimSpace(id)] = p
}

// Resolve returns the parameters stored under id.
func (s *Static) Resolve(_ context.Context, id string) (Params, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.params[strings.TrimSpace(id)]
	if !ok {
		return Params{}, NewNotFoundError(id)
	}
	return p, nil
}
