package credentials

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileResolver resolves identifiers from a configuration file. The file
// holds a single "connections" document mapping identifiers to parameters:
//
//	connections:
//	  warehouse:
//	    host: db.internal
//	    port: 5432
//	    user: etl
//	    password: secret
//	    database: warehouse
//	    options:
//	      sslmode: require
//
// YAML, JSON and TOML files are supported. Identifiers are matched
// case-insensitively because the configuration layer normalizes keys to
// lower case.
type FileResolver struct {
	path        string
	connections map[string]Params
}

// LoadFile reads and parses a credentials file.
func LoadFile(path string) (*FileResolver, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read credentials file %q: %w", path, err)
	}

	var doc struct {
		Connections map[string]Params `mapstructure:"connections"`
	}
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("parse credentials file %q: %w", path, err)
	}
	if doc.Connections == nil {
		doc.Connections = make(map[string]Params)
	}

	return &FileResolver{path: path, connections: doc.Connections}, nil
}

// Path returns the file the resolver was loaded from.
func (f *FileResolver) Path() string { return f.path }

// IDs returns the identifiers present in the file.
func (f *FileResolver) IDs() []string {
	ids := make([]string, 0, len(f.connections))
	for id := range f.connections {
		ids = append(ids, id)
	}
	return ids
}

// Resolve returns the parameters stored under id.
func (f *FileResolver) Resolve(_ context.Context, id string) (Params, error) {
	p, ok := f.connections[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Params{}, NewNotFoundError(id)
	}
	return p, nil
}
