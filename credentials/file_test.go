package credentials

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentialsFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeCredentialsFile(t, "connections.yaml", `
connections:
  warehouse:
    host: db.internal
    port: 5432
    user: etl
    password: secret
    database: dw
    options:
      sslmode: require
  cache:
    host: redis.internal
    port: 6379
    database: "2"
`)

	resolver, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, resolver.Path())
	assert.ElementsMatch(t, []string{"warehouse", "cache"}, resolver.IDs())

	p, err := resolver.Resolve(context.Background(), "warehouse")
	require.NoError(t, err)
	assert.Equal(t, "db.internal", p.Host)
	assert.Equal(t, 5432, p.Port)
	assert.Equal(t, "require", p.Options["sslmode"])
}

func TestLoadFileJSON(t *testing.T) {
	path := writeCredentialsFile(t, "connections.json", `{
  "connections": {
    "orders": {
      "host": "mysql.internal",
      "port": 3306,
      "user": "etl",
      "password": "secret",
      "database": "orders"
    }
  }
}`)

	resolver, err := LoadFile(path)
	require.NoError(t, err)

	p, err := resolver.Resolve(context.Background(), "orders")
	require.NoError(t, err)
	assert.Equal(t, "mysql.internal", p.Host)
	assert.Equal(t, "orders", p.Database)
}

func TestFileResolverCaseInsensitive(t *testing.T) {
	path := writeCredentialsFile(t, "connections.yaml", `
connections:
  warehouse:
    host: db.internal
`)
	resolver, err := LoadFile(path)
	require.NoError(t, err)

	p, err := resolver.Resolve(context.Background(), "WAREHOUSE")
	require.NoError(t, err)
	assert.Equal(t, "db.internal", p.Host)
}

func TestFileResolverNotFound(t *testing.T) {
	path := writeCredentialsFile(t, "connections.yaml", "connections: {}\n")
	resolver, err := LoadFile(path)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFileMalformed(t *testing.T) {
	path := writeCredentialsFile(t, "connections.yaml", "connections: [not, a, map]\n")
	_, err := LoadFile(path)
	assert.Error(t, err)
}
