package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AttawatThan/etlcore/credentials"
	"github.com/AttawatThan/etlcore/engines"
)

func testResolver() *credentials.Static {
	resolver := credentials.NewStatic()
	resolver.Set("warehouse", credentials.Params{
		Host:     "db.internal",
		Port:     5433,
		User:     "etl",
		Password: "secret",
		Database: "warehouse",
		Options:  map[string]string{"sslmode": "require"},
	})
	return resolver
}

func createHandle(t *testing.T, opts engines.HookOptions) *Handle {
	t.Helper()
	strategy := New(testResolver())
	raw, err := strategy.CreateHandle(context.Background(), "warehouse", opts)
	require.NoError(t, err)
	handle, ok := raw.(*Handle)
	require.True(t, ok)
	return handle
}

func TestCreateHandleBuildsPoolConfig(t *testing.T) {
	handle := createHandle(t, nil)
	cfg := handle.Config()

	assert.Equal(t, "db.internal", cfg.ConnConfig.Host)
	assert.Equal(t, uint16(5433), cfg.ConnConfig.Port)
	assert.Equal(t, "etl", cfg.ConnConfig.User)
	assert.Equal(t, "secret", cfg.ConnConfig.Password)
	assert.Equal(t, "warehouse", cfg.ConnConfig.Database)
}

func TestCreateHandleDefaultPort(t *testing.T) {
	resolver := credentials.NewStatic()
	resolver.Set("local", credentials.Params{Host: "localhost", User: "u", Database: "d"})

	raw, err := New(resolver).CreateHandle(context.Background(), "local", nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(5432), raw.(*Handle).Config().ConnConfig.Port)
}

func TestCreateHandleHookOptions(t *testing.T) {
	handle := createHandle(t, engines.HookOptions{
		OptSearchPath:     "staging",
		OptConnectTimeout: 3 * time.Second,
	})
	cfg := handle.Config()

	assert.Equal(t, "staging", cfg.ConnConfig.RuntimeParams["search_path"])
	assert.Equal(t, 3*time.Second, cfg.ConnConfig.ConnectTimeout)
}

func TestCreateHandleEmptyPassword(t *testing.T) {
	resolver := credentials.NewStatic()
	resolver.Set("trusted", credentials.Params{
		Host:     "db.internal",
		User:     "etl",
		Password: "",
		Database: "dw",
	})

	raw, err := New(resolver).CreateHandle(context.Background(), "trusted", nil)
	require.NoError(t, err)
	cfg := raw.(*Handle).Config()

	// An empty password must not shift the following keyword into the
	// password slot.
	assert.Equal(t, "", cfg.ConnConfig.Password)
	assert.Equal(t, "dw", cfg.ConnConfig.Database)
	assert.Equal(t, "etl", cfg.ConnConfig.User)
}

func TestCreateHandleQuotesCredentialValues(t *testing.T) {
	resolver := credentials.NewStatic()
	resolver.Set("spaced", credentials.Params{
		Host:     "db.internal",
		User:     "etl user",
		Password: `p'ss w\rd`,
		Database: "dw",
	})

	raw, err := New(resolver).CreateHandle(context.Background(), "spaced", nil)
	require.NoError(t, err)
	cfg := raw.(*Handle).Config()

	assert.Equal(t, "etl user", cfg.ConnConfig.User)
	assert.Equal(t, `p'ss w\rd`, cfg.ConnConfig.Password)
	assert.Equal(t, "dw", cfg.ConnConfig.Database)
}

func TestCreateHandleSubSecondConnectTimeout(t *testing.T) {
	handle := createHandle(t, engines.HookOptions{OptConnectTimeout: 500 * time.Millisecond})

	// connect_timeout has second granularity and zero means no timeout,
	// so sub-second values round up.
	assert.Equal(t, time.Second, handle.Config().ConnConfig.ConnectTimeout)
}

func TestCreateHandleUnknownHookOption(t *testing.T) {
	strategy := New(testResolver())
	_, err := strategy.CreateHandle(context.Background(), "warehouse", engines.HookOptions{"pool_size": 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pool_size")
}

func TestCreateHandleUnknownIdentifier(t *testing.T) {
	strategy := New(testResolver())
	_, err := strategy.CreateHandle(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, credentials.ErrNotFound)
}

func TestEngineOptionsApplied(t *testing.T) {
	handle := createHandle(t, nil)

	// Option values land on the pool config before the pool is created,
	// so they can be asserted without a reachable server.
	_, err := handle.Engine(engines.EngineOptions{"bogus": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")

	_, err = handle.Engine(engines.EngineOptions{OptMaxConns: "ten"})
	require.Error(t, err)
}

func TestHandleCloseIsNoop(t *testing.T) {
	handle := createHandle(t, nil)
	assert.NoError(t, handle.Close())
}

func TestRegister(t *testing.T) {
	factory, err := engines.New(testResolver())
	require.NoError(t, err)
	Register(factory)
	assert.Equal(t, []string{TypeName}, factory.Strategies())
}
