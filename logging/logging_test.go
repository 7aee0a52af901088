package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDefaults(t *testing.T) {
	log, err := Setup()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestSetupLevel(t *testing.T) {
	log, err := Setup(WithLevel("debug"))
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestSetupInvalidLevelFallsBack(t *testing.T) {
	log, err := Setup(WithLevel("extreme"))
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestSetupFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "etl.log")

	log, err := Setup(WithFile(path), WithConsole(false), WithLevel("info"))
	require.NoError(t, err)

	log.WithField("conn_id", "warehouse").Info("engine_created")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "engine_created")
	assert.Contains(t, string(data), "warehouse")
}

func TestSetupAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etl.log")

	first, err := Setup(WithFile(path), WithConsole(false))
	require.NoError(t, err)
	first.Info("first run")

	second, err := Setup(WithFile(path), WithConsole(false))
	require.NoError(t, err)
	second.Info("second run")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
}
