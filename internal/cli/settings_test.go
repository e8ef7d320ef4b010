package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/pingwatch/internal/config"
	"github.com/watchfire-io/pingwatch/internal/models"
)

func TestInitSettings(t *testing.T) {
	t.Setenv(config.HomeEnvVar, t.TempDir())

	path, err := initSettings(false)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = initSettings(false)
	assert.Error(t, err)

	_, err = initSettings(true)
	assert.NoError(t, err)

	loaded, err := config.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.NewSettings(), loaded)
}

func TestWriteSettings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSettings(&buf, models.NewSettings()))
	out := buf.String()
	assert.Contains(t, out, "listen:")
	assert.Contains(t, out, "policy: coalesce")
}

func TestConnectDaemonWithoutDaemon(t *testing.T) {
	t.Setenv(config.HomeEnvVar, t.TempDir())
	_, err := connectDaemon()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrDaemonNotRunning)
}
