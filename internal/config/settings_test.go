package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/pingwatch/internal/models"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadSettingsFrom_Defaults(t *testing.T) {
	settings, err := LoadSettingsFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, models.NewSettings(), settings)
}

func TestLoadSettingsFrom_FileOverridesDefaults(t *testing.T) {
	path := writeSettings(t, `
listen:
  port: 17000
alert:
  policy: queue
  timeout_seconds: 30
sound:
  enabled: false
`)

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 17000, settings.Listen.Port)
	assert.Equal(t, "127.0.0.1", settings.Listen.Host)
	assert.Equal(t, models.PolicyQueue, settings.Alert.Policy)
	assert.Equal(t, 30, settings.Alert.TimeoutSeconds)
	assert.False(t, settings.Sound.Enabled)
	assert.Equal(t, models.BackendJSON, settings.State.Backend)
}

func TestLoadSettingsFrom_EnvOverridesFile(t *testing.T) {
	path := writeSettings(t, "listen:\n  port: 17000\n")
	t.Setenv("PINGWATCH_LISTEN__PORT", "18000")
	t.Setenv("PINGWATCH_STATE__BACKEND", "sqlite")
	t.Setenv("PINGWATCH_ALERT__TIMEOUT_SECONDS", "5")

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 18000, settings.Listen.Port)
	assert.Equal(t, models.BackendSQLite, settings.State.Backend)
	assert.Equal(t, 5, settings.Alert.TimeoutSeconds)
}

func TestLoadSettingsFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"port out of range", "listen:\n  port: 70000\n"},
		{"unknown policy", "alert:\n  policy: stack\n"},
		{"unknown backend", "state:\n  backend: redis\n"},
		{"negative timeout", "alert:\n  timeout_seconds: -1\n"},
		{"malformed yaml", "listen: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettingsFrom(writeSettings(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PINGWATCH_LISTEN__PORT", "listen.port"},
		{"PINGWATCH_LISTEN__PROBE_RANGE", "listen.probe_range"},
		{"PINGWATCH_VERSION", "version"},
	}
	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	t.Setenv(HomeEnvVar, t.TempDir())

	settings := models.NewSettings()
	settings.Alert.Policy = models.PolicyQueue
	settings.Sound.File = "/tmp/ding.wav"
	require.NoError(t, SaveSettings(settings))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}
