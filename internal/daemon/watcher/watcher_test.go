package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/pingwatch/internal/config"
	"github.com/watchfire-io/pingwatch/internal/models"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("alert:\n  policy: coalesce\n"), 0644))

	w, err := New(path, func() (*models.Settings, error) { return config.LoadSettingsFrom(path) })
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)

	require.NoError(t, os.WriteFile(path, []byte("alert:\n  policy: queue\n  timeout_seconds: 9\n"), 0644))

	select {
	case s := <-w.Updates():
		assert.Equal(t, models.PolicyQueue, s.Alert.Policy)
		assert.Equal(t, 9, s.Alert.TimeoutSeconds)
	case <-time.After(3 * time.Second):
		t.Fatal("no settings update received")
	}
}

func TestWatcherIgnoresInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))

	w, err := New(path, func() (*models.Settings, error) { return config.LoadSettingsFrom(path) })
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)

	require.NoError(t, os.WriteFile(path, []byte("alert:\n  policy: sideways\n"), 0644))

	select {
	case s := <-w.Updates():
		t.Fatalf("unexpected update: %+v", s)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.SettingsFileName)
	loads := make(chan struct{}, 10)

	w, err := New(path, func() (*models.Settings, error) {
		loads <- struct{}{}
		return models.NewSettings(), nil
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte("{}"), 0644))
	time.Sleep(300 * time.Millisecond)
	assert.Empty(t, loads)
}
