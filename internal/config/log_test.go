package config

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaemonLogRoundTrip(t *testing.T) {
	t.Setenv(HomeEnvVar, t.TempDir())

	started := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	entry, f, err := CreateDaemonLog("1.2.3", "tray", 4242, started)
	require.NoError(t, err)
	_, err = fmt.Fprintln(f, "[pingwatchd] Daemon started")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, "2026-03-01T08-00-00-4242", entry.LogID)

	got, body, err := ReadLog(entry.LogID)
	require.NoError(t, err)
	assert.Equal(t, entry, got)
	assert.Contains(t, body, "Daemon started")
}

func TestListAndPruneLogs(t *testing.T) {
	t.Setenv(HomeEnvVar, t.TempDir())

	logs, err := ListLogs()
	require.NoError(t, err)
	assert.Empty(t, logs)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		_, f, err := CreateDaemonLog("dev", "foreground", 100+i, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}

	logs, err = ListLogs()
	require.NoError(t, err)
	require.Len(t, logs, 4)
	assert.Equal(t, 103, logs[0].PID)
	assert.Equal(t, 100, logs[3].PID)

	require.NoError(t, PruneLogs(2))
	logs, err = ListLogs()
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, 103, logs[0].PID)
	assert.Equal(t, 102, logs[1].PID)
}

func TestReadLogMissing(t *testing.T) {
	t.Setenv(HomeEnvVar, t.TempDir())
	_, _, err := ReadLog("nope")
	assert.Error(t, err)
}
