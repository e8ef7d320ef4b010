package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/watchfire-io/pingwatch/internal/daemon/alert"
	"github.com/watchfire-io/pingwatch/internal/daemon/listener"
	"github.com/watchfire-io/pingwatch/internal/models"
	"github.com/watchfire-io/pingwatch/internal/monitor"
	"github.com/watchfire-io/pingwatch/internal/rpc"
)

type countingPresenter struct {
	mu      sync.Mutex
	shown   int
	updates int
}

func (p *countingPresenter) Show(string, alert.View) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown++
	return nil
}

func (p *countingPresenter) Update(string, alert.View) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates++
	return nil
}

func (p *countingPresenter) Close(string) error { return nil }

func (p *countingPresenter) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown
}

func (p *countingPresenter) updated() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.updates
}

func testSettings() *models.Settings {
	s := models.NewSettings()
	s.Listen.Port = 0
	s.Listen.ProbeRange = 1
	s.State.Backend = models.BackendNone
	return s
}

func startServer(t *testing.T, settings *models.Settings, presenter alert.Presenter) *Server {
	t.Helper()

	srv, err := New(Options{
		Settings:  settings,
		Presenter: presenter,
		Sound:     alert.SilentSound{},
		Store:     monitor.NopStore{},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = srv.Serve() }()
	go func() { _ = srv.Dispatcher().Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		srv.Stop()
	})
	return srv
}

func dial(t *testing.T, srv *Server) *rpc.DaemonServiceClient {
	t.Helper()
	conn, err := grpc.NewClient(
		fmt.Sprintf("%s:%d", ControlHost, srv.Port()),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(rpc.CallOption()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return rpc.NewDaemonServiceClient(conn)
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHTTPTriggerUpdatesCountersAndShowsAlert(t *testing.T) {
	presenter := &countingPresenter{}
	srv := startServer(t, testSettings(), presenter)
	base := fmt.Sprintf("http://127.0.0.1:%d", srv.HTTPPort())

	var trig map[string]any
	getJSON(t, base+"/api/trigger_alarm?source=erp&count=3", &trig)

	var st models.Status
	getJSON(t, base+"/api/status", &st)
	assert.Equal(t, 1, st.TotalCount)
	assert.Equal(t, 1, st.PendingCount)
	assert.Equal(t, map[string]int{"erp": 1}, st.SourceCounts)
	assert.Equal(t, 3, st.LastTriggerCount)

	assert.Eventually(t, func() bool { return presenter.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return srv.Status().AlertActive }, 2*time.Second, 10*time.Millisecond)
}

func TestGRPCControlsShareState(t *testing.T) {
	srv := startServer(t, testSettings(), &countingPresenter{})
	client := dial(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reply, err := client.Trigger(ctx, &rpc.TriggerRequest{Source: "  billing ", Count: 0})
	require.NoError(t, err)
	assert.Equal(t, "billing", reply.Source)
	assert.Equal(t, 1, reply.Count)
	assert.Equal(t, 1, reply.Total)

	srv.Trigger("", 2)

	status, err := client.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, srv.HTTPPort(), status.HTTPPort)
	assert.Equal(t, 2, status.Monitor.TotalCount)
	assert.Equal(t, 2, status.Monitor.PendingCount)
	assert.Equal(t, map[string]int{"billing": 1, monitor.DefaultSource: 1}, status.Monitor.SourceCounts)
	assert.False(t, status.StartedAt.IsZero())
	assert.WithinDuration(t, time.Now(), status.StartedAt, time.Minute)

	acked, err := client.Acknowledge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, acked.Monitor.PendingCount)
	assert.Equal(t, 2, acked.Monitor.TotalCount)

	sound, err := client.ToggleSound(ctx)
	require.NoError(t, err)
	assert.False(t, sound.SoundEnabled)

	reset, err := client.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, reset.Monitor.TotalCount)
	assert.False(t, reset.Monitor.SoundEnabled)

	dismiss, err := client.Dismiss(ctx)
	require.NoError(t, err)
	assert.True(t, dismiss.Queued)

	history, err := client.History(ctx, &rpc.HistoryRequest{})
	require.NoError(t, err)
	assert.Empty(t, history.Days)
}

func TestShutdownRequestStopsDispatcher(t *testing.T) {
	srv := startServer(t, testSettings(), &countingPresenter{})
	client := dial(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, client.Shutdown(ctx))

	select {
	case <-srv.Dispatcher().Done():
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not stop after shutdown request")
	}
}

func TestNewSkipsBusyPort(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	busyPort := busy.Addr().(*net.TCPAddr).Port

	settings := testSettings()
	settings.Listen.Port = busyPort
	settings.Listen.ProbeRange = 10

	srv := startServer(t, settings, nil)
	assert.NotEqual(t, busyPort, srv.HTTPPort())
	assert.Greater(t, srv.HTTPPort(), busyPort)

	// The port it settled on is the one actually serving the API.
	var st models.Status
	getJSON(t, fmt.Sprintf("http://127.0.0.1:%d/api/status", srv.HTTPPort()), &st)
	assert.Equal(t, 0, st.TotalCount)
	assert.True(t, st.SoundEnabled)
}

func TestNewFailsWhenRangeExhausted(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	settings := testSettings()
	settings.Listen.Port = busy.Addr().(*net.TCPAddr).Port
	settings.Listen.ProbeRange = 1

	_, err = New(Options{Settings: settings, Store: monitor.NopStore{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, listener.ErrNoFreePort)
}

func TestApplySettingsReconfiguresDispatcher(t *testing.T) {
	presenter := &countingPresenter{}
	srv := startServer(t, testSettings(), presenter)

	next := testSettings()
	next.Alert.Policy = models.PolicyQueue
	srv.applySettings(next)

	srv.settingsMu.Lock()
	assert.Equal(t, models.PolicyQueue, srv.settings.Alert.Policy)
	srv.settingsMu.Unlock()

	srv.Trigger("erp", 1)
	srv.Trigger("crm", 1)
	require.Eventually(t, func() bool { return presenter.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	// Under coalesce the second ping would refresh the open alert; queued,
	// it only appears once the first is dismissed.
	require.True(t, srv.Dismiss())
	require.Eventually(t, func() bool { return presenter.count() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, presenter.updated())
}
