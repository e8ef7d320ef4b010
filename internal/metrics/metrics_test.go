package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/pingwatch/internal/models"
)

type staticStatus struct {
	status models.Status
}

func (s staticStatus) Status() models.Status { return s.status }

func TestCountersAndGauges(t *testing.T) {
	status := models.Status{UptimeSeconds: 12}
	status.TotalCount = 4
	status.PendingCount = 2
	status.SoundEnabled = true
	m := New(staticStatus{status: status})

	m.PingReceived("erp")
	m.PingReceived("erp")
	m.AlertShown()
	m.AlertDropped("queue_full")
	m.PersistFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.pingsReceived.WithLabelValues("erp")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.alertsShown))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.alertsDropped.WithLabelValues("queue_full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistFailures))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "pingwatch_today_total 4")
	assert.Contains(t, body, "pingwatch_pending 2")
	assert.Contains(t, body, "pingwatch_sound_enabled 1")
	assert.Contains(t, body, "pingwatch_uptime_seconds 12")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.PingReceived("erp")
	m.AlertShown()
	m.AlertDropped("x")
	m.PersistFailed()
	m.ObserveRequest("/", 0.1)
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
