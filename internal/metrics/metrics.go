// Package metrics exposes daemon counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/watchfire-io/pingwatch/internal/models"
)

// StatusSource is read on every scrape.
type StatusSource interface {
	Status() models.Status
}

// Metrics holds the daemon's collectors on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	pingsReceived   *prometheus.CounterVec
	alertsShown     prometheus.Counter
	alertsDropped   *prometheus.CounterVec
	persistFailures prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

// New registers collectors, including gauges that read today's counters
// from state at scrape time.
func New(state StatusSource) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		pingsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pingwatch_pings_received_total",
			Help: "Pings accepted by the listener",
		}, []string{"source"}),
		alertsShown: factory.NewCounter(prometheus.CounterOpts{
			Name: "pingwatch_alerts_shown_total",
			Help: "Alert surfaces presented or updated",
		}),
		alertsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pingwatch_alerts_dropped_total",
			Help: "Alert events dropped before reaching the screen",
		}, []string{"reason"}),
		persistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "pingwatch_persist_failures_total",
			Help: "Failed writes of the counters file",
		}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pingwatch_http_request_duration_seconds",
			Help:    "Listener request latency",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"route"}),
	}

	if state != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pingwatch_today_total",
			Help: "Pings counted today",
		}, func() float64 { return float64(state.Status().TotalCount) })
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pingwatch_pending",
			Help: "Pings not yet acknowledged",
		}, func() float64 { return float64(state.Status().PendingCount) })
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pingwatch_sound_enabled",
			Help: "1 when alert sound is on",
		}, func() float64 {
			if state.Status().SoundEnabled {
				return 1
			}
			return 0
		})
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pingwatch_uptime_seconds",
			Help: "Seconds since the daemon started",
		}, func() float64 { return float64(state.Status().UptimeSeconds) })
	}

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// PingReceived counts an accepted ping.
func (m *Metrics) PingReceived(source string) {
	if m == nil {
		return
	}
	m.pingsReceived.WithLabelValues(source).Inc()
}

// AlertShown counts a presented or updated surface.
func (m *Metrics) AlertShown() {
	if m == nil {
		return
	}
	m.alertsShown.Inc()
}

// AlertDropped counts an event that never reached the screen.
func (m *Metrics) AlertDropped(reason string) {
	if m == nil {
		return
	}
	m.alertsDropped.WithLabelValues(reason).Inc()
}

// PersistFailed counts a failed counters write.
func (m *Metrics) PersistFailed() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

// ObserveRequest records handler latency for a route pattern.
func (m *Metrics) ObserveRequest(route string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(route).Observe(seconds)
}
