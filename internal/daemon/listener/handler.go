package listener

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/watchfire-io/pingwatch/internal/metrics"
	"github.com/watchfire-io/pingwatch/internal/models"
	"github.com/watchfire-io/pingwatch/internal/monitor"
)

// Backend is what the HTTP surface needs from the daemon. Implementations
// must not block on the alert surface.
type Backend interface {
	Trigger(source string, count int) monitor.Trigger
	Status() models.Status
	ToggleSound() bool
	Acknowledge() models.Status
	Reset() models.Status
	Dismiss() bool
	RequestShutdown()
	History(limit int) ([]models.DaySummary, error)
}

const defaultHistoryDays = 7

// Handler serves the daemon's HTTP routes.
type Handler struct {
	backend Backend
}

// NewHandler creates a handler.
func NewHandler(backend Backend) *Handler {
	return &Handler{backend: backend}
}

// NewRouter builds the full route table.
func NewRouter(backend Backend, m *metrics.Metrics) http.Handler {
	h := NewHandler(backend)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(instrument(m))

	r.Get("/", h.Dashboard)
	r.Get("/trigger", h.TriggerAlarm)
	r.Route("/api", h.RegisterRoutes)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// RegisterRoutes mounts the /api routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/trigger_alarm", h.TriggerAlarm)
	r.Get("/trigger", h.TriggerAlarm)
	r.Get("/status", h.Status)
	r.Get("/toggle_sound", h.ToggleSound)
	r.Get("/ack", h.Acknowledge)
	r.Get("/reset", h.Reset)
	r.Get("/dismiss", h.Dismiss)
	r.Get("/history", h.History)
	r.Get("/shutdown", h.Shutdown)
}

// TriggerAlarm accepts a ping. Malformed parameters fall back to defaults.
func (h *Handler) TriggerAlarm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	trig := h.backend.Trigger(q.Get("source"), parseCount(q.Get("count")))

	log.Printf("[listener] ping source=%q count=%d total=%d req=%s",
		trig.Source, trig.Count, trig.Total, chiMiddleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status returns the counters as JSON.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.backend.Status())
}

// ToggleSound flips the sound flag.
func (h *Handler) ToggleSound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"sound_enabled": h.backend.ToggleSound()})
}

// Acknowledge clears the pending count.
func (h *Handler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.backend.Acknowledge())
}

// Reset zeroes today's counters.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.backend.Reset())
}

// Dismiss closes the active alert.
func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"queued": h.backend.Dismiss()})
}

// History returns per-day totals.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	days := defaultHistoryDays
	if n, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && n > 0 {
		days = n
	}

	summaries, err := h.backend.History(days)
	if err != nil {
		log.Printf("[listener] history failed: %v", err)
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	if summaries == nil {
		summaries = []models.DaySummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// Shutdown asks the UI loop to quit. The process exits from there.
func (h *Handler) Shutdown(w http.ResponseWriter, r *http.Request) {
	log.Printf("[listener] shutdown requested req=%s", chiMiddleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"status": "shutting down"})
	h.backend.RequestShutdown()
}

// parseCount returns a positive count, or 1 when raw is missing or bad.
func parseCount(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(route, time.Since(start).Seconds())
		})
	}
}
