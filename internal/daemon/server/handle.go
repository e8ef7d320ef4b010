package server

import (
	"sync/atomic"

	"github.com/watchfire-io/pingwatch/internal/models"
)

// Handle stands in for a Server that is created after its callers are
// wired, as with the tray menu. Until Set is called every operation is a
// no-op returning zero values.
type Handle struct {
	srv      atomic.Pointer[Server]
	fallback func()
}

// NewHandle returns an empty handle. fallbackQuit runs on RequestShutdown
// while no server has been set.
func NewHandle(fallbackQuit func()) *Handle {
	return &Handle{fallback: fallbackQuit}
}

// Set publishes the server to concurrent callers.
func (h *Handle) Set(srv *Server) { h.srv.Store(srv) }

// Get returns the server, or nil before Set.
func (h *Handle) Get() *Server { return h.srv.Load() }

func (h *Handle) HTTPPort() int {
	if srv := h.Get(); srv != nil {
		return srv.HTTPPort()
	}
	return 0
}

func (h *Handle) Status() models.Status {
	if srv := h.Get(); srv != nil {
		return srv.Status()
	}
	return models.Status{}
}

func (h *Handle) ToggleSound() bool {
	if srv := h.Get(); srv != nil {
		return srv.ToggleSound()
	}
	return false
}

func (h *Handle) Acknowledge() models.Status {
	if srv := h.Get(); srv != nil {
		return srv.Acknowledge()
	}
	return models.Status{}
}

func (h *Handle) Reset() models.Status {
	if srv := h.Get(); srv != nil {
		return srv.Reset()
	}
	return models.Status{}
}

func (h *Handle) Dismiss() bool {
	if srv := h.Get(); srv != nil {
		return srv.Dismiss()
	}
	return false
}

func (h *Handle) RequestShutdown() {
	if srv := h.Get(); srv != nil {
		srv.RequestShutdown()
		return
	}
	if h.fallback != nil {
		h.fallback()
	}
}
