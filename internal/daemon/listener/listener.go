// Package listener serves the loopback HTTP endpoint that accepts pings and
// exposes the status dashboard.
package listener

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/watchfire-io/pingwatch/internal/metrics"
)

// ErrNoFreePort is returned when every port in the probe range is taken.
var ErrNoFreePort = errors.New("no free port in probe range")

// Listen binds host:base, walking upward one port at a time for up to
// attempts ports. It returns the bound listener and its port.
func Listen(ctx context.Context, host string, base, attempts int) (net.Listener, int, error) {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		port := base + i
		if port > 65535 {
			break
		}
		addr := net.JoinHostPort(host, strconv.Itoa(port))
		ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
		if err == nil {
			if i > 0 {
				log.Printf("[listener] port %d busy, using %d", base, port)
			}
			return ln, ln.Addr().(*net.TCPAddr).Port, nil
		}
		lastErr = err
	}
	return nil, 0, fmt.Errorf("%w: %s:%d-%d: %v", ErrNoFreePort, host, base, base+attempts-1, lastErr)
}

// Listener is the HTTP server for pings, status and the dashboard.
type Listener struct {
	server *http.Server
	ln     net.Listener
	port   int
}

// New wraps an already-bound listener.
func New(ln net.Listener, backend Backend, m *metrics.Metrics) *Listener {
	return &Listener{
		server: &http.Server{
			Handler:           NewRouter(backend, m),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		ln:   ln,
		port: ln.Addr().(*net.TCPAddr).Port,
	}
}

// Port returns the bound port.
func (l *Listener) Port() int {
	return l.port
}

// Serve blocks until Shutdown. It returns nil after a clean shutdown.
func (l *Listener) Serve() error {
	if err := l.server.Serve(l.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (l *Listener) Shutdown(ctx context.Context) error {
	return l.server.Shutdown(ctx)
}
