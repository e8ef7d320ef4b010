// Package server wires the daemon together: monitor state, the alert
// dispatcher, the HTTP ping listener and the gRPC control service.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"

	"github.com/watchfire-io/pingwatch/internal/config"
	"github.com/watchfire-io/pingwatch/internal/daemon/alert"
	"github.com/watchfire-io/pingwatch/internal/daemon/listener"
	"github.com/watchfire-io/pingwatch/internal/daemon/watcher"
	"github.com/watchfire-io/pingwatch/internal/metrics"
	"github.com/watchfire-io/pingwatch/internal/models"
	"github.com/watchfire-io/pingwatch/internal/monitor"
	"github.com/watchfire-io/pingwatch/internal/rpc"
)

// ControlHost is the loopback address the gRPC control service binds.
const ControlHost = "127.0.0.1"

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Settings *models.Settings
	// Port is the gRPC control port; 0 picks a free one.
	Port int
	// HTTPPort overrides Settings.Listen.Port when non-zero.
	HTTPPort int
	// SettingsPath enables hot reload of alert settings when set.
	SettingsPath string
	Presenter    alert.Presenter
	Sound        alert.SoundPlayer
	// Store overrides the backend selected by Settings.State.
	Store monitor.Store
	// OnQuit runs on the dispatcher goroutine after alert teardown.
	OnQuit func()
}

// Server is the daemon.
type Server struct {
	settingsMu sync.Mutex
	settings   *models.Settings

	state      *monitor.State
	dispatcher *alert.Dispatcher
	metrics    *metrics.Metrics

	http         *listener.Listener
	grpcServer   *grpc.Server
	grpcListener net.Listener
	port         int

	watcher  *watcher.Watcher
	done     chan struct{}
	stopOnce sync.Once
}

// New loads state and binds both listeners. Failing to bind the HTTP port
// range is fatal; persistence problems are logged and the daemon runs
// without them.
func New(opts Options) (*Server, error) {
	settings := opts.Settings
	if settings == nil {
		settings = models.NewSettings()
	}

	store := opts.Store
	if store == nil {
		var err error
		store, err = openStore(settings.State.Backend)
		if err != nil {
			log.Printf("[store] %v; counters will not be persisted", err)
			store = monitor.NopStore{}
		}
	}

	state := monitor.New(monitor.WithStore(store), monitor.WithSoundEnabled(settings.Sound.Enabled))
	if err := state.Load(); err != nil {
		log.Printf("[store] %v; starting with empty counters", err)
	}

	var m *metrics.Metrics
	if settings.Metrics.Enabled {
		m = metrics.New(state)
	}

	sound := opts.Sound
	if sound == nil {
		sound = alert.SystemSound{}
	}
	if f := settings.Sound.File; f != "" {
		if err := alert.ValidateSoundFile(f); err != nil {
			log.Printf("[alert] warning: %v; falling back to the system beep", err)
		}
	}

	dispatcher := alert.NewDispatcher(state, opts.Presenter,
		alert.WithConfig(alert.ConfigFromSettings(settings)),
		alert.WithSound(sound),
		alert.WithMetrics(m),
		alert.WithOnQuit(opts.OnQuit),
	)

	httpPort := settings.Listen.Port
	if opts.HTTPPort != 0 {
		httpPort = opts.HTTPPort
	}
	httpLn, _, err := listener.Listen(context.Background(), settings.Listen.Host, httpPort, settings.Listen.ProbeRange)
	if err != nil {
		_ = state.Close()
		return nil, err
	}

	grpcLn, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", fmt.Sprintf("%s:%d", ControlHost, opts.Port))
	if err != nil {
		_ = httpLn.Close()
		_ = state.Close()
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	srv := &Server{
		settings:     settings,
		state:        state,
		dispatcher:   dispatcher,
		metrics:      m,
		grpcListener: grpcLn,
		port:         grpcLn.Addr().(*net.TCPAddr).Port,
		done:         make(chan struct{}),
	}
	srv.http = listener.New(httpLn, srv, m)

	srv.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(logErrors))
	rpc.RegisterDaemonServiceServer(srv.grpcServer, &daemonService{server: srv})

	if opts.SettingsPath != "" {
		w, err := watcher.New(opts.SettingsPath, func() (*models.Settings, error) {
			return config.LoadSettingsFrom(opts.SettingsPath)
		})
		if err != nil {
			log.Printf("[watcher] settings reload disabled: %v", err)
		} else {
			srv.watcher = w
		}
	}

	return srv, nil
}

func openStore(backend string) (monitor.Store, error) {
	switch backend {
	case models.BackendNone:
		return monitor.NopStore{}, nil
	case models.BackendSQLite:
		path, err := config.GlobalStateDB()
		if err != nil {
			return nil, err
		}
		store, err := monitor.OpenSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		path, err := config.GlobalStateFile()
		if err != nil {
			return nil, err
		}
		return monitor.NewJSONStore(path), nil
	}
}

// Port returns the gRPC control port.
func (s *Server) Port() int {
	return s.port
}

// HTTPPort returns the port the ping listener bound after probing.
func (s *Server) HTTPPort() int {
	return s.http.Port()
}

// Dispatcher returns the alert dispatcher. The caller runs its loop on the
// goroutine that owns the UI.
func (s *Server) Dispatcher() *alert.Dispatcher {
	return s.dispatcher
}

// Serve runs the HTTP and gRPC servers until Stop. It returns the first
// server error, or nil after a clean stop.
func (s *Server) Serve() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			log.Printf("[watcher] settings reload disabled: %v", err)
		} else {
			go s.watchSettings()
		}
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- s.http.Serve()
	}()
	go func() {
		errCh <- s.grpcServer.Serve(s.grpcListener)
	}()

	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			return err
		}
	}
	return nil
}

// Stop shuts both servers down and flushes the counters one last time.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.watcher != nil {
			s.watcher.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(ctx); err != nil {
			log.Printf("[listener] shutdown: %v", err)
		}
		s.grpcServer.GracefulStop()

		if err := s.state.Close(); err != nil {
			log.Printf("[store] %v", err)
		}
	})
}

func (s *Server) watchSettings() {
	for {
		select {
		case <-s.done:
			return
		case next := <-s.watcher.Updates():
			s.applySettings(next)
		}
	}
}

func (s *Server) applySettings(next *models.Settings) {
	s.settingsMu.Lock()
	prev := s.settings
	s.settings = next
	s.settingsMu.Unlock()

	s.dispatcher.Reconfigure(alert.ConfigFromSettings(next))
	if next.Listen != prev.Listen || next.State != prev.State || next.Metrics != prev.Metrics {
		log.Printf("[watcher] listen, state and metrics changes take effect after a restart")
	}
}

// Trigger records a ping and posts an alert event. It never waits for the
// alert to appear.
func (s *Server) Trigger(source string, count int) monitor.Trigger {
	trig, err := s.state.Record(source, count)
	if err != nil {
		log.Printf("[store] %v", err)
		s.metrics.PersistFailed()
	}
	s.metrics.PingReceived(trig.Source)
	s.dispatcher.Trigger()
	return trig
}

// Status returns today's counters with uptime and alert visibility.
func (s *Server) Status() models.Status {
	st := s.state.Status()
	st.AlertActive = s.dispatcher.Active()
	return st
}

// ToggleSound flips the sound flag.
func (s *Server) ToggleSound() bool {
	enabled, err := s.state.ToggleSound()
	if err != nil {
		log.Printf("[store] %v", err)
		s.metrics.PersistFailed()
	}
	return enabled
}

// Acknowledge clears the pending count.
func (s *Server) Acknowledge() models.Status {
	if err := s.state.Acknowledge(); err != nil {
		log.Printf("[store] %v", err)
		s.metrics.PersistFailed()
	}
	return s.Status()
}

// Reset zeroes today's counters.
func (s *Server) Reset() models.Status {
	if err := s.state.Reset(); err != nil {
		log.Printf("[store] %v", err)
		s.metrics.PersistFailed()
	}
	return s.Status()
}

// Dismiss asks the dispatcher to close the active alert.
func (s *Server) Dismiss() bool {
	return s.dispatcher.Dismiss()
}

// RequestShutdown asks the UI loop to quit. Callers on any goroutine may use it.
func (s *Server) RequestShutdown() {
	log.Println("Shutdown requested")
	s.dispatcher.RequestQuit()
}

// History returns per-day totals, newest first.
func (s *Server) History(limit int) ([]models.DaySummary, error) {
	return s.state.History(limit)
}
