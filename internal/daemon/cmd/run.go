package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/watchfire-io/pingwatch/internal/buildinfo"
	"github.com/watchfire-io/pingwatch/internal/config"
	"github.com/watchfire-io/pingwatch/internal/daemon/alert"
	"github.com/watchfire-io/pingwatch/internal/daemon/server"
	"github.com/watchfire-io/pingwatch/internal/daemon/tray"
	"github.com/watchfire-io/pingwatch/internal/models"
)

func runDaemon() error {
	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("daemon already running on port %d (PID %d)", info.HTTPPort, info.PID)
	}

	if logFile := openRunLog(); logFile != nil {
		defer logFile.Close()
	}

	path, err := resolveSettingsPath()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettingsFrom(path)
	if err != nil {
		return err
	}

	opts := server.Options{
		Settings:     settings,
		Port:         controlPort,
		HTTPPort:     httpPort,
		SettingsPath: path,
	}

	if foreground {
		log.Println("Running in foreground mode (no system tray)")
		return runForeground(opts)
	}
	log.Println("Running in background mode (with system tray)")
	runWithTray(opts)
	return nil
}

// openRunLog tees the standard logger into a per-run file under
// ~/.pingwatch/logs. The tray daemon has no terminal, so this is the only
// place its output lands.
func openRunLog() *os.File {
	mode := "tray"
	if foreground {
		mode = "foreground"
	}
	entry, f, err := config.CreateDaemonLog(buildinfo.Version, mode, os.Getpid(), time.Now())
	if err != nil {
		log.Printf("Failed to open run log: %v", err)
		return nil
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	if err := config.PruneLogs(config.MaxDaemonLogs); err != nil {
		log.Printf("Failed to prune old logs: %v", err)
	}
	log.Printf("Logging to %s", entry.LogID)
	return f
}

func presenters(settings *models.Settings, primary alert.Presenter) alert.Presenter {
	p := alert.MultiPresenter{primary}
	if settings.Alert.Toast {
		p = append(p, alert.ToastPresenter{})
	}
	return p
}

func announce(srv *server.Server) error {
	info := models.NewDaemonInfo(server.ControlHost, srv.Port(), srv.HTTPPort(), os.Getpid())
	if err := config.SaveDaemonInfo(info); err != nil {
		return fmt.Errorf("failed to write daemon info: %w", err)
	}
	log.Printf("Daemon started: pings on http://127.0.0.1:%d, control on port %d (PID %d)",
		srv.HTTPPort(), srv.Port(), os.Getpid())
	return nil
}

func cleanup(srv *server.Server) {
	if srv != nil {
		srv.Stop()
	}
	if err := config.RemoveDaemonInfo(); err != nil {
		log.Printf("Failed to remove daemon info: %v", err)
	}
	fmt.Println("Daemon stopped")
}

// quitOnSignal turns SIGINT/SIGTERM into a quit request on the UI loop.
func quitOnSignal(srv *server.Server) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down...", sig)
		srv.RequestShutdown()
	}()
}

// runForeground runs the alert loop on the main goroutine without a tray.
func runForeground(opts server.Options) error {
	opts.Presenter = presenters(opts.Settings, alert.LogPresenter{})

	srv, err := server.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if err := announce(srv); err != nil {
		srv.Stop()
		return err
	}
	defer cleanup(srv)

	go func() {
		if err := srv.Serve(); err != nil {
			log.Printf("Server error: %v", err)
			srv.RequestShutdown()
		}
	}()
	quitOnSignal(srv)

	return srv.Dispatcher().Run(context.Background())
}

// runWithTray runs the daemon with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runWithTray(opts server.Options) {
	// The tray is built before the server exists, so menu callbacks go
	// through a wrapper that resolves the server lazily.
	lazyState := server.NewHandle(tray.Quit)

	opts.Presenter = presenters(opts.Settings, tray.Presenter{})
	opts.OnQuit = tray.Quit

	onStart := func() {
		srv, err := server.New(opts)
		if err != nil {
			log.Fatalf("Failed to create server: %v", err)
		}
		if err := announce(srv); err != nil {
			log.Fatalf("%v", err)
		}
		lazyState.Set(srv)

		go func() {
			if err := srv.Serve(); err != nil {
				log.Printf("Server error: %v", err)
				srv.RequestShutdown()
			}
		}()
		go func() {
			if err := srv.Dispatcher().Run(context.Background()); err != nil {
				log.Printf("Alert loop stopped: %v", err)
			}
		}()
		quitOnSignal(srv)
	}

	onExit := func() {
		cleanup(lazyState.Get())
	}

	tray.Run(lazyState, onStart, onExit)
}
