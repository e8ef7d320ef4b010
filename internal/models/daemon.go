package models

import "time"

// DaemonInfo represents the daemon connection information.
// This corresponds to ~/.pingwatch/daemon.yaml.
type DaemonInfo struct {
	Version   int       `yaml:"version"`
	Host      string    `yaml:"host"`
	Port      int       `yaml:"port"`      // gRPC control port
	HTTPPort  int       `yaml:"http_port"` // ping listener and dashboard
	PID       int       `yaml:"pid"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewDaemonInfo creates a new daemon info with current values.
func NewDaemonInfo(host string, port, httpPort, pid int) *DaemonInfo {
	return &DaemonInfo{
		Version:   1,
		Host:      host,
		Port:      port,
		HTTPPort:  httpPort,
		PID:       pid,
		StartedAt: time.Now().UTC(),
	}
}
