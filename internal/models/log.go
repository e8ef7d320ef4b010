package models

// LogEntry describes one daemon run's log file.
type LogEntry struct {
	LogID     string `yaml:"log_id"`
	PID       int    `yaml:"pid"`
	Version   string `yaml:"version"`
	Mode      string `yaml:"mode"`
	StartedAt string `yaml:"started_at"`
}
