package models

// ListenConfig controls the loopback ping listener.
type ListenConfig struct {
	Host       string `yaml:"host" koanf:"host" validate:"required"`
	Port       int    `yaml:"port" koanf:"port" validate:"min=1,max=65535"`
	ProbeRange int    `yaml:"probe_range" koanf:"probe_range" validate:"min=1,max=1000"`
}

// AlertConfig controls how alert surfaces are presented.
type AlertConfig struct {
	Policy         string `yaml:"policy" koanf:"policy" validate:"oneof=coalesce queue"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds" validate:"min=0"` // 0 = wait for dismissal
	Toast          bool   `yaml:"toast" koanf:"toast"`
	Title          string `yaml:"title" koanf:"title"`
}

// SoundConfig controls the alert sound.
type SoundConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"` // initial toggle value
	File    string `yaml:"file" koanf:"file"`      // empty = system beep
}

// StateConfig selects where counters are persisted.
type StateConfig struct {
	Backend string `yaml:"backend" koanf:"backend" validate:"oneof=json sqlite none"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" koanf:"enabled"`
}

// Settings represents global application settings.
// This corresponds to ~/.pingwatch/settings.yaml.
type Settings struct {
	Version int           `yaml:"version" koanf:"version"`
	Listen  ListenConfig  `yaml:"listen" koanf:"listen"`
	Alert   AlertConfig   `yaml:"alert" koanf:"alert"`
	Sound   SoundConfig   `yaml:"sound" koanf:"sound"`
	State   StateConfig   `yaml:"state" koanf:"state"`
	Metrics MetricsConfig `yaml:"metrics" koanf:"metrics"`
}

// Alert policies for overlapping pings.
const (
	PolicyCoalesce = "coalesce"
	PolicyQueue    = "queue"
)

// State backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendNone   = "none"
)

// DefaultListenPort is the fixed port pingers are configured against.
const DefaultListenPort = 16888

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Listen: ListenConfig{
			Host:       "127.0.0.1",
			Port:       DefaultListenPort,
			ProbeRange: 10,
		},
		Alert: AlertConfig{
			Policy:         PolicyCoalesce,
			TimeoutSeconds: 0,
			Toast:          true,
			Title:          "Pingwatch alert",
		},
		Sound: SoundConfig{
			Enabled: true,
		},
		State: StateConfig{
			Backend: BackendJSON,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}
