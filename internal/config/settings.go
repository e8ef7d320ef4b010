package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/watchfire-io/pingwatch/internal/models"
)

// EnvPrefix is the prefix for environment overrides. A double underscore
// separates sections: PINGWATCH_LISTEN__PORT=17000 sets listen.port.
const EnvPrefix = "PINGWATCH_"

// LoadSettings loads the global settings from ~/.pingwatch/settings.yaml.
// Defaults apply when the file is missing; environment variables override both.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom loads settings with the given file as the middle layer.
func LoadSettingsFrom(path string) (*models.Settings, error) {
	k := koanf.New(".")

	for key, value := range defaultValues(models.NewSettings()) {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if path != "" && FileExists(path) {
		if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load settings from %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	var settings models.Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := ValidateSettings(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// ValidateSettings checks field constraints declared on the settings structs.
func ValidateSettings(settings *models.Settings) error {
	if err := validator.New().Struct(settings); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// SaveSettings saves the global settings to ~/.pingwatch/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

func defaultValues(s *models.Settings) map[string]interface{} {
	return map[string]interface{}{
		"version":               s.Version,
		"listen.host":           s.Listen.Host,
		"listen.port":           s.Listen.Port,
		"listen.probe_range":    s.Listen.ProbeRange,
		"alert.policy":          s.Alert.Policy,
		"alert.timeout_seconds": s.Alert.TimeoutSeconds,
		"alert.toast":           s.Alert.Toast,
		"alert.title":           s.Alert.Title,
		"sound.enabled":         s.Sound.Enabled,
		"sound.file":            s.Sound.File,
		"state.backend":         s.State.Backend,
		"metrics.enabled":       s.Metrics.Enabled,
	}
}

// envTransform maps PINGWATCH_ALERT__TIMEOUT_SECONDS to alert.timeout_seconds.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
