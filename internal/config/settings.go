package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/codetray-io/codetray/internal/models"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "CODETRAY"

// envOverrides lists the settings that can be set from the environment,
// e.g. CODETRAY_EDITOR=nvim.
type envOverrides struct {
	Editor   string `envconfig:"EDITOR"`
	LogLevel string `envconfig:"LOG_LEVEL"`
	Strategy string `envconfig:"STRATEGY"`
}

// Strategy names accepted by tray.strategy.
const (
	StrategyAuto     = "auto"
	StrategyPatch    = "patch"
	StrategyRecreate = "recreate"
)

// LoadSettings loads the global settings from ~/.codetray/settings.yaml,
// applies environment overrides and validates the result.
// If the file doesn't exist, default settings are used.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(settings); err != nil {
		return nil, err
	}
	applyDefaults(settings)
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return settings, nil
}

// SaveSettings saves the global settings to ~/.codetray/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// ApplyEnv overlays CODETRAY_* environment variables onto settings.
func ApplyEnv(settings *models.Settings) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	if env.Editor != "" {
		settings.Editor.Command = env.Editor
	}
	if env.LogLevel != "" {
		settings.Log.Level = env.LogLevel
	}
	if env.Strategy != "" {
		settings.Tray.Strategy = env.Strategy
	}
	return nil
}

// applyDefaults fills fields a partial settings.yaml left empty.
func applyDefaults(settings *models.Settings) {
	defaults := models.NewSettings()
	if settings.Editor.Command == "" {
		settings.Editor.Command = defaults.Editor.Command
	}
	if settings.Tray.Tooltip == "" {
		settings.Tray.Tooltip = defaults.Tray.Tooltip
	}
	if settings.Tray.Strategy == "" {
		settings.Tray.Strategy = defaults.Tray.Strategy
	}
	if settings.Log.Level == "" {
		settings.Log.Level = defaults.Log.Level
	}
}

// ValidateSettings checks enumerated settings values.
func ValidateSettings(settings *models.Settings) error {
	switch settings.Tray.Strategy {
	case StrategyAuto, StrategyPatch, StrategyRecreate:
	default:
		return fmt.Errorf("unknown tray strategy %q", settings.Tray.Strategy)
	}
	switch settings.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", settings.Log.Level)
	}
	return nil
}
