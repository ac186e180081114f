package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcpalette/mcpalette/internal/util"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFileName = "config.json"
const DefaultSettingsFileName = "settings.yaml"

// getConfigDir returns the application's configuration directory path,
// honoring XDG_CONFIG_HOME when set.
func getConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mcpalette"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "mcpalette"), nil
}

// Variables to allow mocking in tests.
var getConfigPath = func() (string, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, DefaultConfigFileName), nil
}

var getSettingsPath = func() (string, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, DefaultSettingsFileName), nil
}

// GetDefaultConfig returns an empty source document: no servers, no
// environments.
func GetDefaultConfig() *Config {
	return &Config{
		Servers:      make(map[string]Server),
		Environments: make(map[string]*Environment),
	}
}

// GetDefaultSettings returns the default app settings.
func GetDefaultSettings() *Settings {
	backupPath := "~/.config/mcpalette/backups"
	if configDir, err := getConfigDir(); err == nil {
		backupPath = filepath.Join(configDir, "backups")
	}
	return &Settings{
		Backups: BackupSettings{
			Path:      backupPath,
			Retention: 10,
		},
	}
}

// Load reads the source document from the default path, creating an empty
// one when the file doesn't exist yet. The document is validated before it is
// returned; a broken reference fails the load.
func Load() (*Config, error) {
	configFilePath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			defaultCfg := GetDefaultConfig()
			if err := Save(defaultCfg); err != nil {
				return nil, fmt.Errorf("failed to create default config file: %w", err)
			}
			return defaultCfg, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", configFilePath, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", configFilePath, err)
	}

	// JSON null or absent maps come back nil; keep the invariants simple for
	// callers by always having maps.
	if cfg.Servers == nil {
		cfg.Servers = make(map[string]Server)
	}
	if cfg.Environments == nil {
		cfg.Environments = make(map[string]*Environment)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", configFilePath, err)
	}

	return &cfg, nil
}

// Save writes the source document to the default path. The write goes through
// a temp file and rename so a crash never corrupts the document.
func Save(cfg *Config) error {
	if cfg == nil {
		return errors.New("cannot save a nil config")
	}
	configFilePath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to determine config path for saving: %w", err)
	}

	configDir := filepath.Dir(configFilePath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory '%s': %w", configDir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON: %w", err)
	}
	data = append(data, '\n')

	if err := util.WriteFileAtomic(configFilePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file '%s': %w", configFilePath, err)
	}

	return nil
}

// LoadSettings reads settings.yaml, creating defaults when the file is
// missing.
func LoadSettings() (*Settings, error) {
	settingsPath, err := getSettingsPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine settings path: %w", err)
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			defaults := GetDefaultSettings()
			if err := SaveSettings(defaults); err != nil {
				return nil, fmt.Errorf("failed to create default settings file: %w", err)
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("failed to read settings file '%s': %w", settingsPath, err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file '%s': %w", settingsPath, err)
	}

	if settings.Backups.Path == "" {
		settings.Backups.Path = GetDefaultSettings().Backups.Path
	}
	if settings.Backups.Retention <= 0 {
		settings.Backups.Retention = GetDefaultSettings().Backups.Retention
	}

	return &settings, nil
}

// SaveSettings writes settings.yaml.
func SaveSettings(settings *Settings) error {
	if settings == nil {
		return errors.New("cannot save nil settings")
	}
	settingsPath, err := getSettingsPath()
	if err != nil {
		return fmt.Errorf("failed to determine settings path for saving: %w", err)
	}

	settingsDir := filepath.Dir(settingsPath)
	if err := os.MkdirAll(settingsDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory '%s': %w", settingsDir, err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := util.WriteFileAtomic(settingsPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file '%s': %w", settingsPath, err)
	}

	return nil
}
