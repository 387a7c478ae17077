// Package config provides persistent user configuration: general settings,
// style presets and color schemes. A Config is an explicitly constructed
// value handed to the components that need it; there is no process-wide
// instance, so tests can work on isolated directories.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configFile  = "config.json"
	schemesFile = "color_schemes.json"
	presetsFile = "style_presets.json"
)

// Settings are the general user settings persisted in config.json.
type Settings struct {
	LastDirectory       string            `json:"last_directory,omitempty"`
	LastExportDirectory string            `json:"last_export_directory,omitempty"`
	ExportDPI           int               `json:"export_dpi"`
	DarkMode            bool              `json:"dark_mode"`
	AutoDetectEnabled   bool              `json:"auto_detection_enabled"`
	AutoDetectRules     map[string]string `json:"auto_detection_rules,omitempty"`
}

// Config bundles the persisted user configuration.
type Config struct {
	dir string

	Settings Settings

	// presets and userSchemes are keyed by name; built-in entries are
	// not stored here and never written to disk.
	presets     map[string]StylePreset
	userSchemes map[string][]string
}

// DefaultDir returns the per-user configuration directory.
func DefaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, "scatterforge")
}

// Load reads the configuration from dir, falling back to defaults for any
// file that does not exist. A missing directory is not an error.
func Load(dir string) *Config {
	c := &Config{
		dir: dir,
		Settings: Settings{
			ExportDPI:         300,
			AutoDetectEnabled: true,
			AutoDetectRules:   defaultDetectionRules(),
		},
		presets:     defaultPresets(),
		userSchemes: make(map[string][]string),
	}

	if data, err := os.ReadFile(filepath.Join(dir, configFile)); err == nil {
		_ = json.Unmarshal(data, &c.Settings)
		if c.Settings.AutoDetectRules == nil {
			c.Settings.AutoDetectRules = defaultDetectionRules()
		}
		if c.Settings.ExportDPI <= 0 {
			c.Settings.ExportDPI = 300
		}
	}
	if data, err := os.ReadFile(filepath.Join(dir, presetsFile)); err == nil {
		var presets map[string]StylePreset
		if json.Unmarshal(data, &presets) == nil && len(presets) > 0 {
			c.presets = presets
		}
	}
	if data, err := os.ReadFile(filepath.Join(dir, schemesFile)); err == nil {
		_ = json.Unmarshal(data, &c.userSchemes)
	}
	return c
}

// Dir returns the directory this configuration was loaded from.
func (c *Config) Dir() string {
	return c.dir
}

// Save writes all configuration files back to the config directory.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := writeJSON(filepath.Join(c.dir, configFile), c.Settings); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(c.dir, presetsFile), c.presets); err != nil {
		return err
	}
	return writeJSON(filepath.Join(c.dir, schemesFile), c.userSchemes)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, data, 0644)
}
