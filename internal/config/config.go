// Package config handles loading and watching the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/shelepuginivan/shieldbar"
)

const (
	// DirName is the name of the configuration directory inside the user
	// configuration directory.
	DirName = "shieldbar"

	// FileName is the name of the configuration file.
	FileName = "config.yaml"
)

// Modes accepted in the mode field.
const (
	ModePopover = "popover"
	ModeMenu    = "menu"
)

// MacSecurityPane opens the Privacy & Security pane of System Settings.
const MacSecurityPane = "x-apple.systempreferences:com.apple.preference.security"

// Config is the content of config.yaml.
type Config struct {
	Mode           string        `yaml:"mode"`
	Icon           string        `yaml:"icon"`
	Popover        PopoverConfig `yaml:"popover"`
	PreferencesURL string        `yaml:"preferences_url"`
}

// PopoverConfig configures the popover content.
type PopoverConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Title  string  `yaml:"title"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}

// Path returns the path to config.yaml inside the user configuration
// directory, e.g. ~/.config/shieldbar/config.yaml.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DirName, FileName), nil
}

// Load reads, normalizes and validates the configuration at path. A missing
// file yields [Default].
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}

	Normalize(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Options converts the configuration to application options.
func (c *Config) Options() shieldbar.Options {
	opts := shieldbar.DefaultOptions()

	if c.Mode == ModeMenu {
		opts.Mode = shieldbar.ModeMenu
	}
	opts.Icon = c.Icon
	opts.Size = shieldbar.Size{Width: c.Popover.Width, Height: c.Popover.Height}
	opts.Layout.Title = c.Popover.Title
	opts.PreferencesURL = c.PreferencesURL

	return opts
}

// defaultMode returns the mode supported by the toolkit backend of the
// current platform. Only the macOS backend has a popover.
func defaultMode() string {
	if runtime.GOOS == "darwin" {
		return ModePopover
	}
	return ModeMenu
}

func defaultPreferencesURL() string {
	if runtime.GOOS == "darwin" {
		return MacSecurityPane
	}
	return ""
}
