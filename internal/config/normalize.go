package config

import (
	"strings"

	"github.com/shelepuginivan/shieldbar"
)

// Normalize fills unset fields with defaults. It must be called before
// Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	if cfg.Mode == "" {
		cfg.Mode = defaultMode()
	}

	if cfg.Icon == "" {
		cfg.Icon = "shield.fill"
	}

	if cfg.Popover.Width == 0 {
		cfg.Popover.Width = shieldbar.DefaultSize.Width
	}
	if cfg.Popover.Height == 0 {
		cfg.Popover.Height = shieldbar.DefaultSize.Height
	}
	if cfg.Popover.Title == "" {
		cfg.Popover.Title = shieldbar.DefaultLayout().Title
	}

	if cfg.PreferencesURL == "" {
		cfg.PreferencesURL = defaultPreferencesURL()
	}
}
