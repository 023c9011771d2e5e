package config

import (
	"fmt"

	"github.com/shelepuginivan/shieldbar"
)

// Validate checks configuration correctness. It does not mutate cfg.
func Validate(cfg *Config) error {
	switch cfg.Mode {
	case ModePopover, ModeMenu:
	default:
		return fmt.Errorf("mode %q: must be %q or %q", cfg.Mode, ModePopover, ModeMenu)
	}

	minSize := shieldbar.DefaultLayout().MinSize()

	if cfg.Popover.Width < minSize.Width {
		return fmt.Errorf("popover.width %v: must be at least %v", cfg.Popover.Width, minSize.Width)
	}

	if cfg.Popover.Height < minSize.Height {
		return fmt.Errorf("popover.height %v: must be at least %v", cfg.Popover.Height, minSize.Height)
	}

	return nil
}
