package shieldbar

import (
	"fmt"
	"log"
)

// Sender is the control that triggered a click or a menu action.
type Sender interface {
	// Bounds returns the frame of the control in its own coordinate space.
	Bounds() Rect
}

// Clickable receives click events from a status indicator.
type Clickable interface {
	OnClick(sender Sender)
}

// Anchor describes where a popover is attached.
type Anchor struct {
	// Control the popover is shown relative to.
	Sender Sender

	// Bounds of the control at the time of the click.
	Bounds Rect

	// Preferred edge of Bounds the popover is attached to.
	Edge Edge
}

// Surface is the popover owned by the toolkit.
//
// The toolkit may close a shown surface on its own, e.g. when the user clicks
// outside of it, without notifying anyone. IsShown must therefore report the
// live toolkit state on every call.
type Surface interface {
	IsShown() bool
	Show(anchor Anchor) error
	Close() error

	// SetContent replaces the whole content view of the surface.
	SetContent(root *View) error
}

// ToggleCoordinator switches a [Surface] between hidden and shown on every
// click of the status indicator.
//
// The coordinator keeps no visibility flag: every click asks the surface for
// its live state, so a click that follows an autonomous dismissal shows the
// popover again instead of closing it a second time.
type ToggleCoordinator struct {
	surface Surface
}

// NewToggleCoordinator returns a new [ToggleCoordinator] owning surface.
func NewToggleCoordinator(surface Surface) (*ToggleCoordinator, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}

	return &ToggleCoordinator{surface: surface}, nil
}

// Toggle closes the surface if it is shown, and shows it below sender
// otherwise.
func (t *ToggleCoordinator) Toggle(sender Sender) error {
	if t.surface.IsShown() {
		if err := t.surface.Close(); err != nil {
			return fmt.Errorf("toggle: close: %w", err)
		}

		return nil
	}

	if sender == nil {
		return fmt.Errorf("toggle: %w", ErrNoSender)
	}

	anchor := Anchor{
		Sender: sender,
		Bounds: sender.Bounds(),
		Edge:   EdgeBelow,
	}

	if err := t.surface.Show(anchor); err != nil {
		return fmt.Errorf("toggle: show: %w", err)
	}

	return nil
}

// OnClick implements [Clickable]. Toolkit callbacks have no error return, so
// failures are logged.
func (t *ToggleCoordinator) OnClick(sender Sender) {
	if err := t.Toggle(sender); err != nil {
		log.Printf("popover: %v", err)
	}
}
