package shieldbar

import "fmt"

// StatusItemHost registers status indicators with the host shell.
type StatusItemHost interface {
	// Create registers a status indicator with the given symbol and returns
	// its handle. The indicator is visible as soon as Create returns.
	Create(icon string) (StatusItem, error)
}

// StatusItem is the backend handle of a registered status indicator.
type StatusItem interface {
	// SetMenu installs a drop-down menu. Selecting an entry calls
	// target.Dispatch with the entry handler.
	SetMenu(actions []MenuAction, target ActionTarget) error

	// SetClickHandler makes every click on the indicator call c.OnClick.
	SetClickHandler(c Clickable) error
}

type attachment int

const (
	attachedNone attachment = iota
	attachedMenu
	attachedClick
)

// StatusIndicator is the status indicator of the application. It holds the
// icon identity and either a menu or a click handler, never both.
type StatusIndicator struct {
	item     StatusItem
	icon     string
	attached attachment
}

// NewStatusIndicator registers a status indicator with host.
func NewStatusIndicator(host StatusItemHost, icon string) (*StatusIndicator, error) {
	item, err := host.Create(icon)
	if err != nil {
		return nil, fmt.Errorf("create status indicator %q: %w", icon, err)
	}

	return &StatusIndicator{item: item, icon: icon}, nil
}

// Icon returns the symbol of the indicator.
func (s *StatusIndicator) Icon() string {
	return s.icon
}

// AttachMenu installs a menu of actions dispatched to target.
//
// AttachMenu fails with [ErrAlreadyAttached] if a menu or a click handler was
// attached before.
func (s *StatusIndicator) AttachMenu(actions []MenuAction, target ActionTarget) error {
	if s.attached != attachedNone {
		return fmt.Errorf("attach menu: %w", ErrAlreadyAttached)
	}

	if err := s.item.SetMenu(actions, target); err != nil {
		return fmt.Errorf("attach menu: %w", err)
	}

	s.attached = attachedMenu

	return nil
}

// AttachClickHandler makes clicks on the indicator call c.
//
// AttachClickHandler fails with [ErrAlreadyAttached] if a menu or a click
// handler was attached before.
func (s *StatusIndicator) AttachClickHandler(c Clickable) error {
	if s.attached != attachedNone {
		return fmt.Errorf("attach click handler: %w", ErrAlreadyAttached)
	}

	if err := s.item.SetClickHandler(c); err != nil {
		return fmt.Errorf("attach click handler: %w", err)
	}

	s.attached = attachedClick

	return nil
}
