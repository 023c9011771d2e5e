package shieldbar

import (
	"fmt"
	"log"
)

// HandlerID identifies an action handler.
type HandlerID string

// Built-in action handlers.
const (
	HandlerUpdateStatus      HandlerID = "update-status"
	HandlerOpenSecurityPrefs HandlerID = "open-security-prefs"
	HandlerQuit              HandlerID = "quit"
)

// MenuAction is an entry of the status indicator menu.
type MenuAction struct {
	// Text of the entry.
	Title string

	// Symbol shown next to the title.
	Icon string

	// Keyboard shortcut, a single character or empty.
	Key string

	// Handler dispatched when the entry is selected.
	Handler HandlerID

	// Separator entries draw a line and ignore every other field.
	Separator bool
}

// SeparatorAction returns a separator entry.
func SeparatorAction() MenuAction {
	return MenuAction{Separator: true}
}

// DefaultMenu returns the menu of the status indicator.
func DefaultMenu() []MenuAction {
	return []MenuAction{
		{Title: "Update Status", Icon: "arrow.clockwise", Handler: HandlerUpdateStatus},
		{Title: "Security Preferences...", Icon: "gearshape.fill", Handler: HandlerOpenSecurityPrefs},
		SeparatorAction(),
		{Title: "Quit", Icon: "xmark.circle.fill", Key: "q", Handler: HandlerQuit},
	}
}

// Notifier delivers user-visible notifications. Delivery is best-effort.
type Notifier interface {
	Notify(title, message string) error
}

// ActionTarget receives menu selections.
type ActionTarget interface {
	Dispatch(id HandlerID, sender Sender) error
}

// Action is a registered action handler.
type Action struct {
	ID HandlerID

	// Name of the action, used as the notification title.
	Name string

	// Body of the notification.
	Message string

	// Effect runs after the notification was submitted. It may be nil.
	Effect func(sender Sender) error
}

// Dispatcher maps handler identifiers to actions.
//
// Dispatch is not reentrant. It relies on the toolkit delivering menu
// selections one at a time on the UI thread.
type Dispatcher struct {
	notifier Notifier
	actions  map[HandlerID]Action
}

// NewDispatcher returns an empty [Dispatcher] that notifies through n.
func NewDispatcher(n Notifier) *Dispatcher {
	return &Dispatcher{
		notifier: n,
		actions:  make(map[HandlerID]Action),
	}
}

// Register adds or replaces an action.
func (d *Dispatcher) Register(a Action) {
	d.actions[a.ID] = a
}

// Actions returns the registered handler identifiers.
func (d *Dispatcher) Actions() []HandlerID {
	ids := make([]HandlerID, 0, len(d.actions))
	for id := range d.actions {
		ids = append(ids, id)
	}

	return ids
}

// Dispatch runs the action registered for id: it emits exactly one
// notification titled with the action name, then performs the effect.
// Notification failures are ignored.
func (d *Dispatcher) Dispatch(id HandlerID, sender Sender) error {
	a, ok := d.actions[id]
	if !ok {
		return fmt.Errorf("dispatch %q: %w", id, ErrUnknownHandler)
	}

	if d.notifier != nil {
		_ = d.notifier.Notify(a.Name, a.Message)
	}

	if a.Effect == nil {
		return nil
	}

	if err := a.Effect(sender); err != nil {
		return fmt.Errorf("dispatch %q: %w", id, err)
	}

	return nil
}

// dispatchLogged adapts [Dispatcher.Dispatch] to toolkit callbacks, which have
// no error return.
type dispatchLogged struct {
	d *Dispatcher
}

func (l dispatchLogged) Dispatch(id HandlerID, sender Sender) error {
	if err := l.d.Dispatch(id, sender); err != nil {
		log.Printf("menu: %v", err)
		return err
	}

	return nil
}
