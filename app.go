package shieldbar

import (
	"fmt"
	"log"
)

// Version of the application, shown in the popover footer. It is set at link
// time with -ldflags "-X github.com/shelepuginivan/shieldbar.Version=...".
var Version = "0.1.0"

// Toolkit is the host windowing toolkit as seen by the application. Every
// method except Post must be called on the UI thread.
type Toolkit interface {
	StatusItemHost
	Notifier

	// NewSurface allocates the popover surface. Backends without popovers
	// return [ErrUnsupported].
	NewSurface(size Size) (Surface, error)

	// OpenURL opens url with the default handler of the desktop.
	OpenURL(url string) error

	// Terminate stops the event loop. The process exits once it returns.
	Terminate()

	// Post schedules fn to run on the UI thread. It is safe to call from
	// any goroutine.
	Post(fn func())
}

// Mode selects how the status indicator reacts to clicks.
type Mode int

const (
	// ModePopover toggles the popover on every click.
	ModePopover Mode = iota

	// ModeMenu shows a drop-down menu of actions.
	ModeMenu
)

func (m Mode) String() string {
	switch m {
	case ModePopover:
		return "popover"
	case ModeMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// Options configure an [App].
type Options struct {
	Mode Mode

	// Symbol of the status indicator.
	Icon string

	// Content size of the popover.
	Size Size

	Layout Layout

	// Menu entries in menu mode.
	Menu []MenuAction

	// URL opened by the security preferences action. Empty disables the
	// effect, the notification is still emitted.
	PreferencesURL string
}

// DefaultOptions returns the options of a popover application.
func DefaultOptions() Options {
	return Options{
		Mode:   ModePopover,
		Icon:   "shield.fill",
		Size:   DefaultSize,
		Layout: DefaultLayout(),
		Menu:   DefaultMenu(),
	}
}

// App is the application context. It owns the status indicator and the
// popover surface; handlers reach them through the App instead of global
// state.
type App struct {
	tk   Toolkit
	rows RowProvider
	opts Options

	indicator  *StatusIndicator
	surface    Surface
	toggle     *ToggleCoordinator
	dispatcher *Dispatcher
	started    bool
}

// New returns a new [App]. Nothing is registered with the toolkit until
// [App.Start] is called.
func New(tk Toolkit, rows RowProvider, opts Options) *App {
	a := &App{
		tk:         tk,
		rows:       rows,
		opts:       opts,
		dispatcher: NewDispatcher(tk),
	}

	a.dispatcher.Register(Action{
		ID:      HandlerUpdateStatus,
		Name:    "Update Status",
		Message: "Status updated successfully.",
		Effect: func(Sender) error {
			return a.Refresh()
		},
	})

	a.dispatcher.Register(Action{
		ID:      HandlerOpenSecurityPrefs,
		Name:    "Security Preferences",
		Message: "Opening Security Preferences...",
		Effect: func(Sender) error {
			if a.opts.PreferencesURL == "" {
				return nil
			}

			return a.tk.OpenURL(a.opts.PreferencesURL)
		},
	})

	a.dispatcher.Register(Action{
		ID:      HandlerQuit,
		Name:    "Quit",
		Message: "Application is quitting.",
		Effect: func(Sender) error {
			a.tk.Terminate()
			return nil
		},
	})

	return a
}

// Dispatcher returns the action dispatcher of the application.
func (a *App) Dispatcher() *Dispatcher {
	return a.dispatcher
}

// Indicator returns the status indicator, or nil before [App.Start].
func (a *App) Indicator() *StatusIndicator {
	return a.indicator
}

// Surface returns the popover surface, or nil in menu mode and before
// [App.Start].
func (a *App) Surface() Surface {
	return a.surface
}

// Start registers the status indicator and, depending on the mode, either
// attaches the menu or allocates the popover and binds it to clicks. In
// popover mode the surface is allocated first, so that a toolkit without
// popovers fails before an indicator is shown.
//
// Start must run once, on the UI thread. Its errors indicate a misconfigured
// runtime and are meant to abort the process.
func (a *App) Start() error {
	if a.started {
		return ErrAlreadyStarted
	}

	switch a.opts.Mode {
	case ModeMenu:
		indicator, err := NewStatusIndicator(a.tk, a.opts.Icon)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}

		if err := indicator.AttachMenu(a.opts.Menu, dispatchLogged{a.dispatcher}); err != nil {
			return fmt.Errorf("start: %w", err)
		}

		a.indicator = indicator
	case ModePopover:
		surface, err := a.tk.NewSurface(a.opts.Size)
		if err != nil {
			return fmt.Errorf("start: allocate popover: %w", err)
		}

		toggle, err := NewToggleCoordinator(surface)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}

		if err := surface.SetContent(a.build()); err != nil {
			return fmt.Errorf("start: install popover content: %w", err)
		}

		indicator, err := NewStatusIndicator(a.tk, a.opts.Icon)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}

		if err := indicator.AttachClickHandler(toggle); err != nil {
			return fmt.Errorf("start: %w", err)
		}

		a.indicator = indicator
		a.surface = surface
		a.toggle = toggle
	default:
		return fmt.Errorf("start: unknown mode %d", a.opts.Mode)
	}

	a.started = true

	return nil
}

// Refresh rebuilds the popover content from the row provider and replaces
// the content of the surface. It does nothing in menu mode.
func (a *App) Refresh() error {
	if !a.started {
		return ErrNotStarted
	}

	if a.surface == nil {
		return nil
	}

	if err := a.surface.SetContent(a.build()); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	return nil
}

// Reload applies changed options to a running application. Only the layout
// and the preferences URL can change at runtime; other changes are logged
// and take effect after a restart.
func (a *App) Reload(opts Options) error {
	if opts.Mode != a.opts.Mode || opts.Icon != a.opts.Icon || opts.Size != a.opts.Size {
		log.Printf("reload: mode, icon and popover size changes apply after restart")
	}

	a.opts.Layout = opts.Layout
	a.opts.PreferencesURL = opts.PreferencesURL

	return a.Refresh()
}

func (a *App) build() *View {
	return BuildView(a.opts.Size, a.rows.Rows(), a.opts.Layout)
}
