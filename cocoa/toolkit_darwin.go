//go:build darwin

package cocoa

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/gen2brain/beeep"
	"github.com/progrium/darwinkit/dispatch"
	"github.com/progrium/darwinkit/macos/appkit"
	"github.com/progrium/darwinkit/macos/foundation"

	"github.com/shelepuginivan/shieldbar"
)

func init() {
	// AppKit must run on the main thread.
	runtime.LockOSThread()
}

// Toolkit implements shieldbar.Toolkit with AppKit.
type Toolkit struct {
	app      appkit.Application
	delegate *appkit.ApplicationDelegate
	items    []*Item
}

// New returns a [Toolkit] for the shared application. It must be called on
// the main goroutine.
func New() *Toolkit {
	return &Toolkit{
		app:      appkit.Application_SharedApplication(),
		delegate: &appkit.ApplicationDelegate{},
	}
}

// Run runs ready once the application has finished launching, then runs the
// AppKit event loop until ctx is done or [Toolkit.Terminate] is called.
//
// Terminating the application exits the process, so Run only returns when
// ready fails.
func (tk *Toolkit) Run(ctx context.Context, ready func() error) error {
	var readyErr error

	tk.delegate.SetApplicationDidFinishLaunching(func(foundation.Notification) {
		// Accessory applications have no Dock icon and no main menu.
		tk.app.SetActivationPolicy(appkit.ApplicationActivationPolicyAccessory)

		if ready != nil {
			if err := ready(); err != nil {
				readyErr = err
				tk.app.Stop(nil)
				return
			}
		}

		go func() {
			<-ctx.Done()
			tk.Post(tk.Terminate)
		}()
	})

	tk.app.SetDelegate(tk.delegate)
	tk.app.Run()

	return readyErr
}

// Post schedules fn on the main queue.
func (tk *Toolkit) Post(fn func()) {
	dispatch.MainQueue().DispatchAsync(fn)
}

func (tk *Toolkit) Terminate() {
	tk.app.Terminate(nil)
}

// Create adds an item to the system status bar. icon is an SF Symbol name.
func (tk *Toolkit) Create(icon string) (shieldbar.StatusItem, error) {
	item := newItem(icon)
	tk.items = append(tk.items, item)

	return item, nil
}

// NewSurface returns a popover with content of the given size.
func (tk *Toolkit) NewSurface(size shieldbar.Size) (shieldbar.Surface, error) {
	return newSurface(size), nil
}

// Notify posts a user notification.
func (tk *Toolkit) Notify(title, message string) error {
	if err := beeep.Notify(title, message, ""); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	return nil
}

// OpenURL opens url with the handler registered in Launch Services.
func (tk *Toolkit) OpenURL(url string) error {
	if err := exec.Command("/usr/bin/open", url).Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}

	return nil
}
