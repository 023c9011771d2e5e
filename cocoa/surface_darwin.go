//go:build darwin

package cocoa

import (
	"errors"

	"github.com/progrium/darwinkit/macos/appkit"
	"github.com/progrium/darwinkit/objc"

	"github.com/shelepuginivan/shieldbar"
)

var errNoAnchorView = errors.New("sender has no view to anchor the popover to")

// Surface is an NSPopover. It implements shieldbar.Surface.
//
// The popover is transient: AppKit closes it when the user clicks outside
// of it, so [Surface.IsShown] always asks the popover.
type Surface struct {
	popover    appkit.Popover
	controller appkit.ViewController
}

func newSurface(size shieldbar.Size) *Surface {
	controller := appkit.NewViewController()
	objc.Retain(&controller)

	popover := appkit.NewPopover()
	objc.Retain(&popover)
	popover.SetBehavior(appkit.PopoverBehaviorTransient)
	popover.SetAnimates(true)
	popover.SetContentSize(toSize(size))
	popover.SetContentViewController(controller)

	return &Surface{
		popover:    popover,
		controller: controller,
	}
}

func (s *Surface) IsShown() bool {
	return s.popover.IsShown()
}

// Show opens the popover next to the view of anchor.Sender.
func (s *Surface) Show(anchor shieldbar.Anchor) error {
	sender, ok := anchor.Sender.(viewSender)
	if !ok {
		return errNoAnchorView
	}

	s.popover.ShowRelativeToRectOfViewPreferredEdge(toRect(anchor.Bounds), sender.view(), rectEdge(anchor.Edge))

	return nil
}

func (s *Surface) Close() error {
	s.popover.PerformClose(nil)
	return nil
}

// SetContent replaces the content view of the popover with a rendering of
// tree.
func (s *Surface) SetContent(tree *shieldbar.View) error {
	s.controller.SetView(render(tree))
	return nil
}
