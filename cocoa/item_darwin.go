//go:build darwin

package cocoa

import (
	"log"

	"github.com/progrium/darwinkit/helper/action"
	"github.com/progrium/darwinkit/macos/appkit"
	"github.com/progrium/darwinkit/objc"

	"github.com/shelepuginivan/shieldbar"
)

// viewSender is a sender backed by an AppKit view.
type viewSender interface {
	shieldbar.Sender
	view() appkit.IView
}

// buttonSender is the status item button that received a click.
type buttonSender struct {
	button appkit.StatusBarButton
}

func (s buttonSender) Bounds() shieldbar.Rect {
	return fromRect(s.button.Bounds())
}

func (s buttonSender) view() appkit.IView {
	return s.button
}

// Item is an NSStatusItem. It implements shieldbar.StatusItem.
type Item struct {
	item appkit.StatusItem
	menu appkit.Menu
}

func newItem(icon string) *Item {
	item := appkit.StatusBar_SystemStatusBar().StatusItemWithLength(appkit.VariableStatusItemLength)
	objc.Retain(&item)

	image := symbolImage(icon)
	image.SetTemplate(true)
	item.Button().SetImage(image)

	return &Item{item: item}
}

// SetMenu installs an NSMenu with one item per action. Menu callbacks run on
// the main thread and dispatch synchronously.
func (i *Item) SetMenu(actions []shieldbar.MenuAction, target shieldbar.ActionTarget) error {
	menu := appkit.NewMenuWithTitle("shieldbar")
	objc.Retain(&menu)

	for _, a := range actions {
		if a.Separator {
			menu.AddItem(appkit.MenuItem_SeparatorItem())
			continue
		}

		handler := a.Handler
		menuItem := appkit.NewMenuItemWithAction(a.Title, a.Key, func(objc.Object) {
			if err := target.Dispatch(handler, nil); err != nil {
				log.Printf("menu: %v", err)
			}
		})

		if a.Icon != "" {
			menuItem.SetImage(symbolImage(a.Icon))
		}

		menu.AddItem(menuItem)
	}

	i.menu = menu
	i.item.SetMenu(menu)

	return nil
}

// SetClickHandler binds the status item button to c.
func (i *Item) SetClickHandler(c shieldbar.Clickable) error {
	button := i.item.Button()

	action.Set(button, func(objc.Object) {
		c.OnClick(buttonSender{button: button})
	})

	return nil
}
