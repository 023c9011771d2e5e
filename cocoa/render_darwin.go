//go:build darwin

package cocoa

import (
	"github.com/progrium/darwinkit/macos/appkit"
	"github.com/progrium/darwinkit/macos/foundation"

	"github.com/shelepuginivan/shieldbar"
)

// render builds the AppKit view hierarchy of tree. Frames of the tree use a
// bottom-left origin, as AppKit views do, so they are applied unchanged.
func render(tree *shieldbar.View) appkit.IView {
	view := renderNode(tree)

	// Children of a scroll view live in its document view.
	parent := view
	if tree.Kind == shieldbar.KindScroll {
		document := appkit.NewView()
		document.SetFrame(foundation.Rect{
			Size: foundation.Size{Width: tree.Frame.Size.Width, Height: tree.Frame.Size.Height},
		})
		appkit.ScrollViewFrom(view.Ptr()).SetDocumentView(document)
		parent = document
	}

	for _, child := range tree.Children {
		parent.AddSubview(render(child))
	}

	return view
}

// renderNode creates the view of a single node, without its children.
func renderNode(node *shieldbar.View) appkit.View {
	var view appkit.View

	switch node.Kind {
	case shieldbar.KindEffect:
		effect := appkit.NewVisualEffectView()
		effect.SetMaterial(appkit.VisualEffectMaterialPopover)
		effect.SetBlendingMode(appkit.VisualEffectBlendingModeBehindWindow)
		effect.SetState(appkit.VisualEffectStateActive)
		view = effect.View

	case shieldbar.KindText:
		label := appkit.NewTextField()
		label.SetStringValue(node.Text)
		label.SetEditable(false)
		label.SetBordered(false)
		label.SetDrawsBackground(false)
		label.SetFont(nsFont(node.Font))
		label.SetTextColor(nsColor(node.Color))
		view = label.View

	case shieldbar.KindSymbol:
		image := appkit.ImageView_ImageViewWithImage(symbolImage(node.Symbol))
		image.SetContentTintColor(nsColor(node.Color))
		view = image.View

	case shieldbar.KindSeparator:
		box := appkit.NewBox()
		box.SetBoxType(appkit.BoxSeparator)
		view = box.View

	case shieldbar.KindScroll:
		scroll := appkit.NewScrollView()
		scroll.SetHasVerticalScroller(true)
		scroll.SetHasHorizontalScroller(false)
		scroll.SetAutohidesScrollers(true)
		scroll.SetDrawsBackground(false)
		view = scroll.View

	case shieldbar.KindIndicator:
		dot := appkit.NewBox()
		dot.SetBoxType(appkit.BoxCustom)
		dot.SetCornerRadius(node.Frame.Size.Width / 2)
		dot.SetFillColor(nsColor(node.Color))
		dot.SetBorderWidth(0)
		view = dot.View

	case shieldbar.KindButton:
		button := appkit.NewButton()
		button.SetTitle(node.Text)
		button.SetBezelStyle(appkit.BezelStyleRounded)
		button.SetControlSize(appkit.ControlSizeSmall)
		if node.Symbol != "" {
			button.SetImage(symbolImage(node.Symbol))
		}
		view = button.View

	default:
		view = appkit.NewView()
	}

	view.SetFrame(toRect(node.Frame))

	return view
}
