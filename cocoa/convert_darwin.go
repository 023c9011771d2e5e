//go:build darwin

package cocoa

import (
	"github.com/progrium/darwinkit/macos/appkit"
	"github.com/progrium/darwinkit/macos/foundation"

	"github.com/shelepuginivan/shieldbar"
)

// NSRectEdge values.
const (
	rectEdgeMinX foundation.RectEdge = 0
	rectEdgeMinY foundation.RectEdge = 1
	rectEdgeMaxX foundation.RectEdge = 2
	rectEdgeMaxY foundation.RectEdge = 3
)

func toRect(r shieldbar.Rect) foundation.Rect {
	return foundation.Rect{
		Origin: foundation.Point{X: r.Origin.X, Y: r.Origin.Y},
		Size:   foundation.Size{Width: r.Size.Width, Height: r.Size.Height},
	}
}

func fromRect(r foundation.Rect) shieldbar.Rect {
	return shieldbar.NewRect(r.Origin.X, r.Origin.Y, r.Size.Width, r.Size.Height)
}

func toSize(s shieldbar.Size) foundation.Size {
	return foundation.Size{Width: s.Width, Height: s.Height}
}

// rectEdge returns the edge of the positioning rect a popover opens from.
// Status bar buttons are not flipped, so below is the MinY edge.
func rectEdge(e shieldbar.Edge) foundation.RectEdge {
	switch e {
	case shieldbar.EdgeAbove:
		return rectEdgeMaxY
	case shieldbar.EdgeLeft:
		return rectEdgeMinX
	case shieldbar.EdgeRight:
		return rectEdgeMaxX
	default:
		return rectEdgeMinY
	}
}

func nsColor(c shieldbar.Color) appkit.Color {
	switch c {
	case shieldbar.ColorSecondaryLabel:
		return appkit.Color_SecondaryLabelColor()
	case shieldbar.ColorGreen:
		return appkit.Color_SystemGreenColor()
	case shieldbar.ColorOrange:
		return appkit.Color_SystemOrangeColor()
	case shieldbar.ColorRed:
		return appkit.Color_SystemRedColor()
	case shieldbar.ColorGray:
		return appkit.Color_SystemGrayColor()
	default:
		return appkit.Color_LabelColor()
	}
}

func nsFont(f shieldbar.Font) appkit.Font {
	if f.Size == 0 {
		return appkit.Font_SystemFontOfSize(13)
	}

	if f.Bold {
		return appkit.Font_SystemFontOfSizeWeight(f.Size, appkit.FontWeightSemibold)
	}

	return appkit.Font_SystemFontOfSize(f.Size)
}

// symbolImage returns the SF Symbol named symbol.
func symbolImage(symbol string) appkit.Image {
	return appkit.Image_ImageWithSystemSymbolNameAccessibilityDescription(symbol, symbol)
}
