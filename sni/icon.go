package sni

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// Icon is a pixmap of a tray item icon.
//
// Icons are sent over D-Bus as (iiay): width, height, and the pixels in ARGB32
// format, in network byte order, row by row from the top-left corner.
type Icon struct {
	Width  int32
	Height int32
	Bytes  []byte
}

// NewIconFromImage converts img to an [Icon].
func NewIconFromImage(img image.Image) *Icon {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	data := make([]byte, 0, width*height*4)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			data = append(data, c.A, c.R, c.G, c.B)
		}
	}

	return &Icon{
		Width:  int32(width),
		Height: int32(height),
		Bytes:  data,
	}
}

// LoadIcon reads a PNG file into an [Icon].
func LoadIcon(path string) (*Icon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load icon: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load icon %s: %w", path, err)
	}

	return NewIconFromImage(img), nil
}

// symbolIconNames maps the symbol identifiers used by the application to
// [Freedesktop-compliant] icon names.
//
// [Freedesktop-compliant]: https://specifications.freedesktop.org/icon-naming-spec/latest/
var symbolIconNames = map[string]string{
	"shield.fill":            "security-high",
	"shield.lefthalf.filled": "security-medium",
	"lock.shield":            "security-high",
	"arrow.clockwise":        "view-refresh",
	"gearshape.fill":         "preferences-system",
	"xmark.circle.fill":      "application-exit",
	"checkmark.seal":         "emblem-ok",
	"lock.fill":              "changes-prevent",
	"flame":                  "network-firewall",
}

// IconName returns the freedesktop icon name for a symbol identifier. Unknown
// symbols are returned unchanged, so that freedesktop names can be used
// directly.
func IconName(symbol string) string {
	if name, ok := symbolIconNames[symbol]; ok {
		return name
	}
	return symbol
}

// isIconFile reports whether icon refers to a PNG file rather than a symbol.
func isIconFile(icon string) bool {
	return strings.EqualFold(filepath.Ext(icon), ".png")
}
