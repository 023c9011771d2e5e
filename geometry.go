package shieldbar

// Point is a location in toolkit units. The origin is the bottom-left corner
// and y grows upwards.
type Point struct {
	X float64
	Y float64
}

// Size is a width and height in toolkit units.
type Size struct {
	Width  float64
	Height float64
}

// Rect is a rectangle given by its bottom-left origin and size.
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect returns a [Rect] from its origin coordinates and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{
		Origin: Point{X: x, Y: y},
		Size:   Size{Width: width, Height: height},
	}
}

// MinY returns the bottom edge of the rectangle.
func (r Rect) MinY() float64 {
	return r.Origin.Y
}

// MaxY returns the top edge of the rectangle.
func (r Rect) MaxY() float64 {
	return r.Origin.Y + r.Size.Height
}

// Edge is the side of an anchor rectangle a popover is attached to.
type Edge int

const (
	// EdgeBelow places the popover under the anchor. This is the edge used
	// for status indicators in a top menu bar.
	EdgeBelow Edge = iota
	EdgeAbove
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeBelow:
		return "below"
	case EdgeAbove:
		return "above"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "unknown"
	}
}
