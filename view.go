package shieldbar

import "fmt"

// Kind is the type of a [View] node.
type Kind int

// View kinds.
const (
	// KindContainer groups children without drawing anything itself.
	KindContainer Kind = iota

	// KindEffect is a translucent blur fill behind its children.
	KindEffect

	// KindText is a single line of non-editable text.
	KindText

	// KindSymbol is a glyph identified by [View.Symbol].
	KindSymbol

	// KindSeparator is a thin horizontal line.
	KindSeparator

	// KindScroll is a clipped region whose children are laid out in its
	// local coordinate space.
	KindScroll

	// KindIndicator is a filled circle of [View.Color].
	KindIndicator

	// KindButton is a push button. A button with an empty [View.Action] is
	// inert.
	KindButton
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindEffect:
		return "effect"
	case KindText:
		return "text"
	case KindSymbol:
		return "symbol"
	case KindSeparator:
		return "separator"
	case KindScroll:
		return "scroll"
	case KindIndicator:
		return "indicator"
	case KindButton:
		return "button"
	default:
		return "unknown"
	}
}

// Font describes the typeface of text nodes.
type Font struct {
	Size float64
	Bold bool
}

// View is a node of the popover view tree. Frames are relative to the
// parent node, with a bottom-left origin.
type View struct {
	Kind Kind

	// Name identifies the node within the tree, e.g. "row-0-label".
	Name string

	Frame  Rect
	Text   string
	Symbol string
	Font   Font
	Color  Color

	// Handler dispatched when a button is pressed. Empty for every other
	// kind and for inert buttons.
	Action HandlerID

	Children []*View
}

// Walk visits v and its descendants depth-first, parents before children.
// Returning false from fn skips the children of the visited node.
func (v *View) Walk(fn func(*View) bool) {
	if v == nil || !fn(v) {
		return
	}

	for _, child := range v.Children {
		child.Walk(fn)
	}
}

// Find returns the first node named name, or nil.
func (v *View) Find(name string) *View {
	var found *View

	v.Walk(func(node *View) bool {
		if found != nil {
			return false
		}

		if node.Name == name {
			found = node
			return false
		}

		return true
	})

	return found
}

// Layout holds the fixed metrics of the popover content.
type Layout struct {
	// Title shown in the header.
	Title string

	// Version shown in the footer.
	Version string

	// Height of a single list row.
	RowHeight float64

	// Height of the list region.
	ListHeight float64

	// Space between the top of the list region and the first row.
	ListInset float64

	// Height of the footer.
	FooterHeight float64

	// Horizontal margin of header, divider, rows and footer.
	Padding float64
}

// DefaultSize is the content size of the popover.
var DefaultSize = Size{Width: 320, Height: 340}

// DefaultLayout returns the layout used by the popover.
func DefaultLayout() Layout {
	return Layout{
		Title:        "Security Status",
		Version:      Version,
		RowHeight:    40,
		ListHeight:   240,
		ListInset:    10,
		FooterHeight: 50,
		Padding:      16,
	}
}

// ListTop returns the y coordinate rows are stacked down from, in the local
// coordinate space of the list region.
func (l Layout) ListTop() float64 {
	return l.ListHeight - l.ListInset
}

// RowOffset returns the vertical offset of row i inside the list region.
// The first row is nearest to the top.
func (l Layout) RowOffset(i int) float64 {
	return l.ListTop() - float64(i+1)*l.RowHeight
}

// MinSize returns the smallest content size the layout fits in.
func (l Layout) MinSize() Size {
	return Size{
		Width:  2*l.Padding + 160,
		Height: l.FooterHeight + l.ListHeight + 48,
	}
}

const (
	headerOffset  = 36
	headerHeight  = 24
	dividerOffset = 42
	glyphSize     = 20
	labelHeight   = 18
	indicatorSize = 10
	buttonWidth   = 80
	buttonHeight  = 28
)

// BuildView returns the view tree of the popover content. It is a pure
// function: every call allocates a new tree, so trees built from the same
// arguments are equal but share no nodes.
func BuildView(size Size, rows []RowDescriptor, layout Layout) *View {
	w, h := size.Width, size.Height
	p := layout.Padding

	root := &View{
		Kind:  KindEffect,
		Name:  "background",
		Frame: NewRect(0, 0, w, h),
	}

	root.Children = append(root.Children,
		&View{
			Kind:  KindText,
			Name:  "header",
			Frame: NewRect(p, h-headerOffset, w-2*p, headerHeight),
			Text:  layout.Title,
			Font:  Font{Size: 15, Bold: true},
			Color: ColorLabel,
		},
		&View{
			Kind:  KindSeparator,
			Name:  "divider",
			Frame: NewRect(p, h-dividerOffset, w-2*p, 1),
		},
		buildList(w, rows, layout),
		buildFooter(w, layout),
	)

	return root
}

func buildList(width float64, rows []RowDescriptor, layout Layout) *View {
	list := &View{
		Kind:     KindScroll,
		Name:     "list",
		Frame:    NewRect(0, layout.FooterHeight, width, layout.ListHeight),
		Children: make([]*View, 0, len(rows)),
	}

	for i, row := range rows {
		list.Children = append(list.Children, buildRow(i, row, width, layout))
	}

	return list
}

func buildRow(i int, row RowDescriptor, width float64, layout Layout) *View {
	p := layout.Padding
	rh := layout.RowHeight
	name := fmt.Sprintf("row-%d", i)

	return &View{
		Kind:  KindContainer,
		Name:  name,
		Frame: NewRect(0, layout.RowOffset(i), width, rh),
		Children: []*View{
			{
				Kind:   KindSymbol,
				Name:   name + "-icon",
				Frame:  NewRect(p, (rh-glyphSize)/2, glyphSize, glyphSize),
				Symbol: row.Icon,
				Color:  ColorSecondaryLabel,
			},
			{
				Kind:  KindText,
				Name:  name + "-label",
				Frame: NewRect(p+glyphSize+8, (rh-labelHeight)/2, width-2*p-glyphSize-8-indicatorSize-8, labelHeight),
				Text:  row.Label,
				Font:  Font{Size: 13},
				Color: ColorLabel,
			},
			{
				Kind:  KindIndicator,
				Name:  name + "-status",
				Frame: NewRect(width-p-indicatorSize, (rh-indicatorSize)/2, indicatorSize, indicatorSize),
				Color: row.Severity.Color(),
			},
		},
	}
}

func buildFooter(width float64, layout Layout) *View {
	p := layout.Padding
	fh := layout.FooterHeight

	return &View{
		Kind:  KindContainer,
		Name:  "footer",
		Frame: NewRect(0, 0, width, fh),
		Children: []*View{
			{
				Kind:   KindSymbol,
				Name:   "footer-logo",
				Frame:  NewRect(p, (fh-glyphSize)/2, glyphSize, glyphSize),
				Symbol: "shield.fill",
				Color:  ColorLabel,
			},
			{
				Kind:  KindText,
				Name:  "footer-version",
				Frame: NewRect(p+glyphSize+8, (fh-labelHeight)/2, 120, labelHeight),
				Text:  "Version " + layout.Version,
				Font:  Font{Size: 11},
				Color: ColorSecondaryLabel,
			},
			{
				Kind:   KindButton,
				Name:   "footer-refresh",
				Frame:  NewRect(width-p-buttonWidth, (fh-buttonHeight)/2, buttonWidth, buttonHeight),
				Text:   "Refresh",
				Symbol: "arrow.clockwise",
				Font:   Font{Size: 13},
			},
		},
	}
}
