package shieldbar

// Severity of a status row.
type Severity int

// Row severities.
const (
	// The checked subsystem is in the expected state.
	SeverityOK Severity = iota

	// The checked subsystem works but is configured below recommendations.
	SeverityWarn

	// The checked subsystem is disabled or failing.
	SeverityError

	// The state of the checked subsystem could not be determined.
	SeverityUnknown
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "ok"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Color returns the indicator color of the severity. The mapping is total:
// values outside of the declared severities map to [ColorGray].
func (s Severity) Color() Color {
	switch s {
	case SeverityOK:
		return ColorGreen
	case SeverityWarn:
		return ColorOrange
	case SeverityError:
		return ColorRed
	default:
		return ColorGray
	}
}

// Color is a semantic color. Backends map it to their own palette.
type Color int

// Semantic colors.
const (
	ColorLabel Color = iota
	ColorSecondaryLabel
	ColorGreen
	ColorOrange
	ColorRed
	ColorGray
)

func (c Color) String() string {
	switch c {
	case ColorLabel:
		return "label"
	case ColorSecondaryLabel:
		return "secondary-label"
	case ColorGreen:
		return "green"
	case ColorOrange:
		return "orange"
	case ColorRed:
		return "red"
	case ColorGray:
		return "gray"
	default:
		return "unknown"
	}
}

// RowDescriptor is one status line of the popover list.
type RowDescriptor struct {
	// Symbol identifier of the leading glyph, e.g. "lock.shield".
	Icon string

	// Text of the row.
	Label string

	// Severity that selects the color of the trailing indicator.
	Severity Severity
}

// RowProvider supplies the ordered rows of the popover list. Every call
// returns a new slice that the caller may keep.
type RowProvider interface {
	Rows() []RowDescriptor
}

// RowProviderFunc adapts a function to [RowProvider].
type RowProviderFunc func() []RowDescriptor

// Rows calls f.
func (f RowProviderFunc) Rows() []RowDescriptor {
	return f()
}

// StaticRows returns the placeholder provider used until real checks exist.
// All of its rows report [SeverityOK].
func StaticRows() RowProvider {
	return RowProviderFunc(func() []RowDescriptor {
		return []RowDescriptor{
			{Icon: "flame", Label: "Firewall", Severity: SeverityOK},
			{Icon: "lock.fill", Label: "Disk Encryption", Severity: SeverityOK},
			{Icon: "checkmark.seal", Label: "Gatekeeper", Severity: SeverityOK},
			{Icon: "shield.lefthalf.filled", Label: "System Integrity Protection", Severity: SeverityOK},
		}
	})
}
