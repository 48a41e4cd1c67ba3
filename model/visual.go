package model

// Visual represents one chart, table, or control placed on a page.
type Visual struct {
	// ID is the visual identifier derived from its file path
	// segment, unique within its page.
	ID string

	// Title is the resolved display name. See the normalizer for
	// the resolution chain; it is never empty.
	Title string

	// Type is the canonical visual type tag: an entry from the
	// known-type table, CustomVisual, a pass-through raw type not
	// yet cataloged, or Unknown.
	Type string

	// RawType is the type string exactly as it appeared in the
	// source document, empty if none was found.
	RawType string

	// Position is the visual's placement on the page canvas.
	Position Position

	// Bindings are the visual's field bindings grouped by semantic
	// kind.
	Bindings Bindings

	// Filters are the visual-level filters.
	Filters []*FilterDescriptor

	// Format holds the resolved formatting properties.
	Format Formatting

	// Hidden reports whether the visual is hidden.
	Hidden bool

	// MobilePosition is the mobile-layout override, if a sibling
	// mobile document supplied one. The renderer decides whether to
	// apply it.
	MobilePosition *Position
}

// CustomVisual is the canonical type tag assigned to any third-party
// (marketplace) visual, whatever its raw package identifier.
const CustomVisual = "CustomVisual"

// UnknownType is the canonical type tag used when no type string could
// be resolved from any known location.
const UnknownType = "Unknown"

// IsCustom reports whether the visual is a third-party custom visual.
func (v *Visual) IsCustom() bool {
	return v.Type == CustomVisual
}

// Position describes a visual's placement on the page canvas.
// Width and height are non-negative; missing source values default to
// zero, never to null, so layout arithmetic needs no nil checks.
type Position struct {
	X      float64
	Y      float64
	Z      float64 // Stacking order
	Width  float64
	Height float64

	TabOrder int     // Keyboard tab order, 0 if unset
	Angle    float64 // Rotation in degrees, 0 if unset
}

// Right returns the right edge X coordinate.
func (p Position) Right() float64 {
	return p.X + p.Width
}

// Bottom returns the bottom edge Y coordinate.
func (p Position) Bottom() float64 {
	return p.Y + p.Height
}

// Overlaps reports whether two positions overlap on the canvas.
func (p Position) Overlaps(other Position) bool {
	return p.X < other.Right() && other.X < p.Right() &&
		p.Y < other.Bottom() && other.Y < p.Bottom()
}
