package model

// DisplayOption controls how a page is scaled when rendered.
type DisplayOption int

const (
	// DisplayFitToPage scales the page to fit the viewport.
	DisplayFitToPage DisplayOption = iota
	// DisplayFitToWidth scales the page to the viewport width.
	DisplayFitToWidth
	// DisplayActualSize renders the page at its declared size.
	DisplayActualSize
)

func (d DisplayOption) String() string {
	switch d {
	case DisplayFitToWidth:
		return "FitToWidth"
	case DisplayActualSize:
		return "ActualSize"
	default:
		return "FitToPage"
	}
}

// Page represents one screen of a report, containing positioned
// visuals.
type Page struct {
	// ID is the page identifier derived from its file path segment.
	// It is unique within a report and is the join key used to
	// locate the page's visuals among the flat document set.
	ID string

	// DisplayName is the resolved page name. Resolution priority:
	// page-document override, then page-list entry, then ID.
	DisplayName string

	Width  float64 // Declared page width in pixels
	Height float64 // Declared page height in pixels

	// Hidden reports whether the page is hidden in view mode.
	Hidden bool

	// Display is the page scaling mode.
	Display DisplayOption

	// Visuals holds the page's visuals in z order.
	Visuals []*Visual

	// Filters are the page-level filters.
	Filters []*FilterDescriptor
}

// NewPage creates a page with the given identifier. The identifier
// doubles as the display name until a better one is resolved.
func NewPage(id string) *Page {
	return &Page{
		ID:          id,
		DisplayName: id,
		Visuals:     make([]*Visual, 0),
	}
}

// AddVisual appends a visual to the page.
func (p *Page) AddVisual(v *Visual) {
	p.Visuals = append(p.Visuals, v)
}

// GetVisual returns the visual with the given identifier, or nil.
func (p *Page) GetVisual(id string) *Visual {
	for _, v := range p.Visuals {
		if v.ID == id {
			return v
		}
	}
	return nil
}
