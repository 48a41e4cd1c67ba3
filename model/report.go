package model

// Report represents a complete normalized report definition.
type Report struct {
	// SchemaVersion is the report definition schema version tag,
	// taken from the version document when present.
	SchemaVersion string

	// Theme is the name of the base or custom theme the report
	// references, if any.
	Theme string

	// Filters are the report-level (global) filters.
	Filters []*FilterDescriptor

	// CustomVisuals lists the public custom visuals the report
	// declares.
	CustomVisuals []string

	// Pages holds the report's pages in display order.
	Pages []*Page

	// Bookmarks holds the report's bookmarks, if any.
	Bookmarks []*Bookmark

	// ExtensionMeasures are report-scoped measures contributed by
	// the extensions document.
	ExtensionMeasures []ExtensionMeasure
}

// ExtensionMeasure is a measure defined in the report extensions
// document rather than the semantic model.
type ExtensionMeasure struct {
	Table      string // Entity the measure is homed on
	Name       string
	Expression string // Measure expression text, verbatim
}

// NewReport creates a new empty report.
func NewReport() *Report {
	return &Report{
		Pages: make([]*Page, 0),
	}
}

// AddPage appends a page to the report.
func (r *Report) AddPage(page *Page) {
	r.Pages = append(r.Pages, page)
}

// GetPage returns the page with the given identifier, or nil.
func (r *Report) GetPage(id string) *Page {
	for _, p := range r.Pages {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PageCount returns the number of pages in the report.
func (r *Report) PageCount() int {
	return len(r.Pages)
}

// VisualCount returns the total number of visuals across all pages.
func (r *Report) VisualCount() int {
	n := 0
	for _, p := range r.Pages {
		n += len(p.Visuals)
	}
	return n
}

// AllVisuals returns all visuals from all pages in page order.
func (r *Report) AllVisuals() []*Visual {
	var visuals []*Visual
	for _, p := range r.Pages {
		visuals = append(visuals, p.Visuals...)
	}
	return visuals
}

// Bookmark represents one saved report state.
type Bookmark struct {
	ID          string // Identifier derived from the bookmark file path
	DisplayName string // Display name, or the identifier if unnamed
	PageID      string // Identifier of the page the bookmark targets, if recorded
}
