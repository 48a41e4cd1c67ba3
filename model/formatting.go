package model

// Formatting holds the subset of a visual's formatting properties the
// normalizer resolves. Pointer fields are nil when the source document
// carries no such section.
type Formatting struct {
	Background *Background
	Border     *Border

	// DataColors are the explicit data-series colors, in series
	// order.
	DataColors []string

	// TitleStyle is the title font styling, if customized.
	TitleStyle *TitleStyle
}

// Background describes a visual's background fill.
type Background struct {
	Color        string
	Transparency float64 // 0 opaque .. 100 fully transparent
}

// Border describes a visual's border.
type Border struct {
	Color string
	Shown bool
}

// TitleStyle describes custom title font styling.
type TitleStyle struct {
	FontFamily string
	FontSize   float64
	Color      string
}
