package model

// BindingKind classifies the semantic kind of a field binding.
type BindingKind int

const (
	// KindDimension is a grouping column or hierarchy level.
	KindDimension BindingKind = iota
	// KindMeasure is a model measure or an aggregated column.
	KindMeasure
	// KindHierarchy is a hierarchy reference.
	KindHierarchy
)

func (k BindingKind) String() string {
	switch k {
	case KindMeasure:
		return "measure"
	case KindHierarchy:
		return "hierarchy"
	default:
		return "dimension"
	}
}

// UnknownTable is the sentinel table name used when a binding's source
// table cannot be resolved from any encoding.
const UnknownTable = "Unknown Table"

// FieldBinding associates one visual role with a data source measure,
// column, or hierarchy.
type FieldBinding struct {
	// Role is the visual role the field is bound to, e.g.
	// "Category" or "Values".
	Role string

	// Kind is the semantic kind of the binding.
	Kind BindingKind

	// DisplayName is the name shown for the field, falling back to
	// the field name when the document carries no display name.
	DisplayName string

	// Table is the source table name, or UnknownTable.
	Table string

	// Field is the source column, measure, or hierarchy name.
	Field string

	// Aggregation is the aggregation function name for aggregated
	// columns ("Sum", "Average", ...), empty otherwise.
	Aggregation string
}

// QualifiedName returns "Table.Field", or "Aggregation(Table.Field)"
// for aggregated bindings.
func (b FieldBinding) QualifiedName() string {
	name := b.Table + "." + b.Field
	if b.Aggregation != "" {
		return b.Aggregation + "(" + name + ")"
	}
	return name
}

// Bindings groups a visual's field bindings by semantic kind. The
// legacy dataRoles encoding carries no measure/dimension
// discrimination, so its bindings land in the catch-all Values group.
type Bindings struct {
	Measures   []FieldBinding
	Dimensions []FieldBinding
	Values     []FieldBinding
}

// Empty reports whether no bindings were extracted at all.
func (b Bindings) Empty() bool {
	return len(b.Measures) == 0 && len(b.Dimensions) == 0 && len(b.Values) == 0
}

// All returns every binding, measures first, then dimensions, then the
// ungrouped values. Order within each group is source order.
func (b Bindings) All() []FieldBinding {
	out := make([]FieldBinding, 0, len(b.Measures)+len(b.Dimensions)+len(b.Values))
	out = append(out, b.Measures...)
	out = append(out, b.Dimensions...)
	out = append(out, b.Values...)
	return out
}
