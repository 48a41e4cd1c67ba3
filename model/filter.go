package model

// NodeKind identifies the variant of a FilterNode.
type NodeKind int

const (
	// NodeLeaf is an unrecognized condition shape kept verbatim.
	NodeLeaf NodeKind = iota
	// NodeComparison compares a field against a value.
	NodeComparison
	// NodeIn tests set membership.
	NodeIn
	// NodeBetween tests a closed range.
	NodeBetween
	// NodeAnd is the conjunction of two children.
	NodeAnd
	// NodeOr is the disjunction of two children.
	NodeOr
	// NodeNot negates one child.
	NodeNot
)

func (k NodeKind) String() string {
	switch k {
	case NodeComparison:
		return "Comparison"
	case NodeIn:
		return "In"
	case NodeBetween:
		return "Between"
	case NodeAnd:
		return "And"
	case NodeOr:
		return "Or"
	case NodeNot:
		return "Not"
	default:
		return "Leaf"
	}
}

// FilterNode is one node of a normalized filter-condition tree. Which
// fields are meaningful depends on Kind:
//
//   - NodeComparison: Operator, Left, Right
//   - NodeIn: Left, Values
//   - NodeBetween: Left, Lower, Upper
//   - NodeAnd, NodeOr: LeftChild, RightChild
//   - NodeNot: Child
//   - NodeLeaf: Raw (verbatim JSON of the unrecognized shape)
type FilterNode struct {
	Kind NodeKind

	Operator string // Comparison operator name ("Equal", "GreaterThan", ...)
	Left     string // Rendered left operand expression
	Right    string // Rendered right operand expression

	Values []string // Membership values for NodeIn

	Lower string // Lower bound for NodeBetween
	Upper string // Upper bound for NodeBetween

	LeftChild  *FilterNode
	RightChild *FilterNode
	Child      *FilterNode

	Raw string
}

// FilterType is a filter descriptor's type tag. Only tags from the
// closed known set survive normalization.
type FilterType string

// The closed set of recognized filter types.
const (
	FilterCategorical  FilterType = "Categorical"
	FilterRange        FilterType = "Range"
	FilterAdvanced     FilterType = "Advanced"
	FilterPassthrough  FilterType = "Passthrough"
	FilterTopN         FilterType = "TopN"
	FilterInclude      FilterType = "Include"
	FilterExclude      FilterType = "Exclude"
	FilterRelativeDate FilterType = "RelativeDate"
	FilterTuple        FilterType = "Tuple"
	FilterRelativeTime FilterType = "RelativeTime"
	FilterVisualTopN   FilterType = "VisualTopN"
)

// KnownFilterType reports whether t is one of the recognized filter
// type tags.
func KnownFilterType(t FilterType) bool {
	switch t {
	case FilterCategorical, FilterRange, FilterAdvanced, FilterPassthrough,
		FilterTopN, FilterInclude, FilterExclude, FilterRelativeDate,
		FilterTuple, FilterRelativeTime, FilterVisualTopN:
		return true
	}
	return false
}

// FilterDescriptor is the root of one filter: its identity and flags
// plus the normalized condition tree, when one was present.
type FilterDescriptor struct {
	Name        string     // Filter name, or the field reference if unnamed
	Type        FilterType // Recognized type tag
	Hidden      bool
	Locked      bool
	Table       string // Filtered table, empty if not recorded
	Field       string // Filtered column or measure, empty if not recorded
	Condition   *FilterNode
	Description string // Deterministic rendering of Condition, empty if none
}
