package filter

import (
	"strings"

	"github.com/tsawler/pbir/model"
)

// Render produces the deterministic human-readable form of a condition
// tree:
//
//	IN (v1, v2, …)
//	BETWEEN lo AND hi
//	(left AND right)
//	(left OR right)
//	NOT (child)
//	field Operator value
//
// Leaf nodes render as their verbatim JSON. Render never fails; a nil
// node renders as the empty string.
func Render(node *model.FilterNode) string {
	if node == nil {
		return ""
	}

	switch node.Kind {
	case model.NodeComparison:
		parts := make([]string, 0, 3)
		if node.Left != "" {
			parts = append(parts, node.Left)
		}
		parts = append(parts, node.Operator)
		if node.Right != "" {
			parts = append(parts, node.Right)
		}
		return strings.Join(parts, " ")

	case model.NodeIn:
		return "IN (" + strings.Join(node.Values, ", ") + ")"

	case model.NodeBetween:
		return "BETWEEN " + node.Lower + " AND " + node.Upper

	case model.NodeAnd:
		return "(" + Render(node.LeftChild) + " AND " + Render(node.RightChild) + ")"

	case model.NodeOr:
		return "(" + Render(node.LeftChild) + " OR " + Render(node.RightChild) + ")"

	case model.NodeNot:
		return "NOT (" + Render(node.Child) + ")"

	default:
		return node.Raw
	}
}
