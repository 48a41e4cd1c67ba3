package filter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/pbir/fields"
	"github.com/tsawler/pbir/literal"
	"github.com/tsawler/pbir/model"
)

// operatorNames maps comparison-kind codes to operator names. Like the
// aggregation table in package fields, this is the single copy every
// call site resolves through.
var operatorNames = map[int]string{
	0: "Equal",
	1: "GreaterThan",
	2: "GreaterThanOrEqual",
	3: "LessThan",
	4: "LessThanOrEqual",
}

// OperatorName resolves a comparison-kind code to its operator name,
// "Unknown" for unmapped codes.
func OperatorName(code int) string {
	if name, ok := operatorNames[code]; ok {
		return name
	}
	return "Unknown"
}

// ParseCondition parses one condition node by recursive descent.
// Unrecognized shapes become leaf nodes carrying the verbatim JSON of
// the node; the parse itself never fails.
func ParseCondition(cond map[string]any) *model.FilterNode {
	if cond == nil {
		return nil
	}

	if cmp, ok := cond["Comparison"].(map[string]any); ok {
		op := "Unknown"
		if code, ok := cmp["ComparisonKind"].(float64); ok {
			op = OperatorName(int(code))
		}
		return &model.FilterNode{
			Kind:     model.NodeComparison,
			Operator: op,
			Left:     ExprString(cmp["Left"]),
			Right:    ExprString(cmp["Right"]),
		}
	}

	if in, ok := cond["In"].(map[string]any); ok {
		node := &model.FilterNode{Kind: model.NodeIn}
		if exprs, ok := in["Expressions"].([]any); ok && len(exprs) > 0 {
			node.Left = ExprString(exprs[0])
		}
		values, _ := in["Values"].([]any)
		for _, tuple := range values {
			switch tv := tuple.(type) {
			case []any:
				for _, v := range tv {
					node.Values = append(node.Values, ExprString(v))
				}
			default:
				node.Values = append(node.Values, ExprString(tv))
			}
		}
		return node
	}

	if btw, ok := cond["Between"].(map[string]any); ok {
		return &model.FilterNode{
			Kind:  model.NodeBetween,
			Left:  ExprString(btw["Expression"]),
			Lower: ExprString(btw["LowerBound"]),
			Upper: ExprString(btw["UpperBound"]),
		}
	}

	if and, ok := cond["And"].(map[string]any); ok {
		return &model.FilterNode{
			Kind:       model.NodeAnd,
			LeftChild:  parseChild(and, "Left"),
			RightChild: parseChild(and, "Right"),
		}
	}

	if or, ok := cond["Or"].(map[string]any); ok {
		return &model.FilterNode{
			Kind:       model.NodeOr,
			LeftChild:  parseChild(or, "Left"),
			RightChild: parseChild(or, "Right"),
		}
	}

	if not, ok := cond["Not"].(map[string]any); ok {
		return &model.FilterNode{
			Kind:  model.NodeNot,
			Child: parseChild(not, "Expression"),
		}
	}

	raw, err := json.Marshal(cond)
	if err != nil {
		raw = []byte("{}")
	}
	return &model.FilterNode{Kind: model.NodeLeaf, Raw: string(raw)}
}

// parseChild parses the named child condition, tolerating a missing or
// malformed one by producing an empty leaf.
func parseChild(m map[string]any, key string) *model.FilterNode {
	child, ok := m[key].(map[string]any)
	if !ok {
		return &model.FilterNode{Kind: model.NodeLeaf, Raw: "{}"}
	}
	return ParseCondition(child)
}

// ParseWhere parses a query Where clause list. Multiple clauses are
// conjoined, matching their query semantics.
func ParseWhere(where []any) *model.FilterNode {
	var root *model.FilterNode
	for _, w := range where {
		wm, ok := w.(map[string]any)
		if !ok {
			continue
		}
		cond, ok := wm["Condition"].(map[string]any)
		if !ok {
			continue
		}
		node := ParseCondition(cond)
		if node == nil {
			continue
		}
		if root == nil {
			root = node
			continue
		}
		root = &model.FilterNode{Kind: model.NodeAnd, LeftChild: root, RightChild: node}
	}
	return root
}

// ExprString renders one operand expression: a literal's value, a
// column or measure as Table.Property, or an aggregation as
// Fn(Table.Property). Unrecognized operand shapes render as verbatim
// JSON, consistent with the leaf-node policy.
func ExprString(expr any) string {
	m, ok := expr.(map[string]any)
	if !ok {
		return ""
	}

	if lit, ok := m["Literal"].(map[string]any); ok {
		switch v := lit["Value"].(type) {
		case string:
			return literal.StripQuotes(strings.TrimSuffix(strings.TrimSuffix(v, "L"), "D"))
		case float64:
			return trimFloat(v)
		case bool:
			return fmt.Sprintf("%v", v)
		case nil:
			return "null"
		}
	}

	if col, ok := m["Column"].(map[string]any); ok {
		return sourceRefString(col)
	}
	if meas, ok := m["Measure"].(map[string]any); ok {
		return sourceRefString(meas)
	}

	if agg, ok := m["Aggregation"].(map[string]any); ok {
		fn := "Unknown"
		if code, ok := agg["Function"].(float64); ok {
			fn = fields.AggregationName(int(code))
		}
		inner := ExprString(agg["Expression"])
		return fn + "(" + inner + ")"
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(raw)
}

// sourceRefString renders a column/measure reference as
// "Table.Property", or just "Property" when the table is unresolvable.
func sourceRefString(ref map[string]any) string {
	prop, _ := ref["Property"].(string)
	expr, _ := ref["Expression"].(map[string]any)
	if src, ok := expr["SourceRef"].(map[string]any); ok {
		if entity, ok := src["Entity"].(string); ok && entity != "" {
			return entity + "." + prop
		}
		if alias, ok := src["Source"].(string); ok && alias != "" {
			return alias + "." + prop
		}
	}
	return prop
}

// trimFloat formats a float with the shortest representation, so 10.0
// renders as "10" whichever encoding carried it.
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
