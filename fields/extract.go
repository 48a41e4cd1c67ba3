package fields

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/pbir/model"
)

// Extract reconciles a visual's field bindings across the three query
// encodings. The argument is the decoded visual node (the "visual"
// object of a visual-container document, or the whole document for the
// oldest generation). Extraction never fails; a node with no
// recognizable query section yields empty bindings.
func Extract(visual map[string]any) model.Bindings {
	if visual == nil {
		return model.Bindings{}
	}

	if b := fromQueryState(visual); !b.Empty() {
		return b
	}
	if b := fromPrototypeQuery(visual); !b.Empty() {
		return b
	}
	return fromDataRoles(visual)
}

// fromQueryState handles the current role/projection encoding:
// query.queryState.{role}.projections[].field.
func fromQueryState(visual map[string]any) model.Bindings {
	state := childMap(visual, "query", "queryState")
	if state == nil {
		state = childMap(visual, "queryState")
	}
	if state == nil {
		return model.Bindings{}
	}

	// Role keys iterate in sorted order so output is deterministic.
	roles := make([]string, 0, len(state))
	for role := range state {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	var b model.Bindings
	for _, role := range roles {
		projections, _ := childMap(state, role)["projections"].([]any)
		for _, p := range projections {
			proj, ok := p.(map[string]any)
			if !ok {
				continue
			}
			field, _ := proj["field"].(map[string]any)
			binding, ok := classifyDescriptor(field, nil)
			if !ok {
				continue
			}
			binding.Role = role
			if dn, ok := proj["displayName"].(string); ok && dn != "" {
				binding.DisplayName = dn
			}
			appendBinding(&b, binding)
		}
	}
	return b
}

// fromPrototypeQuery handles the legacy prototype-query encoding:
// singleVisual.prototypeQuery.Select[], with table aliases declared in
// the From list.
func fromPrototypeQuery(visual map[string]any) model.Bindings {
	proto := childMap(visual, "singleVisual", "prototypeQuery")
	if proto == nil {
		proto = childMap(visual, "prototypeQuery")
	}
	if proto == nil {
		return model.Bindings{}
	}

	aliases := fromAliases(proto)
	selects, _ := proto["Select"].([]any)

	var b model.Bindings
	for _, s := range selects {
		sel, ok := s.(map[string]any)
		if !ok {
			continue
		}
		binding, ok := classifyDescriptor(sel, aliases)
		if !ok {
			continue
		}
		if name, ok := sel["Name"].(string); ok && name != "" {
			binding.DisplayName = name
			// "Table.Field" select names carry the table when the
			// expression walk could not resolve one.
			if binding.Table == model.UnknownTable {
				if t, f, ok := strings.Cut(name, "."); ok {
					binding.Table, binding.Field = t, f
				}
			}
		}
		appendBinding(&b, binding)
	}
	return b
}

// fromDataRoles handles the oldest flat role/item encoding. It has no
// measure/dimension discrimination beyond the presence of a
// queryRef.Measure, so all bindings land in the Values group.
func fromDataRoles(visual map[string]any) model.Bindings {
	roles, _ := visual["dataRoles"].([]any)
	if roles == nil {
		roles, _ = childMap(visual, "singleVisual")["dataRoles"].([]any)
	}

	var b model.Bindings
	for _, r := range roles {
		role, ok := r.(map[string]any)
		if !ok {
			continue
		}
		roleName, _ := role["name"].(string)
		items, _ := role["items"].([]any)
		for _, it := range items {
			item, ok := it.(map[string]any)
			if !ok {
				continue
			}
			ref, ok := item["queryRef"].(map[string]any)
			if !ok {
				continue
			}
			kind := model.KindDimension
			src := ref["Column"]
			if m, ok := ref["Measure"]; ok {
				kind = model.KindMeasure
				src = m
			}
			table, field := sourceField(src, nil)
			binding := model.FieldBinding{
				Role:        roleName,
				Kind:        kind,
				Table:       table,
				Field:       field,
				DisplayName: field,
			}
			if dn, ok := item["displayName"].(string); ok && dn != "" {
				binding.DisplayName = dn
			}
			b.Values = append(b.Values, binding)
		}
	}
	return b
}

// classifyDescriptor classifies a field descriptor by which expression
// key it carries. The same shapes appear in queryState projections and
// prototype-query Select entries.
func classifyDescriptor(desc map[string]any, aliases map[string]string) (model.FieldBinding, bool) {
	if desc == nil {
		return model.FieldBinding{}, false
	}

	if m, ok := desc["Measure"].(map[string]any); ok {
		table, field := sourceField(m, aliases)
		return model.FieldBinding{Kind: model.KindMeasure, Table: table, Field: field, DisplayName: field}, true
	}

	if c, ok := desc["Column"].(map[string]any); ok {
		table, field := sourceField(c, aliases)
		return model.FieldBinding{Kind: model.KindDimension, Table: table, Field: field, DisplayName: field}, true
	}

	if agg, ok := desc["Aggregation"].(map[string]any); ok {
		fn := "Unknown"
		if code, ok := agg["Function"].(float64); ok {
			fn = AggregationName(int(code))
		}
		// For aggregations the column expression, and with it the
		// table reference, sits one level deeper.
		table, field := model.UnknownTable, ""
		if col := childMap(agg, "Expression", "Column"); col != nil {
			table, field = sourceField(col, aliases)
		}
		display := field
		if display != "" {
			display = fmt.Sprintf("%s of %s", fn, field)
		}
		return model.FieldBinding{
			Kind:        model.KindMeasure,
			Table:       table,
			Field:       field,
			DisplayName: display,
			Aggregation: fn,
		}, true
	}

	if h, ok := desc["HierarchyLevel"].(map[string]any); ok {
		level, _ := h["Level"].(string)
		table := model.UnknownTable
		if hier := childMap(h, "Expression", "Hierarchy"); hier != nil {
			table, _ = sourceField(hier, aliases)
		}
		return model.FieldBinding{Kind: model.KindHierarchy, Table: table, Field: level, DisplayName: level}, true
	}

	return model.FieldBinding{}, false
}

// sourceField walks a Measure/Column expression to its source table
// and property name. The table reference may be a direct Entity or a
// From-list alias.
func sourceField(expr any, aliases map[string]string) (table, field string) {
	table = model.UnknownTable

	m, ok := expr.(map[string]any)
	if !ok {
		return table, ""
	}
	field, _ = m["Property"].(string)
	if field == "" {
		field, _ = m["Hierarchy"].(string)
	}

	ref := childMap(m, "Expression", "SourceRef")
	if ref == nil {
		ref = childMap(m, "SourceRef")
	}
	if ref == nil {
		return table, field
	}

	if entity, ok := ref["Entity"].(string); ok && entity != "" {
		return entity, field
	}
	if src, ok := ref["Source"].(string); ok && src != "" {
		if entity, ok := aliases[src]; ok {
			return entity, field
		}
	}
	return table, field
}

// fromAliases builds the alias→entity map from a prototype query's
// From list.
func fromAliases(proto map[string]any) map[string]string {
	from, _ := proto["From"].([]any)
	if len(from) == 0 {
		return nil
	}
	aliases := make(map[string]string, len(from))
	for _, f := range from {
		fm, ok := f.(map[string]any)
		if !ok {
			continue
		}
		name, _ := fm["Name"].(string)
		entity, _ := fm["Entity"].(string)
		if name != "" && entity != "" {
			aliases[name] = entity
		}
	}
	return aliases
}

// appendBinding routes a classified binding into its output group.
func appendBinding(b *model.Bindings, binding model.FieldBinding) {
	if binding.Kind == model.KindMeasure {
		b.Measures = append(b.Measures, binding)
		return
	}
	b.Dimensions = append(b.Dimensions, binding)
}

// childMap walks nested maps by key, returning nil as soon as any step
// is missing or not a map.
func childMap(m map[string]any, keys ...string) map[string]any {
	cur := m
	for _, k := range keys {
		next, ok := cur[k].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}
