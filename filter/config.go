package filter

import (
	"fmt"

	"github.com/tsawler/pbir/model"
)

// ParseConfig extracts the filter descriptors from a document's
// filterConfig section. The document may be a report root, a page, or
// a visual container; all three carry the same filterConfig.filters
// shape. Entries whose type tag is outside the known set are dropped,
// with one message per dropped entry returned for the caller's warning
// channel. A document without a filterConfig yields (nil, nil).
func ParseConfig(doc map[string]any) ([]*model.FilterDescriptor, []string) {
	cfg, ok := doc["filterConfig"].(map[string]any)
	if !ok {
		return nil, nil
	}
	list, _ := cfg["filters"].([]any)

	var out []*model.FilterDescriptor
	var dropped []string
	for i, f := range list {
		fm, ok := f.(map[string]any)
		if !ok {
			dropped = append(dropped, fmt.Sprintf("filter %d: not an object", i))
			continue
		}
		desc, ok := parseDescriptor(fm)
		if !ok {
			typ, _ := fm["type"].(string)
			dropped = append(dropped, fmt.Sprintf("filter %q: unrecognized type %q", descName(fm), typ))
			continue
		}
		out = append(out, desc)
	}
	return out, dropped
}

// parseDescriptor builds one FilterDescriptor. It returns ok=false
// only for an unrecognized type tag; everything else has a fallback.
func parseDescriptor(fm map[string]any) (*model.FilterDescriptor, bool) {
	typ, _ := fm["type"].(string)
	if typ == "" {
		// Old documents omit the tag on plain category filters.
		typ = string(model.FilterCategorical)
	}
	if !model.KnownFilterType(model.FilterType(typ)) {
		return nil, false
	}

	desc := &model.FilterDescriptor{
		Name: descName(fm),
		Type: model.FilterType(typ),
	}
	if h, ok := fm["isHiddenInViewMode"].(bool); ok {
		desc.Hidden = h
	}
	if l, ok := fm["isLockedInViewMode"].(bool); ok {
		desc.Locked = l
	}

	desc.Table, desc.Field = fieldRef(fm)

	if desc.Condition = descCondition(fm); desc.Condition != nil {
		desc.Description = Render(desc.Condition)
	}
	return desc, true
}

// descName resolves a filter's display name: explicit name, then the
// field reference, then a fixed fallback.
func descName(fm map[string]any) string {
	if name, ok := fm["displayName"].(string); ok && name != "" {
		return name
	}
	if name, ok := fm["name"].(string); ok && name != "" {
		return name
	}
	if table, field := fieldRef(fm); field != "" {
		if table != "" {
			return table + "." + field
		}
		return field
	}
	return "(unnamed filter)"
}

// fieldRef extracts the filtered table and column/measure from the
// descriptor's field reference, tolerating both Column and Measure
// shapes.
func fieldRef(fm map[string]any) (table, field string) {
	ref, ok := fm["field"].(map[string]any)
	if !ok {
		return "", ""
	}
	for _, key := range []string{"Column", "Measure", "HierarchyLevel"} {
		inner, ok := ref[key].(map[string]any)
		if !ok {
			continue
		}
		field, _ = inner["Property"].(string)
		if field == "" {
			field, _ = inner["Level"].(string)
		}
		if expr, ok := inner["Expression"].(map[string]any); ok {
			if src, ok := expr["SourceRef"].(map[string]any); ok {
				table, _ = src["Entity"].(string)
			}
		}
		return table, field
	}
	return "", ""
}

// descCondition locates a descriptor's condition tree. Newer documents
// inline it under "filter" as a query with a Where list; some carry a
// bare condition object instead.
func descCondition(fm map[string]any) *model.FilterNode {
	q, ok := fm["filter"].(map[string]any)
	if !ok {
		return nil
	}
	if where, ok := q["Where"].([]any); ok {
		return ParseWhere(where)
	}
	// A bare condition object (no query wrapper).
	return ParseCondition(q)
}
