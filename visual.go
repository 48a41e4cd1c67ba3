package pbir

import (
	"strings"

	"github.com/tsawler/pbir/fields"
	"github.com/tsawler/pbir/filter"
	"github.com/tsawler/pbir/literal"
	"github.com/tsawler/pbir/model"
)

// visualTypes maps raw visual type strings to canonical display
// names. Raw strings absent from the table pass through unchanged, so
// types not yet cataloged keep working.
var visualTypes = map[string]string{
	"columnChart":             "Column Chart",
	"clusteredColumnChart":    "Column Chart",
	"barChart":                "Bar Chart",
	"clusteredBarChart":       "Bar Chart",
	"lineChart":               "Line Chart",
	"pieChart":                "Pie Chart",
	"card":                    "Card",
	"multiRowCard":            "Multi-row Card",
	"tableEx":                 "Table",
	"matrix":                  "Matrix",
	"pivotTable":              "Pivot Table",
	"slicer":                  "Slicer",
	"textbox":                 "Text Box",
	"image":                   "Image",
	"shape":                   "Shape",
	"actionButton":            "Button",
	"qnaVisual":               "Q&A",
	"keyDriversVisual":        "Key Influencers",
	"decompositionTreeVisual": "Decomposition Tree",
}

// Custom visuals emit long opaque package identifiers as their type.
const (
	customVisualPrefix = "PBI_CV_"
	customVisualInfix  = "_CV_"
	customVisualMaxLen = 30
)

// titlePlaceholder is the literal the authoring tool writes into an
// untouched title property; it is never a real title.
const titlePlaceholder = "Title"

// textbox body runs at or above this length are body text, not a
// usable title.
const textboxTitleMaxLen = 50

// normalizeVisual builds one canonical Visual record from its
// document and optional mobile override.
func (n *Normalizer) normalizeVisual(id string, doc, mobile map[string]any, pageID string, res *Result) *model.Visual {
	vn := visualNode(doc)

	v := &model.Visual{ID: id}
	v.RawType = rawVisualType(vn)
	v.Type = canonicalType(v.RawType)
	v.Title = n.resolveTitle(vn, v, id)
	v.Position = position(doc, vn)
	v.Bindings = fields.Extract(vn)
	v.Format = formatting(vn)

	if hidden, ok := doc["isHidden"].(bool); ok {
		v.Hidden = hidden
	}

	filters, dropped := filter.ParseConfig(doc)
	v.Filters = filters
	for _, msg := range dropped {
		res.Warnings = append(res.Warnings, Warning{
			Path:    "definition/pages/" + pageID + "/visuals/" + id + "/visual.json",
			Message: msg,
		})
	}
	if qf := queryFilter(vn); qf != nil {
		v.Filters = append(v.Filters, qf)
	}

	if mobile != nil {
		if pos, ok := mobile["position"].(map[string]any); ok {
			p := positionFrom(pos)
			v.MobilePosition = &p
		}
	}

	return v
}

// visualNode locates the visual object inside a container document.
// Current documents nest it under "visual"; the oldest generation is
// the visual object itself.
func visualNode(doc map[string]any) map[string]any {
	if vn, ok := doc["visual"].(map[string]any); ok {
		return vn
	}
	return doc
}

// rawVisualType resolves the type string: visual.visualType first,
// then the legacy visual.singleVisual.visualType.
func rawVisualType(vn map[string]any) string {
	if t, ok := vn["visualType"].(string); ok && t != "" {
		return t
	}
	if t, ok := childMap(vn, "singleVisual")["visualType"].(string); ok {
		return t
	}
	return ""
}

// canonicalType canonicalizes a raw type string. Custom visuals are
// recognized by their package-identifier markers before the mapping
// table is consulted, whatever the literal value.
func canonicalType(raw string) string {
	if raw == "" {
		return model.UnknownType
	}
	if strings.HasPrefix(raw, customVisualPrefix) ||
		strings.Contains(raw, customVisualInfix) ||
		len(raw) > customVisualMaxLen {
		return model.CustomVisual
	}
	if mapped, ok := visualTypes[raw]; ok {
		return mapped
	}
	return raw
}

// resolveTitle runs the title fallback chain. The order is a fixed
// contract: the container-level override must win over the legacy
// objects title when both are present, which happens in documents
// edited by successive tool versions.
func (n *Normalizer) resolveTitle(vn map[string]any, v *model.Visual, id string) string {
	// 1. Container-level title override.
	if t := titleFromObjects(childMap(vn, "visualContainerObjects")); usableTitle(t) {
		return t
	}

	// 2. Legacy single-visual objects title.
	if t := titleFromObjects(childMap(vn, "singleVisual", "objects")); usableTitle(t) {
		return t
	}
	if t := titleFromObjects(childMap(vn, "objects")); usableTitle(t) {
		return t
	}

	// 3. Text boxes: the first text run, unless it is body text.
	if v.RawType == "textbox" {
		if t := textboxFirstRun(vn); t != "" && len(t) < textboxTitleMaxLen {
			return t
		}
	}

	// 4. Synthesized name from type and id prefix.
	prefix := id
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	if v.Type == model.UnknownType {
		return "Visual (" + prefix + ")"
	}
	return v.Type + " (" + prefix + ")"
}

// usableTitle rejects empty strings and the authoring placeholder.
func usableTitle(t string) bool {
	return t != "" && t != titlePlaceholder
}

// titleFromObjects extracts title[0].properties.text from an objects
// section, resolving whatever wrapper shape carries it.
func titleFromObjects(objects map[string]any) string {
	props := firstProperties(objects, "title")
	if props == nil {
		return ""
	}
	return literal.ResolveString(props["text"])
}

// textboxFirstRun returns the first text run of the first paragraph
// of a text box, wherever its objects section lives.
func textboxFirstRun(vn map[string]any) string {
	for _, objects := range []map[string]any{
		childMap(vn, "objects"),
		childMap(vn, "singleVisual", "objects"),
	} {
		props := firstProperties(objects, "general")
		if props == nil {
			continue
		}
		paragraphs, _ := props["paragraphs"].([]any)
		if len(paragraphs) == 0 {
			continue
		}
		para, _ := paragraphs[0].(map[string]any)
		runs, _ := para["textRuns"].([]any)
		if len(runs) == 0 {
			continue
		}
		run, _ := runs[0].(map[string]any)
		if value, ok := run["value"].(string); ok {
			return value
		}
	}
	return ""
}

// firstProperties returns objects.{key}[0].properties, the shape
// every objects entry uses.
func firstProperties(objects map[string]any, key string) map[string]any {
	if objects == nil {
		return nil
	}
	entries, _ := objects[key].([]any)
	if len(entries) == 0 {
		return nil
	}
	entry, _ := entries[0].(map[string]any)
	props, _ := entry["properties"].(map[string]any)
	return props
}

// position resolves the visual's placement: the container-level
// position object, else the legacy layouts list.
func position(doc, vn map[string]any) model.Position {
	if pos, ok := doc["position"].(map[string]any); ok {
		return positionFrom(pos)
	}
	if layouts, ok := doc["layouts"].([]any); ok && len(layouts) > 0 {
		if lm, ok := layouts[0].(map[string]any); ok {
			if pos, ok := lm["position"].(map[string]any); ok {
				return positionFrom(pos)
			}
		}
	}
	if pos, ok := vn["position"].(map[string]any); ok {
		return positionFrom(pos)
	}
	return model.Position{}
}

// positionFrom decodes a position object. Missing values default to
// zero and negative sizes clamp to zero, so layout arithmetic
// downstream needs no nil or sign checks.
func positionFrom(pos map[string]any) model.Position {
	p := model.Position{}
	if x, ok := pos["x"].(float64); ok {
		p.X = x
	}
	if y, ok := pos["y"].(float64); ok {
		p.Y = y
	}
	if z, ok := pos["z"].(float64); ok {
		p.Z = z
	}
	if w, ok := pos["width"].(float64); ok && w > 0 {
		p.Width = w
	}
	if h, ok := pos["height"].(float64); ok && h > 0 {
		p.Height = h
	}
	if tab, ok := pos["tabOrder"].(float64); ok {
		p.TabOrder = int(tab)
	}
	if angle, ok := pos["angle"].(float64); ok {
		p.Angle = angle
	}
	return p
}

// formatting resolves the visual's formatting spec. Container-level
// objects win over legacy single-visual objects, consistent with the
// title chain.
func formatting(vn map[string]any) model.Formatting {
	f := model.Formatting{}

	sections := []map[string]any{
		childMap(vn, "visualContainerObjects"),
		childMap(vn, "singleVisual", "objects"),
		childMap(vn, "objects"),
	}

	for _, objects := range sections {
		if objects == nil {
			continue
		}

		if f.Background == nil {
			if props := firstProperties(objects, "background"); props != nil {
				bg := &model.Background{}
				bg.Color = literal.ResolveString(props["color"])
				if t, ok := literal.ResolveFloat(props["transparency"]); ok {
					bg.Transparency = t
				}
				if bg.Color != "" || bg.Transparency != 0 {
					f.Background = bg
				}
			}
		}

		if f.Border == nil {
			if props := firstProperties(objects, "border"); props != nil {
				border := &model.Border{Color: literal.ResolveString(props["color"])}
				if shown, ok := literal.Resolve(props["show"]); ok {
					b, _ := shown.(bool)
					border.Shown = b
				}
				if border.Color != "" || border.Shown {
					f.Border = border
				}
			}
		}

		if f.TitleStyle == nil {
			if props := firstProperties(objects, "title"); props != nil {
				style := &model.TitleStyle{
					FontFamily: literal.ResolveString(props["fontFamily"]),
					Color:      literal.ResolveString(props["fontColor"]),
				}
				if size, ok := literal.ResolveFloat(props["fontSize"]); ok {
					style.FontSize = size
				}
				if style.FontFamily != "" || style.Color != "" || style.FontSize != 0 {
					f.TitleStyle = style
				}
			}
		}

		if f.DataColors == nil {
			if entries, ok := objects["dataPoint"].([]any); ok {
				for _, e := range entries {
					em, _ := e.(map[string]any)
					props, _ := em["properties"].(map[string]any)
					if props == nil {
						continue
					}
					if c := literal.ResolveString(props["fill"]); c != "" {
						f.DataColors = append(f.DataColors, c)
					}
				}
			}
		}
	}

	return f
}

// queryFilter surfaces a legacy prototype query's Where clause as one
// more filter descriptor, so query-level restrictions stay visible in
// the canonical model.
func queryFilter(vn map[string]any) *model.FilterDescriptor {
	proto := childMap(vn, "singleVisual", "prototypeQuery")
	if proto == nil {
		proto = childMap(vn, "prototypeQuery")
	}
	if proto == nil {
		return nil
	}
	where, ok := proto["Where"].([]any)
	if !ok || len(where) == 0 {
		return nil
	}
	node := filter.ParseWhere(where)
	if node == nil {
		return nil
	}
	return &model.FilterDescriptor{
		Name:        "Query Filter",
		Type:        model.FilterAdvanced,
		Condition:   node,
		Description: filter.Render(node),
	}
}
