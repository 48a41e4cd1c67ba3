package pbir

import (
	"github.com/tsawler/pbir/filter"
	"github.com/tsawler/pbir/literal"
	"github.com/tsawler/pbir/model"
)

// normalizePage builds one Page record from its document and the
// page-list override. The document may be nil when the page exists
// only through its visuals; the identifier still anchors it.
func (n *Normalizer) normalizePage(id string, doc map[string]any, listName, path string, res *Result) *model.Page {
	page := model.NewPage(id)

	// Display name priority: page-document override, page-list
	// entry, raw identifier. Reversing the first two would silently
	// change which name wins for documents edited by successive tool
	// versions, so the order is fixed.
	if doc != nil {
		if dn, ok := doc["displayName"].(string); ok && dn != "" {
			page.DisplayName = dn
		} else if listName != "" {
			page.DisplayName = listName
		}
	} else if listName != "" {
		page.DisplayName = listName
	}

	if doc == nil {
		return page
	}

	if w, ok := doc["width"].(float64); ok && w > 0 {
		page.Width = w
	}
	if h, ok := doc["height"].(float64); ok && h > 0 {
		page.Height = h
	}
	if page.Width == 0 && page.Height == 0 {
		if w, h, ok := pageSizeFromObjects(doc); ok {
			page.Width, page.Height = w, h
		}
	}

	page.Hidden = pageHidden(doc)
	page.Display = displayOption(doc)

	filters, dropped := filter.ParseConfig(doc)
	page.Filters = filters
	for _, msg := range dropped {
		res.Warnings = append(res.Warnings, Warning{Path: path, Message: msg})
	}

	return page
}

// pageHidden resolves the visibility flag across its encodings: a
// string tag in current documents, a numeric code in older ones.
func pageHidden(doc map[string]any) bool {
	switch v := doc["visibility"].(type) {
	case string:
		return v == "HiddenInViewMode"
	case float64:
		return v == 1
	}
	return false
}

// displayOption resolves the page scaling mode across its encodings.
func displayOption(doc map[string]any) model.DisplayOption {
	switch v := doc["displayOption"].(type) {
	case string:
		switch v {
		case "FitToWidth":
			return model.DisplayFitToWidth
		case "ActualSize":
			return model.DisplayActualSize
		}
	case float64:
		switch int(v) {
		case 1:
			return model.DisplayFitToWidth
		case 2:
			return model.DisplayActualSize
		}
	}
	return model.DisplayFitToPage
}

// pageSizeFromObjects is retained for page documents that declare
// their size through the legacy objects section instead of top-level
// width/height.
func pageSizeFromObjects(doc map[string]any) (w, h float64, ok bool) {
	props := firstProperties(childMap(doc, "objects"), "pageSize")
	if props == nil {
		return 0, 0, false
	}
	w, wok := literal.ResolveFloat(props["width"])
	h, hok := literal.ResolveFloat(props["height"])
	return w, h, wok && hok
}
