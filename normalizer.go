package pbir

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/pbir/docpath"
	"github.com/tsawler/pbir/filter"
	"github.com/tsawler/pbir/model"
	"github.com/tsawler/pbir/reader"
)

// Normalizer turns a report document set into the canonical model.
// Each configuration method returns a new Normalizer instance, making
// it safe to share a configured prototype across goroutines.
type Normalizer struct {
	// Source
	dir    string
	source *reader.Source

	// Configuration
	options normalizeOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Normalizer so chain methods never
// mutate their receiver.
func (n *Normalizer) clone() *Normalizer {
	return &Normalizer{
		dir:     n.dir,
		source:  n.source,
		options: n.options,
		err:     n.err,
	}
}

// Result holds the outcome of one normalization run: the canonical
// report plus the two side channels of the error taxonomy.
type Result struct {
	// Report is the canonical model. It is always non-nil, and as
	// populated as the document set allowed.
	Report *model.Report

	// Errors lists documents that could not be deserialized, one
	// entry per document. Their sections are absent from Report.
	Errors []ParseError

	// Warnings lists non-fatal issues: failed optional schema
	// checks, dropped filters, identifier collisions.
	Warnings []Warning

	// MissingRoot reports that definition/report.json was absent.
	MissingRoot bool
}

// Report normalizes the document set and returns the canonical model
// with any warnings. A missing report root is returned as
// ErrMissingRoot alongside the partially populated report; all other
// per-document failures are folded into the warning list.
func (n *Normalizer) Report() (*model.Report, []Warning, error) {
	res, err := n.Result()
	if err != nil {
		return nil, nil, err
	}
	warnings := res.Warnings
	for _, e := range res.Errors {
		warnings = append(warnings, Warning{Path: e.Path, Message: e.Message})
	}
	if res.MissingRoot {
		return res.Report, warnings, fmt.Errorf("%s: %w", "definition/report.json", ErrMissingRoot)
	}
	return res.Report, warnings, nil
}

// Result normalizes the document set and returns the full Result.
// The returned error covers only unusable input (an unreadable
// directory); document-level problems land in the Result lists.
func (n *Normalizer) Result() (*Result, error) {
	if n.err != nil {
		return nil, n.err
	}

	src := n.source
	if src == nil {
		var err error
		src, err = reader.Open(n.dir)
		if err != nil {
			return nil, err
		}
	}

	res := &Result{Report: model.NewReport()}
	for _, err := range src.Errs() {
		res.Errors = append(res.Errors, ParseError{Path: "", Message: err.Error()})
	}

	set := n.collect(src.Documents(), res)
	n.resolve(set, res)
	return res, nil
}

// documentSet is the intermediate, role-bucketed view of the raw
// documents. Normalization is two-phase: collect buckets everything,
// resolve builds the model with random access to the full set.
type documentSet struct {
	root       map[string]any
	version    map[string]any
	extensions map[string]any
	pageList   map[string]any

	pages    map[string]map[string]any            // pageID -> page document
	visuals  map[string]map[string]map[string]any // pageID -> visualID -> document
	mobiles  map[string]map[string]map[string]any // pageID -> visualID -> document
	pagePath map[string]string                    // pageID -> page document path

	bookmarkList map[string]any
	bookmarks    map[string]map[string]any
	bookmarkPath map[string]string

	unknownIDPaths []string
}

func newDocumentSet() *documentSet {
	return &documentSet{
		pages:        make(map[string]map[string]any),
		visuals:      make(map[string]map[string]map[string]any),
		mobiles:      make(map[string]map[string]map[string]any),
		pagePath:     make(map[string]string),
		bookmarks:    make(map[string]map[string]any),
		bookmarkPath: make(map[string]string),
	}
}

// schemaNames maps document roles to validator schema names.
var schemaNames = map[docpath.Role]string{
	docpath.Report:       "report",
	docpath.Version:      "version",
	docpath.Extensions:   "reportExtensions",
	docpath.PageList:     "pages",
	docpath.Page:         "page",
	docpath.Visual:       "visual",
	docpath.MobileVisual: "mobile",
	docpath.BookmarkList: "bookmarks",
	docpath.Bookmark:     "bookmark",
}

// collect is phase one: classify, decode, and bucket every document.
// No cross-document resolution happens here.
func (n *Normalizer) collect(docs []reader.Document, res *Result) *documentSet {
	set := newDocumentSet()

	for _, doc := range docs {
		info := docpath.Classify(doc.Path)
		n.options.logger.Debug().
			Str("path", doc.Path).
			Str("role", info.Role.String()).
			Msg("classified document")

		if info.Role == docpath.Unrecognized {
			continue
		}

		var parsed map[string]any
		if err := json.Unmarshal(doc.Data, &parsed); err != nil {
			res.Errors = append(res.Errors, ParseError{Path: doc.Path, Message: err.Error()})
			continue
		}

		if name, ok := schemaNames[info.Role]; ok {
			if vr := n.options.validator.Validate(parsed, name); !vr.Valid {
				for _, msg := range vr.Errors {
					res.Warnings = append(res.Warnings, Warning{Path: doc.Path, Message: msg})
				}
			}
		}

		switch info.Role {
		case docpath.Report:
			storeSingle(&set.root, parsed, doc.Path, res)
		case docpath.Version:
			storeSingle(&set.version, parsed, doc.Path, res)
		case docpath.Extensions:
			storeSingle(&set.extensions, parsed, doc.Path, res)
		case docpath.PageList:
			storeSingle(&set.pageList, parsed, doc.Path, res)
		case docpath.BookmarkList:
			storeSingle(&set.bookmarkList, parsed, doc.Path, res)

		case docpath.Page:
			set.trackUnknown(info.PageID, doc.Path)
			set.pages[info.PageID] = parsed
			set.pagePath[info.PageID] = doc.Path

		case docpath.Visual:
			set.trackUnknown(info.PageID, doc.Path)
			set.trackUnknown(info.VisualID, doc.Path)
			bucket(set.visuals, info.PageID)[info.VisualID] = parsed

		case docpath.MobileVisual:
			bucket(set.mobiles, info.PageID)[info.VisualID] = parsed

		case docpath.Bookmark:
			set.trackUnknown(info.BookmarkID, doc.Path)
			set.bookmarks[info.BookmarkID] = parsed
			set.bookmarkPath[info.BookmarkID] = doc.Path
		}
	}

	return set
}

// resolve is phase two: build the canonical model with random access
// to the full bucketed set.
func (n *Normalizer) resolve(set *documentSet, res *Result) {
	rep := res.Report

	if set.root == nil {
		res.MissingRoot = true
	} else {
		n.mergeRoot(rep, set.root, res)
	}
	mergeVersion(rep, set.version)
	mergeExtensions(rep, set.extensions)

	overrides := pageListOverrides(set.pageList)
	for _, pageID := range pageOrder(set) {
		page := n.normalizePage(pageID, set.pages[pageID], overrides[pageID], set.pagePath[pageID], res)

		for _, visualID := range sortedKeys(set.visuals[pageID]) {
			visual := n.normalizeVisual(visualID, set.visuals[pageID][visualID], set.mobiles[pageID][visualID], pageID, res)
			page.AddVisual(visual)
		}
		rep.AddPage(page)
	}

	for _, id := range bookmarkOrder(set) {
		rep.Bookmarks = append(rep.Bookmarks, normalizeBookmark(id, set.bookmarks[id]))
	}

	if len(set.unknownIDPaths) > 1 {
		res.Warnings = append(res.Warnings, Warning{
			Message: "identifier collision: multiple paths collapsed to the \"unknown\" sentinel: " +
				strings.Join(set.unknownIDPaths, ", "),
		})
	}
}

// mergeRoot folds the report root document into the model: theme,
// custom-visual registry, and report-level filters.
func (n *Normalizer) mergeRoot(rep *model.Report, root map[string]any, res *Result) {
	if rep.Theme == "" {
		if name, ok := childMap(root, "themeCollection", "baseTheme")["name"].(string); ok {
			rep.Theme = name
		} else if name, ok := root["theme"].(string); ok {
			rep.Theme = name
		}
	}

	if customs, ok := root["publicCustomVisuals"].([]any); ok {
		for _, c := range customs {
			if s, ok := c.(string); ok {
				rep.CustomVisuals = append(rep.CustomVisuals, s)
			}
		}
	}

	// Some generations record the schema version on the root itself;
	// the dedicated version document never overwrites it.
	if rep.SchemaVersion == "" {
		if v, ok := root["version"].(string); ok {
			rep.SchemaVersion = v
		}
	}

	filters, dropped := filter.ParseConfig(root)
	rep.Filters = filters
	for _, msg := range dropped {
		res.Warnings = append(res.Warnings, Warning{Path: "definition/report.json", Message: msg})
	}
}

// mergeVersion sets the schema version tag if no earlier-merged
// document already did.
func mergeVersion(rep *model.Report, version map[string]any) {
	if version == nil || rep.SchemaVersion != "" {
		return
	}
	switch v := version["version"].(type) {
	case string:
		rep.SchemaVersion = v
	case float64:
		rep.SchemaVersion = fmt.Sprintf("%g", v)
	}
}

// mergeExtensions folds report-extension measures into the model.
// Like all later merges it only adds, never overwrites.
func mergeExtensions(rep *model.Report, ext map[string]any) {
	if ext == nil {
		return
	}
	entities, _ := ext["entities"].([]any)
	for _, e := range entities {
		em, ok := e.(map[string]any)
		if !ok {
			continue
		}
		table, _ := em["name"].(string)
		measures, _ := em["measures"].([]any)
		for _, m := range measures {
			mm, ok := m.(map[string]any)
			if !ok {
				continue
			}
			name, _ := mm["name"].(string)
			expr, _ := mm["expression"].(string)
			if name == "" {
				continue
			}
			rep.ExtensionMeasures = append(rep.ExtensionMeasures, model.ExtensionMeasure{
				Table:      table,
				Name:       name,
				Expression: expr,
			})
		}
	}
}

// normalizeBookmark builds one bookmark record, tolerating an absent
// or sparse document.
func normalizeBookmark(id string, doc map[string]any) *model.Bookmark {
	b := &model.Bookmark{ID: id, DisplayName: id}
	if doc == nil {
		return b
	}
	if dn, ok := doc["displayName"].(string); ok && dn != "" {
		b.DisplayName = dn
	}
	if section, ok := childMap(doc, "explorationState")["activeSection"].(string); ok {
		b.PageID = section
	}
	return b
}

// pageOrder returns page identifiers in display order: the page-list
// pageOrder first, then any remaining pages in identifier order. A
// page counts as existing when any document implies it: its own page
// document, a visual document under it, or a page-list entry (the
// last matters when the page document itself failed to parse).
func pageOrder(set *documentSet) []string {
	var order []string
	seen := make(map[string]bool)
	if set.pageList != nil {
		if po, ok := set.pageList["pageOrder"].([]any); ok {
			for _, e := range po {
				id, ok := e.(string)
				if !ok || id == "" || seen[id] {
					continue
				}
				order = append(order, id)
				seen[id] = true
			}
		}
	}

	var rest []string
	for id := range set.pages {
		if !seen[id] {
			rest = append(rest, id)
			seen[id] = true
		}
	}
	for id := range set.visuals {
		if !seen[id] {
			rest = append(rest, id)
			seen[id] = true
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// pageListOverrides extracts display-name overrides from the
// page-list document, keyed by page identifier.
func pageListOverrides(pageList map[string]any) map[string]string {
	overrides := make(map[string]string)
	if pageList == nil {
		return overrides
	}
	entries, _ := pageList["pages"].([]any)
	for _, e := range entries {
		em, ok := e.(map[string]any)
		if !ok {
			continue
		}
		name, _ := em["name"].(string)
		dn, _ := em["displayName"].(string)
		if name != "" && dn != "" {
			overrides[name] = dn
		}
	}
	return overrides
}

// bookmarkOrder returns bookmark identifiers in list order, then any
// stragglers in identifier order.
func bookmarkOrder(set *documentSet) []string {
	var order []string
	seen := make(map[string]bool)
	if set.bookmarkList != nil {
		if items, ok := set.bookmarkList["items"].([]any); ok {
			for _, it := range items {
				id, ok := it.(string)
				if !ok {
					if im, isMap := it.(map[string]any); isMap {
						id, _ = im["name"].(string)
					}
				}
				if id == "" || seen[id] || set.bookmarks[id] == nil {
					continue
				}
				order = append(order, id)
				seen[id] = true
			}
		}
	}
	rest := make([]string, 0, len(set.bookmarks))
	for id := range set.bookmarks {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// storeSingle stores a singleton document, keeping the first one seen
// when duplicates appear (earlier-merged documents win).
func storeSingle(slot *map[string]any, parsed map[string]any, path string, res *Result) {
	if *slot != nil {
		res.Warnings = append(res.Warnings, Warning{Path: path, Message: "duplicate document ignored"})
		return
	}
	*slot = parsed
}

// trackUnknown records paths whose identifier collapsed to the
// sentinel, so collisions can be reported.
func (s *documentSet) trackUnknown(id, path string) {
	if id != docpath.UnknownID {
		return
	}
	for _, p := range s.unknownIDPaths {
		if p == path {
			return
		}
	}
	s.unknownIDPaths = append(s.unknownIDPaths, path)
}

// bucket returns the inner map for key, creating it on first use.
func bucket(m map[string]map[string]map[string]any, key string) map[string]map[string]any {
	if m[key] == nil {
		m[key] = make(map[string]map[string]any)
	}
	return m[key]
}

// sortedKeys returns the keys of m in sorted order.
func sortedKeys(m map[string]map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// childMap walks nested maps by key, returning nil as soon as any
// step is missing or not a map.
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
