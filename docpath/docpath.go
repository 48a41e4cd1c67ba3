// Package docpath classifies report-definition file paths into
// document roles.
//
// A PBIR report definition is a directory tree of JSON documents with a
// fixed layout:
//
//	definition/report.json
//	definition/version.json
//	definition/reportExtensions.json
//	definition/pages/pages.json
//	definition/pages/{pageId}/page.json
//	definition/pages/{pageId}/visuals/{visualId}/visual.json
//	definition/pages/{pageId}/visuals/{visualId}/mobile.json
//	definition/bookmarks/bookmarks.json
//	definition/bookmarks/{name}.bookmark.json
//
// Classify maps a relative path to its [Role] and extracts the entity
// identifiers embedded in the path. Patterns are evaluated most
// specific first, so a visual document is never misread as a page
// document.
package docpath

import "strings"

// Role identifies the structural role of one document in the report
// definition tree.
type Role int

const (
	// Unrecognized indicates a path matching no known pattern.
	Unrecognized Role = iota
	// Report is the report root document.
	Report
	// Version is the schema version metadata document.
	Version
	// Extensions is the report extensions document.
	Extensions
	// PageList is the page-list document (page order and overrides).
	PageList
	// Page is a single page document.
	Page
	// Visual is a single visual-container document.
	Visual
	// MobileVisual is a visual's mobile-layout override document.
	MobileVisual
	// BookmarkList is the bookmark-list document.
	BookmarkList
	// Bookmark is a single bookmark document.
	Bookmark
)

func (r Role) String() string {
	switch r {
	case Report:
		return "Report"
	case Version:
		return "Version"
	case Extensions:
		return "Extensions"
	case PageList:
		return "PageList"
	case Page:
		return "Page"
	case Visual:
		return "Visual"
	case MobileVisual:
		return "MobileVisual"
	case BookmarkList:
		return "BookmarkList"
	case Bookmark:
		return "Bookmark"
	default:
		return "Unrecognized"
	}
}

// UnknownID is the sentinel identifier used when a pattern matches a
// document role but the identifier segment cannot be extracted.
// Downstream stages treat it as a distinct, potentially colliding key;
// the normalizer reports collisions on it as warnings.
const UnknownID = "unknown"

// Info is the classification result for one path.
type Info struct {
	Role Role

	// PageID is set for Page, Visual, and MobileVisual roles.
	PageID string
	// VisualID is set for Visual and MobileVisual roles.
	VisualID string
	// BookmarkID is set for the Bookmark role.
	BookmarkID string
}

// Classify maps a relative document path to its role and extracts the
// identifiers embedded in it. Paths are matched with forward slashes;
// backslashes are normalized first. Classification never fails: paths
// matching no pattern yield the Unrecognized role, and a matching path
// with a malformed identifier segment yields UnknownID.
func Classify(path string) Info {
	p := strings.ReplaceAll(path, `\`, "/")
	p = strings.TrimPrefix(p, "/")
	segs := strings.Split(p, "/")

	// Most specific patterns first: visual documents sit deepest in
	// the tree and would otherwise be shadowed by the page pattern.
	switch {
	case strings.HasSuffix(p, "/visual.json"):
		return Info{Role: Visual, PageID: segAfter(segs, "pages"), VisualID: segAfter(segs, "visuals")}

	case strings.HasSuffix(p, "/mobile.json"):
		return Info{Role: MobileVisual, PageID: segAfter(segs, "pages"), VisualID: segAfter(segs, "visuals")}

	case strings.HasSuffix(p, "/page.json"):
		return Info{Role: Page, PageID: segAfter(segs, "pages")}

	case strings.HasSuffix(p, "/pages/pages.json") || p == "pages/pages.json":
		return Info{Role: PageList}

	case strings.HasSuffix(p, "/bookmarks/bookmarks.json") || p == "bookmarks/bookmarks.json":
		return Info{Role: BookmarkList}

	case strings.HasSuffix(p, ".bookmark.json"):
		return Info{Role: Bookmark, BookmarkID: bookmarkName(segs)}

	case strings.HasSuffix(p, "/report.json") || p == "report.json":
		return Info{Role: Report}

	case strings.HasSuffix(p, "/version.json") || p == "version.json":
		return Info{Role: Version}

	case strings.HasSuffix(p, "/reportExtensions.json") || p == "reportExtensions.json":
		return Info{Role: Extensions}
	}

	return Info{Role: Unrecognized}
}

// segAfter returns the path segment following the first occurrence of
// marker, or UnknownID if there is none.
func segAfter(segs []string, marker string) string {
	for i, s := range segs {
		if s == marker && i+1 < len(segs)-1 {
			// i+1 must not be the filename itself.
			return segs[i+1]
		}
	}
	return UnknownID
}

// bookmarkName extracts the bookmark name from its filename,
// "{name}.bookmark.json".
func bookmarkName(segs []string) string {
	if len(segs) == 0 {
		return UnknownID
	}
	base := segs[len(segs)-1]
	name := strings.TrimSuffix(base, ".bookmark.json")
	if name == "" || name == base {
		return UnknownID
	}
	return name
}
