// Package render produces human-readable summaries of a canonical
// report: an indented text outline and a standalone HTML document.
// Both renderers are deterministic: the same report always produces
// byte-identical output.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tsawler/pbir/model"
)

// TextOptions configures the text renderer.
type TextOptions struct {
	// ShowBindings includes each visual's field bindings.
	ShowBindings bool
	// ShowFilters includes filter descriptions at every level.
	ShowFilters bool
}

// DefaultTextOptions returns the default text options: everything on.
func DefaultTextOptions() TextOptions {
	return TextOptions{ShowBindings: true, ShowFilters: true}
}

// Text writes an indented outline of the report to w.
func Text(w io.Writer, rep *model.Report, opts TextOptions) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Report\t(%d pages, %d visuals)\n", rep.PageCount(), rep.VisualCount())
	if rep.SchemaVersion != "" {
		fmt.Fprintf(tw, "  Schema version\t%s\n", rep.SchemaVersion)
	}
	if rep.Theme != "" {
		fmt.Fprintf(tw, "  Theme\t%s\n", rep.Theme)
	}
	for _, cv := range rep.CustomVisuals {
		fmt.Fprintf(tw, "  Custom visual\t%s\n", cv)
	}
	if opts.ShowFilters {
		writeFilters(tw, "  ", rep.Filters)
	}

	for _, page := range rep.Pages {
		hidden := ""
		if page.Hidden {
			hidden = " [hidden]"
		}
		fmt.Fprintf(tw, "Page %s\t%q%s (%gx%g, %s)\n",
			page.ID, page.DisplayName, hidden, page.Width, page.Height, page.Display)
		if opts.ShowFilters {
			writeFilters(tw, "  ", page.Filters)
		}

		for _, v := range page.Visuals {
			hidden := ""
			if v.Hidden {
				hidden = " [hidden]"
			}
			fmt.Fprintf(tw, "  %s\t%q%s at (%g,%g) %gx%g\n",
				v.Type, v.Title, hidden, v.Position.X, v.Position.Y, v.Position.Width, v.Position.Height)
			if opts.ShowBindings {
				writeBindings(tw, v.Bindings)
			}
			if opts.ShowFilters {
				writeFilters(tw, "    ", v.Filters)
			}
		}
	}

	for _, b := range rep.Bookmarks {
		fmt.Fprintf(tw, "Bookmark %s\t%q", b.ID, b.DisplayName)
		if b.PageID != "" {
			fmt.Fprintf(tw, " -> page %s", b.PageID)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

func writeBindings(w io.Writer, b model.Bindings) {
	for _, group := range []struct {
		label    string
		bindings []model.FieldBinding
	}{
		{"measure", b.Measures},
		{"dimension", b.Dimensions},
		{"value", b.Values},
	} {
		for _, binding := range group.bindings {
			role := ""
			if binding.Role != "" {
				role = " [" + binding.Role + "]"
			}
			fmt.Fprintf(w, "    %s%s\t%s\n", group.label, role, binding.QualifiedName())
		}
	}
}

func writeFilters(w io.Writer, indent string, filters []*model.FilterDescriptor) {
	for _, f := range filters {
		flags := filterFlags(f)
		fmt.Fprintf(w, "%sfilter %q\t%s%s", indent, f.Name, f.Type, flags)
		if f.Description != "" {
			fmt.Fprintf(w, ": %s", f.Description)
		}
		fmt.Fprintln(w)
	}
}

func filterFlags(f *model.FilterDescriptor) string {
	var flags []string
	if f.Hidden {
		flags = append(flags, "hidden")
	}
	if f.Locked {
		flags = append(flags, "locked")
	}
	if len(flags) == 0 {
		return ""
	}
	return " [" + strings.Join(flags, ",") + "]"
}
