package render

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/pbir/model"
)

// HTML writes a standalone HTML summary of the report to w. The
// document is built as a node tree and serialized with html.Render,
// so all text content is escaped correctly.
func HTML(w io.Writer, rep *model.Report) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := elem(atom.Html, "html")
	doc.AppendChild(root)

	head := elem(atom.Head, "head")
	title := elem(atom.Title, "title")
	title.AppendChild(text("Report summary"))
	head.AppendChild(title)
	root.AppendChild(head)

	body := elem(atom.Body, "body")
	root.AppendChild(body)

	h1 := elem(atom.H1, "h1")
	h1.AppendChild(text(fmt.Sprintf("Report (%d pages, %d visuals)", rep.PageCount(), rep.VisualCount())))
	body.AppendChild(h1)

	if meta := metaList(rep); meta != nil {
		body.AppendChild(meta)
	}

	for _, page := range rep.Pages {
		body.AppendChild(pageSection(page))
	}

	if len(rep.Bookmarks) > 0 {
		h2 := elem(atom.H2, "h2")
		h2.AppendChild(text("Bookmarks"))
		body.AppendChild(h2)
		ul := elem(atom.Ul, "ul")
		for _, b := range rep.Bookmarks {
			li := elem(atom.Li, "li")
			li.AppendChild(text(b.DisplayName))
			ul.AppendChild(li)
		}
		body.AppendChild(ul)
	}

	return html.Render(w, doc)
}

// metaList renders schema version, theme, and custom visuals, or nil
// when the report carries none of them.
func metaList(rep *model.Report) *html.Node {
	ul := elem(atom.Ul, "ul")
	add := func(label, value string) {
		li := elem(atom.Li, "li")
		li.AppendChild(text(label + ": " + value))
		ul.AppendChild(li)
	}
	if rep.SchemaVersion != "" {
		add("Schema version", rep.SchemaVersion)
	}
	if rep.Theme != "" {
		add("Theme", rep.Theme)
	}
	for _, cv := range rep.CustomVisuals {
		add("Custom visual", cv)
	}
	if ul.FirstChild == nil {
		return nil
	}
	return ul
}

// pageSection renders one page: heading, filters, and a visuals
// table.
func pageSection(page *model.Page) *html.Node {
	section := elem(atom.Section, "section")

	h2 := elem(atom.H2, "h2")
	label := page.DisplayName
	if page.Hidden {
		label += " (hidden)"
	}
	h2.AppendChild(text(label))
	section.AppendChild(h2)

	if len(page.Filters) > 0 {
		ul := elem(atom.Ul, "ul")
		for _, f := range page.Filters {
			li := elem(atom.Li, "li")
			desc := string(f.Type)
			if f.Description != "" {
				desc += ": " + f.Description
			}
			li.AppendChild(text(f.Name + " — " + desc))
			ul.AppendChild(li)
		}
		section.AppendChild(ul)
	}

	if len(page.Visuals) > 0 {
		section.AppendChild(visualsTable(page.Visuals))
	}
	return section
}

// visualsTable renders the page's visuals as a table of type, title,
// position, and bindings.
func visualsTable(visuals []*model.Visual) *html.Node {
	table := elem(atom.Table, "table")

	header := elem(atom.Tr, "tr")
	for _, h := range []string{"Type", "Title", "Position", "Fields"} {
		th := elem(atom.Th, "th")
		th.AppendChild(text(h))
		header.AppendChild(th)
	}
	table.AppendChild(header)

	for _, v := range visuals {
		tr := elem(atom.Tr, "tr")

		cells := []string{
			v.Type,
			v.Title,
			fmt.Sprintf("(%g,%g) %gx%g", v.Position.X, v.Position.Y, v.Position.Width, v.Position.Height),
			bindingsSummary(v.Bindings),
		}
		for _, c := range cells {
			td := elem(atom.Td, "td")
			td.AppendChild(text(c))
			tr.AppendChild(td)
		}
		table.AppendChild(tr)
	}
	return table
}

func bindingsSummary(b model.Bindings) string {
	var parts []string
	for _, binding := range b.All() {
		parts = append(parts, binding.QualifiedName())
	}
	if len(parts) == 0 {
		return "—"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}

func elem(a atom.Atom, name string) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: name}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
