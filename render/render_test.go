package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tsawler/pbir/model"
)

func sampleReport() *model.Report {
	rep := model.NewReport()
	rep.SchemaVersion = "2.0.0"
	rep.Theme = "CityPark"

	page := model.NewPage("page1")
	page.DisplayName = "Overview"
	page.Width, page.Height = 1280, 720
	page.Visuals = append(page.Visuals, &model.Visual{
		ID:       "v1",
		Type:     "Card",
		Title:    "Revenue Trend",
		Position: model.Position{X: 40, Y: 40, Width: 300, Height: 200},
		Bindings: model.Bindings{
			Measures: []model.FieldBinding{{Role: "Values", Kind: model.KindMeasure, Table: "Sales", Field: "Revenue"}},
		},
		Filters: []*model.FilterDescriptor{{
			Name:        "Region",
			Type:        model.FilterCategorical,
			Description: "IN (West)",
		}},
	})
	rep.AddPage(page)

	rep.Bookmarks = append(rep.Bookmarks, &model.Bookmark{ID: "bm1", DisplayName: "Launch view", PageID: "page1"})
	return rep
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sampleReport(), DefaultTextOptions()); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Report",
		"2.0.0",
		"CityPark",
		`"Overview"`,
		"Card",
		`"Revenue Trend"`,
		"Sales.Revenue",
		"IN (West)",
		"Launch view",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Text() output missing %q:\n%s", want, out)
		}
	}
}

func TestText_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	rep := sampleReport()
	if err := Text(&a, rep, DefaultTextOptions()); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if err := Text(&b, rep, DefaultTextOptions()); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("Text() output differs between identical runs")
	}
}

func TestText_OptionsSuppressSections(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sampleReport(), TextOptions{}); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Sales.Revenue") {
		t.Error("bindings rendered despite ShowBindings=false")
	}
	if strings.Contains(out, "IN (West)") {
		t.Error("filters rendered despite ShowFilters=false")
	}
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, sampleReport()); err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("HTML() output does not start with a doctype: %.40q", out)
	}
	for _, want := range []string{
		"<h1>Report (1 pages, 1 visuals)</h1>",
		"<h2>Overview</h2>",
		"<td>Revenue Trend</td>",
		"Sales.Revenue",
		"<li>Launch view</li>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML() output missing %q:\n%s", want, out)
		}
	}
}

func TestHTML_EscapesContent(t *testing.T) {
	rep := model.NewReport()
	page := model.NewPage("p")
	page.DisplayName = `<script>alert("x")</script>`
	rep.AddPage(page)

	var buf bytes.Buffer
	if err := HTML(&buf, rep); err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if strings.Contains(buf.String(), "<script>") {
		t.Error("HTML() did not escape page display name")
	}
}
