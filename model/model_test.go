package model

import "testing"

func TestReport_GetPage(t *testing.T) {
	rep := NewReport()
	rep.AddPage(NewPage("abc"))
	rep.AddPage(NewPage("def"))

	if p := rep.GetPage("def"); p == nil || p.ID != "def" {
		t.Errorf("GetPage(def) = %v, want page def", p)
	}
	if p := rep.GetPage("missing"); p != nil {
		t.Errorf("GetPage(missing) = %v, want nil", p)
	}
}

func TestReport_VisualCount(t *testing.T) {
	rep := NewReport()
	p1 := NewPage("p1")
	p1.AddVisual(&Visual{ID: "v1"})
	p1.AddVisual(&Visual{ID: "v2"})
	p2 := NewPage("p2")
	p2.AddVisual(&Visual{ID: "v3"})
	rep.AddPage(p1)
	rep.AddPage(p2)

	if got := rep.VisualCount(); got != 3 {
		t.Errorf("VisualCount() = %d, want 3", got)
	}
	if got := len(rep.AllVisuals()); got != 3 {
		t.Errorf("len(AllVisuals()) = %d, want 3", got)
	}
}

func TestPosition_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want bool
	}{
		{"disjoint", Position{X: 0, Y: 0, Width: 10, Height: 10}, Position{X: 20, Y: 20, Width: 5, Height: 5}, false},
		{"overlapping", Position{X: 0, Y: 0, Width: 10, Height: 10}, Position{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"touching edges", Position{X: 0, Y: 0, Width: 10, Height: 10}, Position{X: 10, Y: 0, Width: 10, Height: 10}, false},
		{"contained", Position{X: 0, Y: 0, Width: 100, Height: 100}, Position{X: 10, Y: 10, Width: 5, Height: 5}, true},
	}

	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%s: Overlaps() = %v, want %v", tt.name, got, tt.want)
		}
		if got := tt.b.Overlaps(tt.a); got != tt.want {
			t.Errorf("%s: Overlaps() not symmetric: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFieldBinding_QualifiedName(t *testing.T) {
	tests := []struct {
		binding FieldBinding
		want    string
	}{
		{FieldBinding{Table: "Sales", Field: "Revenue"}, "Sales.Revenue"},
		{FieldBinding{Table: "Sales", Field: "Amount", Aggregation: "Sum"}, "Sum(Sales.Amount)"},
		{FieldBinding{Table: UnknownTable, Field: "x"}, "Unknown Table.x"},
	}

	for _, tt := range tests {
		if got := tt.binding.QualifiedName(); got != tt.want {
			t.Errorf("QualifiedName() = %q, want %q", got, tt.want)
		}
	}
}

func TestBindings_All(t *testing.T) {
	b := Bindings{
		Measures:   []FieldBinding{{Field: "m"}},
		Dimensions: []FieldBinding{{Field: "d"}},
		Values:     []FieldBinding{{Field: "v"}},
	}
	all := b.All()
	if len(all) != 3 {
		t.Fatalf("len(All()) = %d, want 3", len(all))
	}
	if all[0].Field != "m" || all[1].Field != "d" || all[2].Field != "v" {
		t.Errorf("All() order = %v, want measures, dimensions, values", all)
	}
	if b.Empty() {
		t.Error("Empty() = true for non-empty bindings")
	}
	if !(Bindings{}).Empty() {
		t.Error("Empty() = false for zero bindings")
	}
}

func TestKnownFilterType(t *testing.T) {
	for _, ft := range []FilterType{
		FilterCategorical, FilterRange, FilterAdvanced, FilterPassthrough,
		FilterTopN, FilterInclude, FilterExclude, FilterRelativeDate,
		FilterTuple, FilterRelativeTime, FilterVisualTopN,
	} {
		if !KnownFilterType(ft) {
			t.Errorf("KnownFilterType(%q) = false, want true", ft)
		}
	}
	if KnownFilterType("Bogus") {
		t.Error(`KnownFilterType("Bogus") = true, want false`)
	}
}

func TestDisplayOption_String(t *testing.T) {
	tests := []struct {
		opt  DisplayOption
		want string
	}{
		{DisplayFitToPage, "FitToPage"},
		{DisplayFitToWidth, "FitToWidth"},
		{DisplayActualSize, "ActualSize"},
		{DisplayOption(99), "FitToPage"},
	}
	for _, tt := range tests {
		if got := tt.opt.String(); got != tt.want {
			t.Errorf("DisplayOption(%d).String() = %q, want %q", tt.opt, got, tt.want)
		}
	}
}
