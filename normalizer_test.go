package pbir

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pbir/model"
)

// reportFixture is a small two-generation report: one page with a
// current-schema visual and a legacy visual, plus version metadata
// and a bookmark.
func reportFixture() map[string][]byte {
	return map[string][]byte{
		"definition/report.json": []byte(`{
			"themeCollection": {"baseTheme": {"name": "CityPark"}},
			"publicCustomVisuals": ["PBI_CV_12345678-aaaa-bbbb-cccc-1234567890ab"],
			"filterConfig": {"filters": [
				{"displayName": "Year", "type": "Advanced",
				 "field": {"Column": {"Expression": {"SourceRef": {"Entity": "Date"}}, "Property": "Year"}},
				 "filter": {"Where": [{"Condition": {"Comparison": {"ComparisonKind": 2,
					"Left": {"Column": {"Expression": {"SourceRef": {"Entity": "Date"}}, "Property": "Year"}},
					"Right": {"Literal": {"Value": "2020L"}}}}}]}}
			]}
		}`),
		"definition/version.json": []byte(`{"version": "2.0.0"}`),
		"definition/pages/pages.json": []byte(`{
			"pageOrder": ["page2", "page1"],
			"pages": [{"name": "page1", "displayName": "Overview (from list)"}]
		}`),
		"definition/pages/page1/page.json": []byte(`{
			"name": "page1", "width": 1280, "height": 720,
			"visibility": "HiddenInViewMode"
		}`),
		"definition/pages/page2/page.json": []byte(`{
			"name": "page2", "displayName": "Detail", "width": 1280, "height": 720,
			"displayOption": "FitToWidth"
		}`),
		"definition/pages/page2/visuals/44929275ab/visual.json": []byte(`{
			"position": {"x": 40, "y": 40, "z": 1, "width": 300, "height": 200, "tabOrder": 2},
			"visual": {
				"visualType": "card",
				"visualContainerObjects": {"title": [{"properties": {
					"text": {"literal": {"value": "Revenue Trend"}}}}]},
				"query": {"queryState": {"Values": {"projections": [
					{"field": {"Measure": {"Expression": {"SourceRef": {"Entity": "Sales"}}, "Property": "Revenue"}}}
				]}}}
			},
			"filterConfig": {"filters": [{"name": "vf", "type": "TopN",
				"field": {"Column": {"Expression": {"SourceRef": {"Entity": "Product"}}, "Property": "Name"}}}]}
		}`),
		"definition/pages/page2/visuals/44929275ab/mobile.json": []byte(`{
			"position": {"x": 0, "y": 0, "width": 100, "height": 80}
		}`),
		"definition/pages/page2/visuals/legacy01/visual.json": []byte(`{
			"position": {"x": 400, "y": 40, "width": 500, "height": 300},
			"visual": {
				"singleVisual": {
					"visualType": "lineChart",
					"objects": {"title": [{"properties": {
						"text": {"literal": {"value": "Chart1"}}}}]},
					"prototypeQuery": {
						"From": [{"Name": "s", "Entity": "Sales"}],
						"Select": [{"Measure": {"Expression": {"SourceRef": {"Source": "s"}}, "Property": "Total"}, "Name": "Sales.Total"}]
					}
				}
			}
		}`),
		"definition/bookmarks/bookmarks.json": []byte(`{"items": ["bm1"]}`),
		"definition/bookmarks/bm1.bookmark.json": []byte(`{
			"name": "bm1", "displayName": "Launch view",
			"explorationState": {"activeSection": "page2"}
		}`),
	}
}

func TestNormalize_FullReport(t *testing.T) {
	res, err := FromDocuments(reportFixture()).Result()
	require.NoError(t, err)
	require.NotNil(t, res.Report)
	assert.False(t, res.MissingRoot)
	assert.Empty(t, res.Errors)

	rep := res.Report
	assert.Equal(t, "2.0.0", rep.SchemaVersion)
	assert.Equal(t, "CityPark", rep.Theme)
	assert.Equal(t, []string{"PBI_CV_12345678-aaaa-bbbb-cccc-1234567890ab"}, rep.CustomVisuals)

	require.Len(t, rep.Filters, 1)
	assert.Equal(t, "Year", rep.Filters[0].Name)
	assert.Equal(t, "Date.Year GreaterThanOrEqual 2020", rep.Filters[0].Description)

	// Page order follows pageOrder, not path order.
	require.Equal(t, 2, rep.PageCount())
	assert.Equal(t, "page2", rep.Pages[0].ID)
	assert.Equal(t, "page1", rep.Pages[1].ID)

	// page1: no displayName in the page doc, list entry wins.
	page1 := rep.GetPage("page1")
	require.NotNil(t, page1)
	assert.Equal(t, "Overview (from list)", page1.DisplayName)
	assert.True(t, page1.Hidden)

	// page2: page doc override wins over everything.
	page2 := rep.GetPage("page2")
	require.NotNil(t, page2)
	assert.Equal(t, "Detail", page2.DisplayName)
	assert.Equal(t, model.DisplayFitToWidth, page2.Display)
	require.Len(t, page2.Visuals, 2)

	card := page2.GetVisual("44929275ab")
	require.NotNil(t, card)
	assert.Equal(t, "Card", card.Type)
	assert.Equal(t, "Revenue Trend", card.Title)
	assert.Equal(t, model.Position{X: 40, Y: 40, Z: 1, Width: 300, Height: 200, TabOrder: 2}, card.Position)
	require.Len(t, card.Bindings.Measures, 1)
	assert.Equal(t, "Sales.Revenue", card.Bindings.Measures[0].QualifiedName())
	require.NotNil(t, card.MobilePosition)
	assert.Equal(t, 100.0, card.MobilePosition.Width)
	require.Len(t, card.Filters, 1)
	assert.Equal(t, model.FilterTopN, card.Filters[0].Type)

	legacy := page2.GetVisual("legacy01")
	require.NotNil(t, legacy)
	assert.Equal(t, "Line Chart", legacy.Type)
	assert.Equal(t, "Chart1", legacy.Title)
	require.Len(t, legacy.Bindings.Measures, 1)
	assert.Equal(t, "Sales", legacy.Bindings.Measures[0].Table)

	require.Len(t, rep.Bookmarks, 1)
	assert.Equal(t, "Launch view", rep.Bookmarks[0].DisplayName)
	assert.Equal(t, "page2", rep.Bookmarks[0].PageID)
}

func TestNormalize_TitlePriority(t *testing.T) {
	// Both title locations present: the container override wins.
	docs := map[string][]byte{
		"definition/report.json": []byte(`{}`),
		"definition/pages/p/page.json": []byte(`{"name": "p"}`),
		"definition/pages/p/visuals/v/visual.json": []byte(`{
			"position": {},
			"visual": {
				"visualType": "lineChart",
				"visualContainerObjects": {"title": [{"properties": {
					"text": {"literal": {"value": "Revenue Trend"}}}}]},
				"singleVisual": {"objects": {"title": [{"properties": {
					"text": {"literal": {"value": "Chart1"}}}}]}}
			}
		}`),
	}

	res, err := FromDocuments(docs).Result()
	require.NoError(t, err)
	v := res.Report.GetPage("p").GetVisual("v")
	require.NotNil(t, v)
	assert.Equal(t, "Revenue Trend", v.Title)
}

func TestNormalize_SynthesizedTitle(t *testing.T) {
	docs := map[string][]byte{
		"definition/report.json": []byte(`{}`),
		"definition/pages/p/page.json": []byte(`{"name": "p"}`),
		"definition/pages/p/visuals/44929275ab/visual.json": []byte(`{
			"position": {}, "visual": {"visualType": "card"}
		}`),
		"definition/pages/p/visuals/mystery1/visual.json": []byte(`{
			"position": {}, "visual": {}
		}`),
	}

	res, err := FromDocuments(docs).Result()
	require.NoError(t, err)
	page := res.Report.GetPage("p")
	assert.Equal(t, "Card (44929275)", page.GetVisual("44929275ab").Title)
	assert.Equal(t, "Visual (mystery1)", page.GetVisual("mystery1").Title)
}

func TestNormalize_PlaceholderTitleRejected(t *testing.T) {
	docs := map[string][]byte{
		"definition/report.json": []byte(`{}`),
		"definition/pages/p/page.json": []byte(`{"name": "p"}`),
		"definition/pages/p/visuals/abcdef12/visual.json": []byte(`{
			"position": {},
			"visual": {
				"visualType": "card",
				"visualContainerObjects": {"title": [{"properties": {
					"text": {"literal": {"value": "Title"}}}}]}
			}
		}`),
	}

	res, err := FromDocuments(docs).Result()
	require.NoError(t, err)
	assert.Equal(t, "Card (abcdef12)", res.Report.GetPage("p").GetVisual("abcdef12").Title)
}

func TestNormalize_TextboxTitle(t *testing.T) {
	long := make([]byte, 0, 60)
	for i := 0; i < 60; i++ {
		long = append(long, 'x')
	}
	docs := map[string][]byte{
		"definition/report.json": []byte(`{}`),
		"definition/pages/p/page.json": []byte(`{"name": "p"}`),
		"definition/pages/p/visuals/short1/visual.json": []byte(`{
			"position": {},
			"visual": {"visualType": "textbox", "objects": {"general": [{"properties": {
				"paragraphs": [{"textRuns": [{"value": "Quarterly Summary"}]}]}}]}}
		}`),
		"definition/pages/p/visuals/long1/visual.json": []byte(`{
			"position": {},
			"visual": {"visualType": "textbox", "objects": {"general": [{"properties": {
				"paragraphs": [{"textRuns": [{"value": "` + string(long) + `"}]}]}}]}}
		}`),
	}

	res, err := FromDocuments(docs).Result()
	require.NoError(t, err)
	page := res.Report.GetPage("p")
	assert.Equal(t, "Quarterly Summary", page.GetVisual("short1").Title)
	// Long first runs are body text, not titles.
	assert.Equal(t, "Text Box (long1)", page.GetVisual("long1").Title)
}

func TestNormalize_CustomVisualType(t *testing.T) {
	docs := map[string][]byte{
		"definition/report.json": []byte(`{}`),
		"definition/pages/p/page.json": []byte(`{"name": "p"}`),
		"definition/pages/p/visuals/v1/visual.json": []byte(`{
			"position": {}, "visual": {"visualType": "PBI_CV_1234567890"}
		}`),
		"definition/pages/p/visuals/v2/visual.json": []byte(`{
			"position": {}, "visual": {"visualType": "someVendorVisual_CV_abcdef"}
		}`),
		"definition/pages/p/visuals/v3/visual.json": []byte(`{
			"position": {}, "visual": {"visualType": "aVeryLongOpaquePackageIdentifier123456"}
		}`),
		"definition/pages/p/visuals/v4/visual.json": []byte(`{
			"position": {}, "visual": {"visualType": "futureChart"}
		}`),
	}

	res, err := FromDocuments(docs).Result()
	require.NoError(t, err)
	page := res.Report.GetPage("p")
	assert.Equal(t, model.CustomVisual, page.GetVisual("v1").Type)
	assert.Equal(t, model.CustomVisual, page.GetVisual("v2").Type)
	assert.Equal(t, model.CustomVisual, page.GetVisual("v3").Type)
	// Unmapped short types pass through for forward compatibility.
	assert.Equal(t, "futureChart", page.GetVisual("v4").Type)
}

func TestNormalize_MissingRoot(t *testing.T) {
	docs := reportFixture()
	delete(docs, "definition/report.json")

	res, err := FromDocuments(docs).Result()
	require.NoError(t, err)
	assert.True(t, res.MissingRoot)
	// The page tree is still fully populated.
	assert.Equal(t, 2, res.Report.PageCount())
	assert.Equal(t, 2, res.Report.VisualCount())

	_, _, err = FromDocuments(docs).Report()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRoot))
}

func TestNormalize_MalformedDocumentIsIsolated(t *testing.T) {
	docs := reportFixture()
	docs["definition/pages/page1/page.json"] = []byte(`{not json`)

	res, err := FromDocuments(docs).Result()
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "definition/pages/page1/page.json", res.Errors[0].Path)

	// page1 still exists (named via the page list), page2 unharmed.
	assert.Equal(t, 2, res.Report.PageCount())
	page1 := res.Report.GetPage("page1")
	require.NotNil(t, page1)
	assert.Equal(t, "Overview (from list)", page1.DisplayName)
}

func TestNormalize_VersionMergeIsAdditive(t *testing.T) {
	docs := map[string][]byte{
		"definition/report.json":  []byte(`{"version": "1.0"}`),
		"definition/version.json": []byte(`{"version": "2.0"}`),
	}

	res, err := FromDocuments(docs).Result()
	require.NoError(t, err)
	// The root document merged first; the version document only adds.
	assert.Equal(t, "1.0", res.Report.SchemaVersion)
}

func TestNormalize_DroppedFilterWarns(t *testing.T) {
	docs := map[string][]byte{
		"definition/report.json": []byte(`{"filterConfig": {"filters": [
			{"name": "bad", "type": "Bogus"}
		]}}`),
	}

	res, err := FromDocuments(docs).Result()
	require.NoError(t, err)
	assert.Empty(t, res.Report.Filters)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "Bogus")
}

func TestNormalize_UnknownIDCollisionWarns(t *testing.T) {
	// Two truncated paths both collapse their identifiers to the
	// sentinel; the collision must surface as a warning, not as a
	// silent merge.
	docs := map[string][]byte{
		"definition/report.json": []byte(`{}`),
		"pages/page.json":        []byte(`{"name": "a"}`),
		"visuals/visual.json":    []byte(`{"position": {}}`),
	}

	res, err := FromDocuments(docs).Result()
	require.NoError(t, err)

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w.Message, `"unknown"`) &&
			strings.Contains(w.Message, "pages/page.json") &&
			strings.Contains(w.Message, "visuals/visual.json") {
			found = true
		}
	}
	assert.True(t, found, "expected a collision warning listing the collapsed paths, got %v", res.Warnings)
}

func TestNormalize_ExtensionsMerge(t *testing.T) {
	docs := map[string][]byte{
		"definition/report.json": []byte(`{}`),
		"definition/reportExtensions.json": []byte(`{
			"entities": [{"name": "Sales", "measures": [
				{"name": "YoY Growth", "expression": "DIVIDE([This Year]-[Last Year],[Last Year])"}
			]}]
		}`),
	}

	res, err := FromDocuments(docs).Result()
	require.NoError(t, err)
	require.Len(t, res.Report.ExtensionMeasures, 1)
	m := res.Report.ExtensionMeasures[0]
	assert.Equal(t, "Sales", m.Table)
	assert.Equal(t, "YoY Growth", m.Name)
}

func TestNormalize_DataRolesOnlyVisual(t *testing.T) {
	docs := map[string][]byte{
		"definition/report.json": []byte(`{}`),
		"definition/pages/p/page.json": []byte(`{"name": "p"}`),
		"definition/pages/p/visuals/v/visual.json": []byte(`{
			"position": {},
			"dataRoles": [{"name": "Values", "items": [
				{"queryRef": {"Measure": {"Expression": {"SourceRef": {"Entity": "Sales"}}, "Property": "Revenue"}}}
			]}]
		}`),
	}

	res, err := FromDocuments(docs).Result()
	require.NoError(t, err)
	v := res.Report.GetPage("p").GetVisual("v")
	require.NotNil(t, v)
	assert.Len(t, v.Bindings.Measures, 0)
	assert.Len(t, v.Bindings.Dimensions, 0)
	assert.Len(t, v.Bindings.Values, 1)
}
