package fields

// aggregationNames maps aggregation function codes to names. This is
// the complete table; both visual projections and query-level filter
// expressions resolve through it, so the two call sites can never
// drift apart.
var aggregationNames = map[int]string{
	0: "Sum",
	1: "Average",
	2: "CountDistinct",
	3: "Min",
	4: "Max",
	5: "Count",
	6: "Median",
	7: "StandardDeviation",
	8: "Variance",
}

// AggregationName resolves an aggregation function code to its name.
// Unmapped codes resolve to "Unknown"; the lookup never fails.
func AggregationName(code int) string {
	if name, ok := aggregationNames[code]; ok {
		return name
	}
	return "Unknown"
}
