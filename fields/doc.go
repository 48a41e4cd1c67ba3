// Package fields extracts a visual's field bindings from any of the
// three query encodings that appear in report documents.
//
// The three encodings, from newest to oldest:
//
//   - a role/projection map under query.queryState, where each
//     projection's field descriptor carries a Measure, Column,
//     Aggregation, or HierarchyLevel expression;
//   - a prototype query with a flat Select list, the same descriptor
//     shapes plus a From list of table aliases;
//   - a flat dataRoles array, where each item is classified only by
//     whether its queryRef carries a Measure.
//
// A real-world document populates at most one encoding. Extract tries
// them in the order above and stops at the first that yields bindings,
// so a binding can never be counted twice. Output is grouped into
// measures and dimensions; dataRoles bindings land in the catch-all
// values group because that encoding carries no reliable
// measure/dimension discrimination.
//
// Aggregation function codes resolve through a single shared table
// (AggregationName) used by every call site, including the query-level
// filter path.
package fields
