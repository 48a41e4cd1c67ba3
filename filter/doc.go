// Package filter parses filter-condition documents into normalized
// condition trees and renders them as deterministic human-readable
// strings.
//
// Filters appear at report, page, and visual level, all under a
// filterConfig.filters list. Each entry names a filter, tags it with a
// type from a closed set, and optionally carries a query whose Where
// clause holds the condition tree. Conditions are parsed by recursive
// descent into the [model.FilterNode] variants; shapes the parser does
// not recognize become verbatim-JSON leaf nodes rather than errors.
// This package documents filters, it does not evaluate them.
//
// An entry with an unrecognized type tag is dropped from the output
// (with a message for the caller's warning channel) instead of
// aborting the parse of its siblings.
package filter
