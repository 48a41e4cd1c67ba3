// Package model provides the canonical in-memory representation of a
// PBIR report definition.
//
// This package defines the user-facing data structures produced by
// normalization. Regardless of which historical schema generation a
// source document used, normalization always yields these types, making
// them the primary API for consuming a report definition.
//
// # Report Structure
//
// The [Report] type represents a complete report definition:
//
//	rep := model.NewReport()
//	rep.AddPage(page)
//
// Each [Page] contains dimensions, visibility, and an ordered list of
// [Visual] records. Each Visual carries its resolved type and title,
// its [Position], its [FieldBinding] list grouped into [Bindings], its
// filters, and its [Formatting].
//
// # Filters
//
// Filter conditions are represented as a tree of [FilterNode] values,
// one of the closed set of [NodeKind] variants (comparison, set
// membership, range, conjunction, disjunction, negation, or an opaque
// leaf). Root nodes hang off a [FilterDescriptor], which carries the
// filter's name, type tag, flags, and a deterministic human-readable
// rendering.
//
// # Immutability
//
// All records are built once, during a single normalization pass over
// the full document set, and are read-only afterward. A Visual or Page
// is attached to its parent only after all of its own extraction steps
// complete, so consumers never observe a half-populated record.
package model
