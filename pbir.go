// Package pbir normalizes PBIR report definitions into one canonical,
// queryable in-memory model.
//
// A report definition is a directory tree of JSON documents whose
// schema has evolved across generations: the same fact (a visual's
// type, its title, its field bindings, its filters) can be encoded in
// several incompatible shapes depending on report age and editing
// tool. The normalizer ingests the whole document set and produces one
// [model.Report], picking the correct encoding deterministically with
// explicit fallback chains.
//
// Basic usage:
//
//	rep, warnings, err := pbir.Open("Sales.Report").Report()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pbir.FormatWarnings(warnings))
//	}
//
// With options:
//
//	res, err := pbir.Open("Sales.Report").
//	    WithValidator(schema.DefaultRequiredKeys()).
//	    Result()
//
// Individual malformed documents never abort the pass: they are
// recorded in the result's error and warning lists and their sections
// treated as absent. The only distinguished condition is a missing
// report root document, surfaced as [ErrMissingRoot] (and the
// Result.MissingRoot flag) with the rest of the report still
// populated.
//
// For advanced use cases, the lower-level reader, docpath, fields, and
// filter packages are also available.
package pbir

import (
	"github.com/tsawler/pbir/reader"
)

// Open prepares a Normalizer for the report definition directory at
// dir. The directory is not read until a terminal operation such as
// Report or Result is called.
//
// Example:
//
//	rep, warnings, err := pbir.Open("Sales.Report").Report()
func Open(dir string) *Normalizer {
	return &Normalizer{dir: dir, options: defaultOptions()}
}

// FromSource creates a Normalizer from an already-loaded document
// source. This is useful when the caller owns the reader lifecycle or
// loads documents from somewhere other than a directory.
func FromSource(src *reader.Source) *Normalizer {
	return &Normalizer{source: src, options: defaultOptions()}
}

// FromDocuments creates a Normalizer from pre-read path/content pairs.
//
// Example:
//
//	res, err := pbir.FromDocuments(map[string][]byte{
//	    "definition/report.json": data,
//	}).Result()
func FromDocuments(pairs map[string][]byte) *Normalizer {
	return &Normalizer{source: reader.FromPairs(pairs), options: defaultOptions()}
}

// Must is a helper that wraps a call to a function returning
// (T, error) and panics if the error is non-nil. It is intended for
// scripts and tests where error handling would be cumbersome.
//
// Example:
//
//	res := pbir.Must(pbir.Open("Sales.Report").Result())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
