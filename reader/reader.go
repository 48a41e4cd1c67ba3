// Package reader provides the file source for report definitions.
//
// A report definition is a directory containing a definition/ tree of
// JSON documents. The reader walks that tree and yields relative-path
// plus decoded-content pairs for the normalizer. It owns no parsing
// beyond character decoding: documents written by Windows tooling
// regularly carry UTF-8 or UTF-16 byte order marks, which are decoded
// away here so every downstream consumer sees plain UTF-8.
//
// Use [Open] for a directory on disk, or [OpenFS] for any fs.FS (handy
// in tests and when the definition lives inside an archive).
package reader

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Document is one raw report document: its path relative to the
// report root (forward slashes) and its decoded UTF-8 content.
type Document struct {
	Path string
	Data []byte
}

// Source is a loaded set of report documents.
type Source struct {
	root string
	docs []Document
	errs []error
}

// Open reads a report definition directory from disk. The directory
// is expected to contain a definition/ subtree; files elsewhere are
// ignored. Unreadable individual files are recorded and reported by
// Errs rather than aborting the walk.
func Open(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening report directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening report directory: %s is not a directory", dir)
	}
	src, err := OpenFS(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	src.root = dir
	return src, nil
}

// OpenFS reads a report definition from any fs.FS rooted at the
// report directory.
func OpenFS(fsys fs.FS) (*Source, error) {
	src := &Source{}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			src.errs = append(src.errs, fmt.Errorf("%s: %w", p, err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !collectable(p) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			src.errs = append(src.errs, fmt.Errorf("%s: %w", p, err))
			return nil
		}
		decoded, err := DecodeText(data)
		if err != nil {
			src.errs = append(src.errs, fmt.Errorf("%s: decoding: %w", p, err))
			return nil
		}
		src.docs = append(src.docs, Document{Path: p, Data: decoded})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking report directory: %w", err)
	}

	// Deterministic order regardless of filesystem iteration order.
	sort.Slice(src.docs, func(i, j int) bool { return src.docs[i].Path < src.docs[j].Path })
	return src, nil
}

// FromPairs builds a Source from already-read documents, for callers
// that own their own I/O. Content is still BOM-decoded.
func FromPairs(pairs map[string][]byte) *Source {
	src := &Source{}
	for p, data := range pairs {
		decoded, err := DecodeText(data)
		if err != nil {
			src.errs = append(src.errs, fmt.Errorf("%s: decoding: %w", p, err))
			continue
		}
		src.docs = append(src.docs, Document{Path: strings.ReplaceAll(p, `\`, "/"), Data: decoded})
	}
	sort.Slice(src.docs, func(i, j int) bool { return src.docs[i].Path < src.docs[j].Path })
	return src
}

// Documents returns the collected documents in path order.
func (s *Source) Documents() []Document {
	return s.docs
}

// Errs returns the per-file read errors encountered while loading.
func (s *Source) Errs() []error {
	return s.errs
}

// Root returns the directory the source was opened from, if any.
func (s *Source) Root() string {
	return s.root
}

// collectable reports whether a path belongs to the document set: JSON
// files under the definition/ tree, or at the root for definitions
// that were unpacked without their wrapper directory.
func collectable(p string) bool {
	if path.Ext(p) != ".json" {
		return false
	}
	return strings.HasPrefix(p, "definition/") || !strings.Contains(p, "/") ||
		strings.HasPrefix(p, "pages/") || strings.HasPrefix(p, "bookmarks/")
}

// DecodeText converts raw file bytes to UTF-8, honoring a UTF-8,
// UTF-16LE, or UTF-16BE byte order mark when present. Input without a
// BOM passes through unchanged.
func DecodeText(data []byte) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, err
	}
	return out, nil
}
