package pbir

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingRoot reports that the structurally required report root
// document (definition/report.json) was absent from the document set.
// The rest of the report is still normalized; the caller decides
// whether the condition is fatal.
var ErrMissingRoot = errors.New("report root document missing")

// Warning is a non-fatal issue encountered while normalizing one
// document: an optional schema check failed, a filter was dropped, or
// identifiers collided on the unknown sentinel. The document's usable
// content is still in the result.
type Warning struct {
	Path    string // Document path the warning refers to, if any
	Message string
}

func (w Warning) String() string {
	if w.Path == "" {
		return w.Message
	}
	return w.Path + ": " + w.Message
}

// ParseError records a document that could not be deserialized. Its
// section of the report is treated as absent and normalization
// continues.
type ParseError struct {
	Path    string
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// FormatWarnings renders warnings one per line for logging.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
