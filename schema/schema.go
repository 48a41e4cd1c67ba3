// Package schema defines the validator capability the normalizer
// calls per document, plus a minimal built-in implementation.
//
// The engine itself checks only that a document's declared-required
// top-level keys are present; deeper structural validation belongs to
// an injected implementation (for example one backed by the published
// JSON schemas). Validation failures surface as warnings, never as
// fatal errors.
package schema

// Result is the outcome of validating one document.
type Result struct {
	Valid  bool
	Errors []string
}

// Validator validates a decoded document against the named schema.
// Implementations must be safe for concurrent use.
type Validator interface {
	Validate(doc map[string]any, schemaName string) Result
}

// Nop is a Validator that accepts every document. It is the default
// when no validator is injected.
type Nop struct{}

// Validate always reports valid.
func (Nop) Validate(map[string]any, string) Result {
	return Result{Valid: true}
}

// RequiredKeys validates only the presence of declared-required
// top-level keys, per schema name. Unknown schema names validate
// vacuously.
type RequiredKeys struct {
	// Keys maps a schema name to its required top-level keys.
	Keys map[string][]string
}

// DefaultRequiredKeys returns a RequiredKeys validator preloaded with
// the structurally required keys of each document role.
func DefaultRequiredKeys() *RequiredKeys {
	return &RequiredKeys{Keys: map[string][]string{
		"report":   {},
		"version":  {"version"},
		"page":     {"name"},
		"pages":    {"pageOrder"},
		"visual":   {"position"},
		"bookmark": {"name"},
	}}
}

// Validate checks that every required top-level key for the named
// schema is present in the document.
func (r *RequiredKeys) Validate(doc map[string]any, schemaName string) Result {
	required, ok := r.Keys[schemaName]
	if !ok {
		return Result{Valid: true}
	}
	var errs []string
	for _, key := range required {
		if _, present := doc[key]; !present {
			errs = append(errs, "missing required key "+key)
		}
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}
