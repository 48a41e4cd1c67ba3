// Package literal extracts scalar values from the wrapper shapes used
// to carry property values in report documents.
//
// Successive schema generations wrapped literal values differently: a
// direct literal wrapper, a solid-fill color wrapper, and an
// expression-literal wrapper. Resolve tries all three in a fixed
// priority order, so every caller unwraps values the same way.
package literal

import (
	"strconv"
	"strings"
)

// Resolve extracts a scalar from a property-value wrapper of unknown
// shape. The candidate shapes are tried in order:
//
//  1. direct literal: {"literal": {"value": v}}
//  2. solid fill: {"solid": {"color": wrapper-or-scalar}}
//  3. expression literal: {"expr": {"Literal": {"Value": "'v'"}}}
//
// The second return value reports whether any shape matched. A nil
// wrapper, or one matching no shape, yields (nil, false).
func Resolve(wrapper any) (any, bool) {
	m, ok := wrapper.(map[string]any)
	if !ok {
		return nil, false
	}

	if lit, ok := m["literal"].(map[string]any); ok {
		if v, ok := lit["value"]; ok {
			return v, true
		}
	}

	if solid, ok := m["solid"].(map[string]any); ok {
		if c, ok := solid["color"]; ok {
			// The color itself may be a nested wrapper.
			if v, ok := Resolve(c); ok {
				return v, true
			}
			return c, true
		}
	}

	if expr, ok := m["expr"].(map[string]any); ok {
		if lit, ok := expr["Literal"].(map[string]any); ok {
			if v, ok := lit["Value"]; ok {
				if s, ok := v.(string); ok {
					return StripQuotes(s), true
				}
				return v, true
			}
		}
	}

	return nil, false
}

// ResolveString resolves a wrapper and returns the value as a string,
// or "" if no shape matched or the value is not a string.
func ResolveString(wrapper any) string {
	v, ok := Resolve(wrapper)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// ResolveFloat resolves a wrapper and returns the value as a float64.
// JSON numbers decode as float64; numeric strings (as produced by the
// expression-literal shape, e.g. "12D") are parsed leniently.
func ResolveFloat(wrapper any) (float64, bool) {
	v, ok := Resolve(wrapper)
	if !ok {
		return 0, false
	}
	return AsFloat(v)
}

// AsFloat coerces a decoded JSON scalar to a float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		// Expression literals suffix numbers with a type marker,
		// e.g. "100D" or "5L".
		s := strings.TrimSuffix(strings.TrimSuffix(n, "D"), "L")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// StripQuotes removes one layer of surrounding single or double quotes,
// the form expression literals use for string values.
func StripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
