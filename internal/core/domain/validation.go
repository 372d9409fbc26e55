package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// RequiredFields are the fields whose absence makes a record invalid.
var RequiredFields = []string{"id", "owner", "name", "full_name", "source"}

// ValidationResult reports the outcome of validating a record.
// Errors are structural and reject the record; warnings are informational.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Err returns a *ValidationError when the result is invalid, nil otherwise.
func (v ValidationResult) Err() error {
	if v.Valid {
		return nil
	}
	verr := &ValidationError{Problems: append([]string(nil), v.Errors...)}
	if len(v.Errors) == 1 {
		verr.Field, _, _ = strings.Cut(v.Errors[0], ":")
	}
	return verr
}

func (v *ValidationResult) addError(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *ValidationResult) addWarning(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

func (v *ValidationResult) finish() ValidationResult {
	v.Valid = len(v.Errors) == 0
	return *v
}

// Validate checks untyped record fields (decoded JSON, legacy rows) against
// the canonical schema. It never mutates fields.
//
// Missing required fields and type mismatches on id, owner, name, full_name
// and source are errors. Non-integer counts, non-boolean flags and URLs
// without an http(s) scheme are warnings only.
func Validate(fields map[string]any) ValidationResult {
	var res ValidationResult

	for _, name := range RequiredFields {
		if v, ok := fields[name]; !ok || v == nil {
			res.addError("%s: required field missing", name)
		}
	}

	if v, ok := fields["id"]; ok && v != nil {
		if _, isInt := asInteger(v); !isInt {
			res.addError("id: expected integer, got %T", v)
		}
	}

	for _, name := range []string{"owner", "name", "full_name"} {
		v, ok := fields[name]
		if !ok || v == nil {
			continue
		}
		s, isString := v.(string)
		if !isString {
			res.addError("%s: expected string, got %T", name, v)
			continue
		}
		if strings.TrimSpace(s) == "" {
			res.addError("%s: must not be empty", name)
		}
	}

	if v, ok := fields["source"]; ok && v != nil {
		s, isString := v.(string)
		if !isString || !SourceType(s).IsValid() {
			res.addError("source: %v is not one of github, firefox, chrome, awesome, manual", v)
		}
	}

	for _, name := range []string{"stars", "forks", "issues"} {
		v, ok := fields[name]
		if !ok || v == nil {
			continue
		}
		n, isInt := asInteger(v)
		switch {
		case !isInt:
			res.addWarning("%s: expected integer, got %T", name, v)
		case n < 0:
			res.addWarning("%s: negative value %d", name, n)
		}
	}

	for _, name := range []string{"archived", "fork"} {
		if v, ok := fields[name]; ok && v != nil {
			if _, isBool := v.(bool); !isBool {
				res.addWarning("%s: expected boolean, got %T", name, v)
			}
		}
	}

	if v, ok := fields["url"]; ok && v != nil {
		if s, isString := v.(string); !isString || !hasHTTPScheme(s) {
			res.addWarning("url: %v is not an http(s) URL", v)
		}
	}

	return res.finish()
}

// Validate checks a typed record. Types are guaranteed by the compiler, so
// only emptiness, the source enum, counts and the URL scheme are checked.
func (r *StarRecord) Validate() ValidationResult {
	var res ValidationResult

	if r.Owner == "" {
		res.addError("owner: must not be empty")
	}
	if r.Name == "" {
		res.addError("name: must not be empty")
	}
	if r.FullName == "" {
		res.addError("full_name: must not be empty")
	}
	if !r.Source.IsValid() {
		res.addError("source: %q is not one of github, firefox, chrome, awesome, manual", r.Source)
	}

	if r.Stars < 0 {
		res.addWarning("stars: negative value %d", r.Stars)
	}
	if r.Forks < 0 {
		res.addWarning("forks: negative value %d", r.Forks)
	}
	if r.Issues < 0 {
		res.addWarning("issues: negative value %d", r.Issues)
	}
	if r.URL != nil && !hasHTTPScheme(*r.URL) {
		res.addWarning("url: %q is not an http(s) URL", *r.URL)
	}

	return res.finish()
}

func hasHTTPScheme(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// asInteger accepts Go integer types, integral floats (JSON numbers) and json.Number.
func asInteger(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
