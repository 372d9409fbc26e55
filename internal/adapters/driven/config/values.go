// Package config holds the value model shared by the ConfigStore adapters.
// Configuration is a flat map of dot-separated keys ("github.user") whose
// values keep the types TOML decoding produced.
package config

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Values is a flat, dot-keyed configuration map with lenient typed
// accessors. Accessors accept the string form of a value so that settings
// typed on the command line read back the same as settings loaded from TOML.
type Values map[string]any

// String returns the string value of key, or "" if absent or not a string.
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Int returns the integer value of key, or 0 if absent or not an integer.
func (v Values) Int(key string) int {
	switch n := v[key].(type) {
	case int:
		return n
	case int64:
		// TOML integers are parsed as int64
		return int(n)
	case float64:
		if n == math.Trunc(n) {
			return int(n)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}

// Bool returns the boolean value of key, or false if absent or not a boolean.
func (v Values) Bool(key string) bool {
	switch b := v[key].(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	}
	return false
}

// StringSlice returns the list value of key. A plain string is split on
// commas. Returns nil if absent or not a list.
func (v Values) StringSlice(key string) []string {
	switch val := v[key].(type) {
	case []string:
		return val
	case []any:
		// TOML arrays are parsed as []any
		result := make([]string, 0, len(val))
		for _, item := range val {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	case string:
		return SplitList(val)
	}
	return nil
}

// SplitList splits a comma-separated list, trimming entries and dropping blanks.
func SplitList(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// Flatten converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func Flatten(m map[string]any) Values {
	result := make(Values)
	flattenInto(result, m, "")
	return result
}

func flattenInto(dst Values, m map[string]any, prefix string) {
	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(dst, nested, fullKey)
			continue
		}
		dst[fullKey] = value
	}
}

// Nest is the inverse of Flatten: dotted keys become nested tables so the
// written TOML has one [section] per key prefix. A key that is both a value
// and a prefix of another key keeps the value.
func (v Values) Nest() map[string]any {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	// Shorter keys first so leaf values are placed before deeper keys probe them.
	sort.Slice(keys, func(i, j int) bool {
		return strings.Count(keys[i], ".") < strings.Count(keys[j], ".")
	})

	root := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		node := root
		placed := true
		for _, part := range parts[:len(parts)-1] {
			child, exists := node[part]
			if !exists {
				next := make(map[string]any)
				node[part] = next
				node = next
				continue
			}
			next, ok := child.(map[string]any)
			if !ok {
				placed = false
				break
			}
			node = next
		}
		if placed {
			node[parts[len(parts)-1]] = v[key]
		}
	}
	return root
}
