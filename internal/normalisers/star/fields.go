package star

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

// fieldAliases maps alternative column and JSON names onto canonical ones.
// Legacy stores and GitHub API dumps use the API's names.
var fieldAliases = map[string]string{
	"stargazers_count":  "stars",
	"forks_count":       "forks",
	"open_issues":       "issues",
	"open_issues_count": "issues",
	"html_url":          "url",
	"created_at":        "created",
	"updated_at":        "updated",
	"pushed_at":         "pushed",
	"owner_login":       "owner",
	"license_name":      "license",
}

// Canonicalise returns a copy of fields with aliases renamed, nested owner
// and license objects flattened to strings, and an absent full_name or
// name derived from the other parts. The input is not modified.
func Canonicalise(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		key := strings.ToLower(strings.TrimSpace(k))
		if canonical, ok := fieldAliases[key]; ok {
			if _, exists := fields[canonical]; exists {
				continue
			}
			key = canonical
		}
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		out[key] = v
	}

	if m, ok := nestedObject(out["owner"]); ok {
		out["owner"] = m["login"]
	}
	if m, ok := nestedObject(out["license"]); ok {
		if name, ok := m["name"]; ok && name != nil {
			out["license"] = name
		} else {
			out["license"] = m["spdx_id"]
		}
	}

	fullName, _ := out["full_name"].(string)
	owner, _ := out["owner"].(string)
	name, _ := out["name"].(string)
	switch {
	case fullName == "" && owner != "" && name != "":
		out["full_name"] = FullName(owner, name)
	case fullName != "":
		o, n, _ := strings.Cut(fullName, "/")
		if owner == "" && o != "" {
			out["owner"] = o
		}
		if name == "" && n != "" {
			out["name"] = n
		}
	}
	return out
}

// nestedObject returns v as a map when it is a decoded object or JSON
// object text, as legacy stores keep nested API objects.
func nestedObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case string:
		if !strings.HasPrefix(strings.TrimSpace(t), "{") {
			return nil, false
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(t), &m); err != nil {
			return nil, false
		}
		return m, true
	default:
		return nil, false
	}
}

// FieldDefaults supplies values for fields older layouts lack.
type FieldDefaults struct {
	// Source is used when the record has no source, or always when
	// ForceSource is set.
	Source      domain.SourceType
	ForceSource bool

	// SyncedAt is used when the record has no parseable synced_at.
	SyncedAt time.Time
}

// FromFields converts an untyped record (decoded JSON, a database row) into
// a StarRecord. Fields are canonicalised, backfilled with defaults, checked
// with domain.Validate and then normalised. The returned ValidationResult
// carries warnings even on success.
func FromFields(fields map[string]any, defaults FieldDefaults) (domain.StarRecord, domain.ValidationResult, error) {
	f := Canonicalise(fields)

	// An explicit unknown source is left for Validate to reject.
	if v, present := f["source"]; defaults.ForceSource || !present || v == nil || v == "" {
		f["source"] = string(defaults.Source)
	}
	syncedAt := defaults.SyncedAt
	if t := timeValue(f["synced_at"]); t != nil {
		syncedAt = *t
	}
	if _, ok := f["id"]; !ok {
		if fullName, _ := f["full_name"].(string); fullName != "" {
			f["id"] = SyntheticID(fullName)
		}
	}

	res := domain.Validate(f)
	if err := res.Err(); err != nil {
		return domain.StarRecord{}, res, err
	}

	source := domain.SourceType(f["source"].(string))
	id, _ := intValue(f["id"])

	raw := domain.RawStar{
		ID:          &id,
		FullName:    stringValue(f["full_name"]),
		Name:        stringValue(f["name"]),
		OwnerLogin:  stringValue(f["owner"]),
		Description: stringValue(f["description"]),
		Homepage:    stringValue(f["homepage"]),
		URL:         stringValue(f["url"]),
		Language:    stringValue(f["language"]),
		LicenseName: stringValue(f["license"]),
		Topics:      topicsValue(f["topics"]),
		Stars:       intPtrValue(f["stars"]),
		Forks:       intPtrValue(f["forks"]),
		Issues:      intPtrValue(f["issues"]),
		Created:     timeValue(f["created"]),
		Updated:     timeValue(f["updated"]),
		Pushed:      timeValue(f["pushed"]),
		Archived:    boolValue(f["archived"]),
		Fork:        boolValue(f["fork"]),
	}

	rec, err := New(source, syncedAt).Normalise(raw)
	return rec, res, err
}

func stringValue(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func intPtrValue(v any) *int {
	n, ok := intValue(v)
	if !ok {
		return nil
	}
	i := int(n)
	return &i
}

func boolValue(v any) *bool {
	var b bool
	switch x := v.(type) {
	case bool:
		b = x
	case int64:
		b = x != 0
	case float64:
		b = x != 0
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return nil
		}
		b = parsed
	default:
		return nil
	}
	return &b
}

// timeLayouts are the formats seen in stored and exported records.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func timeValue(v any) *time.Time {
	switch x := v.(type) {
	case time.Time:
		return domain.TimePtr(x)
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return domain.TimePtr(t)
			}
		}
		return nil
	case int64:
		if x <= 0 {
			return nil
		}
		return domain.TimePtr(time.Unix(x, 0))
	default:
		return nil
	}
}

func topicsValue(v any) domain.RawTopics {
	switch x := v.(type) {
	case string:
		return domain.TopicsEncoded(x)
	case []string:
		return domain.TopicsList(x)
	case []any:
		list := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}
		return domain.TopicsList(list)
	default:
		return domain.RawTopics{}
	}
}
