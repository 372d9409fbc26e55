package star

import (
	"encoding/json"
	"strings"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// DecodeTopics turns raw topic input into a clean list. It never fails:
// absent, null, empty, "null" and non-JSON inputs all give an empty list.
// Entries are trimmed, blanks dropped and repeats removed in first-seen order.
func DecodeTopics(raw domain.RawTopics) []string {
	if raw.List != nil {
		return cleanTopics(raw.List)
	}
	if raw.Encoded == nil {
		return []string{}
	}

	text := strings.TrimSpace(*raw.Encoded)
	if text == "" || text == jsonNull {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(text), &list); err == nil {
		return cleanTopics(list)
	}

	// Mixed arrays keep their string members.
	var mixed []any
	if err := json.Unmarshal([]byte(text), &mixed); err != nil {
		return []string{}
	}
	for _, v := range mixed {
		if s, ok := v.(string); ok {
			list = append(list, s)
		}
	}
	return cleanTopics(list)
}

// EncodeTopics serialises topics for a text column. Nil encodes as [].
func EncodeTopics(topics []string) string {
	if len(topics) == 0 {
		return "[]"
	}
	data, err := json.Marshal(topics)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func cleanTopics(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
