package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// SortKey is a closed set of fields records can be ordered by.
type SortKey string

// Supported sort keys.
const (
	SortStars   SortKey = "stars"
	SortForks   SortKey = "forks"
	SortIssues  SortKey = "issues"
	SortName    SortKey = "name"
	SortCreated SortKey = "created"
	SortUpdated SortKey = "updated"
	SortPushed  SortKey = "pushed"
	SortSynced  SortKey = "synced"
)

var sortComparators = map[SortKey]func(a, b *StarRecord) int{
	SortStars:   func(a, b *StarRecord) int { return cmp.Compare(a.Stars, b.Stars) },
	SortForks:   func(a, b *StarRecord) int { return cmp.Compare(a.Forks, b.Forks) },
	SortIssues:  func(a, b *StarRecord) int { return cmp.Compare(a.Issues, b.Issues) },
	SortName:    func(a, b *StarRecord) int { return cmp.Compare(a.Key(), b.Key()) },
	SortCreated: func(a, b *StarRecord) int { return compareTimes(a.Created, b.Created) },
	SortUpdated: func(a, b *StarRecord) int { return compareTimes(a.Updated, b.Updated) },
	SortPushed:  func(a, b *StarRecord) int { return compareTimes(a.Pushed, b.Pushed) },
	SortSynced:  func(a, b *StarRecord) int { return a.SyncedAt.Compare(b.SyncedAt) },
}

// SortKeys returns all supported sort keys.
func SortKeys() []SortKey {
	return []SortKey{SortStars, SortForks, SortIssues, SortName, SortCreated, SortUpdated, SortPushed, SortSynced}
}

// ParseSortKey rejects unknown keys at the boundary.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sortComparators[k]; !ok {
		return "", fmt.Errorf("%w: sort key %q", ErrUnsupportedKey, s)
	}
	return k, nil
}

// SortRecords orders records in place by key. Ties fall back to name so
// the output is deterministic. Absent timestamps sort first.
func SortRecords(records []StarRecord, key SortKey, desc bool) {
	compare, ok := sortComparators[key]
	if !ok {
		compare = sortComparators[SortName]
	}
	slices.SortStableFunc(records, func(a, b StarRecord) int {
		c := compare(&a, &b)
		if desc {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(a.Key(), b.Key())
		}
		return c
	})
}

func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

// GroupKey is a closed set of fields records can be grouped by.
type GroupKey string

// Supported group keys.
const (
	GroupLanguage GroupKey = "language"
	GroupOwner    GroupKey = "owner"
	GroupSource   GroupKey = "source"
	GroupLicense  GroupKey = "license"
)

// NoneGroup labels records with no value for the group key.
const NoneGroup = "(none)"

var groupAccessors = map[GroupKey]func(r *StarRecord) string{
	GroupLanguage: func(r *StarRecord) string { return StringValue(r.Language) },
	GroupOwner:    func(r *StarRecord) string { return strings.ToLower(r.Owner) },
	GroupSource:   func(r *StarRecord) string { return string(r.Source) },
	GroupLicense:  func(r *StarRecord) string { return StringValue(r.License) },
}

// ParseGroupKey rejects unknown keys at the boundary.
func ParseGroupKey(s string) (GroupKey, error) {
	k := GroupKey(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := groupAccessors[k]; !ok {
		return "", fmt.Errorf("%w: group key %q", ErrUnsupportedKey, s)
	}
	return k, nil
}

// Group is one bucket of records sharing a group value.
type Group struct {
	Value   string
	Records []StarRecord
}

// GroupRecords buckets records by key. Groups are ordered by size
// (largest first), then by value.
func GroupRecords(records []StarRecord, key GroupKey) ([]Group, error) {
	accessor, ok := groupAccessors[key]
	if !ok {
		return nil, fmt.Errorf("%w: group key %q", ErrUnsupportedKey, key)
	}

	index := make(map[string]int)
	var groups []Group
	for i := range records {
		v := accessor(&records[i])
		if v == "" {
			v = NoneGroup
		}
		gi, seen := index[v]
		if !seen {
			gi = len(groups)
			index[v] = gi
			groups = append(groups, Group{Value: v})
		}
		groups[gi].Records = append(groups[gi].Records, records[i])
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		if c := cmp.Compare(len(b.Records), len(a.Records)); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return groups, nil
}
