package domain

import (
	"strings"
	"time"
)

// UnknownOwner is the sentinel owner for records whose owner cannot be recovered.
const UnknownOwner = "unknown"

// StarRecord is the canonical representation of one starred or bookmarked
// repository. It is produced by normalisation and never edited afterwards.
type StarRecord struct {
	// ID is source-assigned or synthesized. Not unique across sources.
	ID int64 `json:"id"`

	// Owner is the repository owner's login. Never empty.
	Owner string `json:"owner"`

	// Name is the repository name.
	Name string `json:"name"`

	// FullName is "owner/name" unless the source overrides it.
	// It is the natural dedup key within one storage generation.
	FullName string `json:"full_name"`

	Description *string `json:"description"`
	Homepage    *string `json:"homepage"`
	URL         *string `json:"url"`
	Language    *string `json:"language"`
	License     *string `json:"license"`

	// Topics is always a concrete list, possibly empty.
	Topics []string `json:"topics"`

	Stars  int `json:"stars"`
	Forks  int `json:"forks"`
	Issues int `json:"issues"`

	Created *time.Time `json:"created"`
	Updated *time.Time `json:"updated"`
	Pushed  *time.Time `json:"pushed"`

	Archived bool `json:"archived"`
	Fork     bool `json:"fork"`

	Source SourceType `json:"source"`

	// SyncedAt is set at normalisation time, one value per sync run.
	SyncedAt time.Time `json:"synced_at"`
}

// Key returns the dedup key: the full name compared case-insensitively,
// since GitHub logins and repository names are case-insensitive.
func (r *StarRecord) Key() string {
	return DedupKey(r.FullName)
}

// DedupKey normalises a full name for grouping.
func DedupKey(fullName string) string {
	return strings.ToLower(strings.TrimSpace(fullName))
}

// PopulatedFields counts optional fields carrying a value.
// Used to pick the most complete record when merging duplicates.
func (r *StarRecord) PopulatedFields() int {
	n := 0
	for _, s := range []*string{r.Description, r.Homepage, r.URL, r.Language, r.License} {
		if s != nil && *s != "" {
			n++
		}
	}
	for _, t := range []*time.Time{r.Created, r.Updated, r.Pushed} {
		if t != nil {
			n++
		}
	}
	for _, v := range []int{r.Stars, r.Forks, r.Issues} {
		if v > 0 {
			n++
		}
	}
	if r.ID != 0 {
		n++
	}
	if len(r.Topics) > 0 {
		n++
	}
	return n
}

// Clone returns a deep copy so callers can never mutate a stored record.
func (r *StarRecord) Clone() StarRecord {
	c := *r
	c.Description = cloneString(r.Description)
	c.Homepage = cloneString(r.Homepage)
	c.URL = cloneString(r.URL)
	c.Language = cloneString(r.Language)
	c.License = cloneString(r.License)
	c.Created = cloneTime(r.Created)
	c.Updated = cloneTime(r.Updated)
	c.Pushed = cloneTime(r.Pushed)
	c.Topics = append(make([]string, 0, len(r.Topics)), r.Topics...)
	return c
}

// LanguageName returns the language or empty string when absent.
func (r *StarRecord) LanguageName() string {
	return StringValue(r.Language)
}

// StringValue dereferences a nullable string.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to s, or nil when s is blank.
func StringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// TimePtr returns a pointer to the UTC value of t, or nil for the zero time.
func TimePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
