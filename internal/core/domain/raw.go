package domain

import "time"

// RawTopics holds topics as a source delivered them: either an already
// decoded list or JSON-encoded text (as found in database columns).
type RawTopics struct {
	List    []string
	Encoded *string
}

// TopicsList wraps an already decoded topic list.
func TopicsList(topics []string) RawTopics {
	return RawTopics{List: topics}
}

// TopicsEncoded wraps JSON-encoded topic text.
func TopicsEncoded(s string) RawTopics {
	return RawTopics{Encoded: &s}
}

// RawStar is a candidate record produced by a source adapter.
// Every field is optional; the normaliser applies defaults field by field.
type RawStar struct {
	ID       *int64
	FullName *string
	Name     *string

	// OwnerLogin is lifted from the source's nested owner object, if any.
	OwnerLogin *string

	Description *string
	Homepage    *string
	URL         *string
	Language    *string

	// LicenseName is lifted from the source's nested license object, if any.
	LicenseName *string

	Topics RawTopics

	Stars  *int
	Forks  *int
	Issues *int

	Created *time.Time
	Updated *time.Time
	Pushed  *time.Time

	Archived *bool
	Fork     *bool
}
