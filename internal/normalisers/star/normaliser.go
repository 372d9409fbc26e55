package star

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

// Normaliser maps candidates from one source and one sync run onto the
// canonical schema.
type Normaliser struct {
	source   domain.SourceType
	syncedAt time.Time
}

// New creates a normaliser stamping source and syncedAt on every record.
func New(source domain.SourceType, syncedAt time.Time) *Normaliser {
	return &Normaliser{source: source, syncedAt: syncedAt.UTC()}
}

// Normalise converts one candidate into a StarRecord.
// Returns a *domain.ValidationError if the candidate is structurally unusable
// (no repository name, unknown source).
func (n *Normaliser) Normalise(raw domain.RawStar) (domain.StarRecord, error) {
	fullName := trimmed(raw.FullName)
	ownerFromFull, nameFromFull := splitFullName(fullName)

	name := trimmed(raw.Name)
	if name == "" {
		name = nameFromFull
	}

	owner := trimmed(raw.OwnerLogin)
	if owner == "" {
		owner = ownerFromFull
	}
	if owner == "" {
		owner = domain.UnknownOwner
	}

	if fullName == "" && name != "" {
		fullName = owner + "/" + name
	}

	rec := domain.StarRecord{
		Owner:       owner,
		Name:        name,
		FullName:    fullName,
		Description: nonBlank(raw.Description),
		Homepage:    nonBlank(raw.Homepage),
		URL:         nonBlank(raw.URL),
		Language:    nonBlank(raw.Language),
		License:     nonBlank(raw.LicenseName),
		Topics:      DecodeTopics(raw.Topics),
		Stars:       count(raw.Stars),
		Forks:       count(raw.Forks),
		Issues:      count(raw.Issues),
		Created:     utc(raw.Created),
		Updated:     utc(raw.Updated),
		Pushed:      utc(raw.Pushed),
		Archived:    flag(raw.Archived),
		Fork:        flag(raw.Fork),
		Source:      n.source,
		SyncedAt:    n.syncedAt,
	}

	if raw.ID != nil {
		rec.ID = *raw.ID
	} else if fullName != "" {
		rec.ID = SyntheticID(fullName)
	}

	if err := rec.Validate().Err(); err != nil {
		return domain.StarRecord{}, err
	}
	return rec, nil
}

// NormaliseAll converts a batch, dropping invalid candidates.
// Returns the records in input order and the number dropped.
func (n *Normaliser) NormaliseAll(raws []domain.RawStar) ([]domain.StarRecord, int) {
	records := make([]domain.StarRecord, 0, len(raws))
	dropped := 0
	for i := range raws {
		rec, err := n.Normalise(raws[i])
		if err != nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}

// SyntheticID derives a stable positive ID from a full name for sources
// that do not assign one.
func SyntheticID(fullName string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(domain.DedupKey(fullName)))
	return int64(h.Sum64() & (1<<53 - 1))
}

// FullName joins owner and name.
func FullName(owner, name string) string {
	return fmt.Sprintf("%s/%s", owner, name)
}

func splitFullName(fullName string) (owner, name string) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok {
		return "", ""
	}
	return strings.TrimSpace(owner), strings.TrimSpace(name)
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	return domain.StringPtr(strings.TrimSpace(*s))
}

func count(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

func flag(v *bool) bool {
	return v != nil && *v
}

func utc(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
