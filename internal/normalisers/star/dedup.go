package star

import (
	"github.com/custodia-labs/starsync/internal/core/domain"
)

// Deduplicate collapses records sharing a full name (case-insensitive).
// Output keeps the position of each name's first occurrence. Returns the
// merged records and how many inputs were folded into another.
//
// Deduplicate(Deduplicate(x)) equals Deduplicate(x).
func Deduplicate(records []domain.StarRecord) ([]domain.StarRecord, int) {
	out := make([]domain.StarRecord, 0, len(records))
	index := make(map[string]int, len(records))
	duplicates := 0

	for i := range records {
		key := records[i].Key()
		if pos, seen := index[key]; seen {
			out[pos] = Merge(out[pos], records[i])
			duplicates++
			continue
		}
		index[key] = len(out)
		out = append(out, records[i].Clone())
	}
	return out, duplicates
}

// Merge combines two records with the same full name. The record with
// strictly more populated fields wins; on a tie the later synced_at wins;
// on a full tie a is kept. Empty fields of the winner are filled from the
// other record.
func Merge(a, b domain.StarRecord) domain.StarRecord {
	winner, other := a, b
	pa, pb := a.PopulatedFields(), b.PopulatedFields()
	if pb > pa || (pb == pa && b.SyncedAt.After(a.SyncedAt)) {
		winner, other = b, a
	}

	merged := winner.Clone()
	if merged.ID == 0 {
		merged.ID = other.ID
	}
	if merged.Description == nil {
		merged.Description = other.Clone().Description
	}
	if merged.Homepage == nil {
		merged.Homepage = other.Clone().Homepage
	}
	if merged.URL == nil {
		merged.URL = other.Clone().URL
	}
	if merged.Language == nil {
		merged.Language = other.Clone().Language
	}
	if merged.License == nil {
		merged.License = other.Clone().License
	}
	if len(merged.Topics) == 0 && len(other.Topics) > 0 {
		merged.Topics = append([]string(nil), other.Topics...)
	}
	if merged.Stars == 0 {
		merged.Stars = other.Stars
	}
	if merged.Forks == 0 {
		merged.Forks = other.Forks
	}
	if merged.Issues == 0 {
		merged.Issues = other.Issues
	}
	if merged.Created == nil {
		merged.Created = other.Clone().Created
	}
	if merged.Updated == nil {
		merged.Updated = other.Clone().Updated
	}
	if merged.Pushed == nil {
		merged.Pushed = other.Clone().Pushed
	}
	if merged.Owner == domain.UnknownOwner && other.Owner != domain.UnknownOwner {
		merged.Owner = other.Owner
	}
	return merged
}
