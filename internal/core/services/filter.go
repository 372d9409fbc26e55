package services

import (
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/logger"
)

// RecordFilter applies the default exclusion rules. Rules are independent
// and conjunctive: a record passes only if no enabled rule excludes it.
type RecordFilter struct {
	opts      domain.FilterOptions
	cutoff    time.Time
	languages []glob.Glob
}

// NewRecordFilter compiles opts against now. Language entries are matched
// case-insensitively and may be glob patterns ("Objective-*"); an entry
// that is not a valid pattern is matched literally.
func NewRecordFilter(opts domain.FilterOptions, now time.Time) *RecordFilter {
	f := &RecordFilter{
		opts:   opts,
		cutoff: opts.StaleCutoff(now),
	}
	if opts.ExcludeLanguages {
		for _, entry := range opts.Languages {
			entry = strings.ToLower(strings.TrimSpace(entry))
			if entry == "" {
				continue
			}
			g, err := glob.Compile(entry)
			if err != nil {
				logger.Warn("Language filter %q is not a valid pattern, matching literally", entry)
				g = glob.MustCompile(glob.QuoteMeta(entry))
			}
			f.languages = append(f.languages, g)
		}
	}
	return f
}

// Exclusions returns every rule that excludes r, empty if r passes.
func (f *RecordFilter) Exclusions(r *domain.StarRecord) []domain.Exclusion {
	var out []domain.Exclusion
	if f.opts.ExcludeArchived && r.Archived {
		out = append(out, domain.ExcludedArchived)
	}
	// A record with no push date is never stale.
	if f.opts.ExcludeStale && r.Pushed != nil && r.Pushed.Before(f.cutoff) {
		out = append(out, domain.ExcludedStale)
	}
	if f.excludesLanguage(r.LanguageName()) {
		out = append(out, domain.ExcludedLanguage)
	}
	if f.opts.ExcludeForks && r.Fork {
		out = append(out, domain.ExcludedFork)
	}
	return out
}

// Keep reports whether r passes every enabled rule.
func (f *RecordFilter) Keep(r *domain.StarRecord) bool {
	return len(f.Exclusions(r)) == 0
}

// excludesLanguage never matches an absent language.
func (f *RecordFilter) excludesLanguage(language string) bool {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return false
	}
	for _, g := range f.languages {
		if g.Match(language) {
			return true
		}
	}
	return false
}

// Apply returns the records that pass opts, in their original order.
// The input slice is not modified.
func Apply(records []domain.StarRecord, opts domain.FilterOptions, now time.Time) []domain.StarRecord {
	f := NewRecordFilter(opts, now)
	out := make([]domain.StarRecord, 0, len(records))
	for i := range records {
		if f.Keep(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}
