package domain

import "time"

// DefaultStaleDays is the default staleness window.
const DefaultStaleDays = 365

// DefaultExcludedLanguages is the default language denylist.
func DefaultExcludedLanguages() []string {
	return []string{"Java", "PHP", "Python", "Ruby"}
}

// FilterOptions configures the default exclusion rules. Each rule toggles
// independently and rules compose conjunctively: a record is kept only if
// no enabled rule excludes it.
type FilterOptions struct {
	// ExcludeArchived drops archived repositories.
	ExcludeArchived bool

	// ExcludeStale drops repositories not pushed within StaleDays.
	ExcludeStale bool

	// StaleDays is the staleness window in days.
	StaleDays int

	// ExcludeLanguages drops repositories whose language is in Languages.
	// Records without a language are never dropped by this rule.
	ExcludeLanguages bool

	// Languages is the language denylist. Entries may be glob patterns.
	Languages []string

	// ExcludeForks drops forked repositories.
	ExcludeForks bool
}

// DefaultFilterOptions returns every rule enabled with default parameters.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		ExcludeArchived:  true,
		ExcludeStale:     true,
		StaleDays:        DefaultStaleDays,
		ExcludeLanguages: true,
		Languages:        DefaultExcludedLanguages(),
		ExcludeForks:     true,
	}
}

// NoFilterOptions returns every rule disabled.
func NoFilterOptions() FilterOptions {
	return FilterOptions{StaleDays: DefaultStaleDays}
}

// StaleCutoff returns the oldest push time that is still considered fresh.
func (o FilterOptions) StaleCutoff(now time.Time) time.Time {
	days := o.StaleDays
	if days <= 0 {
		days = DefaultStaleDays
	}
	return now.AddDate(0, 0, -days)
}

// Exclusion names a rule that rejected a record.
type Exclusion string

// Exclusion reasons.
const (
	ExcludedArchived Exclusion = "archived"
	ExcludedStale    Exclusion = "stale"
	ExcludedLanguage Exclusion = "language"
	ExcludedFork     Exclusion = "fork"
)
