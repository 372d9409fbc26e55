package driving

import "github.com/custodia-labs/starsync/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns current settings, defaults filled in.
	Get() (domain.Settings, error)

	// Set stores one setting by key. Unknown keys are rejected.
	Set(key, value string) error

	// Keys returns the supported setting keys.
	Keys() []string

	// Path returns the configuration file path.
	Path() string
}
