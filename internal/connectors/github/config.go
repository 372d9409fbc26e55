package github

import (
	"strings"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

// Config holds the parsed configuration for the starred-list source.
type Config struct {
	// User whose stars are listed. Empty lists the authenticated user's.
	User string

	// PerPage is the page size, already clamped to the API maximum.
	PerPage int
}

// ParseConfig derives a Config from settings.
func ParseConfig(settings domain.GitHubSettings) *Config {
	return &Config{
		User:    strings.TrimSpace(settings.User),
		PerPage: domain.ClampPerPage(settings.PerPage),
	}
}
