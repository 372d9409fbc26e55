package domain

import (
	"fmt"
	"strings"
)

// SourceType identifies where a StarRecord came from.
type SourceType string

// Supported sources.
const (
	SourceGitHub  SourceType = "github"
	SourceFirefox SourceType = "firefox"
	SourceChrome  SourceType = "chrome"
	SourceAwesome SourceType = "awesome"
	SourceManual  SourceType = "manual"
)

// AllSourceTypes returns every supported source in default sync order.
func AllSourceTypes() []SourceType {
	return []SourceType{SourceGitHub, SourceFirefox, SourceChrome, SourceAwesome, SourceManual}
}

// IsValid returns true if the source type is one of the enumerated values.
func (s SourceType) IsValid() bool {
	switch s {
	case SourceGitHub, SourceFirefox, SourceChrome, SourceAwesome, SourceManual:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SourceType) String() string {
	return string(s)
}

// Description returns a human-readable description of the source.
func (s SourceType) Description() string {
	switch s {
	case SourceGitHub:
		return "GitHub starred repositories"
	case SourceFirefox:
		return "Firefox bookmarks"
	case SourceChrome:
		return "Chrome bookmarks"
	case SourceAwesome:
		return "Markdown (awesome) lists"
	case SourceManual:
		return "Manually imported records"
	default:
		return "Unknown"
	}
}

// ParseSourceType converts a string into a SourceType.
// Unknown values are rejected rather than defaulted.
func ParseSourceType(s string) (SourceType, error) {
	st := SourceType(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q (expected one of github, firefox, chrome, awesome, manual)",
			ErrUnsupportedSource, s)
	}
	return st, nil
}
