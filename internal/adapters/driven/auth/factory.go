package auth

import (
	"strings"

	ghauth "github.com/cli/go-gh/v2/pkg/auth"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
	"github.com/custodia-labs/starsync/internal/logger"
)

// DefaultHost is the GitHub host tokens are resolved for.
const DefaultHost = "github.com"

// EnvTokenVars are checked in order for a token.
var EnvTokenVars = []string{"GITHUB_TOKEN", "GH_TOKEN"}

// Factory resolves the GitHub token provider for a run.
type Factory struct {
	host     string
	getenv   func(string) string
	ghLookup func(host string) (string, string)
}

// NewFactory creates a token provider factory reading the given environment.
// The gh CLI's stored credentials are consulted last.
func NewFactory(getenv func(string) string) *Factory {
	return &Factory{
		host:     DefaultHost,
		getenv:   getenv,
		ghLookup: ghauth.TokenForHost,
	}
}

// CreateTokenProvider picks the first available token.
// Priority order:
//  1. flagToken (explicit --token flag)
//  2. GITHUB_TOKEN environment variable
//  3. GH_TOKEN environment variable
//  4. gh CLI auth (keyring + config file)
//
// Returns NullTokenProvider when none is found.
func (f *Factory) CreateTokenProvider(flagToken string) driven.TokenProvider {
	if token := strings.TrimSpace(flagToken); token != "" {
		logger.Debug("Using GitHub token from --token")
		return NewStaticTokenProvider(token, domain.AuthMethodFlag)
	}

	for _, name := range EnvTokenVars {
		if token := strings.TrimSpace(f.getenv(name)); token != "" {
			logger.Debug("Using GitHub token from %s", name)
			return NewStaticTokenProvider(token, domain.AuthMethodEnv)
		}
	}

	if f.ghLookup != nil {
		if token, source := f.ghLookup(f.host); token != "" {
			logger.Debug("Using GitHub token from gh CLI (%s)", source)
			return NewStaticTokenProvider(token, domain.AuthMethodGHCLI)
		}
	}

	logger.Debug("No GitHub token found; using anonymous access")
	return NewNullTokenProvider()
}
