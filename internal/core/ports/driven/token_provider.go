package driven

import (
	"context"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

// TokenProvider provides access tokens for authenticated API calls.
type TokenProvider interface {
	// GetToken returns an access token.
	// Returns empty string when no token is available (anonymous access).
	GetToken(ctx context.Context) (string, error)

	// AuthMethod returns where the token came from.
	AuthMethod() domain.AuthMethod

	// IsAuthenticated returns true if a token is available.
	IsAuthenticated() bool
}
