package auth

import (
	"context"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
)

// Ensure StaticTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// StaticTokenProvider serves a token resolved once at startup.
// Personal access tokens and gh CLI tokens don't need refresh.
type StaticTokenProvider struct {
	token  string
	method domain.AuthMethod
}

// NewStaticTokenProvider creates a provider for a fixed token.
func NewStaticTokenProvider(token string, method domain.AuthMethod) *StaticTokenProvider {
	return &StaticTokenProvider{token: token, method: method}
}

// GetToken returns the token.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	return p.token, nil
}

// AuthMethod returns where the token came from.
func (p *StaticTokenProvider) AuthMethod() domain.AuthMethod {
	return p.method
}

// IsAuthenticated returns true if the token is non-empty.
func (p *StaticTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}
