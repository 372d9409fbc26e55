package auth

import (
	"context"
	"sync"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
)

// Ensure DeferredTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*DeferredTokenProvider)(nil)

// DeferredTokenProvider resolves its token on first use, after command
// line flags have been parsed.
type DeferredTokenProvider struct {
	factory *Factory
	flag    func() string

	once     sync.Once
	provider driven.TokenProvider
}

// NewDeferredTokenProvider creates a provider that asks factory for a
// token, passing the value returned by flag.
func NewDeferredTokenProvider(factory *Factory, flag func() string) *DeferredTokenProvider {
	return &DeferredTokenProvider{factory: factory, flag: flag}
}

func (p *DeferredTokenProvider) resolve() driven.TokenProvider {
	p.once.Do(func() {
		flagToken := ""
		if p.flag != nil {
			flagToken = p.flag()
		}
		p.provider = p.factory.CreateTokenProvider(flagToken)
	})
	return p.provider
}

// GetToken returns the resolved token.
func (p *DeferredTokenProvider) GetToken(ctx context.Context) (string, error) {
	return p.resolve().GetToken(ctx)
}

// AuthMethod returns where the resolved token came from.
func (p *DeferredTokenProvider) AuthMethod() domain.AuthMethod {
	return p.resolve().AuthMethod()
}

// IsAuthenticated returns true if a token was resolved.
func (p *DeferredTokenProvider) IsAuthenticated() bool {
	return p.resolve().IsAuthenticated()
}
