package connectors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/starsync/internal/connectors/bookmarks"
	"github.com/custodia-labs/starsync/internal/connectors/github"
	"github.com/custodia-labs/starsync/internal/connectors/markdown"
	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ConnectorFactory = (*Factory)(nil)

// Factory builds connectors for every fetchable source. One GitHub client
// is shared by the starred-list connector and the awesome-list README and
// enrichment lookups, so they draw on the same rate limit.
type Factory struct {
	client *github.Client
}

// NewFactory creates a connector factory around a GitHub client.
func NewFactory(client *github.Client) *Factory {
	return &Factory{client: client}
}

// Create returns a connector for source configured from settings.
func (f *Factory) Create(_ context.Context, source domain.SourceType, settings domain.Settings) (driven.Connector, error) {
	switch source {
	case domain.SourceGitHub:
		return github.New(f.client, github.ParseConfig(settings.GitHub)), nil

	case domain.SourceFirefox:
		return bookmarks.New(source, settings.Firefox)

	case domain.SourceChrome:
		return bookmarks.New(source, settings.Chrome)

	case domain.SourceAwesome:
		var enricher driven.RepoEnricher
		if settings.Awesome.Enrich {
			enricher = f.client
		}
		return markdown.New(settings.Awesome, f.client, enricher)

	default:
		return nil, fmt.Errorf("%w: no connector for %q", domain.ErrUnsupportedSource, source)
	}
}

// SupportedSources returns the source types the factory can build.
func (f *Factory) SupportedSources() []domain.SourceType {
	return []domain.SourceType{
		domain.SourceGitHub,
		domain.SourceFirefox,
		domain.SourceChrome,
		domain.SourceAwesome,
	}
}
