package github

import (
	"context"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
	"github.com/custodia-labs/starsync/internal/logger"
	"github.com/custodia-labs/starsync/internal/normalisers/star"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// StarredLister fetches one page of starred repositories.
type StarredLister interface {
	StarredPage(ctx context.Context, user string, page, perPage int) ([]*gh.Repository, error)
}

// Connector lists starred repositories page by page.
type Connector struct {
	lister StarredLister
	config *Config
}

// New creates a GitHub starred-list connector.
func New(lister StarredLister, cfg *Config) *Connector {
	if cfg == nil {
		cfg = ParseConfig(domain.GitHubSettings{})
	}
	return &Connector{lister: lister, config: cfg}
}

// Source returns the source type.
func (c *Connector) Source() domain.SourceType {
	return domain.SourceGitHub
}

// Fetch walks the starred list until a short or empty page. Each page is
// normalised as it arrives and records accumulate in page order.
func (c *Connector) Fetch(ctx context.Context, syncedAt time.Time) (*driven.FetchResult, error) {
	normaliser := star.New(domain.SourceGitHub, syncedAt)
	result := &driven.FetchResult{}
	cursor := NewPageCursor(c.config.PerPage)

	for !cursor.Done {
		repos, err := c.fetchPage(ctx, cursor)
		if err != nil {
			fetchErr := &domain.SourceFetchError{
				Source:    domain.SourceGitHub,
				Page:      cursor.Page,
				Retrieved: cursor.Total,
				Err:       err,
			}
			if cursor.Page == 1 {
				return nil, fetchErr
			}
			logger.Warn("github: stopping after %d records: %v", cursor.Total, err)
			result.Partial = fetchErr
			break
		}

		raws := make([]domain.RawStar, 0, len(repos))
		for _, repo := range repos {
			raws = append(raws, ToRawStar(repo))
		}
		records, dropped := normaliser.NormaliseAll(raws)
		result.Records = append(result.Records, records...)
		result.Dropped += dropped

		logger.Debug("github: page %d returned %d (total %d)", cursor.Page, len(repos), cursor.Total+len(repos))
		cursor = cursor.Advance(len(repos))
	}

	result.Records, result.Duplicates = star.Deduplicate(result.Records)
	return result, nil
}

func (c *Connector) fetchPage(ctx context.Context, cursor PageCursor) ([]*gh.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.lister.StarredPage(ctx, c.config.User, cursor.Page, cursor.PerPage)
}
