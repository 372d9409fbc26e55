package markdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/starsync/internal/connectors/repourl"
	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
	"github.com/custodia-labs/starsync/internal/logger"
	"github.com/custodia-labs/starsync/internal/normalisers/star"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// ErrReadmeUnavailable indicates a repository list was configured but no
// README fetcher is available.
var ErrReadmeUnavailable = errors.New("awesome: cannot read repository lists without a GitHub client")

var repoRef = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// Connector reads one or more awesome lists.
type Connector struct {
	config  domain.AwesomeSettings
	readme  driven.ReadmeFetcher
	batcher *Batcher
}

// New creates an awesome-list connector. readme is needed only for
// owner/repo lists; enricher only when enrichment is on. Either may be nil.
func New(cfg domain.AwesomeSettings, readme driven.ReadmeFetcher, enricher driven.RepoEnricher) (*Connector, error) {
	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("%w: awesome lists", domain.ErrSourceNotConfigured)
	}
	c := &Connector{config: cfg, readme: readme}
	if cfg.Enrich && enricher != nil {
		c.batcher = NewBatcher(enricher, cfg.BatchSize, cfg.BatchDelay)
	}
	return c, nil
}

// Source returns the source type.
func (c *Connector) Source() domain.SourceType {
	return domain.SourceAwesome
}

// Fetch reads every configured list. A list that cannot be read is skipped
// and reported through FetchResult.Partial; if none can be read the fetch
// fails.
func (c *Connector) Fetch(ctx context.Context, syncedAt time.Time) (*driven.FetchResult, error) {
	var links []Link
	var failed []error
	read := 0

	for _, list := range c.config.Lists {
		text, err := c.readList(ctx, list)
		if err != nil {
			logger.Warn("awesome: skipping %s: %v", list, err)
			failed = append(failed, fmt.Errorf("%s: %w", list, err))
			continue
		}
		read++
		found := ExtractLinks(text)
		logger.Debug("awesome: %s has %d github links", list, len(found))
		links = append(links, found...)
	}

	if read == 0 {
		return nil, &domain.SourceFetchError{Source: domain.SourceAwesome, Err: errors.Join(failed...)}
	}

	ex := Candidates(links)
	candidates := ex.Candidates
	if c.batcher != nil {
		enriched, failures, err := c.batcher.EnrichAll(ctx, candidates)
		if err != nil {
			return nil, &domain.SourceFetchError{Source: domain.SourceAwesome, Retrieved: len(candidates), Err: err}
		}
		if failures > 0 {
			logger.Warn("awesome: %d of %d repositories could not be enriched", failures, len(candidates))
		}
		candidates = enriched
	}

	records, invalid := star.New(domain.SourceAwesome, syncedAt).NormaliseAll(candidates)
	records, duplicates := star.Deduplicate(records)

	result := &driven.FetchResult{
		Records:    records,
		Dropped:    ex.Rejected + invalid,
		Duplicates: ex.DuplicateURLs + duplicates,
	}
	if len(failed) > 0 {
		result.Partial = &domain.SourceFetchError{Source: domain.SourceAwesome, Retrieved: len(records), Err: errors.Join(failed...)}
	}
	return result, nil
}

// readList returns the markdown of a local file, or the README of an
// owner/repo reference or GitHub repository URL.
func (c *Connector) readList(ctx context.Context, list string) (string, error) {
	list = strings.TrimSpace(list)

	if info, err := os.Stat(list); err == nil && !info.IsDir() {
		data, err := os.ReadFile(list)
		if err != nil {
			return "", fmt.Errorf("read list: %w", err)
		}
		return string(data), nil
	}

	var repo repourl.Repo
	if repoRef.MatchString(list) {
		owner, name, _ := strings.Cut(list, "/")
		repo = repourl.Repo{Owner: owner, Name: name}
	} else if r, ok := repourl.Match(list); ok {
		repo = r
	} else {
		return "", fmt.Errorf("%w: %q is neither a file nor owner/repo", domain.ErrInvalidInput, list)
	}

	if c.readme == nil {
		return "", ErrReadmeUnavailable
	}
	return c.readme.FetchReadme(ctx, repo.Owner, repo.Name)
}
