package markdown

import (
	"context"
	"time"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
	"github.com/custodia-labs/starsync/internal/logger"
)

// Batcher re-fetches candidates through a RepoEnricher in fixed-size
// batches with a pause between batches. Requests are strictly sequential.
type Batcher struct {
	enricher  driven.RepoEnricher
	batchSize int
	delay     time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewBatcher creates a Batcher. Non-positive sizes fall back to defaults;
// a negative delay is treated as zero.
func NewBatcher(enricher driven.RepoEnricher, batchSize int, delay time.Duration) *Batcher {
	if batchSize <= 0 {
		batchSize = domain.DefaultEnrichBatchSize
	}
	if delay < 0 {
		delay = 0
	}
	return &Batcher{enricher: enricher, batchSize: batchSize, delay: delay, sleep: sleepContext}
}

// EnrichAll returns the candidates with network metadata where available.
// A candidate whose enrichment fails keeps its original fields. Returns the
// number of failures; the error is non-nil only if ctx ends.
func (b *Batcher) EnrichAll(ctx context.Context, raws []domain.RawStar) ([]domain.RawStar, int, error) {
	out := make([]domain.RawStar, len(raws))
	copy(out, raws)
	failures := 0

	for start := 0; start < len(out); start += b.batchSize {
		if start > 0 && b.delay > 0 {
			if err := b.sleep(ctx, b.delay); err != nil {
				return nil, failures, err
			}
		}

		end := min(start+b.batchSize, len(out))
		logger.Debug("awesome: enriching %d-%d of %d", start+1, end, len(out))
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return nil, failures, err
			}
			enriched, err := b.enrichOne(ctx, out[i])
			if err != nil {
				failures++
				logger.Debug("awesome: keeping link metadata for %s: %v", domain.StringValue(out[i].FullName), err)
				continue
			}
			out[i] = enriched
		}
	}
	return out, failures, nil
}

func (b *Batcher) enrichOne(ctx context.Context, raw domain.RawStar) (domain.RawStar, error) {
	owner, name := domain.StringValue(raw.OwnerLogin), domain.StringValue(raw.Name)
	enriched, err := b.enricher.Enrich(ctx, owner, name)
	if err != nil {
		return raw, err
	}
	if enriched == nil {
		return raw, domain.ErrNotFound
	}

	merged := *enriched
	if merged.Description == nil {
		merged.Description = raw.Description
	}
	if merged.URL == nil {
		merged.URL = raw.URL
	}
	return merged, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
