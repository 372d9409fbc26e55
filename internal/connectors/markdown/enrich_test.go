package markdown

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

// mockEnricher returns canned metadata and records call order.
type mockEnricher struct {
	mu       sync.Mutex
	calls    []string
	fail     map[string]bool
	inFlight int
	maxSeen  int
}

func (m *mockEnricher) Enrich(_ context.Context, owner, name string) (*domain.RawStar, error) {
	m.mu.Lock()
	m.inFlight++
	m.maxSeen = max(m.maxSeen, m.inFlight)
	full := owner + "/" + name
	m.calls = append(m.calls, full)
	fail := m.fail[full]
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if fail {
		return nil, errors.New("boom")
	}
	stars := 100
	lang := "Go"
	return &domain.RawStar{
		FullName:   &full,
		Name:       &name,
		OwnerLogin: &owner,
		Language:   &lang,
		Stars:      &stars,
	}, nil
}

func candidate(owner, name, desc string) domain.RawStar {
	full := owner + "/" + name
	raw := domain.RawStar{FullName: &full, Name: &name, OwnerLogin: &owner}
	if desc != "" {
		raw.Description = &desc
	}
	return raw
}

func TestBatcher_EnrichAll(t *testing.T) {
	enricher := &mockEnricher{fail: map[string]bool{"acme/b": true}}
	b := NewBatcher(enricher, 2, 5*time.Second)
	var sleeps []time.Duration
	b.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}

	in := []domain.RawStar{
		candidate("acme", "a", "from link"),
		candidate("acme", "b", "kept"),
		candidate("acme", "c", ""),
		candidate("acme", "d", ""),
		candidate("acme", "e", ""),
	}

	out, failures, err := b.EnrichAll(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 1, failures)
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, sleeps, "one pause between each of three batches")
	assert.Equal(t, []string{"acme/a", "acme/b", "acme/c", "acme/d", "acme/e"}, enricher.calls)
	assert.Equal(t, 1, enricher.maxSeen, "requests never overlap")

	require.Len(t, out, 5)
	assert.Equal(t, "Go", *out[0].Language)
	assert.Equal(t, "from link", *out[0].Description, "link text fills a missing description")
	assert.Nil(t, out[1].Language, "failed enrichment keeps the original")
	assert.Equal(t, "kept", *out[1].Description)
	assert.Equal(t, 100, *out[4].Stars)

	assert.Nil(t, in[0].Language, "input untouched")
}

func TestBatcher_CancelledDuringDelay(t *testing.T) {
	b := NewBatcher(&mockEnricher{}, 1, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	b.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, _, err := b.EnrichAll(ctx, []domain.RawStar{candidate("a", "b", ""), candidate("c", "d", "")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewBatcher_Defaults(t *testing.T) {
	b := NewBatcher(&mockEnricher{}, 0, -time.Second)
	assert.Equal(t, domain.DefaultEnrichBatchSize, b.batchSize)
	assert.Zero(t, b.delay)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
