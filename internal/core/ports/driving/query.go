package driving

import (
	"context"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

// QueryService reads stored records through the filter layer.
type QueryService interface {
	// List returns stored records that pass the filters, sorted and limited.
	List(ctx context.Context, opts QueryOptions) ([]domain.StarRecord, error)

	// Group returns filtered records bucketed by key.
	Group(ctx context.Context, opts QueryOptions, key domain.GroupKey) ([]domain.Group, error)
}

// QueryOptions controls a read.
type QueryOptions struct {
	// Filter holds the exclusion rules.
	Filter domain.FilterOptions

	// Sources limits results to these sources. Empty means all.
	Sources []domain.SourceType

	// Sort orders results. Empty keeps storage order.
	Sort domain.SortKey

	// Desc reverses the sort order.
	Desc bool

	// Limit caps the number of results. Zero means no limit.
	Limit int
}
