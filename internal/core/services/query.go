package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
	"github.com/custodia-labs/starsync/internal/core/ports/driving"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService reads records from the store through the filter layer.
type QueryService struct {
	store driven.StarStore
	now   func() time.Time
}

// NewQueryService creates a new query service.
func NewQueryService(store driven.StarStore) *QueryService {
	return &QueryService{store: store, now: time.Now}
}

// List returns filtered, sorted and limited records.
func (s *QueryService) List(ctx context.Context, opts driving.QueryOptions) ([]domain.StarRecord, error) {
	records, err := s.filtered(ctx, opts)
	if err != nil {
		return nil, err
	}

	if opts.Sort != "" {
		domain.SortRecords(records, opts.Sort, opts.Desc)
	}
	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}
	return records, nil
}

// Group returns filtered records bucketed by key. Records inside each group
// follow opts.Sort; Limit caps the number of groups.
func (s *QueryService) Group(
	ctx context.Context,
	opts driving.QueryOptions,
	key domain.GroupKey,
) ([]domain.Group, error) {
	records, err := s.filtered(ctx, opts)
	if err != nil {
		return nil, err
	}

	if opts.Sort != "" {
		domain.SortRecords(records, opts.Sort, opts.Desc)
	}
	groups, err := domain.GroupRecords(records, key)
	if err != nil {
		return nil, err
	}
	if opts.Limit > 0 && len(groups) > opts.Limit {
		groups = groups[:opts.Limit]
	}
	return groups, nil
}

func (s *QueryService) filtered(ctx context.Context, opts driving.QueryOptions) ([]domain.StarRecord, error) {
	if opts.Sort != "" {
		if _, err := domain.ParseSortKey(string(opts.Sort)); err != nil {
			return nil, err
		}
	}

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	if len(opts.Sources) > 0 {
		records = slices.DeleteFunc(records, func(r domain.StarRecord) bool {
			return !slices.Contains(opts.Sources, r.Source)
		})
	}
	return Apply(records, opts.Filter, s.now()), nil
}
