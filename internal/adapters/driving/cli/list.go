package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driving"
)

var (
	listAll              bool
	listIncludeArchived  bool
	listIncludeStale     bool
	listIncludeForks     bool
	listIncludeLanguages bool
	listStaleDays        int
	listExcludeLanguages []string
	listSources          []string
	listSort             string
	listDesc             bool
	listGroup            string
	listLimit            int
	listJSON             bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored repositories",
	Long: `Lists stored repositories after the exclusion filters.

By default archived repositories, repositories not pushed within the
staleness window, forks and repositories in excluded languages are hidden.
Each rule can be switched off with an --include flag, or all at once
with --all. Defaults come from the filter.* settings.

Sort keys: stars, forks, issues, name, created, updated, pushed, synced.
Group keys: language, owner, source, license.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	f := listCmd.Flags()
	f.BoolVarP(&listAll, "all", "a", false, "disable every filter")
	f.BoolVar(&listIncludeArchived, "include-archived", false, "keep archived repositories")
	f.BoolVar(&listIncludeStale, "include-stale", false, "keep stale repositories")
	f.BoolVar(&listIncludeForks, "include-forks", false, "keep forks")
	f.BoolVar(&listIncludeLanguages, "include-languages", false, "keep excluded languages")
	f.IntVar(&listStaleDays, "stale-days", 0, "staleness window in days (default from settings)")
	f.StringSliceVar(&listExcludeLanguages, "exclude-language", nil, "languages to exclude; glob patterns allowed (default from settings)")
	f.StringSliceVarP(&listSources, "source", "s", nil, "only list these sources")
	f.StringVar(&listSort, "sort", "", "sort key")
	f.BoolVar(&listDesc, "desc", false, "sort descending")
	f.StringVarP(&listGroup, "group", "g", "", "group by key")
	f.IntVarP(&listLimit, "limit", "n", 0, "maximum number of results (groups when grouping)")
	f.BoolVar(&listJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(listCmd)
}

// groupJSON is the JSON shape of one group.
type groupJSON struct {
	Value   string              `json:"value"`
	Count   int                 `json:"count"`
	Records []domain.StarRecord `json:"records"`
}

func runList(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	opts, err := listQueryOptions()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if listGroup != "" {
		key, err := domain.ParseGroupKey(listGroup)
		if err != nil {
			return err
		}
		groups, err := queryService.Group(ctx, opts, key)
		if err != nil {
			return fmt.Errorf("list failed: %w", err)
		}
		if listJSON {
			payload := make([]groupJSON, len(groups))
			for i, g := range groups {
				payload[i] = groupJSON{Value: g.Value, Count: len(g.Records), Records: g.Records}
			}
			return writeJSON(out, payload)
		}

		st := newStyles(out)
		for _, g := range groups {
			cmd.Println(st.title.Render(fmt.Sprintf("%s (%d)", g.Value, len(g.Records))))
			writeRecords(out, g.Records)
			cmd.Println()
		}
		return nil
	}

	records, err := queryService.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}
	if listJSON {
		if records == nil {
			records = []domain.StarRecord{}
		}
		return writeJSON(out, records)
	}
	if len(records) == 0 {
		cmd.Println("No repositories match the current filters.")
		return nil
	}
	writeRecords(out, records)
	return nil
}

// listQueryOptions builds query options from the filter settings and flags.
func listQueryOptions() (driving.QueryOptions, error) {
	filter := domain.DefaultFilterOptions()
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return driving.QueryOptions{}, fmt.Errorf("failed to get settings: %w", err)
		}
		filter = settings.Filter
	}

	if listAll {
		filter = domain.NoFilterOptions()
	} else {
		if listIncludeArchived {
			filter.ExcludeArchived = false
		}
		if listIncludeStale {
			filter.ExcludeStale = false
		}
		if listIncludeForks {
			filter.ExcludeForks = false
		}
		if listIncludeLanguages {
			filter.ExcludeLanguages = false
		}
	}
	if listStaleDays > 0 {
		filter.StaleDays = listStaleDays
	}
	if len(listExcludeLanguages) > 0 {
		filter.Languages = listExcludeLanguages
	}

	opts := driving.QueryOptions{
		Filter: filter,
		Desc:   listDesc,
		Limit:  listLimit,
	}
	if listLimit < 0 {
		return opts, fmt.Errorf("%w: --limit must not be negative", domain.ErrInvalidInput)
	}
	if listSort != "" {
		key, err := domain.ParseSortKey(listSort)
		if err != nil {
			return opts, err
		}
		opts.Sort = key
	}
	for _, s := range listSources {
		source, err := domain.ParseSourceType(s)
		if err != nil {
			return opts, err
		}
		opts.Sources = append(opts.Sources, source)
	}
	return opts, nil
}
