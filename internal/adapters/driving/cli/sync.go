package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driving"
)

var (
	syncAppend  bool
	syncRefresh bool
)

var syncCmd = &cobra.Command{
	Use:   "sync [source]",
	Short: "Synchronise stars from sources",
	Long: `Fetches repositories from a source and writes them to the store.
Sources: github, firefox, chrome, awesome.

Without a source (or with "all"), every configured source is synchronised
in the configured order, replacing only that source's records. A failing
source is reported and the remaining sources still run.

With a source, the store is replaced by the fetched records unless
--refresh (replace only this source's records) or --append (merge into
the existing records) is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncAppend, "append", false, "merge fetched records into the store")
	syncCmd.Flags().BoolVar(&syncRefresh, "refresh", false, "replace only this source's records")
	syncCmd.MarkFlagsMutuallyExclusive("append", "refresh")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(args) == 0 || args[0] == "all" {
		cmd.Println("Synchronising all sources...")
		reports, err := syncOrchestrator.SyncAll(ctx)
		for i := range reports {
			printSyncReport(out, &reports[i])
		}
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		if len(reports) == 0 {
			cmd.Println("No sources configured.")
		}
		return nil
	}

	source, err := domain.ParseSourceType(args[0])
	if err != nil {
		return err
	}

	req := driving.SyncRequest{Source: source, Mode: domain.StoreReplace, Refresh: syncRefresh}
	if syncAppend {
		req.Mode = domain.StoreAppend
	}

	cmd.Printf("Synchronising %s...\n", source)
	report, err := syncOrchestrator.Sync(ctx, req)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	printSyncReport(out, report)
	return nil
}

func printSyncReport(w io.Writer, r *driving.SyncReport) {
	st := newStyles(w)
	if r.Err != nil {
		fmt.Fprintf(w, "%s %s: %v\n", st.err.Render("✗"), r.Source, r.Err)
		return
	}

	fmt.Fprintf(w, "%s %s: %d fetched, %d dropped, %d duplicates, %d stored\n",
		st.success.Render("✓"), r.Source, r.Fetched, r.Dropped, r.Duplicates, r.Stored)
	if r.Partial != nil {
		fmt.Fprintln(w, st.warn.Render("  incomplete fetch: "+r.Partial.Error()))
	}
	if r.BackupPath != "" {
		fmt.Fprintln(w, st.muted.Render("  backup: "+r.BackupPath))
	}
}
