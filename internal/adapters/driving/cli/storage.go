package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

var backupList bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directories",
	Long: `Creates the data and backup directories. The store itself is created
by the first sync, import or migration.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the store",
	Long: `Writes a timestamped copy of the store to the backups directory.
With --list, prints existing backups, newest first.`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate a legacy store",
	Long: `Copies the legacy store (~/.starsync/stars.db) into the current location.
Records missing a source are marked as github and stamped with the
migration time. Nothing happens if no legacy store exists or the current
store has already been created.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show record counts per source",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	backupCmd.Flags().BoolVarP(&backupList, "list", "l", false, "list existing backups")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statsCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	if storageService == nil {
		return errors.New("storage service not configured")
	}
	if err := storageService.Init(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Data directories ready.")
	return nil
}

func runBackup(cmd *cobra.Command, _ []string) error {
	if storageService == nil {
		return errors.New("storage service not configured")
	}

	if backupList {
		backups, err := storageService.ListBackups()
		if err != nil {
			return fmt.Errorf("failed to list backups: %w", err)
		}
		if len(backups) == 0 {
			cmd.Println("No backups found.")
			return nil
		}
		for _, b := range backups {
			cmd.Println(b)
		}
		return nil
	}

	path, err := storageService.Backup(cmd.Context())
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	cmd.Printf("Backup written to %s\n", path)
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if storageService == nil {
		return errors.New("storage service not configured")
	}

	migrated, err := storageService.Migrate(cmd.Context())
	if err != nil {
		return err
	}
	if !migrated {
		cmd.Println("Nothing to migrate.")
		return nil
	}
	cmd.Println("Legacy store migrated.")
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	if storageService == nil {
		return errors.New("storage service not configured")
	}

	counts, err := storageService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	sources := make([]domain.SourceType, 0, len(counts))
	total := 0
	for source, n := range counts {
		sources = append(sources, source)
		total += n
	}
	slices.Sort(sources)

	for _, source := range sources {
		cmd.Printf("%-8s %d\n", source, counts[source])
	}
	cmd.Printf("%-8s %d\n", "total", total)
	return nil
}
