package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import records from a JSON file",
	Long: `Imports a JSON array of repository objects as manual records.
Each object needs at least full_name, or owner and name. GitHub API
field names (stargazers_count, html_url, pushed_at, ...) are accepted.
Use "-" to read from standard input.

Invalid entries are reported and skipped; valid ones are merged into the
store by full name.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if storageService == nil {
		return errors.New("storage service not configured")
	}

	entries, err := readImportFile(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	report, err := storageService.Import(cmd.Context(), entries)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	st := newStyles(cmd.OutOrStdout())
	for _, p := range report.Problems {
		cmd.Println(st.warn.Render("  " + p))
	}
	cmd.Printf("Imported %d records, rejected %d.\n", report.Imported, report.Rejected)
	return nil
}

func readImportFile(stdin io.Reader, path string) ([]map[string]any, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var entries []map[string]any
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: import file must be a JSON array of objects: %w", domain.ErrInvalidInput, err)
	}
	return entries, nil
}
