package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure sources, filter defaults and sync behaviour.

Settings are stored in config.toml under the config directory.
Use "settings keys" to list the supported keys.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Long: `Set one setting. Lists are comma separated, durations use Go syntax
(e.g. 2s, 500ms), and booleans accept true/false.

Examples:
  starsync settings set github.user octocat
  starsync settings set firefox.path ~/bookmarks.html
  starsync settings set awesome.lists sindresorhus/awesome,./my-list.md
  starsync settings set filter.exclude_languages "Java,Objective-*"`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List supported setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runSettingsPath,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := cmd.OutOrStdout()
	st := newStyles(out)
	cmd.Println(st.title.Render("Current Settings"))
	cmd.Println()

	section(out, "GitHub",
		"User", orDefault(settings.GitHub.User, "(authenticated user)"),
		"Per page", fmt.Sprint(settings.GitHub.PerPage))
	section(out, "Firefox",
		"Path", orDefault(settings.Firefox.Path, "(not set)"),
		"Folder", orDefault(settings.Firefox.Folder, "(all)"))
	section(out, "Chrome",
		"Path", orDefault(settings.Chrome.Path, "(not set)"),
		"Folder", orDefault(settings.Chrome.Folder, "(all)"))
	section(out, "Awesome",
		"Lists", orDefault(strings.Join(settings.Awesome.Lists, ", "), "(none)"),
		"Enrich", fmt.Sprint(settings.Awesome.Enrich),
		"Batch size", fmt.Sprint(settings.Awesome.BatchSize),
		"Batch delay", settings.Awesome.BatchDelay.String())
	section(out, "Filter",
		"Exclude archived", fmt.Sprint(settings.Filter.ExcludeArchived),
		"Exclude stale", fmt.Sprintf("%t (%d days)", settings.Filter.ExcludeStale, settings.Filter.StaleDays),
		"Exclude forks", fmt.Sprint(settings.Filter.ExcludeForks),
		"Exclude languages", fmt.Sprintf("%t (%s)", settings.Filter.ExcludeLanguages, strings.Join(settings.Filter.Languages, ", ")))
	section(out, "Sync",
		"Backup threshold", fmt.Sprint(settings.Sync.BackupThreshold),
		"Order", joinSources(settings.Sync.Order))

	cmd.Println(st.muted.Render("Config file: " + settingsService.Path()))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	cmd.Println(settingsService.Path())
	return nil
}

// section prints a titled block of label/value pairs.
func section(w io.Writer, title string, pairs ...string) {
	st := newStyles(w)
	fmt.Fprintln(w, st.header.UnsetPadding().Render("["+title+"]"))
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(w, "  %s: %s\n", pairs[i], pairs[i+1])
	}
	fmt.Fprintln(w)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func joinSources(sources []domain.SourceType) string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
