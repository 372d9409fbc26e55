package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driving"
	"github.com/custodia-labs/starsync/internal/logger"
)

// version is set at build time via -ldflags or by Execute.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	tokenFlag string
)

// Service instances injected by Execute.
var (
	syncOrchestrator driving.SyncOrchestrator
	queryService     driving.QueryService
	storageService   driving.StorageService
	settingsService  driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "starsync",
	Short: "Collect and query your starred GitHub repositories",
	Long: `starsync gathers GitHub repositories you have starred or bookmarked
from GitHub, Firefox, Chrome and awesome lists into one local store,
then lists them with filters for archived, stale, forked or unwanted
languages.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress and debug output")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "GitHub token (overrides GITHUB_TOKEN, GH_TOKEN and gh CLI auth)")
}

// Services holds the driving ports the commands call.
type Services struct {
	Sync     driving.SyncOrchestrator
	Query    driving.QueryService
	Storage  driving.StorageService
	Settings driving.SettingsService

	// Version overrides the build version when non-empty.
	Version string
}

// Execute wires the services and runs the root command. Errors are
// printed with a remediation hint where one applies.
func Execute(ctx context.Context, services Services) error {
	syncOrchestrator = services.Sync
	queryService = services.Query
	storageService = services.Storage
	settingsService = services.Settings
	if services.Version != "" {
		version = services.Version
	}

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// TokenFlag returns the --token value once flags are parsed.
func TokenFlag() string {
	return tokenFlag
}

func printError(w io.Writer, err error) {
	st := newStyles(w)
	fmt.Fprintln(w, st.err.Render("Error:"), err)
	if hint := domain.Hint(err); hint != "" {
		fmt.Fprintln(w, st.muted.Render("Hint: "+hint))
	}
}
