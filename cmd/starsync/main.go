// Command starsync collects starred GitHub repositories from several
// sources into one local store and lists them with filters.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/starsync/internal/adapters/driven/auth"
	"github.com/custodia-labs/starsync/internal/adapters/driven/config/file"
	"github.com/custodia-labs/starsync/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/starsync/internal/adapters/driving/cli"
	"github.com/custodia-labs/starsync/internal/connectors"
	"github.com/custodia-labs/starsync/internal/connectors/github"
	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/services"
	"github.com/custodia-labs/starsync/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine home directory: %v\n", err)
		return 1
	}
	paths := domain.ResolvePaths(home, os.Getenv)

	// Optional .env next to the config file; real environment variables win.
	if err := godotenv.Load(paths.EnvFile()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Ignoring %s: %v", paths.EnvFile(), err)
	}

	configStore, err := file.NewConfigStore(paths.ConfigFile())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	store := sqlite.NewStore(paths)
	defer store.Close()

	tokens := auth.NewDeferredTokenProvider(auth.NewFactory(os.Getenv), cli.TokenFlag)
	client := github.NewClient(tokens)

	settingsService := services.NewSettingsService(configStore)
	svcs := cli.Services{
		Sync:     services.NewSyncOrchestrator(store, connectors.NewFactory(client), settingsService),
		Query:    services.NewQueryService(store),
		Storage:  services.NewStorageService(store),
		Settings: settingsService,
		Version:  version,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, svcs); err != nil {
		return 1
	}
	return 0
}
