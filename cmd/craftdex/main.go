package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/forgeworks-labs/craftdex-cli/internal/adapters/driven/config/file"
	"github.com/forgeworks-labs/craftdex-cli/internal/adapters/driven/remote/httpapi"
	"github.com/forgeworks-labs/craftdex-cli/internal/adapters/driven/storage/sqlite"
	"github.com/forgeworks-labs/craftdex-cli/internal/adapters/driving/cli"
	"github.com/forgeworks-labs/craftdex-cli/internal/core/services"
	"github.com/forgeworks-labs/craftdex-cli/internal/logger"
)

// defaultRemoteURL is used until the user configures remote.url.
const defaultRemoteURL = "https://api.craftdex.dev"

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

func run() error {
	configStore, err := file.NewConfigStore(os.Getenv("CRAFTDEX_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	clientID, err := configStore.EnsureClientID()
	if err != nil {
		return fmt.Errorf("establishing client identity: %w", err)
	}

	store, err := sqlite.NewStore(configStore.GetString(file.KeyDataDir))
	if err != nil {
		return fmt.Errorf("opening catalog store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warn("closing catalog store: %v", closeErr)
		}
	}()

	remoteURL := configStore.GetString(file.KeyRemoteURL)
	if remoteURL == "" {
		remoteURL = defaultRemoteURL
	}

	gatewayCfg := httpapi.Config{
		BaseURL:  remoteURL,
		Token:    configStore.GetString(file.KeyRemoteToken),
		ClientID: clientID,
	}
	if secs := configStore.GetInt(file.KeyRemoteTimeoutSecs); secs > 0 {
		gatewayCfg.Timeout = time.Duration(secs) * time.Second
	}

	gateway, err := httpapi.NewGateway(gatewayCfg)
	if err != nil {
		return fmt.Errorf("configuring remote gateway: %w", err)
	}

	engine := services.NewSyncEngine(store, gateway, services.NewSnapshotCache())
	defer func() {
		if closeErr := engine.Close(); closeErr != nil {
			logger.Warn("closing sync engine: %v", closeErr)
		}
	}()

	if err := engine.Start(context.Background()); err != nil {
		// A cold start with no remote reachable still leaves the CLI
		// usable for configuration, so report and continue.
		logger.Warn("initial catalog load: %v", err)
	}

	cli.SetVersion(getVersion())
	cli.SetServices(engine)
	return cli.Execute()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
