package cli

import (
	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/craftdex-cli/internal/core/ports/driving"
	"github.com/forgeworks-labs/craftdex-cli/internal/logger"
)

// version is stamped by the build; "dev" for local builds.
var version = "dev"

// catalogSync is injected by the composition root before Execute runs.
// Commands check for nil so the package stays testable in isolation.
var catalogSync driving.CatalogSync

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "craftdex",
	Short: "Local-first crafting recipe catalog",
	Long: `Craftdex keeps a local cache of the remote crafting recipe catalog
and reconciles your favorites with the remote service. Reads are served
from the cache so the catalog stays usable offline.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose logging")
}

// SetServices injects the services the commands depend on.
func SetServices(sync driving.CatalogSync) {
	catalogSync = sync
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
