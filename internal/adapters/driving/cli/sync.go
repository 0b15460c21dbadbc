package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the catalog from the remote service",
	Long: `Fetches the recipe catalog and favorites from the remote service,
reconciles them with local state and updates the cache. If a refresh is
already in flight, the command joins it instead of starting another.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if catalogSync == nil {
		return errors.New("catalog sync service not configured")
	}

	cmd.Println("Refreshing catalog...")

	snap, err := catalogSync.Refresh(context.Background())
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	cmd.Printf("Catalog refreshed: %d recipes, %d categories, %d favorites.\n",
		len(snap.Recipes), len(snap.Categories), snap.Favorites.Len())
	return nil
}
