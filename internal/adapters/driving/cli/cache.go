package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local catalog cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cached catalog and refetch it",
	Long: `Deletes the locally cached catalog and favorites, then repopulates
the cache from the remote service. If the refetch fails, the previously
cached catalog stays available.`,
	RunE: runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	if catalogSync == nil {
		return errors.New("catalog sync service not configured")
	}

	cmd.Println("Clearing cache...")

	if err := catalogSync.ClearCache(context.Background()); err != nil {
		return fmt.Errorf("cache clear failed: %w", err)
	}

	snap := catalogSync.Snapshot()
	if snap != nil {
		cmd.Printf("Cache rebuilt: %d recipes.\n", len(snap.Recipes))
	} else {
		cmd.Println("Cache cleared.")
	}
	return nil
}
