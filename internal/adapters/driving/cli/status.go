package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/craftdex-cli/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if catalogSync == nil {
		return errors.New("catalog sync service not configured")
	}

	status := catalogSync.Status()
	cmd.Printf("State:      %s\n", status.State)
	if status.State == domain.SyncFailed && status.Err != nil {
		cmd.Printf("Error:      %v\n", status.Err)
	}
	if !status.LastSync.IsZero() {
		cmd.Printf("Last sync:  %s\n", status.LastSync.Format("2006-01-02 15:04:05"))
	} else {
		cmd.Println("Last sync:  never")
	}

	if snap := catalogSync.Snapshot(); snap != nil {
		cmd.Printf("Recipes:    %d\n", len(snap.Recipes))
		cmd.Printf("Favorites:  %d\n", snap.Favorites.Len())
	} else {
		cmd.Println("Recipes:    no cached catalog")
	}
	return nil
}
