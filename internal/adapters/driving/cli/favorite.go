package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite [recipe-id]",
	Short: "Mark a recipe as a favorite",
	Long: `Marks a recipe as a favorite. The change is saved locally right away
and pushed to the remote service in the background.`,
	Args: cobra.ExactArgs(1),
	RunE: runFavorite,
}

var unfavoriteCmd = &cobra.Command{
	Use:   "unfavorite [recipe-id]",
	Short: "Remove a recipe from favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnfavorite,
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(unfavoriteCmd)
}

func runFavorite(cmd *cobra.Command, args []string) error {
	return setFavorite(cmd, args[0], true)
}

func runUnfavorite(cmd *cobra.Command, args []string) error {
	return setFavorite(cmd, args[0], false)
}

// setFavorite drives the toggle toward the desired state, skipping the
// toggle when the recipe is already there.
func setFavorite(cmd *cobra.Command, arg string, want bool) error {
	if catalogSync == nil {
		return errors.New("catalog sync service not configured")
	}

	id, err := parseRecipeID(arg)
	if err != nil {
		return err
	}

	if catalogSync.IsFavorite(id) == want {
		if want {
			cmd.Printf("Recipe %d is already a favorite.\n", id)
		} else {
			cmd.Printf("Recipe %d is not a favorite.\n", id)
		}
		return nil
	}

	now, err := catalogSync.ToggleFavorite(context.Background(), id)
	if err != nil {
		return fmt.Errorf("updating favorite: %w", err)
	}

	if now {
		cmd.Printf("Recipe %d added to favorites.\n", id)
	} else {
		cmd.Printf("Recipe %d removed from favorites.\n", id)
	}
	return nil
}
