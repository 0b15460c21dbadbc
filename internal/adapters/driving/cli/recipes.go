package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forgeworks-labs/craftdex-cli/internal/core/domain"
)

var (
	recipesCategory  string
	recipesFavorites bool
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List cached recipes",
	Long: `Lists recipes from the local cache without contacting the remote
service. Run 'craftdex sync' first to populate the cache.`,
	RunE: runRecipes,
}

var recipesShowCmd = &cobra.Command{
	Use:   "show [recipe-id]",
	Short: "Show recipe details",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipesShow,
}

func init() {
	recipesCmd.Flags().StringVar(&recipesCategory, "category", "",
		"only recipes in this category")
	recipesCmd.Flags().BoolVar(&recipesFavorites, "favorites", false,
		"only favorited recipes")
	recipesCmd.AddCommand(recipesShowCmd)
	rootCmd.AddCommand(recipesCmd)
}

// currentSnapshot loads the published snapshot or reports that the
// cache is empty.
func currentSnapshot() (*domain.Snapshot, error) {
	if catalogSync == nil {
		return nil, errors.New("catalog sync service not configured")
	}
	snap := catalogSync.Snapshot()
	if snap == nil {
		return nil, errors.New("no cached catalog; run 'craftdex sync' first")
	}
	return snap, nil
}

func runRecipes(cmd *cobra.Command, _ []string) error {
	snap, err := currentSnapshot()
	if err != nil {
		return err
	}

	recipes := snap.Recipes
	switch {
	case recipesFavorites:
		recipes = snap.FavoriteRecipes()
	case recipesCategory != "":
		recipes = snap.ByCategory(recipesCategory)
	}

	if len(recipes) == 0 {
		cmd.Println("No recipes found.")
		return nil
	}

	for _, r := range recipes {
		marker := " "
		if snap.Favorites.Has(r.ID) {
			marker = "*"
		}
		cmd.Printf("%s %4d  %-30s %s\n", marker, r.ID, r.Name, r.Category)
	}
	cmd.Printf("\n%d recipes.\n", len(recipes))
	return nil
}

func runRecipesShow(cmd *cobra.Command, args []string) error {
	snap, err := currentSnapshot()
	if err != nil {
		return err
	}

	id, err := parseRecipeID(args[0])
	if err != nil {
		return err
	}

	recipe, ok := snap.Recipe(id)
	if !ok {
		return fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}

	cmd.Printf("ID:          %d\n", recipe.ID)
	cmd.Printf("Name:        %s\n", recipe.Name)
	cmd.Printf("Category:    %s\n", recipe.Category)
	cmd.Printf("Quantity:    %d\n", recipe.Quantity)
	cmd.Printf("Ingredients: %s\n", strings.Join(recipe.UsedIngredients(), ", "))
	cmd.Printf("Favorite:    %v\n", snap.Favorites.Has(recipe.ID))
	if recipe.Image != "" {
		cmd.Printf("Image:       %s\n", recipe.Image)
	}
	return nil
}

func parseRecipeID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: recipe id %q is not a number", domain.ErrInvalidInput, arg)
	}
	return id, nil
}
