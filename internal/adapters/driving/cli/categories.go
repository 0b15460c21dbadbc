package cli

import (
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List catalog categories",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	snap, err := currentSnapshot()
	if err != nil {
		return err
	}

	if len(snap.Categories) == 0 {
		cmd.Println("No categories found.")
		return nil
	}

	for _, c := range snap.Categories {
		cmd.Printf("%-24s %d recipes\n", c, len(snap.ByCategory(c)))
	}
	return nil
}
