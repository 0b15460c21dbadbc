package domain

import (
	"fmt"
	"strings"
)

// GridSlots is the number of cells in the crafting grid.
// A recipe uses at most this many ingredient slots.
const GridSlots = 9

// Recipe represents a single crafting recipe from the catalog.
// Recipes are immutable values: they are created by catalog ingestion,
// never mutated, and replaced wholesale on each successful sync.
type Recipe struct {
	// ID is the unique numeric identifier across the catalog.
	ID int

	// Name is the human-readable recipe name.
	Name string

	// Image references the recipe's artwork on the remote service.
	Image string

	// Ingredients is the ordered crafting grid, up to GridSlots entries.
	// An empty string marks an unused grid cell.
	Ingredients []string

	// Quantity is how many items one craft produces. Always positive.
	Quantity int

	// Category is the catalog category label. May be empty.
	Category string
}

// UsedIngredients returns the non-empty ingredient slots in grid order.
func (r Recipe) UsedIngredients() []string {
	var used []string
	for _, ing := range r.Ingredients {
		if strings.TrimSpace(ing) != "" {
			used = append(used, ing)
		}
	}
	return used
}

// Validate checks recipe field constraints.
func (r Recipe) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: recipe id must be positive, got %d", ErrInvalidInput, r.ID)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: recipe %d has empty name", ErrInvalidInput, r.ID)
	}
	if len(r.Ingredients) > GridSlots {
		return fmt.Errorf("%w: recipe %d has %d ingredient slots, max %d",
			ErrInvalidInput, r.ID, len(r.Ingredients), GridSlots)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("%w: recipe %d has non-positive quantity %d",
			ErrInvalidInput, r.ID, r.Quantity)
	}
	return nil
}
