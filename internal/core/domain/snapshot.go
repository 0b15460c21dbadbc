package domain

import (
	"sort"
	"time"
)

// Snapshot is the atomic, immutable view published to consumers.
// A new Snapshot fully replaces the prior one; readers never observe
// a partially updated catalog or favorite set. Do not mutate a
// Snapshot after publication.
type Snapshot struct {
	// Recipes is the full catalog in catalog order.
	Recipes []Recipe

	// Categories holds the distinct non-empty category labels
	// present in Recipes, sorted.
	Categories []string

	// Favorites is the user's favorite set, pruned to catalog IDs.
	Favorites FavoriteSet

	// BuiltAt records when the snapshot was assembled.
	BuiltAt time.Time
}

// NewSnapshot builds a snapshot from a catalog and a favorite set.
// It derives the category index and prunes favorites against the
// catalog's ID set, so every snapshot satisfies the invariant that
// each favorite ID corresponds to a catalog recipe.
func NewSnapshot(recipes []Recipe, favorites FavoriteSet) *Snapshot {
	ids := make(map[int]struct{}, len(recipes))
	seen := make(map[string]struct{})
	var categories []string
	for _, r := range recipes {
		ids[r.ID] = struct{}{}
		if r.Category == "" {
			continue
		}
		if _, ok := seen[r.Category]; !ok {
			seen[r.Category] = struct{}{}
			categories = append(categories, r.Category)
		}
	}
	sort.Strings(categories)

	pruned := favorites.Clone()
	pruned.Prune(ids)

	return &Snapshot{
		Recipes:    recipes,
		Categories: categories,
		Favorites:  pruned,
		BuiltAt:    time.Now().UTC(),
	}
}

// Recipe returns the catalog recipe with the given ID.
func (s *Snapshot) Recipe(id int) (Recipe, bool) {
	for _, r := range s.Recipes {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}

// ByCategory returns the recipes carrying the given category label,
// in catalog order.
func (s *Snapshot) ByCategory(category string) []Recipe {
	var out []Recipe
	for _, r := range s.Recipes {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// FavoriteRecipes returns the favorited recipes in catalog order.
func (s *Snapshot) FavoriteRecipes() []Recipe {
	var out []Recipe
	for _, r := range s.Recipes {
		if s.Favorites.Has(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// StoredCatalog is what the local store persists between runs:
// the last synced catalog plus the durable favorite set.
type StoredCatalog struct {
	Recipes   []Recipe
	Favorites FavoriteSet
	SavedAt   time.Time
}
