package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks-labs/craftdex-cli/internal/core/domain"
)

// TestCatalogStore_FirstRun tests the ErrNotFound contract.
func TestCatalogStore_FirstRun(t *testing.T) {
	store := NewCatalogStore()

	_, err := store.Load(context.Background())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// TestCatalogStore_RoundTrip tests save/load with isolation from the
// caller's slices and sets.
func TestCatalogStore_RoundTrip(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	recipes := []domain.Recipe{{ID: 1, Name: "Torch", Quantity: 4, Category: "Tools"}}
	favorites := domain.NewFavoriteSet(1)
	require.NoError(t, store.Save(ctx, recipes, favorites))

	// Mutations after Save must not leak into the store.
	recipes[0].Name = "Mutated"
	favorites.Add(99)

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Torch", stored.Recipes[0].Name)
	assert.Equal(t, []int{1}, stored.Favorites.IDs())
}

// TestCatalogStore_UpdateFavorites tests the favorites-only write path.
func TestCatalogStore_UpdateFavorites(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	recipes := []domain.Recipe{{ID: 1, Name: "Torch", Quantity: 4}}
	require.NoError(t, store.Save(ctx, recipes, domain.NewFavoriteSet()))
	require.NoError(t, store.UpdateFavorites(ctx, domain.NewFavoriteSet(1)))

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, stored.Recipes, 1)
	assert.Equal(t, []int{1}, stored.Favorites.IDs())
}

// TestCatalogStore_Clear tests that Clear returns the store to the
// first-run state.
func TestCatalogStore_Clear(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []domain.Recipe{{ID: 1, Name: "Torch", Quantity: 4}}, domain.NewFavoriteSet(1)))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Load(ctx)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
