package cli

import (
	"context"
	"time"

	"github.com/forgeworks-labs/craftdex-cli/internal/core/domain"
	"github.com/forgeworks-labs/craftdex-cli/internal/core/ports/driving"
)

// mockCatalogSync implements driving.CatalogSync for command tests.
type mockCatalogSync struct {
	snapshot *domain.Snapshot
	status   domain.SyncStatus

	refreshErr error
	toggleErr  error
	clearErr   error

	refreshed bool
	cleared   bool
	toggled   []int
}

func (m *mockCatalogSync) Start(_ context.Context) error { return nil }

func (m *mockCatalogSync) Refresh(_ context.Context) (*domain.Snapshot, error) {
	m.refreshed = true
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	return m.snapshot, nil
}

func (m *mockCatalogSync) ToggleFavorite(_ context.Context, recipeID int) (bool, error) {
	if m.toggleErr != nil {
		return false, m.toggleErr
	}
	m.toggled = append(m.toggled, recipeID)
	return !m.snapshot.Favorites.Has(recipeID), nil
}

func (m *mockCatalogSync) IsFavorite(recipeID int) bool {
	return m.snapshot != nil && m.snapshot.Favorites.Has(recipeID)
}

func (m *mockCatalogSync) ClearCache(_ context.Context) error {
	m.cleared = true
	return m.clearErr
}

func (m *mockCatalogSync) Snapshot() *domain.Snapshot { return m.snapshot }

func (m *mockCatalogSync) Status() domain.SyncStatus { return m.status }

func (m *mockCatalogSync) Subscribe() (<-chan driving.SnapshotEvent, func()) {
	ch := make(chan driving.SnapshotEvent)
	return ch, func() { close(ch) }
}

func (m *mockCatalogSync) Close() error { return nil }

// testSnapshot builds a small snapshot shared across command tests.
func testSnapshot() *domain.Snapshot {
	recipes := []domain.Recipe{
		{ID: 1, Name: "Oak Table", Ingredients: []string{"plank", "plank"}, Quantity: 1, Category: "Furniture"},
		{ID: 2, Name: "Stone Axe", Ingredients: []string{"stone", "stick"}, Quantity: 1, Category: "Tools"},
		{ID: 3, Name: "Oak Chair", Ingredients: []string{"plank"}, Quantity: 2, Category: "Furniture"},
	}
	favorites := domain.NewFavoriteSet(2)
	return domain.NewSnapshot(recipes, favorites)
}

// setupCLITest swaps in a mock service and returns it with a cleanup.
func setupCLITest(mock *mockCatalogSync) func() {
	old := catalogSync
	catalogSync = mock
	return func() {
		catalogSync = old
	}
}

var testLastSync = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
