// Package memory provides in-memory implementations of the storage
// driven ports, used in tests and as a reference for adapter semantics.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/forgeworks-labs/craftdex-cli/internal/core/domain"
	"github.com/forgeworks-labs/craftdex-cli/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
// It mirrors the SQLite adapter's semantics, including the first-run
// ErrNotFound contract and all-or-nothing replacement.
type CatalogStore struct {
	mu     sync.RWMutex
	stored *domain.StoredCatalog
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{}
}

// Load retrieves the last saved catalog and favorite set.
func (s *CatalogStore) Load(_ context.Context) (*domain.StoredCatalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stored == nil {
		return nil, domain.ErrNotFound
	}
	return &domain.StoredCatalog{
		Recipes:   append([]domain.Recipe(nil), s.stored.Recipes...),
		Favorites: s.stored.Favorites.Clone(),
		SavedAt:   s.stored.SavedAt,
	}, nil
}

// Save replaces the stored catalog and favorite set.
func (s *CatalogStore) Save(_ context.Context, recipes []domain.Recipe, favorites domain.FavoriteSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored = &domain.StoredCatalog{
		Recipes:   append([]domain.Recipe(nil), recipes...),
		Favorites: favorites.Clone(),
		SavedAt:   time.Now().UTC(),
	}
	return nil
}

// UpdateFavorites replaces only the favorite set.
func (s *CatalogStore) UpdateFavorites(_ context.Context, favorites domain.FavoriteSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stored == nil {
		s.stored = &domain.StoredCatalog{SavedAt: time.Now().UTC()}
	}
	s.stored.Favorites = favorites.Clone()
	return nil
}

// Clear deletes all stored state.
func (s *CatalogStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored = nil
	return nil
}

// Close releases nothing; it exists to satisfy the port.
func (s *CatalogStore) Close() error {
	return nil
}
