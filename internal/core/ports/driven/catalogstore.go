package driven

import (
	"context"

	"github.com/forgeworks-labs/craftdex-cli/internal/core/domain"
)

// CatalogStore persists the recipe catalog and favorite set on device.
// It is the single source of truth when the remote service is unreachable.
//
// Implementations must be crash-safe: a failed or interrupted Save must
// never leave a partially written catalog behind. The previously
// persisted version stays readable until the replacement fully commits.
type CatalogStore interface {
	// Load retrieves the last persisted catalog and favorite set.
	// Returns domain.ErrNotFound only on first-ever launch, when nothing
	// has been persisted yet. Transient I/O failures are reported as
	// domain.ErrStorage, never as ErrNotFound.
	Load(ctx context.Context) (*domain.StoredCatalog, error)

	// Save atomically replaces the persisted catalog and favorite set.
	Save(ctx context.Context, recipes []domain.Recipe, favorites domain.FavoriteSet) error

	// UpdateFavorites atomically replaces only the persisted favorite
	// set, leaving the catalog untouched.
	UpdateFavorites(ctx context.Context, favorites domain.FavoriteSet) error

	// Clear deletes all persisted state. A subsequent Load returns
	// domain.ErrNotFound.
	Clear(ctx context.Context) error

	// Close releases the underlying storage handle.
	Close() error
}
