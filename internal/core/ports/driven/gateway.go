package driven

import (
	"context"

	"github.com/forgeworks-labs/craftdex-cli/internal/core/domain"
)

// CatalogGateway is the client abstraction over the remote recipe
// catalog service and the remote favorites service. Network calls may
// fail or be slow; every method honours context cancellation and maps
// failures onto domain.ErrNetwork (transient) or domain.ErrRemote
// (request rejected).
type CatalogGateway interface {
	// FetchCatalog retrieves the full current catalog. There is no
	// incremental fetch: the catalog is small enough that full replace
	// avoids merge complexity.
	FetchCatalog(ctx context.Context) ([]domain.Recipe, error)

	// FetchFavoriteIDs retrieves the favorite recipe IDs the remote
	// service currently knows for the authenticated user.
	FetchFavoriteIDs(ctx context.Context) ([]int, error)

	// PushFavorite informs the remote service of a single favorite
	// toggle. Implementations retry transient failures with bounded
	// exponential backoff; a permanent failure comes back as
	// domain.ErrRemote and is non-fatal to the caller, which never
	// rolls back the local change. Pushing the same final state twice
	// is harmless.
	PushFavorite(ctx context.Context, recipeID int, favorite bool) error
}
