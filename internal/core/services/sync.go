package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/forgeworks-labs/craftdex-cli/internal/core/domain"
	"github.com/forgeworks-labs/craftdex-cli/internal/core/ports/driven"
	"github.com/forgeworks-labs/craftdex-cli/internal/core/ports/driving"
	"github.com/forgeworks-labs/craftdex-cli/internal/logger"
)

// Ensure SyncEngine implements the interface.
var _ driving.CatalogSync = (*SyncEngine)(nil)

// refreshKey is the singleflight key for the refresh pipeline. There is
// only one catalog, so every caller shares it.
const refreshKey = "refresh"

// defaultPushTimeout bounds a single background favorite push,
// including the gateway's internal retries.
const defaultPushTimeout = 30 * time.Second

// SyncEngine reconciles the local catalog cache with the remote catalog
// and favorites services. It is the only component that mutates the
// published snapshot.
//
// Writes go through a single-writer mutex; reads go through the
// SnapshotCache and never block. Concurrent Refresh calls coalesce onto
// one in-flight remote fetch via singleflight.
type SyncEngine struct {
	store   driven.CatalogStore
	gateway driven.CatalogGateway
	cache   *SnapshotCache

	group singleflight.Group

	// pipelineMu serializes the refresh pipeline against ClearCache so
	// a fetched catalog is never persisted into a store that is being
	// wiped underneath it.
	pipelineMu sync.Mutex

	// mu is the single-writer guard over favorites, pending and every
	// snapshot publication.
	mu        sync.Mutex
	favorites domain.FavoriteSet

	// pending maps recipe IDs toggled locally to their desired remote
	// state until the corresponding push is confirmed. A refresh merge
	// applies pending on top of the remote favorite set, so a toggle is
	// never lost to a concurrently fetched stale remote view.
	pending map[int]bool

	pushTimeout time.Duration
	pushes      sync.WaitGroup
}

// NewSyncEngine creates a sync engine over the given store and gateway,
// publishing through cache.
func NewSyncEngine(store driven.CatalogStore, gateway driven.CatalogGateway, cache *SnapshotCache) *SyncEngine {
	return &SyncEngine{
		store:       store,
		gateway:     gateway,
		cache:       cache,
		favorites:   domain.NewFavoriteSet(),
		pending:     make(map[int]bool),
		pushTimeout: defaultPushTimeout,
	}
}

// Start performs the initial load. A previously persisted catalog is
// published immediately as a provisional snapshot (fast, offline-capable
// startup) and reconciled with the remote in the background. On first
// launch, Start blocks until the first refresh completes.
func (e *SyncEngine) Start(ctx context.Context) error {
	stored, err := e.store.Load(ctx)
	switch {
	case err == nil:
		e.mu.Lock()
		e.favorites = stored.Favorites.Clone()
		snap := domain.NewSnapshot(stored.Recipes, e.favorites)
		e.cache.Publish(snap, domain.SyncStatus{State: domain.SyncIdle, LastSync: stored.SavedAt})
		e.mu.Unlock()

		logger.Info("Published provisional snapshot: %d recipes, %d favorites",
			len(snap.Recipes), snap.Favorites.Len())

		go func() {
			if _, err := e.Refresh(context.Background()); err != nil {
				logger.Warn("Background refresh after startup failed: %v", err)
			}
		}()
		return nil

	case errors.Is(err, domain.ErrNotFound):
		logger.Info("No persisted catalog, blocking on first refresh")
		_, err := e.Refresh(ctx)
		return err

	default:
		return fmt.Errorf("loading persisted catalog: %w", err)
	}
}

// Refresh triggers a catalog and favorites sync. Concurrent callers
// attach to the in-flight operation rather than starting a second one,
// so at most one remote fetch is outstanding at any time.
func (e *SyncEngine) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	v, err, shared := e.group.Do(refreshKey, func() (any, error) {
		return e.refresh(ctx)
	})
	if shared {
		logger.Debug("Refresh coalesced onto in-flight sync")
	}
	if err != nil {
		return nil, err
	}
	return v.(*domain.Snapshot), nil
}

// refresh runs the actual pipeline. Only one execution is in flight at
// a time (singleflight), and pipelineMu keeps ClearCache out of the
// persist step.
func (e *SyncEngine) refresh(ctx context.Context) (*domain.Snapshot, error) {
	e.pipelineMu.Lock()
	defer e.pipelineMu.Unlock()

	e.cache.SetStatus(domain.SyncStatus{State: domain.SyncRunning, LastSync: e.cache.Status().LastSync})

	var (
		recipes   []domain.Recipe
		remoteIDs []int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipes, err = e.gateway.FetchCatalog(gctx)
		if err != nil {
			return fmt.Errorf("fetching catalog: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		remoteIDs, err = e.gateway.FetchFavoriteIDs(gctx)
		if err != nil {
			return fmt.Errorf("fetching favorite ids: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		// The previous snapshot stays fully intact and visible.
		e.failRefresh(err)
		return nil, err
	}

	recipes = dropInvalid(recipes)
	catalogIDs := make(map[int]struct{}, len(recipes))
	for _, r := range recipes {
		catalogIDs[r.ID] = struct{}{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Merge: remote favorites, overlaid with locally pending toggles
	// whose pushes have not been confirmed, pruned to the new catalog.
	merged := domain.NewFavoriteSet(remoteIDs...)
	for id, favorite := range e.pending {
		if favorite {
			merged.Add(id)
		} else {
			merged.Remove(id)
		}
	}
	if dropped := merged.Prune(catalogIDs); dropped > 0 {
		logger.Debug("Pruned %d stale favorite(s) no longer in catalog", dropped)
	}

	if err := e.store.Save(ctx, recipes, merged); err != nil {
		err = fmt.Errorf("persisting catalog: %w", err)
		e.failRefresh(err)
		return nil, err
	}

	e.favorites = merged
	snap := domain.NewSnapshot(recipes, merged)
	e.cache.Publish(snap, domain.SyncStatus{State: domain.SyncIdle, LastSync: snap.BuiltAt})

	logger.Info("Refresh complete: %d recipes, %d categories, %d favorites",
		len(snap.Recipes), len(snap.Categories), snap.Favorites.Len())
	return snap, nil
}

// failRefresh records a failed refresh without touching the snapshot.
func (e *SyncEngine) failRefresh(err error) {
	logger.Warn("Refresh failed: %v", err)
	e.cache.SetStatus(domain.SyncStatus{
		State:    domain.SyncFailed,
		Err:      err,
		LastSync: e.cache.Status().LastSync,
	})
}

// ToggleFavorite flips the favorite state of a recipe, local-first: the
// in-memory set, the local store and the published snapshot all update
// before any network round-trip, then the change is pushed to the
// remote in the background. The user sees the toggle with no
// perceptible latency regardless of network conditions.
func (e *SyncEngine) ToggleFavorite(ctx context.Context, recipeID int) (bool, error) {
	snap := e.cache.Snapshot()
	if snap == nil {
		return false, fmt.Errorf("%w: no catalog loaded yet", domain.ErrInvalidInput)
	}
	if _, ok := snap.Recipe(recipeID); !ok {
		return false, fmt.Errorf("%w: unknown recipe id %d", domain.ErrInvalidInput, recipeID)
	}

	e.mu.Lock()
	favorite := !e.favorites.Has(recipeID)
	if favorite {
		e.favorites.Add(recipeID)
	} else {
		e.favorites.Remove(recipeID)
	}

	if err := e.store.UpdateFavorites(ctx, e.favorites); err != nil {
		// Roll the in-memory toggle back; the prior snapshot stays
		// authoritative.
		if favorite {
			e.favorites.Remove(recipeID)
		} else {
			e.favorites.Add(recipeID)
		}
		e.mu.Unlock()
		return !favorite, fmt.Errorf("persisting favorites: %w", err)
	}

	e.pending[recipeID] = favorite
	current := e.cache.Snapshot()
	e.cache.Publish(domain.NewSnapshot(current.Recipes, e.favorites), e.cache.Status())
	e.mu.Unlock()

	e.pushes.Add(1)
	go e.pushFavorite(recipeID, favorite)

	return favorite, nil
}

// pushFavorite delivers one toggle to the remote favorites service.
// Pushes for different recipes run independently and unordered; each is
// idempotent on the remote side. A failed push stays pending so the
// next refresh merge preserves the local state.
func (e *SyncEngine) pushFavorite(recipeID int, favorite bool) {
	defer e.pushes.Done()

	ctx, cancel := context.WithTimeout(context.Background(), e.pushTimeout)
	defer cancel()

	if err := e.gateway.PushFavorite(ctx, recipeID, favorite); err != nil {
		logger.Warn("Favorite push for recipe %d failed, kept pending: %v", recipeID, err)
		return
	}

	e.mu.Lock()
	// Only confirm if no newer toggle superseded this push.
	if state, ok := e.pending[recipeID]; ok && state == favorite {
		delete(e.pending, recipeID)
	}
	e.mu.Unlock()
}

// IsFavorite reports whether the recipe is favorited in the current
// snapshot.
func (e *SyncEngine) IsFavorite(recipeID int) bool {
	snap := e.cache.Snapshot()
	return snap != nil && snap.Favorites.Has(recipeID)
}

// ClearCache wipes the persisted catalog and repopulates it from the
// remote. An in-flight refresh is not cancelled: ClearCache waits for
// it to settle before clearing, so a fetch never races the wipe. If the
// repopulating refresh fails, the previously published snapshot remains
// visible and the failure is reported.
func (e *SyncEngine) ClearCache(ctx context.Context) error {
	e.pipelineMu.Lock()
	err := e.store.Clear(ctx)
	e.pipelineMu.Unlock()
	if err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	logger.Info("Local cache cleared, repopulating from remote")

	if _, err := e.Refresh(ctx); err != nil {
		return fmt.Errorf("repopulating after clear: %w", err)
	}
	return nil
}

// Snapshot returns the current published snapshot without blocking.
func (e *SyncEngine) Snapshot() *domain.Snapshot {
	return e.cache.Snapshot()
}

// Status returns the current sync status without blocking.
func (e *SyncEngine) Status() domain.SyncStatus {
	return e.cache.Status()
}

// Subscribe registers an observer for snapshot and status changes.
func (e *SyncEngine) Subscribe() (<-chan driving.SnapshotEvent, func()) {
	return e.cache.Subscribe()
}

// Close waits for outstanding favorite pushes to finish.
func (e *SyncEngine) Close() error {
	e.pushes.Wait()
	return nil
}

// dropInvalid filters out recipes that fail validation, logging each.
// A malformed record from the remote must not poison the whole catalog.
func dropInvalid(recipes []domain.Recipe) []domain.Recipe {
	valid := recipes[:0]
	for _, r := range recipes {
		if err := r.Validate(); err != nil {
			logger.Warn("Dropping invalid catalog record: %v", err)
			continue
		}
		valid = append(valid, r)
	}
	return valid
}
