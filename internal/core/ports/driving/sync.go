package driving

import (
	"context"

	"github.com/forgeworks-labs/craftdex-cli/internal/core/domain"
)

// CatalogSync coordinates the local catalog cache with the remote
// services and publishes the consistent view consumers read.
//
// Snapshot and Status never block on network or disk I/O. The five
// operations Snapshot, Status, ToggleFavorite, Refresh and ClearCache
// are the entire contract a presentation layer needs.
type CatalogSync interface {
	// Start performs the initial load: a previously persisted catalog
	// is published immediately as a provisional snapshot and
	// reconciled with the remote in the background; on first launch
	// Start blocks until the first refresh completes.
	Start(ctx context.Context) error

	// Refresh triggers a catalog and favorites sync and returns the
	// newly published snapshot. Concurrent callers coalesce onto the
	// in-flight operation: at most one remote fetch is outstanding at
	// any time. On failure the previously published snapshot stays
	// intact and Status reports the error.
	Refresh(ctx context.Context) (*domain.Snapshot, error)

	// ToggleFavorite flips the favorite state of a recipe, local-first:
	// the change is persisted and visible in Snapshot before any
	// network round-trip completes. Returns the new favorite state.
	// Unknown recipe IDs return domain.ErrInvalidInput.
	ToggleFavorite(ctx context.Context, recipeID int) (bool, error)

	// IsFavorite reports whether the recipe is favorited in the
	// current snapshot.
	IsFavorite(recipeID int) bool

	// ClearCache deletes the persisted catalog and repopulates it from
	// the remote. It waits for any in-flight refresh to settle first so
	// a fetch never races the wipe. If the repopulating refresh fails,
	// the previously published snapshot remains visible and the
	// failure is returned.
	ClearCache(ctx context.Context) error

	// Snapshot returns the current published snapshot without
	// blocking. Nil until the first publish.
	Snapshot() *domain.Snapshot

	// Status returns the current sync pipeline status without blocking.
	Status() domain.SyncStatus

	// Subscribe registers an observer for snapshot and status changes.
	// The returned cancel function unregisters it.
	Subscribe() (<-chan SnapshotEvent, func())

	// Close flushes pending favorite pushes and releases resources.
	Close() error
}

// SnapshotEvent notifies subscribers of a published change.
type SnapshotEvent struct {
	// Snapshot is the snapshot current at publish time. May be nil for
	// pure status transitions before the first publish.
	Snapshot *domain.Snapshot

	// Status is the sync status at publish time.
	Status domain.SyncStatus
}
