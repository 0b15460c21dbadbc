// Package domain defines the core business entities for Craftdex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Recipe: An immutable crafting recipe from the catalog
//   - FavoriteSet: The user's favorite recipe IDs
//   - Snapshot: The atomic published view of catalog + favorites
//   - SyncStatus: The state of the background sync pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
