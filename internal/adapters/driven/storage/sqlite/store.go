package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/forgeworks-labs/craftdex-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/forgeworks-labs/craftdex-cli/internal/core/domain"
	"github.com/forgeworks-labs/craftdex-cli/internal/core/ports/driven"
)

// metaKeySavedAt marks that a catalog has been persisted at least once.
// Its absence distinguishes a first-ever launch from an empty catalog.
const metaKeySavedAt = "saved_at"

// Ensure Store implements the interface.
var _ driven.CatalogStore = (*Store)(nil)

// Store is the SQLite-backed catalog store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.craftdex/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".craftdex", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Load retrieves the last persisted catalog and favorite set.
// Returns domain.ErrNotFound only when nothing has ever been saved.
func (s *Store) Load(ctx context.Context) (*domain.StoredCatalog, error) {
	var savedAtRaw string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM catalog_meta WHERE key = ?", metaKeySavedAt).Scan(&savedAtRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading catalog metadata: %w", domain.ErrStorage, err)
	}

	savedAt, err := time.Parse(time.RFC3339Nano, savedAtRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing saved_at %q: %w", domain.ErrStorage, savedAtRaw, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, image, ingredients, quantity, category
		FROM recipes ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying recipes: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	var recipes []domain.Recipe
	for rows.Next() {
		var r domain.Recipe
		var ingredientsJSON string
		if err := rows.Scan(&r.ID, &r.Name, &r.Image, &ingredientsJSON, &r.Quantity, &r.Category); err != nil {
			return nil, fmt.Errorf("%w: scanning recipe: %w", domain.ErrStorage, err)
		}
		if err := json.Unmarshal([]byte(ingredientsJSON), &r.Ingredients); err != nil {
			return nil, fmt.Errorf("%w: unmarshaling ingredients for recipe %d: %w", domain.ErrStorage, r.ID, err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating recipes: %w", domain.ErrStorage, err)
	}

	favorites, err := s.loadFavorites(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.StoredCatalog{
		Recipes:   recipes,
		Favorites: favorites,
		SavedAt:   savedAt,
	}, nil
}

// Save atomically replaces the persisted catalog and favorite set.
// The replacement happens inside one transaction: on any failure the
// previously persisted version remains intact.
func (s *Store) Save(ctx context.Context, recipes []domain.Recipe, favorites domain.FavoriteSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", domain.ErrStorage, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM recipes"); err != nil {
		return fmt.Errorf("%w: clearing recipes: %w", domain.ErrStorage, err)
	}
	for i, r := range recipes {
		ingredientsJSON, err := json.Marshal(r.Ingredients)
		if err != nil {
			return fmt.Errorf("%w: marshaling ingredients for recipe %d: %w", domain.ErrStorage, r.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recipes (id, name, image, ingredients, quantity, category, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, r.ID, r.Name, r.Image, string(ingredientsJSON), r.Quantity, r.Category, i); err != nil {
			return fmt.Errorf("%w: inserting recipe %d: %w", domain.ErrStorage, r.ID, err)
		}
	}

	if err := replaceFavorites(ctx, tx, favorites); err != nil {
		return err
	}

	savedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO catalog_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, metaKeySavedAt, savedAt); err != nil {
		return fmt.Errorf("%w: recording save time: %w", domain.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing catalog: %w", domain.ErrStorage, err)
	}
	return nil
}

// UpdateFavorites atomically replaces only the favorite set.
func (s *Store) UpdateFavorites(ctx context.Context, favorites domain.FavoriteSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", domain.ErrStorage, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := replaceFavorites(ctx, tx, favorites); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing favorites: %w", domain.ErrStorage, err)
	}
	return nil
}

// Clear deletes all persisted state.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", domain.ErrStorage, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, table := range []string{"favorites", "recipes", "catalog_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("%w: clearing %s: %w", domain.ErrStorage, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing clear: %w", domain.ErrStorage, err)
	}
	return nil
}

// loadFavorites reads the favorite set.
func (s *Store) loadFavorites(ctx context.Context) (domain.FavoriteSet, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT recipe_id FROM favorites")
	if err != nil {
		return domain.FavoriteSet{}, fmt.Errorf("%w: querying favorites: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	favorites := domain.NewFavoriteSet()
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return domain.FavoriteSet{}, fmt.Errorf("%w: scanning favorite: %w", domain.ErrStorage, err)
		}
		favorites.Add(id)
	}
	if err := rows.Err(); err != nil {
		return domain.FavoriteSet{}, fmt.Errorf("%w: iterating favorites: %w", domain.ErrStorage, err)
	}
	return favorites, nil
}

// replaceFavorites swaps the favorites table contents within tx.
func replaceFavorites(ctx context.Context, tx *sql.Tx, favorites domain.FavoriteSet) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM favorites"); err != nil {
		return fmt.Errorf("%w: clearing favorites: %w", domain.ErrStorage, err)
	}
	for _, id := range favorites.IDs() {
		if _, err := tx.ExecContext(ctx, "INSERT INTO favorites (recipe_id) VALUES (?)", id); err != nil {
			return fmt.Errorf("%w: inserting favorite %d: %w", domain.ErrStorage, id, err)
		}
	}
	return nil
}
