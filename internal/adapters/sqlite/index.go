// Package sqlite implements ports.AssetIndex on SQLite. The index is a
// rebuildable cache over the asset store, used for listing and search;
// the store's files stay the single source of truth.
package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"figsync/internal/domain"
	"figsync/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Index implements ports.AssetIndex using SQLite.
type Index struct {
	db     *sql.DB
	root   string
	dbPath string
}

// Ensure Index implements AssetIndex
var _ ports.AssetIndex = (*Index)(nil)

// NewIndex creates a new SQLite index.
func NewIndex() *Index {
	return &Index{}
}

// Open initializes the index for the given asset root. The database
// lives alongside the document cache under the root's internal folder.
func (idx *Index) Open(root string) error {
	// Expand ~ in path
	if len(root) > 0 && root[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		root = filepath.Join(home, root[1:])
	}

	idx.root = root
	idx.dbPath = filepath.Join(root, ".figsync", "index.db")

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS assets (
			path TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			size INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_assets_kind ON assets(kind);
		CREATE INDEX IF NOT EXISTS idx_assets_name ON assets(name);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// NeedsFullRebuild returns true if the index was built with a different
// schema or for a different asset root. A moved root keeps its files
// but invalidates every absolute path in the index.
func (idx *Index) NeedsFullRebuild() bool {
	var version, rootHash string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'root_path_hash'").Scan(&rootHash)

	return version != schemaVersion || rootHash != hashRootPath(idx.root)
}

// hashRootPath returns a short hash of the asset root path.
func hashRootPath(root string) string {
	h := sha256.Sum256([]byte(root))
	return hex.EncodeToString(h[:8])
}

// updateMeta records the schema version and root path hash. One Exec
// per statement: the driver re-binds the same args slice for every
// statement of a batch, so batching would write the schema version
// into both rows.
func (idx *Index) updateMeta() error {
	if _, err := idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		return err
	}
	_, err := idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('root_path_hash', ?)`, hashRootPath(idx.root))
	return err
}

// List returns indexed assets of one kind, or every asset when kind is
// empty, ordered by kind then name.
func (idx *Index) List(kind string) ([]domain.IndexedAsset, error) {
	query := `SELECT path, kind, name, size FROM assets ORDER BY kind, name`
	args := []interface{}{}
	if kind != "" {
		query = `SELECT path, kind, name, size FROM assets WHERE kind = ? ORDER BY name`
		args = append(args, kind)
	}

	rows, err := idx.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssets(rows)
}

// Search returns indexed assets whose name contains the query,
// case-insensitively, ordered by kind then name.
func (idx *Index) Search(query string) ([]domain.IndexedAsset, error) {
	rows, err := idx.db.Query(`
		SELECT path, kind, name, size FROM assets
		WHERE name LIKE ? COLLATE NOCASE
		ORDER BY kind, name
	`, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssets(rows)
}

func scanAssets(rows *sql.Rows) ([]domain.IndexedAsset, error) {
	var assets []domain.IndexedAsset
	for rows.Next() {
		var a domain.IndexedAsset
		if err := rows.Scan(&a.Path, &a.Kind, &a.Name, &a.Size); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}
