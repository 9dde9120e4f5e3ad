package ports

import "figsync/internal/domain"

// AssetIndex provides fast queries over synced assets. It is a
// rebuildable cache derived from the asset store; it is never
// consulted for download-validity decisions.
type AssetIndex interface {
	// Lifecycle
	Open(root string) error
	Close() error

	// NeedsFullRebuild reports whether the index was built for a
	// different schema or asset root.
	NeedsFullRebuild() bool

	// SyncFull rebuilds the index from the store.
	SyncFull(store AssetStore) (*domain.IndexStats, error)

	// Queries
	List(kind string) ([]domain.IndexedAsset, error)
	Search(query string) ([]domain.IndexedAsset, error)
}
