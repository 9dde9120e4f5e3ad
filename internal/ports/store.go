package ports

import "figsync/internal/domain"

// AssetStore is the local, content-addressed asset store: a fixed
// directory layout whose paths derive deterministically from node and
// fill ids. The filesystem is the only state registry; validity is
// re-derived from the files themselves on every run.
type AssetStore interface {
	// Root returns the asset root directory.
	Root() string

	// EnsureLayout creates the fixed subfolder layout.
	EnsureLayout() error

	// Document cache: exactly one file, always the most recent
	// successful fetch. LoadDocumentCache returns (nil, nil) when no
	// cache exists.
	SaveDocumentCache(raw []byte) error
	LoadDocumentCache() ([]byte, error)
	DocumentCachePath() string

	// Deterministic asset paths.
	FillPath(fillID string) string
	RenderedPath(nodeID string) string

	// Classify inspects a local file and reports whether it is absent,
	// a retryable placeholder, or a valid asset.
	Classify(path string) domain.AssetState

	// WriteAsset writes downloaded bytes plus the kind's import
	// metadata sidecar.
	WriteAsset(path string, data []byte, kind domain.AssetKind) error

	// WritePlaceholder writes the fixed tiny stand-in asset marking
	// the slot as "needs retry".
	WritePlaceholder(path string, kind domain.AssetKind) error

	// RemoveAsset deletes an asset file together with its sidecar.
	RemoveAsset(path string) error

	// ArtifactPaths snapshots the generated-artifact files currently
	// on disk (pages, screens, components), excluding sidecars.
	ArtifactPaths() (map[string]bool, error)

	// Reconcile deletes the orphans in before but not after, with
	// their sidecars, and returns what was actually deleted.
	Reconcile(before, after map[string]bool) []string

	// ListAssets walks the store and returns every asset file.
	ListAssets() ([]domain.IndexedAsset, error)
}
