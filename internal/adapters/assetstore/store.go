// Package assetstore implements ports.AssetStore on the local
// filesystem. The store has no manifest: every "do I need to
// (re)download this?" decision is a pure function of the file itself.
package assetstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"figsync/internal/domain"
)

// Fixed subfolders of the asset root.
const (
	DirPages       = "pages"
	DirScreens     = "screens"
	DirComponents  = "components"
	DirFills       = "fills"
	DirRendered    = "rendered"
	DirFontPresets = "fontpresets"
	DirFonts       = "fonts"

	// internalDir holds the document cache and the asset index.
	internalDir = ".figsync"
)

var layoutDirs = []string{
	DirPages, DirScreens, DirComponents,
	DirFills, DirRendered,
	DirFontPresets, DirFonts,
	internalDir,
}

// artifactDirs hold generated output files subject to reconciliation.
var artifactDirs = []string{DirPages, DirScreens, DirComponents}

// Store is a filesystem-backed asset store rooted at one directory.
type Store struct {
	root string
	log  *zap.Logger
}

// New creates a store rooted at root. A ~ prefix expands to the home
// directory.
func New(root string, log *zap.Logger) *Store {
	if strings.HasPrefix(root, "~") {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, root[1:])
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{root: root, log: log}
}

// Root returns the asset root directory.
func (s *Store) Root() string { return s.root }

// EnsureLayout creates the fixed subfolder layout.
func (s *Store) EnsureLayout() error {
	for _, dir := range layoutDirs {
		if err := os.MkdirAll(filepath.Join(s.root, dir), 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// FillPath returns the deterministic local path for a bitmap fill.
func (s *Store) FillPath(fillID string) string {
	return filepath.Join(s.root, DirFills, domain.SafeFileName(fillID)+".png")
}

// RenderedPath returns the deterministic local path for a
// server-rendered node image.
func (s *Store) RenderedPath(nodeID string) string {
	return filepath.Join(s.root, DirRendered, domain.SafeFileName(nodeID)+".png")
}

// WriteAsset writes downloaded bytes and the kind's import metadata
// sidecar.
func (s *Store) WriteAsset(path string, data []byte, kind domain.AssetKind) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create asset dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write asset: %w", err)
	}
	if err := writeSidecar(path, kind); err != nil {
		return err
	}
	return nil
}

// RemoveAsset deletes an asset file together with its sidecar.
func (s *Store) RemoveAsset(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove asset: %w", err)
	}
	if err := os.Remove(SidecarPath(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove sidecar: %w", err)
	}
	return nil
}

// ArtifactPaths snapshots the generated-artifact files currently on
// disk, excluding sidecars. Captured before generation begins so the
// reconciler can diff it against the post-generation set.
func (s *Store) ArtifactPaths() (map[string]bool, error) {
	paths := make(map[string]bool)
	for _, dir := range artifactDirs {
		entries, err := os.ReadDir(filepath.Join(s.root, dir))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || isSidecar(entry.Name()) {
				continue
			}
			paths[filepath.Join(s.root, dir, entry.Name())] = true
		}
	}
	return paths, nil
}

// ListAssets walks the store and returns every asset file, for the
// rebuildable index and the status report.
func (s *Store) ListAssets() ([]domain.IndexedAsset, error) {
	var assets []domain.IndexedAsset
	kinds := map[string]string{
		DirPages:      "page",
		DirScreens:    "screen",
		DirComponents: "component",
		DirFills:      "fill",
		DirRendered:   "rendered",
	}
	for _, dir := range []string{DirPages, DirScreens, DirComponents, DirFills, DirRendered} {
		entries, err := os.ReadDir(filepath.Join(s.root, dir))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || isSidecar(entry.Name()) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			assets = append(assets, domain.IndexedAsset{
				Path: filepath.Join(s.root, dir, entry.Name()),
				Kind: kinds[dir],
				Name: strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
				Size: info.Size(),
			})
		}
	}
	return assets, nil
}
