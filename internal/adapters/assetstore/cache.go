package assetstore

import (
	"fmt"
	"os"
	"path/filepath"
)

const documentCacheName = "document.json"

// DocumentCachePath returns the single well-known cache location.
func (s *Store) DocumentCachePath() string {
	return filepath.Join(s.root, internalDir, documentCacheName)
}

// SaveDocumentCache persists a raw document response verbatim,
// overwriting any previous cache. The store holds exactly one cache
// file, always the most recent successful fetch.
func (s *Store) SaveDocumentCache(raw []byte) error {
	path := s.DocumentCachePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write document cache: %w", err)
	}
	return nil
}

// LoadDocumentCache returns the cached raw document, or (nil, nil)
// when none exists - absence means "never synced", not an error. Never
// makes a network call.
func (s *Store) LoadDocumentCache() ([]byte, error) {
	raw, err := os.ReadFile(s.DocumentCachePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read document cache: %w", err)
	}
	return raw, nil
}
