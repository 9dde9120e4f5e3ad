package sqlite

import (
	"fmt"

	"figsync/internal/domain"
	"figsync/internal/ports"
)

// SyncFull rebuilds the index from the store's files. The whole swap
// happens in one transaction so readers never see a half-built index.
func (idx *Index) SyncFull(store ports.AssetStore) (*domain.IndexStats, error) {
	assets, err := store.ListAssets()
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Snapshot prior paths so stats can report what fell out.
	prior := make(map[string]bool)
	rows, err := tx.Query(`SELECT path FROM assets`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return nil, err
		}
		prior[path] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`DELETE FROM assets`); err != nil {
		return nil, err
	}

	insert, err := tx.Prepare(`INSERT INTO assets (path, kind, name, size) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer insert.Close()

	stats := &domain.IndexStats{}
	for _, a := range assets {
		if _, err := insert.Exec(a.Path, a.Kind, a.Name, a.Size); err != nil {
			return nil, fmt.Errorf("index %s: %w", a.Path, err)
		}
		stats.Indexed++
		delete(prior, a.Path)
	}
	stats.Removed = len(prior)

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if err := idx.updateMeta(); err != nil {
		return nil, fmt.Errorf("update index metadata: %w", err)
	}
	return stats, nil
}
