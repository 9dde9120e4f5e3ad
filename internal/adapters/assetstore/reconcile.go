package assetstore

import (
	"os"
	"sort"

	"go.uber.org/zap"
)

// Reconcile deletes every path present in before but not in after -
// the orphaned artifacts of a previous sync - along with each orphan's
// sidecar, and returns what was actually deleted. It never deletes
// anything outside before and never consults document content; garbage
// collection is a pure set difference over the caller's two snapshots.
// Per-path I/O failures are logged and skipped.
func (s *Store) Reconcile(before, after map[string]bool) []string {
	orphans := make([]string, 0)
	for path := range before {
		if !after[path] {
			orphans = append(orphans, path)
		}
	}
	sort.Strings(orphans)

	var deleted []string
	for _, path := range orphans {
		err := os.Remove(path)
		switch {
		case err == nil:
			deleted = append(deleted, path)
		case os.IsNotExist(err):
			// Already gone; still sweep the sidecar below.
		default:
			s.log.Warn("failed to delete orphan artifact",
				zap.String("path", path), zap.Error(err))
			continue
		}
		if err := os.Remove(SidecarPath(path)); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to delete orphan sidecar",
				zap.String("path", SidecarPath(path)), zap.Error(err))
		}
	}

	if len(deleted) > 0 {
		s.log.Info("reconciled orphan artifacts", zap.Int("deleted", len(deleted)))
	}
	return deleted
}
