package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"figsync/internal/domain"
	"figsync/internal/ports"
)

// CleanResult lists what a clean pass removed.
type CleanResult struct {
	Removed []string
	Message string
}

// CleanPlaceholdersCommand deletes every placeholder asset from the
// store. The slots become Absent, which schedules the same re-download
// the placeholder did; the gray stand-ins just stop showing up in
// whatever consumes the store.
type CleanPlaceholdersCommand struct {
	store ports.AssetStore
	log   *zap.Logger
}

// NewCleanPlaceholdersCommand creates a new CleanPlaceholdersCommand.
func NewCleanPlaceholdersCommand(store ports.AssetStore, log *zap.Logger) *CleanPlaceholdersCommand {
	if log == nil {
		log = zap.NewNop()
	}
	return &CleanPlaceholdersCommand{store: store, log: log}
}

// Execute runs the clean pass. Per-path failures are logged and
// skipped.
func (c *CleanPlaceholdersCommand) Execute(_ context.Context) (*CleanResult, error) {
	assets, err := c.store.ListAssets()
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	var removed []string
	for _, asset := range assets {
		if asset.Kind != "fill" && asset.Kind != "rendered" {
			continue
		}
		if c.store.Classify(asset.Path) != domain.AssetPlaceholder {
			continue
		}
		if err := c.store.RemoveAsset(asset.Path); err != nil {
			c.log.Warn("failed to remove placeholder",
				zap.String("path", asset.Path), zap.Error(err))
			continue
		}
		removed = append(removed, asset.Path)
	}

	return &CleanResult{
		Removed: removed,
		Message: fmt.Sprintf("Removed %d placeholders", len(removed)),
	}, nil
}
