package commands

import (
	"context"
	"fmt"

	"figsync/internal/application"
	"figsync/internal/domain"
	"figsync/internal/ports"
)

// PlanFillsResult is the bitmap-fill download plan.
type PlanFillsResult struct {
	Items   []domain.DownloadItem
	Message string
}

// PlanFillsCommand builds the fill download list: every image fill the
// document references whose local file the oracle does not classify as
// Valid. The fill listing is only requested when at least one fill
// actually needs bytes.
type PlanFillsCommand struct {
	api     ports.DesignAPI
	store   ports.AssetStore
	FileID  string
	File    *domain.File
	PageIDs map[string]bool
}

// NewPlanFillsCommand creates a new PlanFillsCommand.
func NewPlanFillsCommand(api ports.DesignAPI, store ports.AssetStore, fileID string, file *domain.File, pageIDs map[string]bool) *PlanFillsCommand {
	return &PlanFillsCommand{api: api, store: store, FileID: fileID, File: file, PageIDs: pageIDs}
}

// Validate checks the command's inputs.
func (c *PlanFillsCommand) Validate() error {
	if c.File == nil {
		return &application.ValidationError{Field: "file", Message: "document is required"}
	}
	return nil
}

// Execute builds the plan.
func (c *PlanFillsCommand) Execute(ctx context.Context) (*PlanFillsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	refs := c.File.ImageFillRefs(c.PageIDs)

	var needed []string
	for _, ref := range refs {
		if c.store.Classify(c.store.FillPath(ref)) != domain.AssetValid {
			needed = append(needed, ref)
		}
	}
	if len(needed) == 0 {
		return &PlanFillsResult{
			Message: fmt.Sprintf("All %d fills already valid", len(refs)),
		}, nil
	}

	urls, err := c.api.ListImageFills(ctx, c.FileID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.DownloadItem, 0, len(needed))
	for _, ref := range needed {
		// A fill missing from the listing gets an empty URL; the
		// executor reports it failed and a placeholder keeps the slot
		// scheduled for retry.
		items = append(items, domain.DownloadItem{
			URL:  urls[ref],
			Dest: c.store.FillPath(ref),
			Kind: domain.AssetFill,
		})
	}

	return &PlanFillsResult{
		Items:   items,
		Message: fmt.Sprintf("%d of %d fills need download", len(items), len(refs)),
	}, nil
}
