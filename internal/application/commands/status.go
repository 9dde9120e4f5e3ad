package commands

import (
	"context"
	"fmt"

	"figsync/internal/application"
	"figsync/internal/domain"
	"figsync/internal/ports"
)

// StatusResult summarizes the local state of every asset the current
// document requires.
type StatusResult struct {
	Fills    map[domain.AssetState]int
	Rendered map[domain.AssetState]int
	// NeedsDownload lists the paths that would enter the next
	// download plan (absent or placeholder).
	NeedsDownload []string
	Message       string
}

// StatusCommand classifies every expected asset path without touching
// the network - the oracle exposed for inspection.
type StatusCommand struct {
	store   ports.AssetStore
	File    *domain.File
	PageIDs map[string]bool
}

// NewStatusCommand creates a new StatusCommand.
func NewStatusCommand(store ports.AssetStore, file *domain.File, pageIDs map[string]bool) *StatusCommand {
	return &StatusCommand{store: store, File: file, PageIDs: pageIDs}
}

// Validate checks the command's inputs.
func (c *StatusCommand) Validate() error {
	if c.File == nil {
		return &application.ValidationError{Field: "file", Message: "document is required"}
	}
	return nil
}

// Execute computes the status report.
func (c *StatusCommand) Execute(_ context.Context) (*StatusResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &StatusResult{
		Fills:    make(map[domain.AssetState]int),
		Rendered: make(map[domain.AssetState]int),
	}

	for _, ref := range c.File.ImageFillRefs(c.PageIDs) {
		path := c.store.FillPath(ref)
		state := c.store.Classify(path)
		result.Fills[state]++
		if state != domain.AssetValid {
			result.NeedsDownload = append(result.NeedsDownload, path)
		}
	}

	missing := c.File.MissingComponents()
	for _, cand := range domain.RenderCandidates(c.File, missing, c.PageIDs) {
		path := c.store.RenderedPath(cand.NodeID)
		state := c.store.Classify(path)
		result.Rendered[state]++
		if state != domain.AssetValid {
			result.NeedsDownload = append(result.NeedsDownload, path)
		}
	}

	result.Message = fmt.Sprintf(
		"fills: %d valid, %d placeholder, %d absent; rendered: %d valid, %d placeholder, %d absent",
		result.Fills[domain.AssetValid], result.Fills[domain.AssetPlaceholder], result.Fills[domain.AssetAbsent],
		result.Rendered[domain.AssetValid], result.Rendered[domain.AssetPlaceholder], result.Rendered[domain.AssetAbsent],
	)
	return result, nil
}
