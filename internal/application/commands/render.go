package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"figsync/internal/application"
	"figsync/internal/domain"
	"figsync/internal/ports"
)

// RenderResult is the server-render download plan.
type RenderResult struct {
	Items      []domain.DownloadItem
	BatchCount int
	Message    string
}

// RenderCommand requests server-side rendering for every candidate
// whose local image the oracle does not classify as Valid. Node ids
// are split into bounded batches before sending; batches go out
// strictly one at a time, separated by the configured delay, so a
// single oversized or rapid-fire request is never produced. Abort is
// honored between batches, never mid-transfer.
type RenderCommand struct {
	api        ports.DesignAPI
	store      ports.AssetStore
	log        *zap.Logger
	FileID     string
	Candidates []domain.RenderCandidate
	Scale      float64
	MaxBatch   int
	Delay      time.Duration
}

// NewRenderCommand creates a new RenderCommand.
func NewRenderCommand(api ports.DesignAPI, store ports.AssetStore, log *zap.Logger, fileID string, candidates []domain.RenderCandidate, scale float64, maxBatch int, delay time.Duration) *RenderCommand {
	if log == nil {
		log = zap.NewNop()
	}
	return &RenderCommand{
		api: api, store: store, log: log,
		FileID: fileID, Candidates: candidates,
		Scale: scale, MaxBatch: maxBatch, Delay: delay,
	}
}

// Validate checks the command's inputs.
func (c *RenderCommand) Validate() error {
	if c.MaxBatch <= 0 {
		return &application.ValidationError{Field: "maxBatch", Message: "batch size must be positive"}
	}
	if c.Scale <= 0 {
		return &application.ValidationError{Field: "scale", Message: "scale must be positive"}
	}
	return nil
}

// Execute issues the batched render requests and returns the download
// items for every URL the server produced. An empty URL becomes an
// empty-URL item so the executor records the failure and seeds a
// placeholder.
func (c *RenderCommand) Execute(ctx context.Context) (*RenderResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var ids []string
	for _, cand := range c.Candidates {
		if c.store.Classify(c.store.RenderedPath(cand.NodeID)) != domain.AssetValid {
			ids = append(ids, cand.NodeID)
		}
	}
	if len(ids) == 0 {
		return &RenderResult{
			Message: fmt.Sprintf("All %d rendered images already valid", len(c.Candidates)),
		}, nil
	}

	chunks := domain.Chunk(ids, c.MaxBatch)
	urls := make(map[string]string, len(ids))

	for i, chunk := range chunks {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.Delay):
			}
		}

		c.log.Debug("requesting render batch",
			zap.Int("batch", i+1),
			zap.Int("batches", len(chunks)),
			zap.Int("ids", len(chunk)))

		batch, err := c.api.RenderNodes(ctx, c.FileID, chunk, c.Scale)
		if err != nil {
			return nil, fmt.Errorf("render batch %d/%d: %w", i+1, len(chunks), err)
		}
		for id, url := range batch {
			urls[id] = url
		}
	}

	items := make([]domain.DownloadItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, domain.DownloadItem{
			URL:  urls[id],
			Dest: c.store.RenderedPath(id),
			Kind: domain.AssetRendered,
		})
	}

	return &RenderResult{
		Items:      items,
		BatchCount: len(chunks),
		Message:    fmt.Sprintf("%d rendered images requested in %d batches", len(items), len(chunks)),
	}, nil
}
