package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"figsync/internal/application"
	"figsync/internal/domain"
	"figsync/internal/ports"
)

// DownloadResult reports the per-item outcome of one download pass.
type DownloadResult struct {
	Report  *domain.DownloadReport
	Message string
}

// DownloadCommand turns a queue of download items into local files.
// Items are processed one at a time in list order; a single item's
// failure is logged and skipped, never aborts the pass, and there is
// no global rollback. When SeedPlaceholders is set, each failed item's
// destination gets the fixed stand-in so the next pass retries it -
// the pipeline's only retry mechanism.
type DownloadCommand struct {
	api              ports.DesignAPI
	store            ports.AssetStore
	log              *zap.Logger
	Items            []domain.DownloadItem
	SeedPlaceholders bool
}

// NewDownloadCommand creates a new DownloadCommand.
func NewDownloadCommand(api ports.DesignAPI, store ports.AssetStore, log *zap.Logger, items []domain.DownloadItem, seed bool) *DownloadCommand {
	if log == nil {
		log = zap.NewNop()
	}
	return &DownloadCommand{api: api, store: store, log: log, Items: items, SeedPlaceholders: seed}
}

// Execute runs the pass. It only returns an error when the context is
// cancelled between items; everything else lands in the report.
func (c *DownloadCommand) Execute(ctx context.Context) (*DownloadResult, error) {
	report := &domain.DownloadReport{}

	for _, item := range c.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := c.downloadOne(ctx, item)
		if err != nil {
			c.log.Warn("download failed",
				zap.String("dest", item.Dest),
				zap.String("kind", item.Kind.String()),
				zap.Error(err))
		} else {
			c.log.Debug("downloaded",
				zap.String("dest", item.Dest),
				zap.String("kind", item.Kind.String()))
		}
		report.Results = append(report.Results, domain.DownloadResult{Item: item, Err: err})
	}

	if c.SeedPlaceholders {
		for _, failed := range report.Failed() {
			if err := c.store.WritePlaceholder(failed.Item.Dest, failed.Item.Kind); err != nil {
				c.log.Warn("failed to seed placeholder",
					zap.String("dest", failed.Item.Dest), zap.Error(err))
			}
		}
	}

	failed := len(report.Failed())
	c.log.Info("download pass complete",
		zap.Int("succeeded", report.Succeeded()),
		zap.Int("failed", failed))

	msg := fmt.Sprintf("Downloaded %d assets", report.Succeeded())
	if failed > 0 {
		msg = fmt.Sprintf("Downloaded %d assets, %d failed (placeholders mark them for retry)", report.Succeeded(), failed)
	}
	return &DownloadResult{Report: report, Message: msg}, nil
}

func (c *DownloadCommand) downloadOne(ctx context.Context, item domain.DownloadItem) error {
	if item.URL == "" {
		return application.ErrEmptyURL
	}
	data, err := c.api.Download(ctx, item.URL)
	if err != nil {
		return err
	}
	if err := c.store.WriteAsset(item.Dest, data, item.Kind); err != nil {
		return fmt.Errorf("write %s: %w", item.Dest, err)
	}
	return nil
}
