package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"figsync/internal/config"
	"figsync/internal/domain"
	"figsync/internal/ports"
)

// Phase names one logical step of a sync run.
type Phase string

const (
	PhaseFetch     Phase = "fetch"
	PhaseClassify  Phase = "classify"
	PhaseFills     Phase = "fills"
	PhaseRender    Phase = "render"
	PhaseDownload  Phase = "download"
	PhaseBuild     Phase = "build"
	PhaseReconcile Phase = "reconcile"
)

// PhaseResult is one phase's outcome. Phase failures are fatal to the
// run; item-level failures stay inside the download report.
type PhaseResult struct {
	Phase   Phase
	Err     error
	Message string
}

// SyncReport is the full outcome of one pipeline run.
type SyncReport struct {
	Phases    []PhaseResult
	Downloads *domain.DownloadReport
	Deleted   []string
	File      *domain.File
}

// Failed reports whether any phase failed.
func (r *SyncReport) Failed() bool {
	for _, p := range r.Phases {
		if p.Err != nil {
			return true
		}
	}
	return false
}

// BuildOutput is what the excluded scene-graph builder hands back: the
// artifact paths it generated this pass and the nodes whose visuals it
// substituted with rendered bitmaps.
type BuildOutput struct {
	ArtifactPaths     map[string]bool
	SubstitutionNodes []string
}

// ArtifactBuilder is the boundary to the excluded scene-graph builder.
// The pipeline never depends on what the builder does with the paths;
// it only consumes the two outputs for reconciliation and placeholder
// pre-seeding.
type ArtifactBuilder interface {
	Build(ctx context.Context, file *domain.File) (*BuildOutput, error)
}

// SyncCommand runs the full pipeline: fetch -> classify -> plan ->
// download -> build -> reconcile. Sequential and single-threaded;
// abort is honored between discrete steps only. Concurrent runs
// against one asset root are unsafe; callers serialize them.
type SyncCommand struct {
	api      ports.DesignAPI
	store    ports.AssetStore
	log      *zap.Logger
	cfg      config.Config
	Builder  ArtifactBuilder
	UseCache bool
}

// NewSyncCommand creates a new SyncCommand. builder may be nil, in
// which case generation and reconciliation are skipped.
func NewSyncCommand(api ports.DesignAPI, store ports.AssetStore, log *zap.Logger, cfg config.Config, builder ArtifactBuilder, useCache bool) *SyncCommand {
	if log == nil {
		log = zap.NewNop()
	}
	return &SyncCommand{api: api, store: store, log: log, cfg: cfg, Builder: builder, UseCache: useCache}
}

func (c *SyncCommand) phase(report *SyncReport, phase Phase, msg string, err error) error {
	report.Phases = append(report.Phases, PhaseResult{Phase: phase, Err: err, Message: msg})
	if err != nil {
		c.log.Error("phase failed", zap.String("phase", string(phase)), zap.Error(err))
		return err
	}
	c.log.Info(msg, zap.String("phase", string(phase)))
	return nil
}

// Execute runs the pipeline. The report always describes how far the
// run got; the returned error is the first phase failure, if any.
func (c *SyncCommand) Execute(ctx context.Context) (*SyncReport, error) {
	report := &SyncReport{}
	pageIDs := c.cfg.PageFilter()

	if err := c.store.EnsureLayout(); err != nil {
		return report, c.phase(report, PhaseFetch, "", err)
	}

	fetch, err := NewFetchDocumentCommand(c.api, c.store, c.cfg.FileID, c.UseCache).Execute(ctx)
	if err != nil {
		return report, c.phase(report, PhaseFetch, "", err)
	}
	report.File = fetch.File
	if err := c.phase(report, PhaseFetch, fetch.Message, nil); err != nil {
		return report, err
	}

	classify, err := NewClassifyCommand(fetch.File, pageIDs).Execute(ctx)
	if err != nil {
		return report, c.phase(report, PhaseClassify, "", err)
	}
	if err := c.phase(report, PhaseClassify, classify.Message, nil); err != nil {
		return report, err
	}

	// Snapshot before any generation so the reconciler sees every
	// pre-existing artifact.
	before, err := c.store.ArtifactPaths()
	if err != nil {
		return report, c.phase(report, PhaseReconcile, "", err)
	}

	fills, err := NewPlanFillsCommand(c.api, c.store, c.cfg.FileID, fetch.File, pageIDs).Execute(ctx)
	if err != nil {
		return report, c.phase(report, PhaseFills, "", err)
	}
	if err := c.phase(report, PhaseFills, fills.Message, nil); err != nil {
		return report, err
	}

	render, err := NewRenderCommand(c.api, c.store, c.log, c.cfg.FileID, classify.Candidates,
		c.cfg.Scale, c.cfg.MaxBatchSize, c.cfg.BatchDelay).Execute(ctx)
	if err != nil {
		return report, c.phase(report, PhaseRender, "", err)
	}
	if err := c.phase(report, PhaseRender, render.Message, nil); err != nil {
		return report, err
	}

	items := append(fills.Items, render.Items...)
	download, err := NewDownloadCommand(c.api, c.store, c.log, items, true).Execute(ctx)
	if err != nil {
		return report, c.phase(report, PhaseDownload, "", err)
	}
	report.Downloads = download.Report
	if err := c.phase(report, PhaseDownload, download.Message, nil); err != nil {
		return report, err
	}

	if c.Builder == nil {
		return report, nil
	}

	built, err := c.Builder.Build(ctx, fetch.File)
	if err != nil {
		return report, c.phase(report, PhaseBuild, "", err)
	}
	c.seedSubstitutionPlaceholders(built.SubstitutionNodes)
	if err := c.phase(report, PhaseBuild, fmt.Sprintf("Generated %d artifacts", len(built.ArtifactPaths)), nil); err != nil {
		return report, err
	}

	reconcile, err := NewReconcileCommand(c.store, before, built.ArtifactPaths).Execute(ctx)
	if err != nil {
		return report, c.phase(report, PhaseReconcile, "", err)
	}
	report.Deleted = reconcile.Deleted
	if err := c.phase(report, PhaseReconcile, reconcile.Message, nil); err != nil {
		return report, err
	}

	return report, nil
}

// seedSubstitutionPlaceholders makes sure every substituted node has
// at least a placeholder on disk, so a slot the builder referenced but
// the download pass never filled is retried next run.
func (c *SyncCommand) seedSubstitutionPlaceholders(nodeIDs []string) {
	for _, id := range nodeIDs {
		path := c.store.RenderedPath(id)
		if c.store.Classify(path) != domain.AssetAbsent {
			continue
		}
		if err := c.store.WritePlaceholder(path, domain.AssetRendered); err != nil {
			c.log.Warn("failed to seed substitution placeholder",
				zap.String("node", id), zap.Error(err))
		}
	}
}
