package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"figsync/internal/adapters/assetstore"
	"figsync/internal/application"
	"figsync/internal/config"
	"figsync/internal/domain"
)

const syncTestDoc = `{
  "name": "Demo",
  "version": "1",
  "document": {"id": "0:0", "type": "DOCUMENT", "children": [
    {"id": "1:0", "name": "Page 1", "type": "CANVAS", "children": [
      {"id": "1:1", "name": "Photo", "type": "RECTANGLE",
       "fills": [{"type": "IMAGE", "imageRef": "ref1"}]},
      {"id": "1:2", "name": "Union", "type": "BOOLEAN_OPERATION", "booleanOperation": "UNION"}
    ]}
  ]}
}`

func syncTestAPI() *fakeAPI {
	return &fakeAPI{
		raw:    []byte(syncTestDoc),
		fills:  map[string]string{"ref1": "https://cdn/fill/ref1"},
		render: map[string]string{"1:2": "https://cdn/render/1:2"},
		payloads: map[string][]byte{
			"https://cdn/fill/ref1":  assetBytes,
			"https://cdn/render/1:2": assetBytes,
		},
	}
}

func syncTestConfig() config.Config {
	cfg := config.Default()
	cfg.Token = "token"
	cfg.FileID = "abc"
	cfg.BatchDelay = 0
	return cfg
}

// fakeBuilder stands in for the scene-graph builder: it reports a fixed
// artifact set and substitution list without generating anything.
type fakeBuilder struct {
	output *BuildOutput
	err    error
	calls  int
}

func (b *fakeBuilder) Build(_ context.Context, _ *domain.File) (*BuildOutput, error) {
	b.calls++
	if b.err != nil {
		return nil, b.err
	}
	return b.output, nil
}

func TestSyncDownloadsEverythingOnce(t *testing.T) {
	api := syncTestAPI()
	store := newCommandStore(t)
	cmd := NewSyncCommand(api, store, nil, syncTestConfig(), nil, false)

	report, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Failed() {
		t.Fatalf("report marked failed: %+v", report.Phases)
	}
	if got := report.Downloads.Succeeded(); got != 2 {
		t.Errorf("downloaded %d assets, want 2 (fill + rendered)", got)
	}
	if got := store.Classify(store.FillPath("ref1")); got != domain.AssetValid {
		t.Errorf("fill classified %v, want Valid", got)
	}
	if got := store.Classify(store.RenderedPath("1:2")); got != domain.AssetValid {
		t.Errorf("rendered classified %v, want Valid", got)
	}
}

func TestSyncSecondRunIsIdempotent(t *testing.T) {
	api := syncTestAPI()
	store := newCommandStore(t)
	cfg := syncTestConfig()

	if _, err := NewSyncCommand(api, store, nil, cfg, nil, false).Execute(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	downloadsAfterFirst := len(api.downloadCalls)
	rendersAfterFirst := len(api.renderCalls)
	fillsAfterFirst := api.fillsCalls

	report, err := NewSyncCommand(api, store, nil, cfg, nil, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if got := len(report.Downloads.Results); got != 0 {
		t.Errorf("second run planned %d downloads, want 0", got)
	}
	if len(api.downloadCalls) != downloadsAfterFirst {
		t.Errorf("second run hit the CDN: %v", api.downloadCalls[downloadsAfterFirst:])
	}
	if len(api.renderCalls) != rendersAfterFirst {
		t.Errorf("second run requested renders: %v", api.renderCalls[rendersAfterFirst:])
	}
	if api.fillsCalls != fillsAfterFirst {
		t.Error("second run requested the fill listing with nothing to download")
	}
}

func TestSyncFailedDownloadRetriedNextRun(t *testing.T) {
	api := syncTestAPI()
	delete(api.payloads, "https://cdn/render/1:2")
	store := newCommandStore(t)
	cfg := syncTestConfig()

	report, err := NewSyncCommand(api, store, nil, cfg, nil, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(report.Downloads.Failed()) != 1 {
		t.Fatalf("unexpected report: %+v", report.Downloads)
	}
	if got := store.Classify(store.RenderedPath("1:2")); got != domain.AssetPlaceholder {
		t.Fatalf("failed slot classified %v, want Placeholder", got)
	}

	// The CDN recovers; the placeholder slot is the only work left.
	api.payloads["https://cdn/render/1:2"] = assetBytes
	report, err = NewSyncCommand(api, store, nil, cfg, nil, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if got := report.Downloads.Succeeded(); got != 1 {
		t.Errorf("second run downloaded %d assets, want 1", got)
	}
	if got := store.Classify(store.RenderedPath("1:2")); got != domain.AssetValid {
		t.Errorf("slot classified %v after retry, want Valid", got)
	}
}

func TestSyncReconcilesStaleArtifacts(t *testing.T) {
	api := syncTestAPI()
	store := newCommandStore(t)
	if err := store.EnsureLayout(); err != nil {
		t.Fatal(err)
	}

	kept := filepath.Join(store.Root(), assetstore.DirPages, "Page 1.tscn")
	stale := filepath.Join(store.Root(), assetstore.DirPages, "Old Page.tscn")
	for _, p := range []string{kept, stale} {
		if err := os.WriteFile(p, []byte("artifact"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	builder := &fakeBuilder{output: &BuildOutput{
		ArtifactPaths:     map[string]bool{kept: true},
		SubstitutionNodes: []string{"1:2"},
	}}
	report, err := NewSyncCommand(api, store, nil, syncTestConfig(), builder, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if builder.calls != 1 {
		t.Fatalf("builder called %d times, want 1", builder.calls)
	}
	if len(report.Deleted) != 1 || report.Deleted[0] != stale {
		t.Errorf("Deleted = %v, want [%s]", report.Deleted, stale)
	}
	if _, err := os.Stat(kept); err != nil {
		t.Errorf("kept artifact removed: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale artifact survived reconciliation")
	}
}

func TestSyncSeedsSubstitutionPlaceholders(t *testing.T) {
	api := syncTestAPI()
	// The render listing comes back without a URL for the node, so the
	// download pass never touches its slot.
	api.render = map[string]string{}
	store := newCommandStore(t)

	builder := &fakeBuilder{output: &BuildOutput{
		ArtifactPaths:     map[string]bool{},
		SubstitutionNodes: []string{"1:2"},
	}}
	if _, err := NewSyncCommand(api, store, nil, syncTestConfig(), builder, false).Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.Classify(store.RenderedPath("1:2")); got != domain.AssetPlaceholder {
		t.Errorf("substituted slot classified %v, want Placeholder", got)
	}
}

func TestSyncFetchFailureAbortsRun(t *testing.T) {
	api := &fakeAPI{rawErr: &application.TransportError{Op: "fetch file", Status: 500}}
	store := newCommandStore(t)

	report, err := NewSyncCommand(api, store, nil, syncTestConfig(), nil, false).Execute(context.Background())
	if !errors.Is(err, application.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !report.Failed() {
		t.Error("report should mark the run failed")
	}
	if len(api.downloadCalls) != 0 {
		t.Error("pipeline kept going after a fetch failure")
	}
}

func TestSyncBuilderFailureSkipsReconcile(t *testing.T) {
	api := syncTestAPI()
	store := newCommandStore(t)
	if err := store.EnsureLayout(); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(store.Root(), assetstore.DirPages, "Old Page.tscn")
	if err := os.WriteFile(stale, []byte("artifact"), 0644); err != nil {
		t.Fatal(err)
	}

	builder := &fakeBuilder{err: errors.New("generation failed")}
	report, err := NewSyncCommand(api, store, nil, syncTestConfig(), builder, false).Execute(context.Background())
	if err == nil {
		t.Fatal("expected builder error")
	}
	if !report.Failed() {
		t.Error("report should mark the run failed")
	}
	// No generation means no reconciliation: pre-existing artifacts stay.
	if _, statErr := os.Stat(stale); statErr != nil {
		t.Errorf("artifact deleted despite failed generation: %v", statErr)
	}
}
