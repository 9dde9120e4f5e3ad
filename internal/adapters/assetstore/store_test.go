package assetstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"figsync/internal/domain"
)

func TestEnsureLayout(t *testing.T) {
	s := New(t.TempDir(), nil)
	if err := s.EnsureLayout(); err != nil {
		t.Fatalf("EnsureLayout: %v", err)
	}
	for _, dir := range []string{DirPages, DirScreens, DirComponents, DirFills, DirRendered, DirFontPresets, DirFonts} {
		if info, err := os.Stat(filepath.Join(s.Root(), dir)); err != nil || !info.IsDir() {
			t.Errorf("missing layout dir %s: %v", dir, err)
		}
	}
}

func TestDeterministicPaths(t *testing.T) {
	s := New("/assets", nil)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"fill", s.FillPath("abc123"), "/assets/fills/abc123.png"},
		{"rendered node id", s.RenderedPath("12:34"), "/assets/rendered/12_34.png"},
		{"unsafe fill id", s.FillPath("a/b"), "/assets/fills/a_b.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestWriteAssetSidecarProfiles(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name     string
		path     string
		kind     domain.AssetKind
		wantWrap string
	}{
		{"fill tiles", s.FillPath("f1"), domain.AssetFill, WrapRepeat},
		{"rendered clamps", s.RenderedPath("1:2"), domain.AssetRendered, WrapClamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.WriteAsset(tt.path, []byte("img"), tt.kind); err != nil {
				t.Fatalf("WriteAsset: %v", err)
			}
			meta, err := ReadSidecar(tt.path)
			if err != nil {
				t.Fatalf("ReadSidecar: %v", err)
			}
			if meta.WrapMode != tt.wantWrap {
				t.Errorf("wrap mode = %q, want %q", meta.WrapMode, tt.wantWrap)
			}
		})
	}
}

func TestDocumentCache(t *testing.T) {
	s := newTestStore(t)

	t.Run("load before any save", func(t *testing.T) {
		raw, err := s.LoadDocumentCache()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if raw != nil {
			t.Errorf("expected nil for never-synced store, got %d bytes", len(raw))
		}
	})

	t.Run("save overwrites previous cache", func(t *testing.T) {
		if err := s.SaveDocumentCache([]byte(`{"v": 1}`)); err != nil {
			t.Fatal(err)
		}
		if err := s.SaveDocumentCache([]byte(`{"v": 2}`)); err != nil {
			t.Fatal(err)
		}
		raw, err := s.LoadDocumentCache()
		if err != nil {
			t.Fatal(err)
		}
		if string(raw) != `{"v": 2}` {
			t.Errorf("cache = %s, want newest fetch only", raw)
		}
	})
}

func TestListAssets(t *testing.T) {
	s := newTestStore(t)
	if err := s.WriteAsset(s.FillPath("f1"), []byte("img"), domain.AssetFill); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteAsset(s.RenderedPath("1:2"), []byte("img"), domain.AssetRendered); err != nil {
		t.Fatal(err)
	}
	writeArtifact(t, s, DirScreens, "Login.json", true)

	assets, err := s.ListAssets()
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if len(assets) != 3 {
		t.Fatalf("got %d assets, want 3: %+v", len(assets), assets)
	}
	kinds := make(map[string]bool)
	for _, a := range assets {
		kinds[a.Kind] = true
		if strings.HasSuffix(a.Path, sidecarSuffix) {
			t.Errorf("sidecar leaked into asset list: %s", a.Path)
		}
	}
	for _, want := range []string{"fill", "rendered", "screen"} {
		if !kinds[want] {
			t.Errorf("missing kind %q in %v", want, kinds)
		}
	}
}
