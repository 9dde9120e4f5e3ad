package assetstore

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"figsync/internal/domain"
)

// sidecarSuffix follows the asset file name, so an asset and its
// import metadata share a base name and travel together.
const sidecarSuffix = ".import.json"

// Wrap modes recorded as import metadata. Fills tile; rendered images
// clamp. Metadata only - pixel data is never touched.
const (
	WrapRepeat = "repeat"
	WrapClamp  = "clamp"
)

// ImportMeta is the post-processing profile applied to a downloaded
// asset, consumed by the scene-graph builder.
type ImportMeta struct {
	WrapMode string `json:"wrapMode"`
}

// SidecarPath returns the import-metadata path for an asset file.
func SidecarPath(assetPath string) string {
	return assetPath + sidecarSuffix
}

func isSidecar(name string) bool {
	return strings.HasSuffix(name, sidecarSuffix)
}

func wrapModeFor(kind domain.AssetKind) string {
	if kind == domain.AssetFill {
		return WrapRepeat
	}
	return WrapClamp
}

func writeSidecar(assetPath string, kind domain.AssetKind) error {
	meta := ImportMeta{WrapMode: wrapModeFor(kind)}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode import metadata: %w", err)
	}
	if err := os.WriteFile(SidecarPath(assetPath), data, 0644); err != nil {
		return fmt.Errorf("write import metadata: %w", err)
	}
	return nil
}

// ReadSidecar loads the import metadata for an asset file.
func ReadSidecar(assetPath string) (*ImportMeta, error) {
	data, err := os.ReadFile(SidecarPath(assetPath))
	if err != nil {
		return nil, err
	}
	var meta ImportMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode import metadata: %w", err)
	}
	return &meta, nil
}
