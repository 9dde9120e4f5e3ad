package assetstore

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"figsync/internal/domain"
)

// placeholderColor is the semi-transparent gray of a stand-in asset.
var placeholderColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80}

// WritePlaceholder writes the fixed 2x2 stand-in asset at path, plus
// the kind's sidecar. A placeholder marks the slot as "needs retry":
// the next pass classifies it and schedules a re-download. This is the
// pipeline's only retry mechanism.
func (s *Store) WritePlaceholder(path string, kind domain.AssetKind) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create asset dir: %w", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	for y := 0; y < placeholderSize; y++ {
		for x := 0; x < placeholderSize; x++ {
			img.SetNRGBA(x, y, placeholderColor)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create placeholder: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode placeholder: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close placeholder: %w", err)
	}

	return writeSidecar(path, kind)
}
