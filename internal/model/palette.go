package model

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrSwatchPathSet is returned when the swatch image path is assigned twice.
var ErrSwatchPathSet = errors.New("swatch path already set")

// Palette is an ordered set of colors extracted from one source image.
// Swatches are in dominance order unless the session sorts otherwise.
type Palette struct {
	ID         string
	Swatches   []Swatch
	SourcePath string
	swatchPath string
}

// NewPalette creates a palette for the given source image.
func NewPalette(id, sourcePath string, swatches []Swatch) *Palette {
	return &Palette{
		ID:         id,
		Swatches:   swatches,
		SourcePath: sourcePath,
	}
}

// Colors returns the palette colors in order.
func (p *Palette) Colors() []Color {
	colors := make([]Color, len(p.Swatches))
	for i, s := range p.Swatches {
		colors[i] = s.Color
	}
	return colors
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.Swatches)
}

// Name returns the source image base name without its extension.
func (p *Palette) Name() string {
	return FileStem(p.SourcePath)
}

// SwatchPath returns the rendered swatch image path, empty until rendered.
func (p *Palette) SwatchPath() string {
	return p.swatchPath
}

// SetSwatchPath records where the swatch image was written. It can only be
// set once.
func (p *Palette) SetSwatchPath(path string) error {
	if p.swatchPath != "" {
		return ErrSwatchPathSet
	}
	p.swatchPath = path
	return nil
}

// FileStem returns the base name of path up to its first dot, so
// "photo.final.jpg" becomes "photo".
func FileStem(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		return base[:i]
	}
	return base
}
