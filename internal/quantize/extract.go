package quantize

import (
	"image"
	"slices"

	palerr "github.com/amterp/palettator/internal/errors"
	"github.com/amterp/palettator/internal/logging"
	"github.com/amterp/palettator/internal/model"
)

// Extractor runs the full palette pipeline for one image: load, optional
// resize, quantize, order and pad to the configured size.
type Extractor struct {
	size      int
	resize    bool
	resizeMax int
	sortMode  string
	quantizer Quantizer
}

// NewExtractor creates an extractor from the session configuration.
func NewExtractor(cfg model.Config) (*Extractor, error) {
	q, err := New(cfg.Method, cfg.ColorSpace)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		size:      cfg.PaletteSize,
		resize:    cfg.Resize,
		resizeMax: cfg.ResizeMax,
		sortMode:  cfg.SortMode,
		quantizer: q,
	}, nil
}

// Extract loads the image at path and returns exactly the configured
// number of swatches.
func (e *Extractor) Extract(path string) ([]model.Swatch, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}

	swatches, err := e.ExtractImage(img)
	if err != nil {
		return nil, palerr.ImageLoad(path, err)
	}
	return swatches, nil
}

// ExtractImage runs the pipeline on an already decoded image.
func (e *Extractor) ExtractImage(img image.Image) ([]model.Swatch, error) {
	if e.resize {
		img = Resize(img, e.resizeMax)
	}

	swatches, err := e.quantizer.Quantize(img, e.size)
	if err != nil {
		return nil, err
	}
	if len(swatches) == 0 {
		return nil, errNoPixels
	}

	if e.sortMode == model.SortLuminance {
		SortByLuminance(swatches)
	}

	if len(swatches) < e.size {
		logging.Logger().Debug("padding palette", "found", len(swatches), "size", e.size)
		swatches = Pad(swatches, e.size)
	}
	return swatches, nil
}

// SortByLuminance orders swatches darkest first. Equal luminance keeps the
// dominance order.
func SortByLuminance(swatches []model.Swatch) {
	slices.SortStableFunc(swatches, func(a, b model.Swatch) int {
		la, lb := a.Color.Luminance(), b.Color.Luminance()
		if la < lb {
			return -1
		}
		if la > lb {
			return 1
		}
		return 0
	})
}

// Pad fills swatches up to n entries by repeating the most dominant color
// with zero weight. The most dominant color is the heaviest swatch, which
// is not necessarily the first after a luminance sort.
func Pad(swatches []model.Swatch, n int) []model.Swatch {
	if len(swatches) == 0 || len(swatches) >= n {
		return swatches
	}

	top := swatches[0]
	for _, s := range swatches[1:] {
		if s.Weight > top.Weight {
			top = s
		}
	}

	out := make([]model.Swatch, len(swatches), n)
	copy(out, swatches)
	for len(out) < n {
		out = append(out, model.Swatch{Color: top.Color})
	}
	return out
}
