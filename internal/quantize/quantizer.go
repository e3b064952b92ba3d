/*
Package quantize reduces an image to a small set of representative colors.

Three methods are available: a deterministic k-means ("kmeans"), median cut
("mediancut") and a dominant-color search ("dominant"). All of them return
swatches in dominance order, most populous first.
*/
package quantize

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/amterp/palettator/internal/model"
)

var (
	errIsDirectory = errors.New("is a directory")
	errNoPixels    = errors.New("image has no opaque pixels")
)

// Quantizer reduces an image to at most n swatches.
type Quantizer interface {
	Quantize(img image.Image, n int) ([]model.Swatch, error)
}

// New returns the quantizer for method. colorSpace only affects kmeans.
func New(method, colorSpace string) (Quantizer, error) {
	switch method {
	case model.MethodKMeans, "":
		return NewKMeans(colorSpace), nil
	case model.MethodMedianCut:
		return &MedianCut{}, nil
	case model.MethodDominant:
		return &Dominant{}, nil
	default:
		return nil, fmt.Errorf("unknown quantization method: %s", method)
	}
}

// bin is one distinct opaque color and how many sampled pixels have it.
type bin struct {
	color model.Color
	count int
}

// histogram counts the distinct opaque colors of img. Bins are ordered by
// count, most frequent first, then by color value.
func histogram(img image.Image) ([]bin, int) {
	b := img.Bounds()
	counts := make(map[model.Color]int)
	total := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			counts[model.Color{R: c.R, G: c.G, B: c.B}]++
			total++
		}
	}

	bins := make([]bin, 0, len(counts))
	for c, n := range counts {
		bins = append(bins, bin{color: c, count: n})
	}
	slices.SortFunc(bins, func(a, b bin) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return compareColors(a.color, b.color)
	})
	return bins, total
}

func compareColors(a, b model.Color) int {
	if a.R != b.R {
		return int(a.R) - int(b.R)
	}
	if a.G != b.G {
		return int(a.G) - int(b.G)
	}
	return int(a.B) - int(b.B)
}

// exactSwatches turns a histogram directly into swatches. Used when the
// image has no more distinct colors than requested.
func exactSwatches(bins []bin, total int) []model.Swatch {
	out := make([]model.Swatch, len(bins))
	for i, b := range bins {
		out[i] = model.Swatch{Color: b.color, Weight: float64(b.count) / float64(total)}
	}
	return out
}

// byDominance orders swatches by weight, heaviest first. The sort is
// stable so equal weights keep their input order.
func byDominance(swatches []model.Swatch) {
	slices.SortStableFunc(swatches, func(a, b model.Swatch) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		}
		return 0
	})
}
