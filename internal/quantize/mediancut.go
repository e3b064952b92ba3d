package quantize

import (
	"image"
	"image/color"
	"math"

	"github.com/amterp/palettator/internal/model"
	"github.com/ericpauley/go-quantize/quantize"
)

// MedianCut splits the color space by repeatedly cutting the widest box
// at its median. Weights are the share of pixels nearest to each result.
type MedianCut struct{}

func (m *MedianCut) Quantize(img image.Image, n int) ([]model.Swatch, error) {
	if n <= 0 {
		return nil, nil
	}

	bins, total := histogram(img)
	if total == 0 {
		return nil, errNoPixels
	}
	if len(bins) <= n {
		return exactSwatches(bins, total), nil
	}

	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, n), img)

	seen := make(map[model.Color]int, len(pal))
	centers := make([]model.Color, 0, len(pal))
	for _, pc := range pal {
		c := model.ColorFrom(pc)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = len(centers)
		centers = append(centers, c)
	}
	if len(centers) == 0 {
		return nil, errNoPixels
	}

	return weighByNearest(centers, bins, total), nil
}

// weighByNearest assigns every histogram bin to its nearest center and
// returns the centers weighted by the pixels they gathered. Centers that
// gathered nothing are dropped.
func weighByNearest(centers []model.Color, bins []bin, total int) []model.Swatch {
	counts := make([]int, len(centers))
	for _, b := range bins {
		best, bestDist := 0, math.MaxInt
		for i, c := range centers {
			if d := distanceSq(b.color, c); d < bestDist {
				best, bestDist = i, d
			}
		}
		counts[best] += b.count
	}

	swatches := make([]model.Swatch, 0, len(centers))
	for i, c := range centers {
		if counts[i] == 0 {
			continue
		}
		swatches = append(swatches, model.Swatch{
			Color:  c,
			Weight: float64(counts[i]) / float64(total),
		})
	}
	byDominance(swatches)
	return swatches
}

func distanceSq(a, b model.Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
