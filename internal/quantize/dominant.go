package quantize

import (
	"image"

	"github.com/amterp/palettator/internal/model"
	"github.com/cenkalti/dominantcolor"
)

// Dominant finds the most visually dominant colors using the
// dominantcolor package. It may return fewer than n swatches for
// images with little variety.
type Dominant struct{}

func (d *Dominant) Quantize(img image.Image, n int) ([]model.Swatch, error) {
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

	found := dominantcolor.FindWeight(img, n)
	if len(found) == 0 {
		return nil, errNoPixels
	}

	sum := 0.0
	for _, c := range found {
		sum += c.Weight
	}

	seen := make(map[model.Color]bool, len(found))
	swatches := make([]model.Swatch, 0, len(found))
	for _, c := range found {
		col := model.ColorFrom(c.RGBA)
		if seen[col] {
			continue
		}
		seen[col] = true
		w := c.Weight
		if sum > 0 {
			w /= sum
		}
		swatches = append(swatches, model.Swatch{Color: col, Weight: w})
	}
	byDominance(swatches)
	return swatches, nil
}
