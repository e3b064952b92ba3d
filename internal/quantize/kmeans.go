package quantize

import (
	"image"
	"image/color"
	"math"

	"github.com/amterp/palettator/internal/logging"
	"github.com/amterp/palettator/internal/model"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
)

const defaultMaxIterations = 32

// point is a distinct color in clustering space, weighted by how many
// pixels share it.
type point struct {
	coords clusters.Coordinates
	bin    bin
}

func (p point) Coordinates() clusters.Coordinates {
	return p.coords
}

// Distance returns the squared euclidean distance to c.
func (p point) Distance(c clusters.Coordinates) float64 {
	var d float64
	for i, v := range p.coords {
		diff := v - c[i]
		d += diff * diff
	}
	return d
}

// KMeans clusters colors with Lloyd's algorithm. Seeding is deterministic,
// so the same image always yields the same palette.
type KMeans struct {
	ColorSpace    string // model.ColorSpaceRGB or model.ColorSpaceLab
	MaxIterations int
}

// NewKMeans creates a k-means quantizer clustering in colorSpace.
func NewKMeans(colorSpace string) *KMeans {
	return &KMeans{
		ColorSpace:    colorSpace,
		MaxIterations: defaultMaxIterations,
	}
}

func (k *KMeans) Quantize(img image.Image, n int) ([]model.Swatch, error) {
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

	points := make([]point, len(bins))
	for i, b := range bins {
		points[i] = point{coords: k.toSpace(b.color), bin: b}
	}

	cc := k.seed(points, medianCutSeeds(img, n), n)
	assignment := make([]int, len(points))
	for i := range assignment {
		assignment[i] = -1
	}

	iterations := k.MaxIterations
	if iterations <= 0 {
		iterations = defaultMaxIterations
	}

	for it := 0; it < iterations; it++ {
		cc.Reset()
		changed := 0
		for i, p := range points {
			ci := cc.Nearest(p)
			if ci != assignment[i] {
				assignment[i] = ci
				changed++
			}
			cc[ci].Append(p)
		}
		recenter(cc)

		logging.Logger().Debug("kmeans iteration", "iteration", it+1, "changed", changed)
		if changed == 0 {
			break
		}
	}

	swatches := make([]model.Swatch, 0, n)
	for _, c := range cc {
		count := clusterWeight(c)
		if count == 0 {
			continue
		}
		swatches = append(swatches, model.Swatch{
			Color:  k.fromSpace(c.Center),
			Weight: float64(count) / float64(total),
		})
	}
	byDominance(swatches)
	return swatches, nil
}

// seed picks n initial centers. The median-cut palette of the image
// comes first; any shortfall is topped up from the distinct colors,
// starting with the most frequent, by choosing the candidate farthest from
// every center so far, scaled by how common it is.
func (k *KMeans) seed(points []point, initial []model.Color, n int) clusters.Clusters {
	maxCount := float64(points[0].bin.count)
	chosen := make([]bool, len(points))
	minDist := make([]float64, len(points))
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}

	cc := make(clusters.Clusters, 0, n)
	add := func(center clusters.Coordinates) {
		cc = append(cc, clusters.Cluster{Center: center})
		for i, p := range points {
			if d := p.Distance(center); d < minDist[i] {
				minDist[i] = d
			}
			if minDist[i] == 0 {
				chosen[i] = true
			}
		}
	}

	for _, c := range initial {
		if len(cc) == n {
			break
		}
		add(k.toSpace(c))
	}
	if len(cc) == 0 {
		add(clone(points[0].coords))
	}

	for len(cc) < n {
		best, bestScore := -1, -1.0
		for i, p := range points {
			if chosen[i] {
				continue
			}
			normW := float64(p.bin.count) / maxCount
			score := math.Sqrt(minDist[i]) * (0.55 + 0.45*math.Sqrt(normW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		add(clone(points[best].coords))
	}
	return cc
}

// medianCutSeeds returns the distinct colors of a median-cut palette.
func medianCutSeeds(img image.Image, n int) []model.Color {
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, n), img)

	seen := make(map[model.Color]bool, len(pal))
	out := make([]model.Color, 0, len(pal))
	for _, pc := range pal {
		c := model.ColorFrom(pc)
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func clone(c clusters.Coordinates) clusters.Coordinates {
	out := make(clusters.Coordinates, len(c))
	copy(out, c)
	return out
}

// recenter moves each center to the weighted mean of its points. Empty
// clusters keep their previous center.
func recenter(cc clusters.Clusters) {
	for ci := range cc {
		c := &cc[ci]
		total := clusterWeight(*c)
		if total == 0 {
			continue
		}
		center := make(clusters.Coordinates, len(c.Center))
		for _, o := range c.Observations {
			p := o.(point)
			w := float64(p.bin.count)
			for d, v := range p.coords {
				center[d] += v * w
			}
		}
		for d := range center {
			center[d] /= float64(total)
		}
		c.Center = center
	}
}

func clusterWeight(c clusters.Cluster) int {
	total := 0
	for _, o := range c.Observations {
		total += o.(point).bin.count
	}
	return total
}

func (k *KMeans) toSpace(c model.Color) clusters.Coordinates {
	if k.ColorSpace == model.ColorSpaceLab {
		l, a, b := c.Colorful().Lab()
		return clusters.Coordinates{l, a, b}
	}
	return clusters.Coordinates{float64(c.R), float64(c.G), float64(c.B)}
}

func (k *KMeans) fromSpace(v clusters.Coordinates) model.Color {
	if k.ColorSpace == model.ColorSpaceLab {
		r, g, b := colorful.Lab(v[0], v[1], v[2]).Clamped().RGB255()
		return model.Color{R: r, G: g, B: b}
	}
	return model.Color{R: channel(v[0]), G: channel(v[1]), B: channel(v[2])}
}

// channel rounds a float channel value to 0..255.
func channel(v float64) uint8 {
	return uint8(max(0, min(255, math.Round(v))))
}
