package testutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/amterp/palettator/internal/model"
)

// Band is a vertical stripe of a single color in a test image.
type Band struct {
	Color color.Color
	Width int
}

// BandImage returns an image made of vertical stripes, left to right.
func BandImage(height int, bands ...Band) *image.NRGBA {
	width := 0
	for _, b := range bands {
		width += b.Width
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	x := 0
	for _, b := range bands {
		for dx := 0; dx < b.Width; dx++ {
			for y := 0; y < height; y++ {
				img.Set(x+dx, y, b.Color)
			}
		}
		x += b.Width
	}
	return img
}

// GradientImage returns an image where almost every pixel has a distinct
// color.
func GradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8(x * 255 / max(1, width-1)),
				G: uint8(y * 255 / max(1, height-1)),
				B: uint8((x + y) * 255 / max(1, width+height-2)),
				A: 0xff,
			})
		}
	}
	return img
}

// WriteImage encodes img as PNG into dir and returns its path.
func WriteImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// TestPalette returns a palette with the given colors at equal weight.
func TestPalette(id, sourcePath string, colors ...model.Color) *model.Palette {
	swatches := make([]model.Swatch, len(colors))
	for i, c := range colors {
		swatches[i] = model.Swatch{Color: c, Weight: 1 / float64(len(colors))}
	}
	return model.NewPalette(id, sourcePath, swatches)
}

// PrimaryColors returns red, green and blue followed by six more
// distinct colors, nine in total.
func PrimaryColors() []model.Color {
	return []model.Color{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
		{R: 255, G: 255, B: 0},
		{R: 0, G: 255, B: 255},
		{R: 255, G: 0, B: 255},
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 128, G: 128, B: 128},
	}
}
