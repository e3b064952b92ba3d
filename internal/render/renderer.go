// Package render draws palettes as swatch images: a grid of solid color
// cells under a header with the source file name.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	palerr "github.com/amterp/palettator/internal/errors"
	"github.com/amterp/palettator/internal/model"
	"github.com/amterp/palettator/internal/util"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Text on cells brighter than this relative luminance is drawn black.
const contrastThreshold = 0.179

// Renderer draws palettes using a fixed layout taken from configuration.
type Renderer struct {
	squareX   int
	squareY   int
	columns   int
	titleSize int
	savePath  string

	title    font.Face
	subtitle font.Face
}

// NewRenderer creates a renderer and loads its fonts. Fonts that cannot be
// loaded are replaced by bundled ones; the returned warnings say which.
func NewRenderer(cfg model.Config) (*Renderer, []string) {
	var warnings []string

	title, w := resolveFace(cfg.TitleFont, float64(cfg.TitleSize), titleFontData)
	if w != "" {
		warnings = append(warnings, w)
	}
	subtitle, w := resolveFace(cfg.SubtitleFont, float64(cfg.SubtitleSize), subtitleFontData)
	if w != "" {
		warnings = append(warnings, w)
	}

	return &Renderer{
		squareX:   cfg.SquareX,
		squareY:   cfg.SquareY,
		columns:   max(1, cfg.Columns),
		titleSize: cfg.TitleSize,
		savePath:  cfg.SavePath,
		title:     title,
		subtitle:  subtitle,
	}, warnings
}

// HeaderHeight returns the height of the title band above the grid.
func (r *Renderer) HeaderHeight() int {
	return 2 * r.titleSize
}

// Bounds returns the canvas size for a palette of n colors.
func (r *Renderer) Bounds(n int) image.Rectangle {
	rows := (n + r.columns - 1) / r.columns
	return image.Rect(0, 0, r.columns*r.squareX, r.HeaderHeight()+rows*r.squareY)
}

// CellRect returns the rectangle of the i-th color, row-major in palette
// order.
func (r *Renderer) CellRect(i int) image.Rectangle {
	row, col := i/r.columns, i%r.columns
	x := col * r.squareX
	y := r.HeaderHeight() + row*r.squareY
	return image.Rect(x, y, x+r.squareX, y+r.squareY)
}

// Draw composes the swatch image for p.
func (r *Renderer) Draw(p *model.Palette) *image.NRGBA {
	img := image.NewNRGBA(r.Bounds(p.Len()))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	header := image.Rect(0, 0, img.Bounds().Dx(), r.HeaderHeight())
	r.drawText(img, r.title, filepath.Base(p.SourcePath), header, false, color.Black)

	for i, s := range p.Swatches {
		cell := r.CellRect(i)
		draw.Draw(img, cell, image.NewUniform(s.Color), image.Point{}, draw.Src)

		var ink color.Color = color.White
		if s.Color.Luminance() > contrastThreshold {
			ink = color.Black
		}

		titleH := lineHeight(r.title)
		subH := lineHeight(r.subtitle)
		top := cell.Min.Y + (cell.Dy()-titleH-subH)/2

		r.drawText(img, r.title, s.Color.Hex(),
			image.Rect(cell.Min.X, top, cell.Max.X, top+titleH), true, ink)
		r.drawText(img, r.subtitle, fmt.Sprintf("%.2f%%", s.Weight*100),
			image.Rect(cell.Min.X, top+titleH, cell.Max.X, top+titleH+subH), true, ink)
	}
	return img
}

// Render draws p and writes it to <save_path>/<stem>_palette.png, replacing
// any previous file of that name. It returns the written path.
func (r *Renderer) Render(p *model.Palette) (string, error) {
	if err := os.MkdirAll(r.savePath, 0755); err != nil {
		return "", &palerr.IOError{Op: "create", Path: r.savePath, Err: err}
	}

	path := filepath.Join(r.savePath, p.Name()+"_palette.png")
	img := r.Draw(p)
	err := util.WriteFileAtomic(path, func(w io.Writer) error {
		return png.Encode(w, img)
	})
	if err != nil {
		return "", palerr.WriteFailed(path, err)
	}
	return path, nil
}

// drawText writes s inside box, vertically centered and either
// horizontally centered or left-aligned with a small margin.
func (r *Renderer) drawText(dst draw.Image, face font.Face, s string, box image.Rectangle, center bool, ink color.Color) {
	m := face.Metrics()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: face,
	}

	x := fixed.I(box.Min.X + r.titleSize/2)
	if center {
		x = fixed.I(box.Min.X+box.Dx()/2) - d.MeasureString(s)/2
	}
	height := m.Ascent + m.Descent
	y := fixed.I(box.Min.Y+box.Dy()/2) - height/2 + m.Ascent

	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(s)
}

func lineHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}
