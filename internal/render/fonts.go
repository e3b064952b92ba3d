package render

import (
	"fmt"
	"os"

	"github.com/amterp/palettator/internal/logging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// LoadFace parses the TrueType or OpenType font at path and returns a face
// of the given size in points at 72 DPI.
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseFace(data, size)
}

func parseFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// resolveFace returns the configured font, else the bundled Go font, else
// the fixed 7x13 bitmap face. It never fails; each fallback taken is
// described in the returned warning.
func resolveFace(path string, size float64, bundled []byte) (font.Face, string) {
	var warning string
	if path != "" {
		face, err := LoadFace(path, size)
		if err == nil {
			return face, ""
		}
		warning = fmt.Sprintf("cannot load font %s, using bundled font: %v", path, err)
		logging.Logger().Warn("font load failed", "path", path, "error", err)
	}

	face, err := parseFace(bundled, size)
	if err == nil {
		return face, warning
	}
	logging.Logger().Warn("bundled font unavailable", "error", err)
	return basicfont.Face7x13, "bundled font unavailable, using basic bitmap font"
}

// Bundled font data, one per text role.
var (
	titleFontData    = gobold.TTF
	subtitleFontData = goregular.TTF
)
