package model

import (
	"fmt"
	"slices"
	"strings"

	palerr "github.com/amterp/palettator/internal/errors"
)

// MaxPaletteSize bounds palette_size. ACO files store the color count in
// 16 bits, and larger palettes would not fit the swatch grid anyway.
const MaxPaletteSize = 256

// Quantization methods.
const (
	MethodKMeans    = "kmeans"
	MethodMedianCut = "mediancut"
	MethodDominant  = "dominant"
)

// Color spaces used for clustering.
const (
	ColorSpaceRGB = "rgb"
	ColorSpaceLab = "lab"
)

// Palette orderings.
const (
	SortFrequency = "frequency"
	SortLuminance = "luminance"
)

// Config represents the palettator configuration.
// Stored as TOML, either at the top level or under a [palette] table.
type Config struct {
	PaletteSize  int    `toml:"palette_size"`
	SquareX      int    `toml:"square_x"`
	SquareY      int    `toml:"square_y"`
	Columns      int    `toml:"columns"`
	TitleSize    int    `toml:"title_size"`
	SubtitleSize int    `toml:"subtitle_size"`
	TitleFont    string `toml:"title_font"`    // Empty for the bundled font
	SubtitleFont string `toml:"subtitle_font"` // Empty for the bundled font
	Resize       bool   `toml:"resize"`
	ResizeMax    int    `toml:"resize_max"`
	ClearConsole bool   `toml:"clear_console"`
	SavePath     string `toml:"save_path"`
	ExportDir    string `toml:"export_dir"` // Empty to export next to the source image
	Method       string `toml:"method"`
	ColorSpace   string `toml:"color_space"`
	SortMode     string `toml:"sort_mode"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		PaletteSize:  9,
		SquareX:      100,
		SquareY:      100,
		Columns:      3,
		TitleSize:    18,
		SubtitleSize: 14,
		Resize:       true,
		ResizeMax:    256,
		ClearConsole: true,
		SavePath:     "output",
		Method:       MethodKMeans,
		ColorSpace:   ColorSpaceRGB,
		SortMode:     SortFrequency,
	}
}

// Validate replaces unusable values with their defaults and returns one
// *errors.ConfigError per replaced key.
func (c *Config) Validate() []error {
	def := DefaultConfig()
	var warnings []error

	positive := []struct {
		key string
		val *int
		def int
	}{
		{"palette_size", &c.PaletteSize, def.PaletteSize},
		{"square_x", &c.SquareX, def.SquareX},
		{"square_y", &c.SquareY, def.SquareY},
		{"columns", &c.Columns, def.Columns},
		{"title_size", &c.TitleSize, def.TitleSize},
		{"subtitle_size", &c.SubtitleSize, def.SubtitleSize},
		{"resize_max", &c.ResizeMax, def.ResizeMax},
	}
	for _, p := range positive {
		if *p.val <= 0 {
			warnings = append(warnings, palerr.InvalidConfig(p.key, "must be positive, using default"))
			*p.val = p.def
		}
	}

	if c.PaletteSize > MaxPaletteSize {
		warnings = append(warnings, palerr.InvalidConfig("palette_size",
			fmt.Sprintf("must be at most %d, using %d", MaxPaletteSize, MaxPaletteSize)))
		c.PaletteSize = MaxPaletteSize
	}

	if c.SavePath == "" {
		warnings = append(warnings, palerr.InvalidConfig("save_path", "is empty, using default"))
		c.SavePath = def.SavePath
	}

	oneOf := []struct {
		key     string
		val     *string
		allowed []string
	}{
		{"method", &c.Method, []string{MethodKMeans, MethodMedianCut, MethodDominant}},
		{"color_space", &c.ColorSpace, []string{ColorSpaceRGB, ColorSpaceLab}},
		{"sort_mode", &c.SortMode, []string{SortFrequency, SortLuminance}},
	}
	for _, o := range oneOf {
		if !slices.Contains(o.allowed, *o.val) {
			warnings = append(warnings, palerr.InvalidConfig(o.key, "must be one of "+strings.Join(o.allowed, "|")+", using default"))
			*o.val = o.allowed[0]
		}
	}

	return warnings
}
