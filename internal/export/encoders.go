package export

import (
	"bufio"
	"encoding/binary"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/amterp/palettator/internal/model"
	"github.com/amterp/palettator/internal/util"
	"golang.org/x/text/encoding/unicode"
)

// Encoder serializes a palette's colors, in palette order.
type Encoder interface {
	Encode(w io.Writer, p *model.Palette) error
}

// CSVEncoder writes a header row followed by one row per color.
type CSVEncoder struct{}

func (CSVEncoder) Encode(w io.Writer, p *model.Palette) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"R", "G", "B", "HEX"}); err != nil {
		return err
	}
	for _, c := range p.Colors() {
		row := []string{
			strconv.Itoa(int(c.R)),
			strconv.Itoa(int(c.G)),
			strconv.Itoa(int(c.B)),
			c.Hex(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// jsonColor is the JSON shape of one exported color.
type jsonColor struct {
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
	Hex string `json:"hex"`
}

// JSONEncoder writes an indented array of {r, g, b, hex} objects.
type JSONEncoder struct{}

func (JSONEncoder) Encode(w io.Writer, p *model.Palette) error {
	colors := make([]jsonColor, 0, p.Len())
	for _, c := range p.Colors() {
		colors = append(colors, jsonColor{R: c.R, G: c.G, B: c.B, Hex: c.Hex()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(colors)
}

// ReadJSON reads colors back from a JSON export.
func ReadJSON(r io.Reader) ([]model.Color, error) {
	var raw []jsonColor
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode palette: %w", err)
	}

	colors := make([]model.Color, len(raw))
	for i, jc := range raw {
		c := model.Color{R: jc.R, G: jc.G, B: jc.B}
		if jc.Hex != "" {
			h, err := model.ParseHex(jc.Hex)
			if err != nil {
				return nil, fmt.Errorf("color %d: %w", i+1, err)
			}
			if h != c {
				return nil, fmt.Errorf("color %d: hex %s does not match rgb %v", i+1, jc.Hex, c)
			}
		}
		colors[i] = c
	}
	return colors, nil
}

// GPLEncoder writes a GIMP palette. Columns is the column count GIMP uses
// when displaying the palette.
type GPLEncoder struct {
	Columns int
}

func (e GPLEncoder) Encode(w io.Writer, p *model.Palette) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "GIMP Palette")
	fmt.Fprintf(bw, "Name: %s\n", util.FoldAccents(p.Name()))
	fmt.Fprintf(bw, "Columns: %d\n", e.Columns)
	fmt.Fprintln(bw, "#")
	for i, c := range p.Colors() {
		fmt.Fprintf(bw, "%s  Color %d\n", gplChannels(c), i+1)
	}
	return bw.Flush()
}

// gplChannels left-aligns each channel in a 3-wide field, so
// (255, 0, 0) becomes "255 0   0".
func gplChannels(c model.Color) string {
	s := fmt.Sprintf("%-3d %-3d %-3d", c.R, c.G, c.B)
	return strings.TrimRight(s, " ")
}

// ACOEncoder writes an Adobe Color Swatch file: a version 1 section
// followed by a version 2 section that repeats the colors with names.
// All values are big-endian.
type ACOEncoder struct{}

// acoColor is one color record: a color space id followed by four
// 16-bit components. RGB uses the first three, scaled 0..65535.
type acoColor struct {
	Space uint16
	W, X  uint16
	Y, Z  uint16
}

const acoSpaceRGB = 0

func (ACOEncoder) Encode(w io.Writer, p *model.Palette) error {
	colors := p.Colors()
	if len(colors) > math.MaxUint16 {
		return fmt.Errorf("aco holds at most %d colors, palette has %d", math.MaxUint16, len(colors))
	}
	records := make([]acoColor, len(colors))
	for i, c := range colors {
		records[i] = acoColor{
			Space: acoSpaceRGB,
			W:     uint16(c.R) * 257,
			X:     uint16(c.G) * 257,
			Y:     uint16(c.B) * 257,
		}
	}

	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.BigEndian, [2]uint16{1, uint16(len(records))}); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, records); err != nil {
		return err
	}

	if err := binary.Write(bw, binary.BigEndian, [2]uint16{2, uint16(len(records))}); err != nil {
		return err
	}
	utf16 := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	for i, rec := range records {
		if err := binary.Write(bw, binary.BigEndian, rec); err != nil {
			return err
		}
		name := colors[i].Hex()
		encoded, err := utf16.Bytes([]byte(name))
		if err != nil {
			return fmt.Errorf("failed to encode color name %s: %w", name, err)
		}
		// Length counts UTF-16 code units including the terminating NUL.
		if err := binary.Write(bw, binary.BigEndian, uint32(len(encoded)/2+1)); err != nil {
			return err
		}
		if _, err := bw.Write(encoded); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.BigEndian, uint16(0)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
