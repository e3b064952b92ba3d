package export

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	palerr "github.com/amterp/palettator/internal/errors"
	"github.com/amterp/palettator/internal/model"
	"github.com/amterp/palettator/testutil"
)

func encode(t *testing.T, enc Encoder, p *model.Palette) string {
	t.Helper()
	var buf bytes.Buffer
	if err := enc.Encode(&buf, p); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"JSON", FormatJSON, false},
		{" gpl ", FormatGPL, false},
		{"Aco", FormatACO, false},
		{"png", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !palerr.IsUnsupportedFormat(err) {
				t.Errorf("ParseFormat(%q): expected UnsupportedFormatError, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCSVEncoder(t *testing.T) {
	p := testutil.TestPalette("p1", "/img/a.png", testutil.PrimaryColors()...)

	lines := strings.Split(strings.TrimRight(encode(t, CSVEncoder{}, p), "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	if lines[0] != "R,G,B,HEX" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "255,0,0,#FF0000" {
		t.Errorf("first row = %q, want %q", lines[1], "255,0,0,#FF0000")
	}
	if lines[9] != "128,128,128,#808080" {
		t.Errorf("last row = %q", lines[9])
	}
}

func TestGPLEncoder(t *testing.T) {
	p := testutil.TestPalette("p1", "/img/café.png", testutil.PrimaryColors()...)

	lines := strings.Split(encode(t, GPLEncoder{Columns: 3}, p), "\n")
	want := []string{
		"GIMP Palette",
		"Name: cafe",
		"Columns: 3",
		"#",
		"255 0   0  Color 1",
		"0   255 0  Color 2",
		"0   0   255  Color 3",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i+1, lines[i], w)
		}
	}
	if lines[12] != "128 128 128  Color 9" {
		t.Errorf("last color line = %q", lines[12])
	}
}

func TestACOEncoder(t *testing.T) {
	p := testutil.TestPalette("p1", "/img/a.png", model.Color{R: 255})

	got := []byte(encode(t, ACOEncoder{}, p))
	want := []byte{
		// version 1
		0x00, 0x01, 0x00, 0x01,
		0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		// version 2
		0x00, 0x02, 0x00, 0x01,
		0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x08,
		0x00, '#', 0x00, 'F', 0x00, 'F', 0x00, '0', 0x00, '0', 0x00, '0', 0x00, '0',
		0x00, 0x00,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ACO bytes mismatch:\n got % X\nwant % X", got, want)
	}
}

func TestACOEncoder_Count(t *testing.T) {
	p := testutil.TestPalette("p1", "/img/a.png", testutil.PrimaryColors()...)
	got := []byte(encode(t, ACOEncoder{}, p))

	// 4 header bytes + 10 per color, then 4 header bytes + 32 per color.
	if len(got) != 4+9*10+4+9*32 {
		t.Fatalf("unexpected length %d", len(got))
	}
	if got[2] != 0 || got[3] != 9 {
		t.Errorf("v1 count = %d", int(got[2])<<8|int(got[3]))
	}
	v2 := 4 + 9*10
	if got[v2+1] != 2 || got[v2+3] != 9 {
		t.Errorf("v2 header = % X", got[v2:v2+4])
	}
}

func TestJSONRoundTrip(t *testing.T) {
	colors := testutil.PrimaryColors()
	p := testutil.TestPalette("p1", "/img/a.png", colors...)

	out := encode(t, JSONEncoder{}, p)
	if !strings.Contains(out, `"hex": "#FF0000"`) {
		t.Errorf("expected indented hex field, got:\n%s", out)
	}

	got, err := ReadJSON(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if !slices.Equal(got, colors) {
		t.Errorf("round trip mismatch:\n got %v\nwant %v", got, colors)
	}
}

func TestReadJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "nope"},
		{"hex mismatch", `[{"r":255,"g":0,"b":0,"hex":"#00FF00"}]`},
		{"out of range", `[{"r":300,"g":0,"b":0}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExporter_Path(t *testing.T) {
	p := testutil.TestPalette("p1", "/photos/beach.day.jpg", testutil.PrimaryColors()...)

	cfg := model.DefaultConfig()
	if got := NewExporter(cfg).Path(p, FormatGPL); got != filepath.Join("/photos", "beach_palette.gpl") {
		t.Errorf("default path = %q", got)
	}

	cfg.ExportDir = "/exports"
	if got := NewExporter(cfg).Path(p, FormatACO); got != filepath.Join("/exports", "beach_palette.aco") {
		t.Errorf("export dir path = %q", got)
	}
}

func TestExporter_Export(t *testing.T) {
	dir := t.TempDir()
	p := testutil.TestPalette("p1", filepath.Join(dir, "sky.png"), testutil.PrimaryColors()...)
	e := NewExporter(model.DefaultConfig())

	path, err := e.Export(p, FormatCSV)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if path != filepath.Join(dir, "sky_palette.csv") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != encode(t, CSVEncoder{}, p) {
		t.Errorf("file content does not match encoder output")
	}

	if _, err := e.Export(p, Format("png")); !palerr.IsUnsupportedFormat(err) {
		t.Errorf("expected UnsupportedFormatError, got %v", err)
	}
}

func TestExporter_ExportDirCreated(t *testing.T) {
	dir := t.TempDir()
	cfg := model.DefaultConfig()
	cfg.ExportDir = filepath.Join(dir, "nested", "exports")

	p := testutil.TestPalette("p1", "/elsewhere/sky.png", testutil.PrimaryColors()...)
	path, err := NewExporter(cfg).Export(p, FormatJSON)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected exported file: %v", err)
	}
}

func TestExporter_ExportAllPartialFailure(t *testing.T) {
	root := t.TempDir()
	var palettes []*model.Palette
	for _, name := range []string{"one", "two", "three"} {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
		palettes = append(palettes, testutil.TestPalette(name, filepath.Join(dir, name+".png"), testutil.PrimaryColors()...))
	}

	// A directory occupying the target path makes the rename fail.
	blocked := filepath.Join(root, "two", "two_palette.csv")
	if err := os.MkdirAll(filepath.Join(blocked, "child"), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	result := NewExporter(model.DefaultConfig()).ExportAll(palettes, []Format{FormatCSV})

	if len(result.Written) != 2 {
		t.Errorf("expected 2 files written, got %d: %v", len(result.Written), result.Written)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failures))
	}
	if result.OK() {
		t.Error("OK should be false with failures")
	}

	f := result.Failures[0]
	if f.Palette.ID != "two" || f.Format != FormatCSV {
		t.Errorf("unexpected failure: %+v", f)
	}
	if !palerr.IsIO(f.Err) {
		t.Errorf("expected IOError, got %v", f.Err)
	}

	for _, p := range []*model.Palette{palettes[0], palettes[2]} {
		data, err := os.ReadFile(filepath.Join(filepath.Dir(p.SourcePath), p.Name()+"_palette.csv"))
		if err != nil {
			t.Errorf("missing export for %s: %v", p.ID, err)
			continue
		}
		if string(data) != encode(t, CSVEncoder{}, p) {
			t.Errorf("export for %s does not match palette", p.ID)
		}
	}
}

func TestExporter_ExportAllNameCollision(t *testing.T) {
	dir := t.TempDir()
	first := testutil.TestPalette("p1", filepath.Join(dir, "photo.png"), testutil.PrimaryColors()[:2]...)
	second := testutil.TestPalette("p2", filepath.Join(dir, "photo.jpg.png"), testutil.PrimaryColors()[2:5]...)

	result := NewExporter(model.DefaultConfig()).ExportAll([]*model.Palette{first, second}, []Format{FormatCSV})
	if !result.OK() {
		t.Fatalf("unexpected failures: %+v", result.Failures)
	}

	want := []string{
		filepath.Join(dir, "photo_palette.csv"),
		filepath.Join(dir, "photo_palette_2.csv"),
	}
	if len(result.Written) != 2 || result.Written[0] != want[0] || result.Written[1] != want[1] {
		t.Fatalf("Written = %v, want %v", result.Written, want)
	}
	for i, p := range []*model.Palette{first, second} {
		data, err := os.ReadFile(want[i])
		if err != nil {
			t.Fatalf("missing export %s: %v", want[i], err)
		}
		if string(data) != encode(t, CSVEncoder{}, p) {
			t.Errorf("%s does not hold palette %s", want[i], p.ID)
		}
	}
}

func TestACOEncoder_TooManyColors(t *testing.T) {
	colors := make([]model.Color, math.MaxUint16+1)
	p := testutil.TestPalette("big", "/img/big.png", colors...)

	if err := (ACOEncoder{}).Encode(io.Discard, p); err == nil {
		t.Error("expected error for a palette larger than the ACO count field")
	}
}

func TestReadJSON_MalformedHex(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`[{"r":255,"g":0,"b":0,"hex":"#GG0000"}]`))
	if err == nil {
		t.Error("expected error for malformed hex")
	}
}

func TestExporter_ExportAllFormats(t *testing.T) {
	dir := t.TempDir()
	p := testutil.TestPalette("p1", filepath.Join(dir, "leaf.png"), testutil.PrimaryColors()...)

	result := NewExporter(model.DefaultConfig()).ExportAll([]*model.Palette{p}, Formats())
	if !result.OK() {
		t.Fatalf("unexpected failures: %+v", result.Failures)
	}
	if len(result.Written) != 4 {
		t.Errorf("expected 4 files, got %d", len(result.Written))
	}
}
