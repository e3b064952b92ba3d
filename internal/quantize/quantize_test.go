package quantize

import (
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	palerr "github.com/amterp/palettator/internal/errors"
	"github.com/amterp/palettator/internal/model"
	"github.com/amterp/palettator/testutil"
)

var (
	red   = color.NRGBA{R: 255, A: 0xff}
	green = color.NRGBA{G: 255, A: 0xff}
	blue  = color.NRGBA{B: 255, A: 0xff}
)

func twoGroupImage() image.Image {
	return testutil.BandImage(4,
		testutil.Band{Color: color.NRGBA{R: 250, A: 0xff}, Width: 10},
		testutil.Band{Color: color.NRGBA{R: 255, G: 5, B: 5, A: 0xff}, Width: 10},
		testutil.Band{Color: color.NRGBA{R: 245, G: 10, A: 0xff}, Width: 10},
		testutil.Band{Color: color.NRGBA{B: 250, A: 0xff}, Width: 5},
		testutil.Band{Color: color.NRGBA{R: 5, G: 5, B: 255, A: 0xff}, Width: 5},
	)
}

func assertDominanceOrder(t *testing.T, swatches []model.Swatch) {
	t.Helper()
	for i := 1; i < len(swatches); i++ {
		if swatches[i].Weight > swatches[i-1].Weight {
			t.Errorf("swatch %d weight %f exceeds previous %f", i, swatches[i].Weight, swatches[i-1].Weight)
		}
	}
}

func assertWeightsSumToOne(t *testing.T, swatches []model.Swatch) {
	t.Helper()
	sum := 0.0
	for _, s := range swatches {
		sum += s.Weight
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights sum to %f, want 1", sum)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		method  string
		wantErr bool
	}{
		{model.MethodKMeans, false},
		{"", false},
		{model.MethodMedianCut, false},
		{model.MethodDominant, false},
		{"octree", true},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			q, err := New(tt.method, model.ColorSpaceRGB)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unknown method")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			switch q.(type) {
			case *KMeans, *MedianCut, *Dominant:
			default:
				t.Errorf("unexpected quantizer type %T", q)
			}
		})
	}
}

func TestQuantizers_ExactColorsWhenFewDistinct(t *testing.T) {
	img := testutil.BandImage(2,
		testutil.Band{Color: red, Width: 6},
		testutil.Band{Color: green, Width: 3},
		testutil.Band{Color: blue, Width: 1},
	)

	quantizers := map[string]Quantizer{
		"kmeans":    NewKMeans(model.ColorSpaceRGB),
		"mediancut": &MedianCut{},
		"dominant":  &Dominant{},
	}

	for name, q := range quantizers {
		t.Run(name, func(t *testing.T) {
			swatches, err := q.Quantize(img, 9)
			if err != nil {
				t.Fatalf("Quantize failed: %v", err)
			}
			want := []model.Color{{R: 255}, {G: 255}, {B: 255}}
			if len(swatches) != len(want) {
				t.Fatalf("expected %d swatches, got %d", len(want), len(swatches))
			}
			for i, c := range want {
				if swatches[i].Color != c {
					t.Errorf("swatch %d: got %v, want %v", i, swatches[i].Color, c)
				}
			}
			if math.Abs(swatches[0].Weight-0.6) > 1e-9 {
				t.Errorf("expected first weight 0.6, got %f", swatches[0].Weight)
			}
		})
	}
}

func TestKMeans_SeparatesGroups(t *testing.T) {
	for _, space := range []string{model.ColorSpaceRGB, model.ColorSpaceLab} {
		t.Run(space, func(t *testing.T) {
			swatches, err := NewKMeans(space).Quantize(twoGroupImage(), 2)
			if err != nil {
				t.Fatalf("Quantize failed: %v", err)
			}
			if len(swatches) != 2 {
				t.Fatalf("expected 2 swatches, got %d", len(swatches))
			}

			first, second := swatches[0].Color, swatches[1].Color
			if first.R < 200 || first.B > 50 {
				t.Errorf("expected dominant color to be red, got %v", first)
			}
			if second.B < 200 || second.R > 50 {
				t.Errorf("expected second color to be blue, got %v", second)
			}
			if math.Abs(swatches[0].Weight-0.75) > 1e-9 {
				t.Errorf("expected red weight 0.75, got %f", swatches[0].Weight)
			}
			assertWeightsSumToOne(t, swatches)
		})
	}
}

func TestQuantizers_ManyColors(t *testing.T) {
	img := testutil.GradientImage(48, 48)

	quantizers := map[string]Quantizer{
		"kmeans":     NewKMeans(model.ColorSpaceRGB),
		"kmeans-lab": NewKMeans(model.ColorSpaceLab),
		"mediancut":  &MedianCut{},
		"dominant":   &Dominant{},
	}

	for name, q := range quantizers {
		t.Run(name, func(t *testing.T) {
			swatches, err := q.Quantize(img, 6)
			if err != nil {
				t.Fatalf("Quantize failed: %v", err)
			}
			if len(swatches) == 0 || len(swatches) > 6 {
				t.Fatalf("expected 1-6 swatches, got %d", len(swatches))
			}
			assertDominanceOrder(t, swatches)
		})
	}
}

func TestKMeans_Deterministic(t *testing.T) {
	img := testutil.GradientImage(40, 30)

	for _, space := range []string{model.ColorSpaceRGB, model.ColorSpaceLab} {
		t.Run(space, func(t *testing.T) {
			first, err := NewKMeans(space).Quantize(img, 9)
			if err != nil {
				t.Fatalf("Quantize failed: %v", err)
			}
			for run := 0; run < 3; run++ {
				again, err := NewKMeans(space).Quantize(img, 9)
				if err != nil {
					t.Fatalf("Quantize failed: %v", err)
				}
				if !slices.Equal(first, again) {
					t.Fatalf("run %d differs:\n got %v\nwant %v", run, again, first)
				}
			}
		})
	}
}

func TestQuantize_TransparentImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))

	if _, err := NewKMeans(model.ColorSpaceRGB).Quantize(img, 3); err == nil {
		t.Error("expected error for fully transparent image")
	}
}

func TestExtractor_ExactSize(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		img  image.Image
	}{
		{"gradient", testutil.GradientImage(64, 64)},
		{"three colors", testutil.BandImage(4,
			testutil.Band{Color: red, Width: 5},
			testutil.Band{Color: green, Width: 3},
			testutil.Band{Color: blue, Width: 2},
		)},
		{"single color", testutil.BandImage(4, testutil.Band{Color: green, Width: 4})},
	}

	for _, method := range []string{model.MethodKMeans, model.MethodMedianCut, model.MethodDominant} {
		cfg := model.DefaultConfig()
		cfg.Method = method

		ext, err := NewExtractor(cfg)
		if err != nil {
			t.Fatalf("NewExtractor failed: %v", err)
		}

		for _, tt := range tests {
			t.Run(method+"/"+tt.name, func(t *testing.T) {
				path := testutil.WriteImage(t, dir, "img.png", tt.img)
				swatches, err := ext.Extract(path)
				if err != nil {
					t.Fatalf("Extract failed: %v", err)
				}
				if len(swatches) != cfg.PaletteSize {
					t.Errorf("expected %d swatches, got %d", cfg.PaletteSize, len(swatches))
				}
			})
		}
	}
}

func TestExtractor_PadsWithDominantColor(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.PaletteSize = 5
	ext, err := NewExtractor(cfg)
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}

	img := testutil.BandImage(2,
		testutil.Band{Color: blue, Width: 1},
		testutil.Band{Color: red, Width: 3},
	)
	swatches, err := ext.ExtractImage(img)
	if err != nil {
		t.Fatalf("ExtractImage failed: %v", err)
	}

	want := []model.Color{{R: 255}, {B: 255}, {R: 255}, {R: 255}, {R: 255}}
	if len(swatches) != len(want) {
		t.Fatalf("expected %d swatches, got %d", len(want), len(swatches))
	}
	for i, c := range want {
		if swatches[i].Color != c {
			t.Errorf("swatch %d: got %v, want %v", i, swatches[i].Color, c)
		}
	}
	for _, s := range swatches[2:] {
		if s.Weight != 0 {
			t.Errorf("expected padding weight 0, got %f", s.Weight)
		}
	}
}

func TestExtractor_LuminanceSort(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.PaletteSize = 3
	cfg.SortMode = model.SortLuminance
	ext, err := NewExtractor(cfg)
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}

	img := testutil.BandImage(2,
		testutil.Band{Color: color.White, Width: 5},
		testutil.Band{Color: color.Black, Width: 1},
		testutil.Band{Color: color.Gray{Y: 128}, Width: 3},
	)
	swatches, err := ext.ExtractImage(img)
	if err != nil {
		t.Fatalf("ExtractImage failed: %v", err)
	}

	want := []model.Color{{}, {R: 128, G: 128, B: 128}, {R: 255, G: 255, B: 255}}
	for i, c := range want {
		if swatches[i].Color != c {
			t.Errorf("swatch %d: got %v, want %v", i, swatches[i].Color, c)
		}
	}
}

func TestExtractor_Errors(t *testing.T) {
	dir := t.TempDir()
	ext, err := NewExtractor(model.DefaultConfig())
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}

	transparent := testutil.WriteImage(t, dir, "clear.png", image.NewNRGBA(image.Rect(0, 0, 4, 4)))

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.png")},
		{"directory", dir},
		{"transparent", transparent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ext.Extract(tt.path)
			if !palerr.IsImageLoad(err) {
				t.Errorf("expected ImageLoadError, got %v", err)
			}
		})
	}
}

func TestLoadImage_Corrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	_, err := LoadImage(path)
	if !palerr.IsImageLoad(err) {
		t.Errorf("expected ImageLoadError, got %v", err)
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"landscape", 400, 200, 256, 256, 128},
		{"portrait", 100, 300, 150, 50, 150},
		{"within bounds", 100, 80, 256, 100, 80},
		{"disabled", 400, 200, 0, 400, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resize(testutil.GradientImage(tt.w, tt.h), tt.max)
			b := out.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPad(t *testing.T) {
	in := []model.Swatch{
		{Color: model.Color{B: 255}, Weight: 0.2},
		{Color: model.Color{R: 255}, Weight: 0.8},
	}

	out := Pad(in, 4)
	if len(out) != 4 {
		t.Fatalf("expected 4 swatches, got %d", len(out))
	}
	for _, s := range out[2:] {
		if s.Color != (model.Color{R: 255}) {
			t.Errorf("expected padding with heaviest color, got %v", s.Color)
		}
	}

	if got := Pad(in, 1); len(got) != 2 {
		t.Errorf("Pad must not shrink, got %d swatches", len(got))
	}
}
