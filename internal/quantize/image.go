package quantize

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	palerr "github.com/amterp/palettator/internal/errors"
	"github.com/disintegration/gift"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadImage opens and decodes the image at path. Any failure is reported
// as an ImageLoadError.
func LoadImage(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, palerr.ImageLoad(path, err)
	}
	if info.IsDir() {
		return nil, palerr.ImageLoad(path, errIsDirectory)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, palerr.ImageLoad(path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, palerr.ImageLoad(path, err)
	}
	return img, nil
}

// Resize downscales img so neither side exceeds maxDim, keeping the aspect
// ratio. Images already within bounds are returned unchanged.
func Resize(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	if maxDim <= 0 || (b.Dx() <= maxDim && b.Dy() <= maxDim) {
		return img
	}

	g := gift.New(gift.ResizeToFit(maxDim, maxDim, gift.LinearResampling))
	dst := image.NewNRGBA(g.Bounds(b))
	g.Draw(dst, img)
	return dst
}
