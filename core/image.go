package drawille

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ImageParams controls how an image is turned into canvas pixels.
type ImageParams struct {
	// Threshold is the luma (0-255) under which a pixel becomes a dot.
	Threshold uint8
	// Invert sets the pixels brighter than the threshold instead.
	Invert bool
	// Dither applies Floyd-Steinberg error diffusion before thresholding.
	Dither bool
}

// DefaultImageParams mirrors the usual mid-gray threshold.
var DefaultImageParams = ImageParams{Threshold: 128}

// GetImage opens and decodes the image stored at path.
func GetImage(path string) (*image.NRGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open the image file: %w", err)
	}
	defer file.Close()

	return DecodeImage(file)
}

// DecodeImage decodes an image from the reader and converts it to NRGBA.
// JPEG images are rotated according to their EXIF orientation tag.
func DecodeImage(r io.Reader) (*image.NRGBA, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("cannot decode the image: %w", err)
	}
	return imaging.Clone(src), nil
}

// RgbToGrayscale converts the image to a slice of luma values, one byte per
// pixel in row order. Transparent pixels are blended over white.
func RgbToGrayscale(src *image.NRGBA) []uint8 {
	cols, rows := src.Bounds().Dx(), src.Bounds().Dy()
	gray := make([]uint8, rows*cols)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			px := src.Pix[r*src.Stride+4*c : r*src.Stride+4*c+4]
			luma := 0.299*float64(px[0]) + 0.587*float64(px[1]) + 0.114*float64(px[2])
			alpha := float64(px[3]) / 255
			gray[r*cols+c] = uint8(luma*alpha + 255*(1-alpha) + 0.5)
		}
	}
	return gray
}

// FitImage resizes the image for drawing on a canvas. A positive ratio scales
// the image by that factor. Otherwise the image is shrunk, keeping its aspect,
// until it fits into maxW x maxH pixels; a non-positive limit is ignored.
// Images are never enlarged to fit.
func FitImage(img image.Image, maxW, maxH int, ratio float64) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	if ratio <= 0 {
		ratio = 1
		if maxW > 0 && maxW < w {
			ratio = float64(maxW) / float64(w)
		}
		if maxH > 0 && maxH < h {
			ratio = min(ratio, float64(maxH)/float64(h))
		}
	}
	nw := max(int(float64(w)*ratio), 1)
	nh := max(int(float64(h)*ratio), 1)

	if nw == w && nh == h {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, nw, nh, imaging.Lanczos)
}

// Dither reduces a w x h grayscale buffer to pure black and white using
// Floyd-Steinberg error diffusion. The input is left untouched.
func Dither(gray []uint8, w, h int) []uint8 {
	errs := make([]int, len(gray))
	for i, v := range gray {
		errs[i] = int(v)
	}
	out := make([]uint8, len(gray))

	spread := func(x, y, e, weight int) {
		if x < 0 || x >= w || y >= h {
			return
		}
		errs[y*w+x] += e * weight / 16
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			old := errs[y*w+x]
			val := 0
			if old >= 128 {
				val = 255
			}
			out[y*w+x] = uint8(val)

			e := old - val
			spread(x+1, y, e, 7)
			spread(x-1, y+1, e, 3)
			spread(x, y+1, e, 5)
			spread(x+1, y+1, e, 1)
		}
	}
	return out
}

// DrawImage sets a canvas pixel for every image pixel passing the threshold
// test. The top-left corner of the image lands on the canvas origin.
func (c *Canvas) DrawImage(img image.Image, p ImageParams) {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	gray := RgbToGrayscale(src)
	if p.Dither {
		gray = Dither(gray, w, h)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix := gray[y*w+x]
			if (p.Invert && pix > p.Threshold) || (!p.Invert && pix < p.Threshold) {
				c.Set(float64(x), float64(y))
			}
		}
	}
}

// ImageToFrame draws the image on a new canvas and renders it anchored at
// the origin, so blank margins at the top and left are kept.
func ImageToFrame(img image.Image, p ImageParams) string {
	c := NewCanvas()
	c.DrawImage(img, p)
	return c.Frame(MinX(0), MinY(0))
}
