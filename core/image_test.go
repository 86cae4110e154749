package drawille_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	drawille "github.com/esimov/drawille/core"
)

// diagonal returns a white w x h image with a black diagonal.
func diagonal(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for i := 0; i < w && i < h; i++ {
		img.SetGray(i, i, color.Gray{Y: 0})
	}
	return img
}

func TestImage_DrawImageShouldThresholdPixels(t *testing.T) {
	img := diagonal(8, 8)
	c := drawille.NewCanvas()
	c.DrawImage(img, drawille.DefaultImageParams)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got, want := c.Get(float64(x), float64(y)), x == y; got != want {
				t.Fatalf("pixel (%d, %d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestImage_DrawImageInverted(t *testing.T) {
	img := diagonal(8, 8)
	c := drawille.NewCanvas()
	c.DrawImage(img, drawille.ImageParams{Threshold: 128, Invert: true})

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got, want := c.Get(float64(x), float64(y)), x != y; got != want {
				t.Fatalf("pixel (%d, %d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestImage_TransparentPixelsShouldBeBlank(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	c := drawille.NewCanvas()
	c.DrawImage(img, drawille.DefaultImageParams)

	if !c.Empty() {
		t.Fatalf("a fully transparent image should not set any pixel")
	}
}

func TestImage_ImageToFrameShouldKeepMargins(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetGray(3, 7, color.Gray{Y: 0})

	frame := drawille.ImageToFrame(img, drawille.DefaultImageParams)
	if frame != "\n ⢀" {
		t.Fatalf("expected %q, got %q", "\n ⢀", frame)
	}
}

func TestImage_DecodeImageShouldReturnNRGBA(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, diagonal(5, 3)); err != nil {
		t.Fatalf("cannot encode the test image: %v", err)
	}

	img, err := drawille.DecodeImage(&buf)
	if err != nil {
		t.Fatalf("cannot decode the image: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 3 {
		t.Fatalf("expected a 5x3 image, got %v", img.Bounds())
	}
	gray := drawille.RgbToGrayscale(img)
	if len(gray) != len(img.Pix)/4 {
		t.Fatalf("the grayscale buffer should hold one byte per pixel")
	}
	if gray[0] != 0 || gray[1] != 0xff {
		t.Fatalf("unexpected luma values: %v", gray[:2])
	}
}

func TestImage_DecodeImageShouldRejectGarbage(t *testing.T) {
	if _, err := drawille.DecodeImage(bytes.NewBufferString("not an image")); err == nil {
		t.Fatalf("expected a decoding error")
	}
}

func TestImage_GetImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("cannot create the sample image: %v", err)
	}
	if err := png.Encode(f, diagonal(4, 4)); err != nil {
		t.Fatalf("cannot encode the sample image: %v", err)
	}
	f.Close()

	img, err := drawille.GetImage(path)
	if err != nil {
		t.Fatalf("cannot read the sample image: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("expected width 4, got %d", img.Bounds().Dx())
	}
	if _, err := drawille.GetImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestImage_FitImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 100, 50))

	tests := []struct {
		name       string
		maxW, maxH int
		ratio      float64
		w, h       int
	}{
		{"shrink to width", 20, 20, 0, 20, 10},
		{"shrink to height", 100, 10, 0, 20, 10},
		{"explicit ratio", 10, 10, 0.5, 50, 25},
		{"never enlarge", 400, 400, 0, 100, 50},
		{"no limits", 0, 0, 0, 100, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := drawille.FitImage(src, tt.maxW, tt.maxH, tt.ratio)
			if img.Bounds().Dx() != tt.w || img.Bounds().Dy() != tt.h {
				t.Fatalf("expected %dx%d, got %dx%d", tt.w, tt.h, img.Bounds().Dx(), img.Bounds().Dy())
			}
		})
	}
}

func TestImage_DitherShouldProduceBlackAndWhite(t *testing.T) {
	const w, h = 16, 16
	gray := make([]uint8, w*h)
	for i := range gray {
		gray[i] = 128
	}

	out := drawille.Dither(gray, w, h)
	var black, white int
	for _, v := range out {
		switch v {
		case 0:
			black++
		case 255:
			white++
		default:
			t.Fatalf("unexpected dithered value %d", v)
		}
	}
	if black == 0 || white == 0 {
		t.Fatalf("mid gray should dither into both colors, got %d black and %d white", black, white)
	}
	if gray[0] != 128 {
		t.Fatalf("dither should not modify its input")
	}

	for _, v := range drawille.Dither(make([]uint8, w*h), w, h) {
		if v != 0 {
			t.Fatalf("black input should stay black")
		}
	}
}
