package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	drawille "github.com/esimov/drawille/core"
)

func newTestRenderer() *renderer {
	return &renderer{
		params: drawille.DefaultImageParams,
		maxW:   160,
		maxH:   100,
		size:   24,
		sides:  4,
		radius: 10,
	}
}

func hasDots(frame string) bool {
	for _, r := range frame {
		if r > 0x2800 && r <= 0x28ff {
			return true
		}
	}
	return false
}

func TestRenderer_TextShouldProduceDots(t *testing.T) {
	r := newTestRenderer()
	frame, err := r.renderText("Hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hasDots(frame) {
		t.Fatalf("expected braille dots in %q", frame)
	}
}

func TestRenderer_TextWithMissingFontShouldFail(t *testing.T) {
	r := newTestRenderer()
	r.font = filepath.Join(t.TempDir(), "missing.ttf")
	if _, err := r.renderText("Hi"); err == nil {
		t.Fatalf("expected an error for a missing font")
	}
}

func TestRenderer_Shapes(t *testing.T) {
	r := newTestRenderer()
	for _, shape := range []string{shapePolygon, shapeCircle} {
		frame, err := r.renderShape(shape)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", shape, err)
		}
		if !hasDots(frame) {
			t.Fatalf("%s: expected braille dots in %q", shape, frame)
		}
	}

	r.fill = true
	if frame, err := r.renderShape(shapeCircle); err != nil || !strings.ContainsRune(frame, '⣿') {
		t.Fatalf("a filled circle should contain full cells, got %q (%v)", frame, err)
	}

	if _, err := r.renderShape("star"); err == nil {
		t.Fatalf("expected an error for an unsupported shape")
	}
	r.sides = 0
	if _, err := r.renderShape(shapePolygon); err == nil {
		t.Fatalf("expected an error for a polygon without sides")
	}
}

func TestReadSource_ShouldRejectText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := readSource(path); err == nil {
		t.Fatalf("expected an error for a text file")
	}
}

func TestRenderer_PlayGIFShouldRenderEveryFrame(t *testing.T) {
	palette := color.Palette{color.Black, color.White}
	black := image.NewPaletted(image.Rect(0, 0, 4, 4), palette)
	white := image.NewPaletted(image.Rect(0, 0, 4, 4), palette)
	for i := range white.Pix {
		white.Pix[i] = 1
	}
	g := &gif.GIF{
		Image:     []*image.Paletted{black, white},
		Delay:     []int{1, 1},
		LoopCount: -1,
		Config:    image.Config{Width: 4, Height: 4},
	}

	var out bytes.Buffer
	r := newTestRenderer()
	if err := r.playGIF(context.Background(), &out, g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(out.String(), clearScreen); n != 2 {
		t.Fatalf("expected 2 rendered frames, got %d", n)
	}
	if !strings.Contains(out.String(), "⣿⣿") {
		t.Fatalf("the black frame should render as full cells: %q", out.String())
	}
}

func TestRenderer_PlayGIFShouldStopOnCancel(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 2, 4), color.Palette{color.Black})
	g := &gif.GIF{
		Image:  []*image.Paletted{img, img},
		Delay:  []int{100, 100},
		Config: image.Config{Width: 2, Height: 4},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := newTestRenderer().playGIF(ctx, &out, g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(out.String(), clearScreen); n != 1 {
		t.Fatalf("expected playback to stop after the first frame, got %d frames", n)
	}
}
