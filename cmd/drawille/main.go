package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	drawille "github.com/esimov/drawille/core"
	"github.com/esimov/drawille/utils"
	"github.com/fogleman/gg"
	"golang.org/x/term"
)

const banner = `
┌┬┐┬─┐┌─┐┬ ┬┬┬  ┬  ┌─┐
 ││├┬┘├─┤│││││  │  ├┤
─┴┘┴└─┴ ┴└┴┘┴┴─┘┴─┘└─┘

Terminal drawing with braille characters.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

const (
	// shapePolygon - regular polygon traced with the line generator
	shapePolygon string = "polygon"
	// shapeCircle - circle rasterized as an image
	shapeCircle string = "circle"

	// message colors
	successColor = "\x1b[92m"
	errorColor   = "\x1b[31m"
	defaultColor = "\x1b[0m"
)

// Version indicates the current build version.
var Version string

// renderer holds the settings shared by every rendering mode.
type renderer struct {
	params  drawille.ImageParams
	ratio   float64
	maxW    int
	maxH    int
	font    string
	size    float64
	sides   int
	radius  float64
	fill    bool
	animate bool
}

func main() {
	var (
		// Flags
		source    = flag.String("in", "", "Source image: file path, URL or - for stdin")
		dest      = flag.String("out", pipeName, "Destination file")
		threshold = flag.Int("threshold", 128, "Luminance threshold (0-255) of a dot")
		ratio     = flag.Float64("ratio", 0, "Image resize ratio, 0 fits the image to the terminal")
		invert    = flag.Bool("invert", false, "Draw the pixels brighter than the threshold")
		dither    = flag.Bool("dither", false, "Apply Floyd-Steinberg dithering")
		text      = flag.String("text", "", "Render the given text instead of an image")
		font      = flag.String("font", "", "TrueType font used with -text")
		fontSize  = flag.Float64("size", 24, "Font size in points used with -font")
		shape     = flag.String("shape", "", "Draw a shape: polygon|circle")
		sides     = flag.Int("sides", 6, "Number of polygon sides")
		radius    = flag.Float64("radius", 40, "Shape radius in pixels")
		fill      = flag.Bool("fill", false, "Fill the circle")
		play      = flag.Bool("play", false, "Play animated GIFs in the terminal")
	)

	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, banner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(*source) == 0 && len(*text) == 0 && len(*shape) == 0 {
		log.Fatal("Usage: drawille -in input.jpg [-out frame.txt] | -text hello | -shape polygon")
	}
	if *threshold < 0 || *threshold > 255 {
		log.Fatalf("%sThe threshold must be between 0 and 255%s", errorColor, defaultColor)
	}

	cols, rows := utils.TerminalSize()
	maxW, maxH := utils.CanvasSize(cols, rows)

	r := &renderer{
		params: drawille.ImageParams{
			Threshold: uint8(*threshold),
			Invert:    *invert,
			Dither:    *dither,
		},
		ratio:   *ratio,
		maxW:    maxW,
		maxH:    maxH,
		font:    *font,
		size:    *fontSize,
		sides:   *sides,
		radius:  *radius,
		fill:    *fill,
		animate: *play,
	}

	var dst io.Writer = os.Stdout
	if *dest != pipeName {
		fn, err := os.Create(*dest)
		if err != nil {
			log.Fatalf("Unable to open output file: %v", err)
		}
		defer fn.Close()
		dst = fn
	}

	var (
		frame string
		err   error
	)
	switch {
	case len(*text) > 0:
		frame, err = r.renderText(*text)
	case len(*shape) > 0:
		frame, err = r.renderShape(*shape)
	default:
		frame, err = r.renderSource(*source, dst)
	}
	if err != nil {
		log.Fatalf("Rendering error: %s%v%s", errorColor, err, defaultColor)
	}
	if frame == "" {
		return
	}
	if _, err := fmt.Fprintln(dst, frame); err != nil {
		log.Fatalf("Error writing the frame: %v", err)
	}
}

// renderSource converts the source image into a frame. Animated GIFs are
// played directly on dst when requested, in which case the frame is empty.
func (r *renderer) renderSource(source string, dst io.Writer) (string, error) {
	start := time.Now()

	ind := utils.NewProgressIndicator("Rendering image...", time.Millisecond*100)
	ind.Start()

	data, err := readSource(source)
	if err != nil {
		ind.StopMsg = fmt.Sprintf("Rendering image... %sfailed ✗%s\n", errorColor, defaultColor)
		ind.Stop()
		return "", err
	}

	if r.animate {
		if g, err := gif.DecodeAll(bytes.NewReader(data)); err == nil && len(g.Image) > 1 {
			ind.Stop()
			return "", r.play(dst, g)
		}
	}

	src, err := drawille.DecodeImage(bytes.NewReader(data))
	if err != nil {
		ind.StopMsg = fmt.Sprintf("Rendering image... %sfailed ✗%s\n", errorColor, defaultColor)
		ind.Stop()
		return "", err
	}
	img := drawille.FitImage(src, r.maxW, r.maxH, r.ratio)
	frame := drawille.ImageToFrame(img, r.params)

	ind.StopMsg = fmt.Sprintf("Rendering image... %sfinished ✔%s %.2fs\n", successColor, defaultColor, time.Since(start).Seconds())
	ind.Stop()

	return frame, nil
}

// readSource loads the raw image bytes from a file, an URL or the stdin pipe.
func readSource(source string) ([]byte, error) {
	switch {
	case source == pipeName:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return io.ReadAll(os.Stdin)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		res, err := http.Get(source)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("cannot fetch %s: %s", source, res.Status)
		}
		return io.ReadAll(res.Body)
	default:
		contentType, err := utils.DetectFileContentType(source)
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(contentType, "text/") {
			return nil, fmt.Errorf("the provided file is not an image: %s", contentType)
		}
		return os.ReadFile(source)
	}
}

// renderText rasterizes the text with gg and draws it on a canvas.
func (r *renderer) renderText(text string) (string, error) {
	img, err := textImage(text, r.font, r.size)
	if err != nil {
		return "", err
	}
	img = drawille.FitImage(img, r.maxW, r.maxH, r.ratio)
	return drawille.ImageToFrame(img, r.params), nil
}

// textImage draws black text on a white background sized to fit the text.
// The default gg font face is used when no font file is given.
func textImage(text, font string, size float64) (image.Image, error) {
	measure := gg.NewContext(1, 1)
	if len(font) > 0 {
		if err := measure.LoadFontFace(font, size); err != nil {
			return nil, fmt.Errorf("cannot load the font: %w", err)
		}
	}
	w, h := measure.MeasureString(text)
	if w == 0 {
		return nil, errors.New("nothing to render")
	}

	pad := math.Ceil(h / 4)
	dc := gg.NewContext(int(math.Ceil(w+2*pad)), int(math.Ceil(h+2*pad)))
	if len(font) > 0 {
		if err := dc.LoadFontFace(font, size); err != nil {
			return nil, fmt.Errorf("cannot load the font: %w", err)
		}
	}
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(text, float64(dc.Width())/2, float64(dc.Height())/2, 0.5, 0.5)

	return dc.Image(), nil
}

// renderShape draws one of the supported shapes.
func (r *renderer) renderShape(shape string) (string, error) {
	switch shape {
	case shapePolygon:
		if r.sides < 1 {
			return "", fmt.Errorf("a polygon needs at least one side, got %d", r.sides)
		}
		c := drawille.NewCanvas()
		for x, y := range drawille.Polygon(0, 0, r.sides, r.radius) {
			c.Set(x, y)
		}
		return c.Frame(), nil
	case shapeCircle:
		size := int(math.Ceil(2*r.radius)) + 4
		dc := gg.NewContext(size, size)
		dc.SetColor(color.White)
		dc.Clear()
		dc.SetColor(color.Black)
		dc.DrawCircle(float64(size)/2, float64(size)/2, r.radius)
		if r.fill {
			dc.Fill()
		} else {
			dc.SetLineWidth(1.5)
			dc.Stroke()
		}
		return drawille.ImageToFrame(dc.Image(), r.params), nil
	}
	return "", fmt.Errorf("unsupported shape: %s", shape)
}
