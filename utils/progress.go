package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	drawille "github.com/esimov/drawille/core"
)

// ProgressIndicator initializes the progress indicator.
type ProgressIndicator struct {
	mu         *sync.RWMutex
	delay      time.Duration
	writer     io.Writer
	message    string
	lastOutput string
	frames     []string
	StopMsg    string
	hideCursor bool
	stopChan   chan struct{}
}

const (
	errorColor   = "\x1b[31m"
	successColor = "\x1b[32m"
	defaultColor = "\x1b[0m"
)

// cellPerimeter lists the dots on the border of a braille cell, clockwise
// starting from the top left corner.
var cellPerimeter = [][2]float64{
	{0, 0}, {1, 0}, {1, 1}, {1, 2}, {1, 3}, {0, 3}, {0, 2}, {0, 1},
}

// SpinnerFrames returns the animation frames of a snake of the given length
// running around the border of a single braille cell.
func SpinnerFrames(length int) []string {
	length = min(max(length, 1), len(cellPerimeter)-1)

	c := drawille.NewCanvas()
	frames := make([]string, 0, len(cellPerimeter))
	for i := range cellPerimeter {
		c.Clear()
		for j := 0; j < length; j++ {
			p := cellPerimeter[(i+j)%len(cellPerimeter)]
			c.Set(p[0], p[1])
		}
		frames = append(frames, c.Frame(drawille.MinX(0), drawille.MaxX(2)))
	}
	return frames
}

// NewProgressIndicator instantiates a new progress indicator.
func NewProgressIndicator(msg string, d time.Duration) *ProgressIndicator {
	return &ProgressIndicator{
		mu:         &sync.RWMutex{},
		delay:      d,
		writer:     os.Stderr,
		message:    msg,
		frames:     SpinnerFrames(3),
		hideCursor: false,
		stopChan:   make(chan struct{}, 1),
	}
}

// SetWriter redirects the indicator output. It must be called before Start.
func (pi *ProgressIndicator) SetWriter(w io.Writer) {
	pi.mu.Lock()
	defer pi.mu.Unlock()

	pi.writer = w
}

// Start starts the progress indicator.
func (pi *ProgressIndicator) Start() {
	if pi.hideCursor && runtime.GOOS != "windows" {
		// hides the cursor
		fmt.Fprint(pi.writer, "\033[?25l")
	}

	go func() {
		for {
			for _, frame := range pi.frames {
				select {
				case <-pi.stopChan:
					return
				default:
					pi.mu.Lock()

					output := fmt.Sprintf("\r%s%s %s%s", pi.message, successColor, frame, defaultColor)
					fmt.Fprint(pi.writer, output)
					pi.lastOutput = output

					pi.mu.Unlock()
					time.Sleep(pi.delay)
				}
			}
		}
	}()
}

// Stop stops the progress indicator.
func (pi *ProgressIndicator) Stop() {
	pi.mu.Lock()
	defer pi.mu.Unlock()

	pi.clear()
	pi.RestoreCursor()
	if len(pi.StopMsg) > 0 {
		fmt.Fprint(pi.writer, pi.StopMsg)
	}
	pi.stopChan <- struct{}{}
}

// RestoreCursor restores back the cursor visibility.
func (pi *ProgressIndicator) RestoreCursor() {
	if pi.hideCursor && runtime.GOOS != "windows" {
		// makes the cursor visible
		fmt.Fprint(pi.writer, "\033[?25h")
	}
}

// clear deletes the last line. Caller must hold the the locker.
func (pi *ProgressIndicator) clear() {
	n := utf8.RuneCountInString(pi.lastOutput)
	if runtime.GOOS == "windows" {
		clearString := "\r" + strings.Repeat(" ", n) + "\r"
		fmt.Fprint(pi.writer, clearString)
		pi.lastOutput = ""
		return
	}
	for _, c := range []string{"\b", "\127", "\b", "\033[K"} { // "\033[K" for macOS Terminal
		fmt.Fprint(pi.writer, strings.Repeat(c, n))
	}
	fmt.Fprintf(pi.writer, "\r\033[K") // clear line
	pi.lastOutput = ""
}
