package main

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"os/signal"
	"time"

	drawille "github.com/esimov/drawille/core"
)

const (
	clearScreen = "\x1b[2J\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"

	// minDelay is used for frames declaring no delay at all.
	minDelay = 100 * time.Millisecond
)

// play renders the GIF frames one after the other until the animation ends
// or the process is interrupted.
func (r *renderer) play(w io.Writer, g *gif.GIF) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprint(w, hideCursor)
	defer fmt.Fprint(w, showCursor)

	return r.playGIF(ctx, w, g)
}

func (r *renderer) playGIF(ctx context.Context, w io.Writer, g *gif.GIF) error {
	var (
		screen = image.NewRGBA(image.Rect(0, 0, g.Config.Width, g.Config.Height))
		c      = drawille.NewCanvas()
	)
	if screen.Bounds().Empty() {
		screen = image.NewRGBA(g.Image[0].Bounds())
	}

	for loop := 0; g.LoopCount <= 0 || loop <= g.LoopCount; loop++ {
		for i, frame := range g.Image {
			draw.Draw(screen, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

			c.Clear()
			c.DrawImage(drawille.FitImage(screen, r.maxW, r.maxH, r.ratio), r.params)
			if _, err := fmt.Fprint(w, clearScreen+c.Frame(drawille.MinX(0), drawille.MinY(0))); err != nil {
				return err
			}

			if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalBackground {
				draw.Draw(screen, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
			}

			delay := minDelay
			if i < len(g.Delay) && g.Delay[i] > 0 {
				delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
		}
		if g.LoopCount < 0 {
			break
		}
	}
	return nil
}
