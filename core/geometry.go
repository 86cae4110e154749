package drawille

import (
	"iter"
	"math"
)

// Line returns the points of the segment between (x1, y1) and (x2, y2),
// both ends included. The endpoints are normalized first. Intermediate points
// are interpolated and may be fractional, which lets polygon edges join
// smoothly; Canvas normalizes them again when they are set.
//
// A segment spanning r pixels along its major axis yields r+1 points.
func Line(x1, y1, x2, y2 float64) iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		var (
			ix1, iy1 = Normalize(x1), Normalize(y1)
			ix2, iy2 = Normalize(x2), Normalize(y2)
		)
		xdiff := abs(ix2 - ix1)
		ydiff := abs(iy2 - iy1)
		xdir, ydir := 1.0, 1.0
		if ix1 > ix2 {
			xdir = -1
		}
		if iy1 > iy2 {
			ydir = -1
		}

		r := max(xdiff, ydiff)
		for i := 0; i <= r; i++ {
			x, y := float64(ix1), float64(iy1)
			if ydiff != 0 {
				y += float64(i) * float64(ydiff) / float64(r) * ydir
			}
			if xdiff != 0 {
				x += float64(i) * float64(xdiff) / float64(r) * xdir
			}
			if !yield(x, y) {
				return
			}
		}
	}
}

// Polygon returns the outline of a regular polygon with the given number of
// sides. Vertex k lies at angle k*360/sides degrees and is placed at
// ((centerX+cos a)*(radius+1)/2, (centerY+sin a)*(radius+1)/2).
// The edges are produced in vertex order, the last one closing the shape.
// A polygon without sides yields no points.
func Polygon(centerX, centerY float64, sides int, radius float64) iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		if sides <= 0 {
			return
		}
		degree := 360.0 / float64(sides)
		scale := (radius + 1) / 2

		vertex := func(n int) (float64, float64) {
			a := radians(float64(n) * degree)
			return (centerX + math.Cos(a)) * scale, (centerY + math.Sin(a)) * scale
		}
		for n := 0; n < sides; n++ {
			x1, y1 := vertex(n)
			x2, y2 := vertex(n + 1)
			for x, y := range Line(x1, y1, x2, y2) {
				if !yield(x, y) {
					return
				}
			}
		}
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
