package drawille

import "math"

// Turtle is a pen moving over a canvas. While the brush is down every
// movement leaves a line behind it.
type Turtle struct {
	*Canvas

	X, Y     float64
	Rotation float64 // heading in degrees, clockwise on screen
	brushOn  bool
}

// NewTurtle returns a turtle at (x, y) on a fresh canvas, heading right
// with the brush down.
func NewTurtle(x, y float64) *Turtle {
	return &Turtle{
		Canvas:  NewCanvas(),
		X:       x,
		Y:       y,
		brushOn: true,
	}
}

// Up lifts the brush.
func (t *Turtle) Up() { t.brushOn = false }

// Down puts the brush on the canvas.
func (t *Turtle) Down() { t.brushOn = true }

// BrushDown reports whether moving the turtle draws.
func (t *Turtle) BrushDown() bool { return t.brushOn }

// Forward moves the turtle step pixels along its heading.
func (t *Turtle) Forward(step float64) {
	a := radians(t.Rotation)
	t.Move(t.X+math.Cos(a)*step, t.Y+math.Sin(a)*step)
}

// Back moves the turtle step pixels against its heading.
func (t *Turtle) Back(step float64) {
	t.Forward(-step)
}

// Right turns the turtle clockwise by angle degrees.
func (t *Turtle) Right(angle float64) {
	t.Rotation += angle
}

// Left turns the turtle counterclockwise by angle degrees.
func (t *Turtle) Left(angle float64) {
	t.Rotation -= angle
}

// Move places the turtle at (x, y), drawing a line from its previous
// position when the brush is down.
func (t *Turtle) Move(x, y float64) {
	if t.brushOn {
		for lx, ly := range Line(t.X, t.Y, x, y) {
			t.Set(lx, ly)
		}
	}
	t.X, t.Y = x, y
}
