package drawille

import (
	"math"
	"strings"
)

type cellKind uint8

const (
	dotCell cellKind = iota
	textCell
)

// cell is the content of one character position: either a dot mask or a
// literal overlay character placed with SetText.
type cell struct {
	kind cellKind
	mask uint8
	char rune
}

// Canvas is a sparse pixel surface rendered with braille characters.
// Every character cell covers a 2x4 block of pixels.
//
// Only occupied cells are stored: a cell is dropped as soon as its last dot
// is cleared and a row is dropped together with its last cell.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	// LineEnding separates the rows of a frame. NewCanvas sets it to "\n".
	LineEnding string

	chars map[int]map[int]cell
}

// NewCanvas returns an empty canvas using "\n" as line ending.
func NewCanvas() *Canvas {
	return &Canvas{
		LineEnding: "\n",
		chars:      make(map[int]map[int]cell),
	}
}

// Normalize rounds a coordinate to the nearest pixel. Halfway values are
// rounded to the nearest even integer.
func Normalize(coord float64) int {
	return int(math.RoundToEven(coord))
}

// position translates pixel coordinates into the cell column, the cell row
// and the mask bit of the dot inside the cell.
func position(x, y float64) (col, row int, bit uint8) {
	px, py := Normalize(x), Normalize(y)
	return floorDiv(px, 2), floorDiv(py, 4), DotBit(px, py)
}

// Clear discards every pixel and text overlay of the canvas.
func (c *Canvas) Clear() {
	c.chars = make(map[int]map[int]cell)
}

// Empty reports whether nothing is drawn on the canvas.
func (c *Canvas) Empty() bool {
	return len(c.chars) == 0
}

// row returns the cells of a row, creating the row if needed.
func (c *Canvas) row(row int) map[int]cell {
	if c.chars == nil {
		c.chars = make(map[int]map[int]cell)
	}
	cells, ok := c.chars[row]
	if !ok {
		cells = make(map[int]cell)
		c.chars[row] = cells
	}
	return cells
}

// Set turns on the pixel at (x, y). Cells holding overlay text are left untouched.
func (c *Canvas) Set(x, y float64) {
	col, row, bit := position(x, y)

	if cells, ok := c.chars[row]; ok {
		if cl, ok := cells[col]; ok && cl.kind == textCell {
			return
		}
	}
	cells := c.row(row)
	cells[col] = cell{kind: dotCell, mask: cells[col].mask | bit}
}

// Unset turns off the pixel at (x, y). Unsetting any pixel of a text cell
// removes the overlay character.
func (c *Canvas) Unset(x, y float64) {
	col, row, bit := position(x, y)

	cells, ok := c.chars[row]
	if !ok {
		return
	}
	cl, ok := cells[col]
	if !ok {
		return
	}
	if cl.kind == dotCell {
		cl.mask &^= bit
	}
	if cl.kind == textCell || cl.mask == 0 {
		delete(cells, col)
	} else {
		cells[col] = cl
	}
	if len(cells) == 0 {
		delete(c.chars, row)
	}
}

// Toggle flips the state of the pixel at (x, y).
func (c *Canvas) Toggle(x, y float64) {
	if c.Get(x, y) {
		c.Unset(x, y)
	} else {
		c.Set(x, y)
	}
}

// Get reports whether the pixel at (x, y) is on.
// Pixels covered by overlay text always read as set.
func (c *Canvas) Get(x, y float64) bool {
	col, row, bit := position(x, y)

	cl, ok := c.chars[row][col]
	if !ok {
		return false
	}
	if cl.kind == textCell {
		return true
	}
	return cl.mask&bit != 0
}

// SetText writes text starting at the cell containing the pixel (x, y),
// one character per cell to the right. Existing cell content is replaced.
func (c *Canvas) SetText(x, y float64, text string) {
	if text == "" {
		return
	}
	col, row := floorDiv(Normalize(x), 2), floorDiv(Normalize(y), 4)

	cells := c.row(row)
	for _, r := range text {
		cells[col] = cell{kind: textCell, char: r}
		col++
	}
}

// frameBounds holds the optional pixel bounds of a rendered region.
type frameBounds struct {
	minX, minY, maxX, maxY *int
}

// FrameOption limits the region rendered by Rows and Frame.
type FrameOption func(*frameBounds)

// MinX sets the inclusive left pixel bound of the rendered region.
func MinX(x float64) FrameOption {
	return func(b *frameBounds) { v := Normalize(x); b.minX = &v }
}

// MinY sets the inclusive top pixel bound of the rendered region.
func MinY(y float64) FrameOption {
	return func(b *frameBounds) { v := Normalize(y); b.minY = &v }
}

// MaxX sets the exclusive right pixel bound of the rendered region.
func MaxX(x float64) FrameOption {
	return func(b *frameBounds) { v := Normalize(x); b.maxX = &v }
}

// MaxY sets the exclusive bottom pixel bound of the rendered region.
func MaxY(y float64) FrameOption {
	return func(b *frameBounds) { v := Normalize(y); b.maxY = &v }
}

// Rows renders the canvas into one string per cell row.
//
// Without bounds the region spans the occupied rows, starting at the leftmost
// occupied column and ending at the last occupied column of each row.
// Rows without content are returned as empty strings and missing cells as
// spaces. An empty canvas yields no rows at all, whatever the bounds.
func (c *Canvas) Rows(opts ...FrameOption) []string {
	if len(c.chars) == 0 {
		return nil
	}
	var b frameBounds
	for _, opt := range opts {
		opt(&b)
	}

	minRow, maxRow := math.MaxInt, math.MinInt
	minCol := math.MaxInt
	for r, cells := range c.chars {
		minRow = min(minRow, r)
		maxRow = max(maxRow, r)
		for col := range cells {
			minCol = min(minCol, col)
		}
	}
	if b.minY != nil {
		minRow = floorDiv(*b.minY, 4)
	}
	if b.maxY != nil {
		maxRow = floorDiv(*b.maxY-1, 4)
	}
	if b.minX != nil {
		minCol = floorDiv(*b.minX, 2)
	}
	if maxRow < minRow {
		return nil
	}

	var (
		rows = make([]string, 0, maxRow-minRow+1)
		sb   strings.Builder
	)
	for r := minRow; r <= maxRow; r++ {
		cells, ok := c.chars[r]
		if !ok {
			rows = append(rows, "")
			continue
		}
		maxCol := math.MinInt
		if b.maxX != nil {
			maxCol = floorDiv(*b.maxX-1, 2)
		} else {
			for col := range cells {
				maxCol = max(maxCol, col)
			}
		}

		sb.Reset()
		for col := minCol; col <= maxCol; col++ {
			cl, ok := cells[col]
			switch {
			case !ok:
				sb.WriteByte(' ')
			case cl.kind == textCell:
				sb.WriteRune(cl.char)
			default:
				sb.WriteRune(Glyph(cl.mask))
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// Frame renders the canvas as a single string, rows separated by LineEnding.
// It accepts the same bounds as Rows.
func (c *Canvas) Frame(opts ...FrameOption) string {
	return strings.Join(c.Rows(opts...), c.LineEnding)
}

// String returns the full frame of the canvas.
func (c *Canvas) String() string {
	return c.Frame()
}
