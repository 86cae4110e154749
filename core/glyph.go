package drawille

// BrailleOffset is the code point of the empty braille pattern (U+2800).
// Every dot mask maps to BrailleOffset + mask.
const BrailleOffset = 0x2800

// Dot layout of a braille cell, numbered as in the Unicode charts:
//
//	,___,
//	|1 4|
//	|2 5|
//	|3 6|
//	|7 8|
//	`````
//
// pixelMap holds the mask bit of each dot indexed by [row][col] inside the cell.
var pixelMap = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleMap is the lookup table from a dot mask to its braille glyph.
var brailleMap [256]rune

func init() {
	for mask := range brailleMap {
		brailleMap[mask] = rune(BrailleOffset + mask)
	}
}

// Glyph returns the braille character encoding the given dot mask.
func Glyph(mask uint8) rune {
	return brailleMap[mask]
}

// DotBit returns the mask bit of the dot addressed by the pixel (x, y)
// inside its cell. Negative coordinates wrap with floor semantics.
func DotBit(x, y int) uint8 {
	return pixelMap[floorMod(y, 4)][floorMod(x, 2)]
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod returns a modulo b with the sign of b.
func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
