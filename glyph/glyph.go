// Package glyph is the font of the 5×5 matrix: a small, closed set of glyphs
// (the ten decimal digits, the mode icons and a blank) and their bitmaps.
package glyph

import (
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/matrix/pixel"
)

// Glyph identifies one displayable character or icon.
type Glyph uint8

// Supported glyphs.
const (
	Blank Glyph = iota
	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	CountUp   // Arrow pointing up
	CountDown // Arrow pointing down
	numGlyphs
)

// Digit returns the glyph for the decimal digit d. It panics if d > 9.
func Digit(d uint8) Glyph {
	if d > 9 {
		panic(fmt.Sprintf("glyph: %d is not a decimal digit", d))
	}
	return Digit0 + Glyph(d)
}

// ForChar returns the glyph for an ASCII character. Only '0'-'9' and ' ' are
// part of the font.
func ForChar(c byte) (Glyph, bool) {
	switch {
	case c >= '0' && c <= '9':
		return Digit(c - '0'), true
	case c == ' ':
		return Blank, true
	default:
		return Blank, false
	}
}

func (g Glyph) String() string {
	switch {
	case g == Blank:
		return "blank"
	case g >= Digit0 && g <= Digit9:
		return string(rune('0' + g - Digit0))
	case g == CountUp:
		return "count-up"
	case g == CountDown:
		return "count-down"
	default:
		return fmt.Sprintf("glyph(%d)", uint8(g))
	}
}

// Valid reports whether g is one of the glyph constants.
func (g Glyph) Valid() bool {
	return g < numGlyphs
}

// Bitmap returns the bitmap of g. It panics for values outside the set of
// glyph constants.
func (g Glyph) Bitmap() Bitmap {
	if g >= numGlyphs {
		panic(fmt.Sprintf("glyph: unknown %s", g))
	}
	return font[g]
}

// Bitmap is a 5×5 binary image. Each entry is one row, top row first; bit 4
// is the leftmost column and bit 0 the rightmost.
type Bitmap [pixel.Size]uint8

// Lit reports whether the pixel at (row, col) is lit. Out of range pixels are
// never lit.
func (b Bitmap) Lit(row, col int) bool {
	if row < 0 || row >= pixel.Size || col < 0 || col >= pixel.Size {
		return false
	}
	return b[row]&(1<<uint(pixel.Size-1-col)) != 0
}

// Grid converts the bitmap to a pixel buffer.
func (b Bitmap) Grid() (g pixel.Grid) {
	for row := range g {
		for col := range g[row] {
			g[row][col] = b.Lit(row, col)
		}
	}
	return
}

func (b Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, pixel.Size, pixel.Size)
}

func (b Bitmap) ColorModel() color.Model {
	return pixel.MonoModel
}

func (b Bitmap) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(b.Bounds()) {
		return color.Transparent
	}
	return pixel.Mono{On: b.Lit(y, x)}
}

var _ image.Image = Bitmap{}
