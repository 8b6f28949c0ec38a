package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/matrix/draw"
)

// Size is the number of rows and columns of the matrix.
const Size = 5

// ErrOutOfRange is returned for row or column indices outside [0, Size).
var ErrOutOfRange = errors.New("pixel: row or column out of range")

// Image is a drawable pixel buffer.
type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Grid is the 5×5 pixel buffer, indexed [row][col]. A true entry is a lit LED.
//
// Grid is a value type: assigning it copies the whole frame, which is how
// displays hand complete frames between goroutines.
//
// As an image, x is the column and y is the row. Set and At clip to the grid
// bounds like any other image; use SetLit and Lit for checked access.
type Grid [Size][Size]bool

func checkRange(row, col int) error {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return fmt.Errorf("%w: row %d, col %d", ErrOutOfRange, row, col)
	}
	return nil
}

// Lit reports whether the pixel at (row, col) is lit.
func (g *Grid) Lit(row, col int) (bool, error) {
	if err := checkRange(row, col); err != nil {
		return false, err
	}
	return g[row][col], nil
}

// SetLit sets the lit state of the pixel at (row, col).
func (g *Grid) SetLit(row, col int, lit bool) error {
	if err := checkRange(row, col); err != nil {
		return err
	}
	g[row][col] = lit
	return nil
}

// ClearColumn turns off every pixel in column col, leaving the other columns
// untouched.
func (g *Grid) ClearColumn(col int) error {
	if err := checkRange(0, col); err != nil {
		return err
	}
	for row := range g {
		g[row][col] = false
	}
	return nil
}

// Row returns a copy of the pixels in one row.
func (g *Grid) Row(row int) ([Size]bool, error) {
	if err := checkRange(row, 0); err != nil {
		return [Size]bool{}, err
	}
	return g[row], nil
}

// Count returns the number of lit pixels.
func (g *Grid) Count() (n int) {
	for _, row := range g {
		for _, lit := range row {
			if lit {
				n++
			}
		}
	}
	return
}

func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, Size, Size)
}

func (g *Grid) ColorModel() color.Model {
	return MonoModel
}

func (g *Grid) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(g.Bounds()) {
		return color.Transparent
	}
	return Mono{On: g[y][x]}
}

func (g *Grid) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(g.Bounds()) {
		return
	}
	g[y][x] = monoModel(c).(Mono).On
}

func (g *Grid) Clear() {
	*g = Grid{}
}

func (g *Grid) Fill(c color.Color) {
	on := monoModel(c).(Mono).On
	for row := range g {
		for col := range g[row] {
			g[row][col] = on
		}
	}
}

// String renders the grid with one line per row, '#' for lit pixels.
func (g *Grid) String() string {
	b := make([]byte, 0, Size*(Size+1))
	for _, row := range g {
		for _, lit := range row {
			if lit {
				b = append(b, '#')
			} else {
				b = append(b, '.')
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}

// Interface checks.
var _ Image = (*Grid)(nil)
