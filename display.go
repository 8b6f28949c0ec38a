// Package matrix contains drivers for 5×5 LED dot-matrix displays.
//
// Every driver keeps its own pixel buffer, which callers draw into with Set,
// ClearColumn, Show or DrawGlyph. The buffer only reaches the LEDs when the
// driver is refreshed; use Run to refresh a display from a periodic ticker.
package matrix

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/BeatGlow/matrix/draw"
	"github.com/BeatGlow/matrix/glyph"
	"github.com/BeatGlow/matrix/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("MATRIX_DEBUG") != ""
}

// Size is the number of rows and columns of the matrix.
const Size = pixel.Size

// Errors
var (
	ErrOutOfRange = pixel.ErrOutOfRange
	ErrPin        = errors.New("matrix: row or column pin is missing")
	ErrGlyph      = errors.New("matrix: unknown glyph")
	ErrRotation   = errors.New("matrix: rotation must be 0, 90, 180 or 270 degrees")
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

// RotationDegrees returns the rotation for a clockwise angle in degrees.
func RotationDegrees(deg int) (Rotation, error) {
	switch deg {
	case 0:
		return NoRotation, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	default:
		return NoRotation, fmt.Errorf("%w, got %d", ErrRotation, deg)
	}
}

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// apply returns the frame as seen on a matrix mounted with rotation r: the
// top row of a 90° rotated frame lands in the rightmost column.
func (r Rotation) apply(frame pixel.Grid) pixel.Grid {
	const last = Size - 1
	var out pixel.Grid
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			switch r % 4 {
			case Rotate90:
				out[row][col] = frame[last-col][row]
			case Rotate180:
				out[row][col] = frame[last-row][last-col]
			case Rotate270:
				out[row][col] = frame[col][last-row]
			default:
				out[row][col] = frame[row][col]
			}
		}
	}
	return out
}

// HardwareError is returned when driving an output line fails. The display
// does not retry; the caller decides whether to reset or halt.
type HardwareError struct {
	// Line names the failing output, such as "row 2" or "SPI".
	Line string
	Err  error
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("matrix: %s: %v", e.Line, e.Err)
}

func (e *HardwareError) Unwrap() error {
	return e.Err
}

// Display is a 5×5 LED matrix.
type Display interface {
	String() string

	// Close the display driver, turning all LEDs off.
	Close() error

	// Bounds is the display bounding box (dimensions).
	Bounds() image.Rectangle

	// Set the lit state of the pixel at (row, col).
	Set(row, col int, lit bool) error

	// Clear the display buffer.
	Clear()

	// ClearColumn clears one column of the display buffer.
	ClearColumn(col int) error

	// Show replaces the whole display buffer with frame.
	Show(frame pixel.Grid)

	// Frame returns a copy of the display buffer.
	Frame() pixel.Grid

	// DrawGlyph replaces the display buffer with the bitmap of g.
	DrawGlyph(g glyph.Glyph) error

	// BlankGlyph clears the columns used by glyphs.
	BlankGlyph() error

	// SetRotation adjusts the pixel rotation.
	SetRotation(Rotation) error

	// Refresh pushes the buffer towards the LEDs. For a multiplexed display
	// this drives the next row; call it at a fixed, fast rate.
	Refresh() error
}

// Buffer is the pixel buffer shared by the drivers. Embed it and add String,
// Close and Refresh to implement Display. The lock is only ever held for
// constant-time buffer copies and never across pin I/O.
type Buffer struct {
	mu       sync.Mutex
	buffer   pixel.Grid
	rotation Rotation
	version  uint64 // bumped on every change
}

func (d *Buffer) Bounds() image.Rectangle {
	return d.buffer.Bounds()
}

func (d *Buffer) Set(row, col int, lit bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.buffer.SetLit(row, col, lit); err != nil {
		return err
	}
	d.version++
	return nil
}

func (d *Buffer) Clear() {
	d.mu.Lock()
	d.buffer.Clear()
	d.version++
	d.mu.Unlock()
}

func (d *Buffer) ClearColumn(col int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.buffer.ClearColumn(col); err != nil {
		return err
	}
	d.version++
	return nil
}

func (d *Buffer) Show(frame pixel.Grid) {
	d.mu.Lock()
	d.buffer = frame
	d.version++
	d.mu.Unlock()
}

func (d *Buffer) Frame() pixel.Grid {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buffer
}

func (d *Buffer) DrawGlyph(g glyph.Glyph) error {
	if !g.Valid() {
		return fmt.Errorf("%w: %s", ErrGlyph, g)
	}
	var frame pixel.Grid
	draw.Draw(&frame, frame.Bounds(), g.Bitmap(), image.Point{}, draw.Src)
	d.Show(frame)
	return nil
}

// BlankGlyph clears the glyph region column by column. Glyphs span the full
// width of a 5×5 matrix.
func (d *Buffer) BlankGlyph() error {
	for col := 0; col < Size; col++ {
		if err := d.ClearColumn(col); err != nil {
			return err
		}
	}
	return nil
}

// Rotation returns the pixel rotation.
func (d *Buffer) Rotation() Rotation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rotation
}

// SetRotation adjusts the pixel rotation. Frame keeps returning the buffer
// as drawn; Snapshot returns it rotated.
func (d *Buffer) SetRotation(rotation Rotation) error {
	d.mu.Lock()
	d.rotation = rotation % 4
	d.version++
	d.mu.Unlock()
	return nil
}

// bufferRow returns one row of the rotated buffer.
func (d *Buffer) bufferRow(row int) [Size]bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rotation.apply(d.buffer)[row]
}

// Snapshot returns a copy of the buffer, rotated to the way the matrix is
// mounted, and its version. The version changes whenever the buffer or the
// rotation does, so drivers can skip sending unchanged frames.
func (d *Buffer) Snapshot() (pixel.Grid, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rotation.apply(d.buffer), d.version
}
