// Package digits holds the decimal representation of a counter value and the
// cursor that steps through it one glyph at a time.
package digits

import (
	"errors"
	"fmt"
	"sync"

	"github.com/BeatGlow/matrix/glyph"
)

// MaxCapacity is the number of decimal digits of the largest uint64.
const MaxCapacity = 20

// Errors
var (
	ErrCapacity         = errors.New("digits: capacity must be between 1 and 20")
	ErrCapacityExceeded = errors.New("digits: value does not fit the display")
	ErrHidden           = errors.New("digits: display is hidden")
)

// Display is a fixed-capacity sequence of decimal digits, most significant
// first, plus a cursor selecting the digit currently shown.
//
// The cursor doubles as the visibility flag: it equals the capacity while the
// display is hidden and is in [0, Count) while it is visible.
//
// All methods are safe for concurrent use. Use Next to read, render and
// advance as a single step relative to Set.
type Display struct {
	mu     sync.Mutex
	digits []uint8 // right-aligned: the last Count entries are significant
	count  int
	cursor int
}

// New returns a hidden display holding the single digit 0.
func New(capacity int) (*Display, error) {
	if capacity < 1 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w (got %d)", ErrCapacity, capacity)
	}
	return &Display{
		digits: make([]uint8, capacity),
		count:  1,
		cursor: capacity,
	}, nil
}

// Len returns the number of decimal digits of n. Zero has one digit.
func Len(n uint64) int {
	if n == 0 {
		return 1
	}
	var i int
	for ; n > 0; n /= 10 {
		i++
	}
	return i
}

// Max returns the largest value a display of the given capacity can hold,
// 10^capacity - 1.
func Max(capacity int) uint64 {
	if capacity >= MaxCapacity {
		return ^uint64(0)
	}
	v := uint64(1)
	for i := 0; i < capacity; i++ {
		v *= 10
	}
	return v - 1
}

// Capacity returns the fixed number of digit slots.
func (d *Display) Capacity() int {
	return len(d.digits)
}

// Set replaces the digits with the decimal representation of n and rewinds
// the cursor to the first digit, making the display visible.
//
// If n needs more digits than the capacity, Set returns ErrCapacityExceeded
// and the display is left unchanged.
func (d *Display) Set(n uint64) error {
	size := Len(n)
	if size > len(d.digits) {
		return fmt.Errorf("%w: %d needs %d digits, capacity is %d", ErrCapacityExceeded, n, size, len(d.digits))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	offset := len(d.digits) - size
	for i := len(d.digits) - 1; i >= offset; i-- {
		d.digits[i] = uint8(n % 10)
		n /= 10
	}
	for i := 0; i < offset; i++ {
		d.digits[i] = 0
	}
	d.count = size
	d.cursor = 0
	return nil
}

// Show makes the display visible, starting over at the first digit.
func (d *Display) Show() {
	d.mu.Lock()
	d.cursor = 0
	d.mu.Unlock()
}

// Hide makes the display invisible.
func (d *Display) Hide() {
	d.mu.Lock()
	d.cursor = len(d.digits)
	d.mu.Unlock()
}

// Visible reports whether the display is shown.
func (d *Display) Visible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.visible()
}

func (d *Display) visible() bool {
	return d.cursor < len(d.digits)
}

// Render returns the glyph of the digit under the cursor. It returns
// ErrHidden while the display is hidden.
func (d *Display) Render() (glyph.Glyph, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.visible() {
		return glyph.Blank, ErrHidden
	}
	return d.render(), nil
}

func (d *Display) render() glyph.Glyph {
	return glyph.Digit(d.digits[len(d.digits)-d.count+d.cursor])
}

// Advance moves the cursor to the next digit. When it moves past the last
// digit it wraps to the first one and reports that the cycle is complete.
// A hidden display stays hidden and Advance reports false.
func (d *Display) Advance() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.advance()
}

func (d *Display) advance() bool {
	if !d.visible() {
		return false
	}
	d.cursor++
	if d.cursor >= d.count {
		d.cursor = 0
		return true
	}
	return false
}

// Next renders the digit under the cursor and advances past it in one step.
// ok is false, and nothing changes, while the display is hidden.
func (d *Display) Next() (g glyph.Glyph, complete, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.visible() {
		return glyph.Blank, false, false
	}
	g = d.render()
	return g, d.advance(), true
}

// Count returns the number of significant digits.
func (d *Display) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// Cursor returns the cursor position. It equals Capacity while hidden.
func (d *Display) Cursor() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

// Digits returns a copy of the significant digits, most significant first.
func (d *Display) Digits() []uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]uint8, d.count)
	copy(out, d.digits[len(d.digits)-d.count:])
	return out
}

func (d *Display) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	b := make([]byte, d.count)
	for i, v := range d.digits[len(d.digits)-d.count:] {
		b[i] = '0' + v
	}
	if !d.visible() {
		return fmt.Sprintf("%s (hidden)", b)
	}
	return fmt.Sprintf("%s (at %d)", b, d.cursor)
}
