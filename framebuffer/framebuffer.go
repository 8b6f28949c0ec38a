// Package framebuffer shows a virtual LED matrix on the operating system's
// native framebuffer.
//
// Each LED is drawn as a square cell, which makes it possible to develop and
// demonstrate the matrix software on a board with a screen but no LEDs. The
// display is opened with [Open] and otherwise functions like any other
// matrix display.
package framebuffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/BeatGlow/matrix"
)

// Errors
var (
	ErrFormat = errors.New("framebuffer: unsupported pixel format")
	ErrClosed = errors.New("framebuffer: display is closed")
)

// Config describes how LEDs are drawn.
type Config struct {
	// Cell is the edge length of one LED in pixels.
	Cell int

	// Gap is the space between two LEDs in pixels.
	Gap int

	// On and Off are the colors of lit and unlit LEDs.
	On, Off color.Color
}

var DefaultConfig = Config{
	Cell: 32,
	Gap:  8,
	On:   color.RGBA{R: 0xff, G: 0x20, B: 0x10, A: 0xff},
	Off:  color.RGBA{R: 0x20, G: 0x04, B: 0x02, A: 0xff},
}

// bitField locates one color channel inside a pixel.
type bitField struct {
	Offset uint32
	Length uint32
}

// format is the pixel layout of a framebuffer.
type format struct {
	bytes            int // per pixel
	red, green, blue bitField
	order            binary.ByteOrder
}

func (f format) pack(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	channel := func(v uint32, field bitField) uint32 {
		if field.Length == 0 {
			return 0
		}
		return (v >> (16 - field.Length)) << field.Offset
	}
	return channel(r, f.red) | channel(g, f.green) | channel(b, f.blue)
}

func (f format) put(pix []byte, v uint32) {
	switch f.bytes {
	case 2:
		f.order.PutUint16(pix, uint16(v))
	case 3:
		var b [4]byte
		f.order.PutUint32(b[:], v)
		if f.order.Uint16([]byte{0, 1}) == 1 {
			copy(pix, b[1:])
		} else {
			copy(pix, b[:3])
		}
	case 4:
		f.order.PutUint32(pix, v)
	}
}

// surface is a mapped region of framebuffer memory.
type surface struct {
	pix    []byte
	stride int
	rect   image.Rectangle // visible area
	format format
}

func (s *surface) fill(r image.Rectangle, v uint32) {
	r = r.Intersect(s.rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := y*s.stride + x*s.format.bytes
			s.format.put(s.pix[i:i+s.format.bytes], v)
		}
	}
}

type display struct {
	matrix.Buffer

	tx      sync.Mutex
	surface *surface
	cell    int
	gap     int
	on, off uint32
	written uint64
	synced  bool
	closed  bool
	release func() error
}

func newDisplay(s *surface, config *Config, release func() error) (*display, error) {
	if config == nil {
		config = &DefaultConfig
	}
	if config.Cell <= 0 || config.Gap < 0 {
		return nil, fmt.Errorf("framebuffer: invalid cell size %d and gap %d", config.Cell, config.Gap)
	}
	on, off := config.On, config.Off
	if on == nil {
		on = DefaultConfig.On
	}
	if off == nil {
		off = DefaultConfig.Off
	}
	return &display{
		surface: s,
		cell:    config.Cell,
		gap:     config.Gap,
		on:      s.format.pack(on),
		off:     s.format.pack(off),
		release: release,
	}, nil
}

func (d *display) String() string {
	return fmt.Sprintf("%dx%d LED matrix on %s framebuffer", matrix.Size, matrix.Size, d.surface.rect.Size())
}

// cellRect returns the pixels covered by the LED at (row, col).
func (d *display) cellRect(row, col int) image.Rectangle {
	pitch := d.cell + d.gap
	origin := d.surface.rect.Min.Add(image.Pt(d.gap+col*pitch, d.gap+row*pitch))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(d.cell, d.cell))}
}

// Refresh redraws the LEDs if the buffer changed since the last call.
func (d *display) Refresh() error {
	d.tx.Lock()
	defer d.tx.Unlock()

	if d.closed {
		return ErrClosed
	}
	frame, version := d.Snapshot()
	if d.synced && version == d.written {
		return nil
	}
	for row := range frame {
		for col, lit := range frame[row] {
			v := d.off
			if lit {
				v = d.on
			}
			d.surface.fill(d.cellRect(row, col), v)
		}
	}
	d.written = version
	d.synced = true
	return nil
}

// Close draws every LED unlit and releases the framebuffer.
func (d *display) Close() error {
	d.tx.Lock()
	defer d.tx.Unlock()

	if d.closed {
		return nil
	}
	for row := 0; row < matrix.Size; row++ {
		for col := 0; col < matrix.Size; col++ {
			d.surface.fill(d.cellRect(row, col), d.off)
		}
	}
	d.synced = false
	d.closed = true
	if d.release == nil {
		return nil
	}
	return d.release()
}
