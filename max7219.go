package matrix

import (
	"fmt"
	"log"
	"sync"

	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/max7219"
)

const max7219Digits = 8

// MAX7219Config describes how the 5×5 matrix sits on the 8×8 grid of a
// MAX7219 LED driver.
type MAX7219Config struct {
	// Mirror swaps the column order, for modules wired with digit bit 0 on
	// the left.
	Mirror bool

	// Rotation of the matrix as mounted.
	Rotation Rotation
}

// rasterWriter is the part of *max7219.Dev the display uses.
type rasterWriter interface {
	WriteCascadedUnit(offset int, data []byte) error
}

// max7219Display is a matrix scanned by a MAX7219 driver chip. The chip does
// the row multiplexing itself, so Refresh only has to send frames that
// changed.
type max7219Display struct {
	Buffer

	tx      sync.Mutex // serializes SPI transfers
	dev     rasterWriter
	mirror  bool
	written uint64
	synced  bool
}

// MAX7219 opens a single MAX7219 unit on an SPI port and uses the top-left
// 5×5 LEDs of its 8×8 matrix.
func MAX7219(port spi.Port, config *MAX7219Config) (Display, error) {
	if config == nil {
		config = new(MAX7219Config)
	}

	dev, err := max7219.NewSPI(port, 1, max7219Digits)
	if err != nil {
		return nil, err
	}
	if err = dev.SetDecode(max7219.DecodeNone); err != nil {
		return nil, &HardwareError{Line: "SPI", Err: err}
	}
	return newMAX7219(dev, config), nil
}

func newMAX7219(dev rasterWriter, config *MAX7219Config) *max7219Display {
	d := &max7219Display{
		dev:    dev,
		mirror: config.Mirror,
	}
	d.rotation = config.Rotation % 4
	return d
}

func (d *max7219Display) String() string {
	return fmt.Sprintf("MAX7219 %dx%d LED matrix", Size, Size)
}

// Refresh sends the buffer to the chip if it changed since the last call.
func (d *max7219Display) Refresh() error {
	d.tx.Lock()
	defer d.tx.Unlock()

	frame, version := d.Snapshot()
	if d.synced && version == d.written {
		return nil
	}

	data := make([]byte, max7219Digits)
	for row := range frame {
		var bits byte
		for col, lit := range frame[row] {
			if !lit {
				continue
			}
			if d.mirror {
				bits |= 1 << uint(col)
			} else {
				bits |= 0x80 >> uint(col)
			}
		}
		// Digit register n receives data[len(data)-n].
		data[max7219Digits-1-row] = bits
	}
	if debug {
		log.Printf("matrix: max7219 frame % x", data)
	}
	if err := d.dev.WriteCascadedUnit(0, data); err != nil {
		return &HardwareError{Line: "SPI", Err: err}
	}
	d.written = version
	d.synced = true
	return nil
}

// Close blanks the chip by writing empty digit registers. The chip runs
// without a glyph table in raw mode, so Dev.Clear cannot be used. The SPI
// port is owned by the caller.
func (d *max7219Display) Close() error {
	d.tx.Lock()
	defer d.tx.Unlock()

	d.synced = false
	if err := d.dev.WriteCascadedUnit(0, make([]byte, max7219Digits)); err != nil {
		return &HardwareError{Line: "SPI", Err: err}
	}
	return nil
}
