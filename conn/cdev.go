package conn

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
)

// lineValue is the part of *gpiocdev.Line used to drive an output.
type lineValue interface {
	SetValue(int) error
	Close() error
}

// Line is an output line requested from a GPIO character device
// (/dev/gpiochipN). It can be used wherever a periph output pin is.
type Line struct {
	chip   string
	offset int
	line   lineValue
}

// OpenLine requests one line of chip as an output, initially low.
func OpenLine(chip string, offset int) (*Line, error) {
	l, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("conn: request %s line %d: %w", chip, offset, err)
	}
	return &Line{chip: chip, offset: offset, line: l}, nil
}

// OpenLines requests several lines of chip as outputs. On failure the lines
// already requested are released.
func OpenLines(chip string, offsets []int) ([]*Line, error) {
	lines := make([]*Line, 0, len(offsets))
	for _, offset := range offsets {
		l, err := OpenLine(chip, offset)
		if err != nil {
			for _, open := range lines {
				_ = open.Close()
			}
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func (l *Line) String() string {
	return fmt.Sprintf("%s line %d", l.chip, l.offset)
}

// Out drives the line to level.
func (l *Line) Out(level gpio.Level) error {
	var v int
	if level {
		v = 1
	}
	return l.line.SetValue(v)
}

// Close releases the line.
func (l *Line) Close() error {
	return l.line.Close()
}
