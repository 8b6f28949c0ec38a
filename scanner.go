package matrix

import (
	"fmt"
	"log"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

// Pin is an output line driving one row or one column of the matrix.
// [gpio.PinOut] satisfies it.
type Pin interface {
	Out(gpio.Level) error
}

// ScanConfig describes the wiring of a directly driven matrix.
//
// By default rows are active-high and columns active-low: a pixel lights when
// its row line is high and its column line is low, as on the micro:bit.
type ScanConfig struct {
	// Rows are the row driver lines, top row first.
	Rows [Size]Pin

	// Columns are the column lines, leftmost column first.
	Columns [Size]Pin

	// RowActiveLow drives the active row low instead of high.
	RowActiveLow bool

	// ColumnActiveHigh drives the column of a lit pixel high instead of low.
	ColumnActiveHigh bool

	// Rotation of the matrix as mounted.
	Rotation Rotation
}

// Scanner multiplexes a matrix whose rows and columns are wired to GPIO lines.
// Every Refresh turns the current row off, moves to the next row, sets the
// column lines for it and then turns that row on. Refreshing at 100 Hz per
// frame (a 2 ms tick for 5 rows) or faster gives a steady image.
type Scanner struct {
	Buffer

	scan   sync.Mutex // serializes pin I/O
	rows   [Size]Pin
	cols   [Size]Pin
	rowOn  gpio.Level
	colOn  gpio.Level
	row    int // row currently driven
	halted bool
}

// NewScanner returns a scanner with every row and column line turned off.
func NewScanner(config *ScanConfig) (*Scanner, error) {
	s := &Scanner{
		rows:  config.Rows,
		cols:  config.Columns,
		rowOn: gpio.Level(!config.RowActiveLow),
		colOn: gpio.Level(config.ColumnActiveHigh),
		row:   Size - 1,
	}
	s.rotation = config.Rotation % 4
	for i := 0; i < Size; i++ {
		if s.rows[i] == nil {
			return nil, fmt.Errorf("%w: row %d", ErrPin, i)
		}
		if s.cols[i] == nil {
			return nil, fmt.Errorf("%w: column %d", ErrPin, i)
		}
	}
	if err := s.off(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scanner) String() string {
	return fmt.Sprintf("%dx%d multiplexed LED matrix", Size, Size)
}

// Row returns the row currently being driven.
func (s *Scanner) Row() int {
	s.scan.Lock()
	defer s.scan.Unlock()
	return s.row
}

// Refresh drives the next row of the matrix.
func (s *Scanner) Refresh() error {
	s.scan.Lock()
	defer s.scan.Unlock()

	if err := s.setRow(s.row, false); err != nil {
		return err
	}
	s.row = (s.row + 1) % Size
	s.halted = false

	pixels := s.bufferRow(s.row)
	for col, lit := range pixels {
		if err := s.setCol(col, lit); err != nil {
			return err
		}
	}
	if debug {
		log.Printf("matrix: row %d %v", s.row, pixels)
	}
	return s.setRow(s.row, true)
}

// Close turns every row and column off. The buffer is kept, so refreshing
// again shows the last image.
func (s *Scanner) Close() error {
	s.scan.Lock()
	defer s.scan.Unlock()

	if s.halted {
		return nil
	}
	if err := s.off(); err != nil {
		return err
	}
	s.halted = true
	return nil
}

// off turns all rows off before any column changes.
func (s *Scanner) off() error {
	for row := range s.rows {
		if err := s.setRow(row, false); err != nil {
			return err
		}
	}
	for col := range s.cols {
		if err := s.setCol(col, false); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) setRow(row int, on bool) error {
	level := s.rowOn
	if !on {
		level = !level
	}
	if err := s.rows[row].Out(level); err != nil {
		return &HardwareError{Line: fmt.Sprintf("row %d", row), Err: err}
	}
	return nil
}

func (s *Scanner) setCol(col int, lit bool) error {
	level := s.colOn
	if !lit {
		level = !level
	}
	if err := s.cols[col].Out(level); err != nil {
		return &HardwareError{Line: fmt.Sprintf("column %d", col), Err: err}
	}
	return nil
}
