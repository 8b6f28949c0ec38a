// Package hardware opens the matrix display described by a configuration.
package hardware

import (
	"errors"
	"fmt"
	"io"

	"github.com/BeatGlow/matrix"
	"github.com/BeatGlow/matrix/conn"
	"github.com/BeatGlow/matrix/framebuffer"
	"github.com/BeatGlow/matrix/internal/config"
)

// Hardware is an open display and the resources backing it.
type Hardware struct {
	Display matrix.Display

	// Conn describes the lines or port in use.
	Conn string

	closers []io.Closer
}

// Open acquires the lines or port configured in cfg and returns the display.
// The periph.io host drivers must be initialized first.
func Open(cfg *config.Config) (*Hardware, error) {
	rotation, err := matrix.RotationDegrees(cfg.Display.Rotation)
	if err != nil {
		return nil, err
	}
	switch cfg.Display.Driver {
	case config.DriverMAX7219:
		return openMAX7219(cfg, rotation)
	case config.DriverScan:
		return openScan(cfg, rotation)
	case config.DriverFramebuffer:
		return openFramebuffer(cfg, rotation)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Display.Driver)
	}
}

func openMAX7219(cfg *config.Config, rotation matrix.Rotation) (*Hardware, error) {
	port, err := conn.OpenSPI(cfg.MAX7219.Port)
	if err != nil {
		return nil, err
	}
	d, err := matrix.MAX7219(port, &matrix.MAX7219Config{
		Mirror:   cfg.MAX7219.Mirror,
		Rotation: rotation,
	})
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	return &Hardware{
		Display: d,
		Conn:    fmt.Sprintf("SPI port %s", port),
		closers: []io.Closer{port},
	}, nil
}

func openFramebuffer(cfg *config.Config, rotation matrix.Rotation) (*Hardware, error) {
	fbConfig := framebuffer.DefaultConfig
	fbConfig.Cell = cfg.Framebuffer.Cell
	fbConfig.Gap = cfg.Framebuffer.Gap
	d, err := framebuffer.Open(cfg.Framebuffer.Device, &fbConfig)
	if err != nil {
		return nil, err
	}
	if err = d.SetRotation(rotation); err != nil {
		_ = d.Close()
		return nil, err
	}
	return &Hardware{
		Display: d,
		Conn:    fmt.Sprintf("framebuffer %s", cfg.Framebuffer.Device),
	}, nil
}

func openScan(cfg *config.Config, rotation matrix.Rotation) (*Hardware, error) {
	var (
		scan = &matrix.ScanConfig{
			RowActiveLow:     cfg.Scan.RowActiveLow,
			ColumnActiveHigh: cfg.Scan.ColumnActiveHigh,
			Rotation:         rotation,
		}
		hw = new(Hardware)
	)
	switch cfg.Scan.Backend {
	case config.BackendPeriph:
		rows, err := conn.OpenPins(cfg.Scan.Rows)
		if err != nil {
			return nil, err
		}
		cols, err := conn.OpenPins(cfg.Scan.Columns)
		if err != nil {
			return nil, err
		}
		setPins(scan, rows, cols)
		hw.Conn = fmt.Sprintf("GPIO rows %v, columns %v", cfg.Scan.Rows, cfg.Scan.Columns)

	case config.BackendCdev:
		rows, err := conn.OpenLines(cfg.Scan.Chip, cfg.Scan.RowLines)
		if err != nil {
			return nil, err
		}
		for _, l := range rows {
			hw.closers = append(hw.closers, l)
		}
		cols, err := conn.OpenLines(cfg.Scan.Chip, cfg.Scan.ColumnLines)
		if err != nil {
			_ = hw.Close()
			return nil, err
		}
		for _, l := range cols {
			hw.closers = append(hw.closers, l)
		}
		setPins(scan, rows, cols)
		hw.Conn = fmt.Sprintf("%s rows %v, columns %v", cfg.Scan.Chip, cfg.Scan.RowLines, cfg.Scan.ColumnLines)

	default:
		return nil, fmt.Errorf("unsupported GPIO backend %q", cfg.Scan.Backend)
	}

	d, err := matrix.NewScanner(scan)
	if err != nil {
		_ = hw.Close()
		return nil, err
	}
	hw.Display = d
	return hw, nil
}

func setPins[P matrix.Pin](scan *matrix.ScanConfig, rows, cols []P) {
	for i := 0; i < matrix.Size && i < len(rows); i++ {
		scan.Rows[i] = rows[i]
	}
	for i := 0; i < matrix.Size && i < len(cols); i++ {
		scan.Columns[i] = cols[i]
	}
}

// Close releases the lines or port. Close the display first so the LEDs are
// turned off while the lines are still held.
func (hw *Hardware) Close() error {
	var errs []error
	for _, c := range hw.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	hw.closers = nil
	return errors.Join(errs...)
}
