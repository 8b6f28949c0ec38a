package config

import (
	"fmt"

	"github.com/BeatGlow/matrix"
	"github.com/BeatGlow/matrix/digits"
	"github.com/BeatGlow/matrix/internal/counter"
)

// Validate checks if the configuration is valid
func Validate(cfg *Config) error {
	if cfg.Display.RefreshPeriod <= 0 {
		return fmt.Errorf("display.refresh_period must be > 0")
	}

	if _, err := matrix.RotationDegrees(cfg.Display.Rotation); err != nil {
		return fmt.Errorf("display.rotation must be 0, 90, 180 or 270, got %d", cfg.Display.Rotation)
	}

	switch cfg.Display.Driver {
	case DriverScan:
		if err := validateScan(&cfg.Scan); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
	case DriverMAX7219:
	case DriverFramebuffer:
		if cfg.Framebuffer.Device == "" {
			return fmt.Errorf("framebuffer.device is required")
		}
		if cfg.Framebuffer.Cell <= 0 || cfg.Framebuffer.Gap < 0 {
			return fmt.Errorf("framebuffer.cell must be > 0 and framebuffer.gap must not be negative")
		}
	default:
		return fmt.Errorf("display.driver must be %q, %q or %q, got %q",
			DriverScan, DriverMAX7219, DriverFramebuffer, cfg.Display.Driver)
	}

	if cfg.Scroll.Period <= 0 {
		return fmt.Errorf("scroll.period must be > 0")
	}
	if cfg.Scroll.Short.On < 0 || cfg.Scroll.Short.Off < 0 {
		return fmt.Errorf("scroll.short durations must not be negative")
	}
	if cfg.Scroll.Long.On < 0 || cfg.Scroll.Long.Off < 0 {
		return fmt.Errorf("scroll.long durations must not be negative")
	}

	if _, err := counter.ParseMode(cfg.Counter.Mode); err != nil {
		return fmt.Errorf("counter.mode: %w", err)
	}
	if cfg.Counter.Interval <= 0 {
		return fmt.Errorf("counter.interval must be > 0")
	}
	if cfg.Counter.Capacity < 1 || cfg.Counter.Capacity > digits.MaxCapacity {
		return fmt.Errorf("counter.capacity must be between 1 and %d, got %d", digits.MaxCapacity, cfg.Counter.Capacity)
	}
	if cfg.Counter.Start > digits.Max(cfg.Counter.Capacity) {
		return fmt.Errorf("counter.start %d does not fit in %d digits", cfg.Counter.Start, cfg.Counter.Capacity)
	}

	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be > 0")
	}

	return nil
}

func validateScan(scan *ScanConfig) error {
	switch scan.Backend {
	case BackendPeriph:
		if len(scan.Rows) != matrix.Size || len(scan.Columns) != matrix.Size {
			return fmt.Errorf("rows and columns need %d pin names each, got %d and %d",
				matrix.Size, len(scan.Rows), len(scan.Columns))
		}
		seen := make(map[string]bool)
		for _, name := range append(append([]string{}, scan.Rows...), scan.Columns...) {
			if name == "" {
				return fmt.Errorf("empty pin name")
			}
			if seen[name] {
				return fmt.Errorf("pin %s is used twice", name)
			}
			seen[name] = true
		}
	case BackendCdev:
		if scan.Chip == "" {
			return fmt.Errorf("chip is required")
		}
		if len(scan.RowLines) != matrix.Size || len(scan.ColumnLines) != matrix.Size {
			return fmt.Errorf("row_lines and column_lines need %d offsets each, got %d and %d",
				matrix.Size, len(scan.RowLines), len(scan.ColumnLines))
		}
		seen := make(map[int]bool)
		for _, offset := range append(append([]int{}, scan.RowLines...), scan.ColumnLines...) {
			if offset < 0 {
				return fmt.Errorf("line offset %d is negative", offset)
			}
			if seen[offset] {
				return fmt.Errorf("line %d is used twice", offset)
			}
			seen[offset] = true
		}
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", BackendPeriph, BackendCdev, scan.Backend)
	}
	return nil
}
