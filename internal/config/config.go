// Package config loads the YAML configuration of the matrix binaries.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BeatGlow/matrix/scroll"
)

// Display drivers.
const (
	DriverScan        = "scan"
	DriverMAX7219     = "max7219"
	DriverFramebuffer = "framebuffer"
)

// GPIO backends of the scan driver.
const (
	BackendPeriph = "periph"
	BackendCdev   = "cdev"
)

type Config struct {
	Display     DisplayConfig     `yaml:"display"`
	Scan        ScanConfig        `yaml:"scan"`
	MAX7219     MAX7219Config     `yaml:"max7219"`
	Framebuffer FramebufferConfig `yaml:"framebuffer"`
	Scroll      scroll.Config     `yaml:"scroll"`
	Counter     CounterConfig     `yaml:"counter"`

	// ShutdownTimeout bounds how long turning the matrix off may take.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DisplayConfig struct {
	Driver string `yaml:"driver"` // scan, max7219, framebuffer

	// RefreshPeriod is the time between two refreshes. For the scan driver
	// this is the time each row is lit.
	RefreshPeriod time.Duration `yaml:"refresh_period"`

	// Rotation is the clockwise angle the matrix is mounted at: 0, 90, 180
	// or 270 degrees.
	Rotation int `yaml:"rotation"`
}

type ScanConfig struct {
	Backend string `yaml:"backend"` // periph, cdev

	// Rows and Columns are periph.io pin names, used with the periph backend.
	Rows    []string `yaml:"rows"`
	Columns []string `yaml:"columns"`

	// Chip, RowLines and ColumnLines select character device lines, used
	// with the cdev backend.
	Chip        string `yaml:"chip"`
	RowLines    []int  `yaml:"row_lines"`
	ColumnLines []int  `yaml:"column_lines"`

	RowActiveLow     bool `yaml:"row_active_low"`
	ColumnActiveHigh bool `yaml:"column_active_high"`
}

type MAX7219Config struct {
	Port   string `yaml:"port"` // empty for the first available port
	Mirror bool   `yaml:"mirror"`
}

type FramebufferConfig struct {
	Device string `yaml:"device"`
	Cell   int    `yaml:"cell"` // LED size in pixels
	Gap    int    `yaml:"gap"`
}

type CounterConfig struct {
	Mode     string        `yaml:"mode"` // up, down
	Start    uint64        `yaml:"start"`
	Interval time.Duration `yaml:"interval"`
	Capacity int           `yaml:"capacity"`
}

// Default returns the configuration used when no file is given: a matrix
// scanned through Raspberry Pi header pins, counting up once a minute.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Driver:        DriverScan,
			RefreshPeriod: 2 * time.Millisecond,
		},
		Scan: ScanConfig{
			Backend:     BackendPeriph,
			Rows:        []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19", "GPIO26"},
			Columns:     []string{"GPIO12", "GPIO16", "GPIO20", "GPIO21", "GPIO25"},
			Chip:        "gpiochip0",
			RowLines:    []int{5, 6, 13, 19, 26},
			ColumnLines: []int{12, 16, 20, 21, 25},
		},
		Framebuffer: FramebufferConfig{
			Device: "/dev/fb0",
			Cell:   32,
			Gap:    8,
		},
		Scroll: scroll.DefaultConfig,
		Counter: CounterConfig{
			Mode:     "up",
			Interval: time.Minute,
			Capacity: 5,
		},
		ShutdownTimeout: time.Second,
	}
}

// Load reads the configuration file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
