// Package counter is the application task that feeds a digit display with a
// value counting up or down at a fixed interval.
package counter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/BeatGlow/matrix/digits"
	"github.com/BeatGlow/matrix/glyph"
	"github.com/BeatGlow/matrix/timing"
)

// ErrMode is returned for an unknown mode name.
var ErrMode = errors.New("counter: unknown mode")

// Mode is the counting direction.
type Mode uint8

const (
	Up Mode = iota
	Down
)

// ParseMode parses "up" or "down".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return Up, fmt.Errorf("%w: %q", ErrMode, s)
	}
}

func (m Mode) String() string {
	switch m {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Glyph returns the icon shown when the mode is selected.
func (m Mode) Glyph() glyph.Glyph {
	if m == Down {
		return glyph.CountDown
	}
	return glyph.CountUp
}

// Target receives the counter value. *digits.Display satisfies it.
type Target interface {
	Set(n uint64) error
}

// Config for a Counter.
type Config struct {
	Mode Mode

	// Start is the first value shown.
	Start uint64

	// Interval between two steps, used by the binaries to build the ticker.
	Interval time.Duration
}

// DefaultConfig counts up from zero once a minute.
var DefaultConfig = Config{
	Mode:     Up,
	Interval: time.Minute,
}

// Counter steps a value and writes it to a Target. Counting down stops at
// zero. Counting up stops at the last value the target accepts.
type Counter struct {
	mu      sync.Mutex
	mode    Mode
	target  Target
	value   uint64
	started bool
	held    bool

	// OnStart is called once the first value has been written.
	OnStart func()
}

// New returns a counter that has not written anything yet.
func New(target Target, config *Config) *Counter {
	if config == nil {
		config = &DefaultConfig
	}
	return &Counter{
		mode:   config.Mode,
		target: target,
		value:  config.Start,
	}
}

// Value returns the last value written.
func (c *Counter) Value() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Held reports whether the counter reached its end and stopped stepping.
func (c *Counter) Held() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held
}

// Start writes the first value.
func (c *Counter) Start() error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return nil
	}
	if err := c.target.Set(c.value); err != nil {
		c.mu.Unlock()
		return err
	}
	c.started = true
	onStart := c.OnStart
	c.mu.Unlock()

	if onStart != nil {
		onStart()
	}
	return nil
}

// Step writes the next value. Once the end is reached the last value is
// kept and Step does nothing.
func (c *Counter) Step() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.held {
		return nil
	}

	next := c.value
	switch {
	case c.mode == Down && c.value == 0, c.mode == Up && c.value == math.MaxUint64:
		c.hold()
		return nil
	case c.mode == Down:
		next--
	default:
		next++
	}

	if err := c.target.Set(next); err != nil {
		if errors.Is(err, digits.ErrCapacityExceeded) {
			log.Printf("counter: %d does not fit the display, holding %d", next, c.value)
			c.held = true
			return nil
		}
		return err
	}
	c.value = next
	if c.mode == Down && next == 0 {
		c.hold()
	}
	return nil
}

func (c *Counter) hold() {
	if !c.held {
		log.Printf("counter: counting %s stopped at %d", c.mode, c.value)
	}
	c.held = true
}

// Run writes the first value, then steps on every tick until ctx is done or
// the target fails. The ticker is stopped on return.
func (c *Counter) Run(ctx context.Context, ticker timing.Ticker) error {
	defer ticker.Stop()

	if err := c.Start(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			if err := c.Step(); err != nil {
				return err
			}
		}
	}
}
