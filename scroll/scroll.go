// Package scroll steps a digit display across a matrix one glyph at a time.
package scroll

import (
	"context"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/BeatGlow/matrix/glyph"
	"github.com/BeatGlow/matrix/timing"
)

var debug bool

func init() {
	debug = os.Getenv("MATRIX_DEBUG") != ""
}

// Pause is the gap that follows a shown glyph.
type Pause uint8

const (
	// NoPause ends a pass without showing anything.
	NoPause Pause = iota

	// ShortPause separates digits of the same number.
	ShortPause

	// LongPause follows the last digit of a number.
	LongPause
)

func (p Pause) String() string {
	switch p {
	case NoPause:
		return "none"
	case ShortPause:
		return "short"
	case LongPause:
		return "long"
	default:
		return "invalid"
	}
}

// Timing is how long a glyph stays lit and how long the matrix stays blank
// after it.
type Timing struct {
	On  time.Duration `yaml:"on"`
	Off time.Duration `yaml:"off"`
}

// Config for an Orchestrator.
type Config struct {
	// Period between passes over the digits.
	Period time.Duration `yaml:"period"`

	// Short is the timing of every digit but the last.
	Short Timing `yaml:"short"`

	// Long is the timing of the last digit.
	Long Timing `yaml:"long"`
}

// DefaultConfig shows each digit for half a second and holds the last one
// for five seconds.
var DefaultConfig = Config{
	Period: 5 * time.Second,
	Short:  Timing{On: 500 * time.Millisecond, Off: 500 * time.Millisecond},
	Long:   Timing{On: 5000 * time.Millisecond, Off: 500 * time.Millisecond},
}

// Timing returns the timing of pause p. NoPause has zero timing.
func (c *Config) Timing(p Pause) Timing {
	switch p {
	case ShortPause:
		return c.Short
	case LongPause:
		return c.Long
	default:
		return Timing{}
	}
}

// Source yields the glyph under the cursor and advances past it. ok is false
// when there is nothing to show. *digits.Display satisfies it.
type Source interface {
	Next() (g glyph.Glyph, complete, ok bool)
}

// Canvas is where glyphs are drawn. Every matrix.Display satisfies it.
type Canvas interface {
	DrawGlyph(glyph.Glyph) error
	BlankGlyph() error
}

// Orchestrator shows the digits of a Source one after another on a Canvas.
type Orchestrator struct {
	config  Config
	source  Source
	canvas  Canvas
	showing atomic.Bool

	// Sleep waits between drawing and blanking. It defaults to timing.Sleep.
	Sleep timing.Sleeper
}

// New returns an orchestrator that is not showing yet.
func New(source Source, canvas Canvas, config *Config) *Orchestrator {
	if config == nil {
		config = &DefaultConfig
	}
	return &Orchestrator{
		config: *config,
		source: source,
		canvas: canvas,
		Sleep:  timing.Sleep,
	}
}

// SetShowing enables or disables passes started by Run.
func (o *Orchestrator) SetShowing(showing bool) {
	o.showing.Store(showing)
}

// Showing reports whether Run starts passes.
func (o *Orchestrator) Showing() bool {
	return o.showing.Load()
}

// Step makes one pass over the digits: each is drawn, held, blanked and
// followed by its gap, until the last digit has been shown or the source
// has nothing to show.
func (o *Orchestrator) Step(ctx context.Context) error {
	for pause := ShortPause; pause == ShortPause; {
		g, complete, ok := o.source.Next()
		if !ok {
			return o.canvas.BlankGlyph()
		}
		if err := o.canvas.DrawGlyph(g); err != nil {
			return err
		}

		pause = ShortPause
		if complete {
			pause = LongPause
		}
		if debug {
			log.Printf("scroll: %s, %s pause", g, pause)
		}

		t := o.config.Timing(pause)
		if err := o.Sleep(ctx, t.On); err != nil {
			return err
		}
		if err := o.canvas.BlankGlyph(); err != nil {
			return err
		}
		if err := o.Sleep(ctx, t.Off); err != nil {
			return err
		}
	}
	return nil
}

// Run makes a pass on every tick while showing, until ctx is done or a pass
// fails. The ticker is stopped on return.
func (o *Orchestrator) Run(ctx context.Context, ticker timing.Ticker) error {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			if !o.Showing() {
				continue
			}
			if err := o.Step(ctx); err != nil {
				return err
			}
		}
	}
}
