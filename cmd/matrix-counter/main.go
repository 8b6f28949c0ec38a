package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/host/v3"

	"github.com/BeatGlow/matrix"
	"github.com/BeatGlow/matrix/digits"
	"github.com/BeatGlow/matrix/glyph"
	"github.com/BeatGlow/matrix/internal/config"
	"github.com/BeatGlow/matrix/internal/counter"
	"github.com/BeatGlow/matrix/internal/hardware"
	"github.com/BeatGlow/matrix/scroll"
	"github.com/BeatGlow/matrix/timing"
)

func main() {
	configFlag := flag.String("config", "", "Configuration file (default: built-in defaults)")
	driverFlag := flag.String("driver", "", "Display driver, scan, max7219 or framebuffer (overrides the configuration)")
	modeFlag := flag.String("mode", "", "Count up or down (overrides the configuration)")
	startFlag := flag.Uint64("start", 0, "First value (overrides the configuration when set)")
	flag.Parse()

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fatal(err)
		}
	}
	if *driverFlag != "" {
		cfg.Display.Driver = *driverFlag
	}
	if *modeFlag != "" {
		cfg.Counter.Mode = *modeFlag
	}
	if *startFlag != 0 {
		cfg.Counter.Start = *startFlag
	}
	if err := config.Validate(cfg); err != nil {
		fatal(fmt.Errorf("invalid configuration: %w", err))
	}
	mode, _ := counter.ParseMode(cfg.Counter.Mode)

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	value, err := digits.New(cfg.Counter.Capacity)
	if err != nil {
		fatal(err)
	}

	hw, err := hardware.Open(cfg)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using connection: %s\n", hw.Conn)
	fmt.Printf("using driver: %s\n", hw.Display)
	var (
		scroller = scroll.New(value, hw.Display, &cfg.Scroll)
		count    = counter.New(value, &counter.Config{Mode: mode, Start: cfg.Counter.Start})
	)
	count.OnStart = func() { scroller.SetShowing(true) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("counting %s from %d every %s, hit control-c to stop...\n", mode, cfg.Counter.Start, cfg.Counter.Interval)
	_, err = timing.Select(ctx,
		func(ctx context.Context) error {
			return matrix.Run(ctx, hw.Display, timing.Every(cfg.Display.RefreshPeriod))
		},
		func(ctx context.Context) error {
			if err := blink(ctx, hw.Display, mode.Glyph()); err != nil {
				return err
			}
			_, err := timing.Select(ctx,
				func(ctx context.Context) error {
					return count.Run(ctx, timing.Every(cfg.Counter.Interval))
				},
				func(ctx context.Context) error {
					return scroller.Run(ctx, timing.Every(cfg.Scroll.Period))
				},
			)
			return err
		},
	)

	_, closeErr := timing.WithTimeout(context.Background(), cfg.ShutdownTimeout, func(context.Context) (struct{}, error) {
		return struct{}{}, hw.Display.Close()
	})
	if closeErr != nil {
		fmt.Fprintln(os.Stderr, "turning the display off failed: "+closeErr.Error())
	}
	if closeErr := hw.Close(); closeErr != nil {
		fmt.Fprintln(os.Stderr, "releasing the hardware failed: "+closeErr.Error())
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		fatal(err)
	}
	fmt.Printf("stopped at %s\n", value)
}

// blink shows the mode icon once between two blank frames.
func blink(ctx context.Context, d matrix.Display, icon glyph.Glyph) error {
	steps := []struct {
		glyph glyph.Glyph
		hold  time.Duration
	}{
		{glyph.Blank, 250 * time.Millisecond},
		{icon, 500 * time.Millisecond},
		{glyph.Blank, 250 * time.Millisecond},
	}
	for _, step := range steps {
		if err := d.DrawGlyph(step.glyph); err != nil {
			return err
		}
		if err := timing.Sleep(ctx, step.hold); err != nil {
			return err
		}
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
