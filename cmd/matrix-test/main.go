package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/host/v3"

	"github.com/BeatGlow/matrix"
	"github.com/BeatGlow/matrix/draw"
	"github.com/BeatGlow/matrix/glyph"
	"github.com/BeatGlow/matrix/internal/config"
	"github.com/BeatGlow/matrix/internal/hardware"
	"github.com/BeatGlow/matrix/pixel"
	"github.com/BeatGlow/matrix/timing"
)

func main() {
	configFlag := flag.String("config", "", "Configuration file (default: built-in defaults)")
	driverFlag := flag.String("driver", "", "Display driver, scan, max7219 or framebuffer (overrides the configuration)")
	holdFlag := flag.Duration("hold", 500*time.Millisecond, "Time each test frame is shown")
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
		if err := config.Validate(cfg); err != nil {
			fatal(err)
		}
	}

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	hw, err := hardware.Open(cfg)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using connection: %s\n", hw.Conn)
	fmt.Printf("using driver: %s\n", hw.Display)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("hit control-c to stop...")
	_, err = timing.Select(ctx,
		func(ctx context.Context) error {
			return matrix.Run(ctx, hw.Display, timing.Every(cfg.Display.RefreshPeriod))
		},
		func(ctx context.Context) error {
			for {
				for _, f := range frames() {
					fmt.Printf("showing %s\n", f.name)
					hw.Display.Show(f.grid)
					if err := timing.Sleep(ctx, *holdFlag); err != nil {
						return err
					}
				}
			}
		},
	)
	if closeErr := hw.Display.Close(); closeErr != nil {
		fmt.Fprintln(os.Stderr, "turning the display off failed: "+closeErr.Error())
	}
	if closeErr := hw.Close(); closeErr != nil {
		fmt.Fprintln(os.Stderr, "releasing the hardware failed: "+closeErr.Error())
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fatal(err)
	}
}

type frame struct {
	name string
	grid pixel.Grid
}

// frames returns the test pattern: single pixels in reading order, each row
// and column, the border, both diagonals, everything lit, then the font.
func frames() []frame {
	var (
		out []frame
		r   = image.Rect(0, 0, matrix.Size, matrix.Size)
	)
	for y := 0; y < matrix.Size; y++ {
		for x := 0; x < matrix.Size; x++ {
			var g pixel.Grid
			g.Set(x, y, pixel.On)
			out = append(out, frame{fmt.Sprintf("pixel %d,%d", y, x), g})
		}
	}
	for y := 0; y < matrix.Size; y++ {
		var g pixel.Grid
		draw.HorizontalLine(&g, 0, y, matrix.Size, pixel.On)
		out = append(out, frame{fmt.Sprintf("row %d", y), g})
	}
	for x := 0; x < matrix.Size; x++ {
		var g pixel.Grid
		draw.VerticalLine(&g, x, 0, matrix.Size, pixel.On)
		out = append(out, frame{fmt.Sprintf("column %d", x), g})
	}

	var border, cross, full pixel.Grid
	draw.Rectangle(&border, r, pixel.On)
	draw.Line(&cross, r.Min, r.Max.Sub(image.Pt(1, 1)), pixel.On)
	draw.Line(&cross, image.Pt(r.Max.X-1, 0), image.Pt(0, r.Max.Y-1), pixel.On)
	draw.Box(&full, r, pixel.On)
	out = append(out, frame{"border", border}, frame{"diagonals", cross}, frame{"all", full})

	for g := glyph.Digit0; g <= glyph.CountDown; g++ {
		out = append(out, frame{"glyph " + g.String(), g.Bitmap().Grid()})
	}
	return out
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
