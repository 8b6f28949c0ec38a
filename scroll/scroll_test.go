package scroll

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/BeatGlow/matrix/digits"
	"github.com/BeatGlow/matrix/glyph"
)

// trace records canvas operations and sleeps in the order they happen.
type trace struct {
	ops    []string
	drawn  []glyph.Glyph
	failAt int
}

func (t *trace) DrawGlyph(g glyph.Glyph) error {
	t.ops = append(t.ops, "draw "+g.String())
	t.drawn = append(t.drawn, g)
	if t.failAt > 0 && len(t.drawn) == t.failAt {
		return errors.New("canvas broken")
	}
	return nil
}

func (t *trace) BlankGlyph() error {
	t.ops = append(t.ops, "blank")
	return nil
}

func (t *trace) sleep(ctx context.Context, d time.Duration) error {
	t.ops = append(t.ops, fmt.Sprintf("sleep %s", d))
	return ctx.Err()
}

func newTestOrchestrator(t *testing.T, capacity int) (*Orchestrator, *digits.Display, *trace) {
	t.Helper()
	d, err := digits.New(capacity)
	if err != nil {
		t.Fatal(err)
	}
	tr := new(trace)
	o := New(d, tr, nil)
	o.Sleep = tr.sleep
	return o, d, tr
}

func TestPauseString(t *testing.T) {
	for p, want := range map[Pause]string{NoPause: "none", ShortPause: "short", LongPause: "long", Pause(9): "invalid"} {
		if s := p.String(); s != want {
			t.Errorf("expected %q, got %q", want, s)
		}
	}
}

func TestConfigTiming(t *testing.T) {
	c := DefaultConfig
	tests := []struct {
		Pause   Pause
		On, Off time.Duration
	}{
		{NoPause, 0, 0},
		{ShortPause, 500 * time.Millisecond, 500 * time.Millisecond},
		{LongPause, 5000 * time.Millisecond, 500 * time.Millisecond},
	}
	for _, test := range tests {
		t.Run(test.Pause.String(), func(it *testing.T) {
			if v := c.Timing(test.Pause); v.On != test.On || v.Off != test.Off {
				it.Fatalf("expected (%s, %s), got (%s, %s)", test.On, test.Off, v.On, v.Off)
			}
		})
	}
}

func TestStepShortThenLong(t *testing.T) {
	o, d, tr := newTestOrchestrator(t, 5)
	if err := d.Set(42); err != nil {
		t.Fatal(err)
	}
	if err := o.Step(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"draw 4", "sleep 500ms", "blank", "sleep 500ms",
		"draw 2", "sleep 5s", "blank", "sleep 500ms",
	}
	if got := strings.Join(tr.ops, ", "); got != strings.Join(want, ", ") {
		t.Fatalf("expected\n%s\ngot\n%s", strings.Join(want, ", "), got)
	}
	if c := d.Cursor(); c != 0 {
		t.Fatalf("expected cursor back at 0, got %d", c)
	}
}

func TestStepSingleDigit(t *testing.T) {
	o, d, tr := newTestOrchestrator(t, 3)
	if err := d.Set(7); err != nil {
		t.Fatal(err)
	}
	if err := o.Step(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(tr.drawn) != 1 || tr.drawn[0] != glyph.Digit7 {
		t.Fatalf("expected a single 7, got %v", tr.drawn)
	}
	if tr.ops[1] != "sleep 5s" {
		t.Fatalf("expected a long pause after the only digit, got %v", tr.ops)
	}
}

func TestStepHidden(t *testing.T) {
	o, _, tr := newTestOrchestrator(t, 3)
	if err := o.Step(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(tr.ops) != 1 || tr.ops[0] != "blank" {
		t.Fatalf("expected only a blank for a hidden display, got %v", tr.ops)
	}
}

func TestStepHiddenMidPass(t *testing.T) {
	o, d, tr := newTestOrchestrator(t, 3)
	if err := d.Set(123); err != nil {
		t.Fatal(err)
	}
	o.Sleep = func(ctx context.Context, dur time.Duration) error {
		d.Hide()
		return tr.sleep(ctx, dur)
	}
	if err := o.Step(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(tr.drawn) != 1 {
		t.Fatalf("expected the pass to stop after hiding, drew %v", tr.drawn)
	}
	if last := tr.ops[len(tr.ops)-1]; last != "blank" {
		t.Fatalf("expected the pass to end blank, got %v", tr.ops)
	}
}

func TestStepCanvasError(t *testing.T) {
	o, d, tr := newTestOrchestrator(t, 3)
	tr.failAt = 2
	_ = d.Set(99)
	if err := o.Step(context.Background()); err == nil || err.Error() != "canvas broken" {
		t.Fatalf("expected canvas error, got %v", err)
	}
}

func TestStepCancelled(t *testing.T) {
	o, d, _ := newTestOrchestrator(t, 3)
	_ = d.Set(12)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := o.Step(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type manualTicker struct {
	c chan time.Time
}

func (t *manualTicker) C() <-chan time.Time { return t.c }
func (t *manualTicker) Stop()               {}

func TestRunNotShowing(t *testing.T) {
	o, d, tr := newTestOrchestrator(t, 3)
	_ = d.Set(5)

	ticker := &manualTicker{c: make(chan time.Time)}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- o.Run(ctx, ticker) }()

	ticker.c <- time.Now()
	ticker.c <- time.Now()
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(tr.ops) != 0 {
		t.Fatalf("expected no passes while not showing, got %v", tr.ops)
	}
}

func TestRun(t *testing.T) {
	o, d, tr := newTestOrchestrator(t, 3)
	_ = d.Set(5)
	passes := make(chan struct{})
	o.Sleep = func(ctx context.Context, dur time.Duration) error {
		if err := tr.sleep(ctx, dur); err != nil {
			return err
		}
		if len(tr.ops)%4 == 0 {
			passes <- struct{}{}
		}
		return nil
	}
	o.SetShowing(true)
	if !o.Showing() {
		t.Fatal("expected showing")
	}

	ticker := &manualTicker{c: make(chan time.Time)}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- o.Run(ctx, ticker) }()

	ticker.c <- time.Now()
	<-passes
	ticker.c <- time.Now()
	<-passes
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n := len(tr.drawn); n != 2 {
		t.Fatalf("expected 2 passes of one digit, got %d draws", n)
	}
}
