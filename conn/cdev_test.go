package conn

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
)

type fakeLine struct {
	values []int
	closed bool
}

func (f *fakeLine) SetValue(v int) error {
	f.values = append(f.values, v)
	return nil
}

func (f *fakeLine) Close() error {
	f.closed = true
	return nil
}

func TestLine(t *testing.T) {
	f := new(fakeLine)
	l := &Line{chip: "gpiochip0", offset: 21, line: f}

	if s := l.String(); s != "gpiochip0 line 21" {
		t.Errorf("unexpected name %q", s)
	}
	for _, level := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := l.Out(level); err != nil {
			t.Fatal(err)
		}
	}
	if len(f.values) != 3 || f.values[0] != 1 || f.values[1] != 0 || f.values[2] != 1 {
		t.Fatalf("expected values [1 0 1], got %v", f.values)
	}
	if err := l.Close(); err != nil || !f.closed {
		t.Fatalf("expected line to be released, err=%v", err)
	}
}

func TestOpenLinesMissingChip(t *testing.T) {
	if _, err := OpenLines("gpiochip-missing", []int{1, 2}); err == nil {
		t.Fatal("expected an error for a missing chip")
	}
}
