package matrix

import (
	"errors"
	"testing"

	"github.com/BeatGlow/matrix/glyph"
	"github.com/BeatGlow/matrix/pixel"
)

func TestDisplaySet(t *testing.T) {
	d := new(Buffer)
	if err := d.Set(1, 3, true); err != nil {
		t.Fatal(err)
	}
	if frame := d.Frame(); !frame[1][3] || frame.Count() != 1 {
		t.Fatalf("unexpected frame:\n%s", &frame)
	}

	for _, it := range []struct{ row, col int }{{-1, 0}, {0, -1}, {Size, 0}, {0, Size}} {
		if err := d.Set(it.row, it.col, true); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Set(%d, %d): expected ErrOutOfRange, got %v", it.row, it.col, err)
		}
	}
	if frame := d.Frame(); frame.Count() != 1 {
		t.Fatalf("out of range writes changed the buffer:\n%s", &frame)
	}
}

func TestDisplayClearColumn(t *testing.T) {
	d := new(Buffer)
	var full pixel.Grid
	full.Fill(pixel.On)
	d.Show(full)

	if err := d.ClearColumn(2); err != nil {
		t.Fatal(err)
	}
	frame := d.Frame()
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if want := col != 2; frame[row][col] != want {
				t.Fatalf("pixel (%d, %d) is %t, expected %t", row, col, frame[row][col], want)
			}
		}
	}
	if err := d.ClearColumn(Size); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestDisplayGlyph(t *testing.T) {
	d := new(Buffer)
	for g := glyph.Blank; g <= glyph.CountDown; g++ {
		t.Run(g.String(), func(it *testing.T) {
			if err := d.DrawGlyph(g); err != nil {
				it.Fatal(err)
			}
			if frame, want := d.Frame(), g.Bitmap().Grid(); frame != want {
				it.Fatalf("expected\n%s\ngot\n%s", &want, &frame)
			}
			if err := d.BlankGlyph(); err != nil {
				it.Fatal(err)
			}
			if frame := d.Frame(); frame.Count() != 0 {
				it.Fatalf("expected blank frame, got\n%s", &frame)
			}
		})
	}
}

func TestDisplayVersion(t *testing.T) {
	d := new(Buffer)
	_, v0 := d.Snapshot()
	d.Clear()
	_, v1 := d.Snapshot()
	if v1 == v0 {
		t.Fatal("Clear did not mark the buffer changed")
	}
	_ = d.Set(9, 9, true)
	if _, v2 := d.Snapshot(); v2 != v1 {
		t.Fatal("failed Set marked the buffer changed")
	}
}

func TestDisplayGlyphUnknown(t *testing.T) {
	d := new(Buffer)
	_ = d.Set(2, 2, true)
	if err := d.DrawGlyph(glyph.Glyph(200)); !errors.Is(err, ErrGlyph) {
		t.Fatalf("expected ErrGlyph, got %v", err)
	}
	if frame := d.Frame(); !frame[2][2] || frame.Count() != 1 {
		t.Fatalf("unknown glyph changed the buffer:\n%s", &frame)
	}
}

func TestRotation(t *testing.T) {
	// An L shape: the top row plus the left column.
	var frame pixel.Grid
	for i := 0; i < Size; i++ {
		frame[0][i] = true
		frame[i][0] = true
	}
	frame[1][1] = true

	tests := []struct {
		Rotation Rotation
		Degrees  int
		Want     string
	}{
		{NoRotation, 0, "#####\n##...\n#....\n#....\n#....\n"},
		{Rotate90, 90, "#####\n...##\n....#\n....#\n....#\n"},
		{Rotate180, 180, "....#\n....#\n....#\n...##\n#####\n"},
		{Rotate270, 270, "#....\n#....\n#....\n##...\n#####\n"},
	}
	for _, test := range tests {
		t.Run(test.Rotation.String(), func(it *testing.T) {
			r, err := RotationDegrees(test.Degrees)
			if err != nil {
				it.Fatal(err)
			}
			if r != test.Rotation {
				it.Fatalf("expected %s for %d degrees, got %s", test.Rotation, test.Degrees, r)
			}

			d := new(Buffer)
			d.Show(frame)
			_, before := d.Snapshot()
			if err = d.SetRotation(r); err != nil {
				it.Fatal(err)
			}
			if d.Rotation() != r {
				it.Fatalf("expected rotation %s, got %s", r, d.Rotation())
			}

			got, after := d.Snapshot()
			if after == before {
				it.Error("rotation change did not mark the buffer changed")
			}
			if s := got.String(); s != test.Want {
				it.Fatalf("expected\n%s\ngot\n%s", test.Want, s)
			}
			for row := 0; row < Size; row++ {
				if d.bufferRow(row) != got[row] {
					it.Fatalf("row %d differs from the rotated snapshot", row)
				}
			}
			if d.Frame() != frame {
				it.Fatal("Frame should return the buffer as drawn")
			}
		})
	}

	if _, err := RotationDegrees(45); !errors.Is(err, ErrRotation) {
		t.Fatalf("expected ErrRotation, got %v", err)
	}
}
