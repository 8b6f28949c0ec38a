package framebuffer

import (
	"errors"
	"testing"
)

func TestLinuxParseFormat(t *testing.T) {
	info := &linuxVarScreenInfo{
		BitsPerPixel: 16,
		Red:          linuxBitField{Offset: 11, Length: 5},
		Green:        linuxBitField{Offset: 5, Length: 6},
		Blue:         linuxBitField{Offset: 0, Length: 5},
	}
	f, err := linuxParseFormat(info)
	if err != nil {
		t.Fatal(err)
	}
	if f.bytes != 2 || f.red.Offset != 11 || f.green.Length != 6 {
		t.Fatalf("unexpected format %+v", f)
	}

	info.BitsPerPixel = 8
	if _, err = linuxParseFormat(info); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat for 8 bpp, got %v", err)
	}

	info.BitsPerPixel = 16
	info.Red.Offset = 12
	if _, err = linuxParseFormat(info); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat for overflowing bitfield, got %v", err)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open("/dev/fb-missing", nil); err == nil {
		t.Fatal("expected an error for a missing device")
	}
}
