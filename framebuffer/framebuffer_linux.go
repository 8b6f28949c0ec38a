package framebuffer

import (
	"encoding/binary"
	"fmt"
	"image"
	"os"
	"syscall"

	"github.com/BeatGlow/matrix"
	"github.com/BeatGlow/matrix/internal/ioctl"
)

// From <linux/fb.h>
const (
	fbioGetVScreenInfo ioctl.Command = 0x4600
	fbioGetFScreenInfo ioctl.Command = 0x4602
)

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x].
// The matrix is drawn in the top left corner of the visible screen.
func Open(name string, config *Config) (matrix.Display, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	var (
		info       linuxFixScreenInfo
		screenInfo linuxVarScreenInfo
	)
	if err = ioctl.Do(f, fbioGetFScreenInfo, &info); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Request virtual screen info.
	if err = ioctl.Do(f, fbioGetVScreenInfo, &screenInfo); err != nil {
		_ = f.Close()
		return nil, err
	}
	pf, err := linuxParseFormat(&screenInfo)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	// Map pixel buffer.
	pix, err := syscall.Mmap(int(f.Fd()), 0, int(info.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	s := &surface{
		pix:    pix,
		stride: int(info.LineLength),
		rect: image.Rect(
			int(screenInfo.Xoffset), int(screenInfo.Yoffset),
			int(screenInfo.Xoffset+screenInfo.Xres), int(screenInfo.Yoffset+screenInfo.Yres),
		),
		format: pf,
	}
	d, err := newDisplay(s, config, func() error {
		if err := syscall.Munmap(pix); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	})
	if err != nil {
		_ = syscall.Munmap(pix)
		_ = f.Close()
		return nil, err
	}
	return d, nil
}

type linuxFixScreenInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

type linuxBitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

type linuxVarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha linuxBitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

// linuxParseFormat accepts any packed true color layout of 16, 24 or 32 bits
// per pixel.
func linuxParseFormat(info *linuxVarScreenInfo) (format, error) {
	if info.Grayscale != 0 {
		return format{}, fmt.Errorf("%w: grayscale", ErrFormat)
	}
	switch info.BitsPerPixel {
	case 16, 24, 32:
	default:
		return format{}, fmt.Errorf("%w: %d bits per pixel", ErrFormat, info.BitsPerPixel)
	}
	for _, field := range []linuxBitField{info.Red, info.Green, info.Blue} {
		if field.Length == 0 || field.Length > 16 || field.Offset+field.Length > info.BitsPerPixel || field.MsbRight != 0 {
			return format{}, fmt.Errorf("%w: color bitfield %+v", ErrFormat, field)
		}
	}
	return format{
		bytes: int(info.BitsPerPixel / 8),
		red:   bitField{info.Red.Offset, info.Red.Length},
		green: bitField{info.Green.Offset, info.Green.Length},
		blue:  bitField{info.Blue.Offset, info.Blue.Length},
		order: binary.NativeEndian,
	}, nil
}
