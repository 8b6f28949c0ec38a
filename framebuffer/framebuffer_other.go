//go:build !linux

package framebuffer

import (
	"errors"

	"github.com/BeatGlow/matrix"
)

var ErrNotSupported = errors.New("framebuffer: not supported")

func Open(_ string, _ *Config) (matrix.Display, error) {
	return nil, ErrNotSupported
}
