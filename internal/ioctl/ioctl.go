//go:build linux

// Package ioctl issues device control calls on Linux device files.
package ioctl

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"
)

// Command to be sent over ioctl.
type Command uintptr

func (c Command) String() string {
	// Commands built with the _IOC macros carry direction and size in the
	// upper half; legacy commands such as the fbdev ones are plain numbers.
	var (
		dir  = c >> 30 & 0x03
		size = c >> 16 & 0x3fff
		nr   = c & 0xffff
	)
	if dir == 0 && size == 0 {
		return fmt.Sprintf("ioctl 0x%04x", uintptr(nr))
	}
	return fmt.Sprintf("ioctl 0x%04x (dir %d, %d bytes)", uintptr(nr), dir, size)
}

// Do executes the ioctl call with arg pointing at the command's argument
// structure.
func Do[T any](f *os.File, command Command, arg *T) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uintptr(command), uintptr(unsafe.Pointer(arg)))
	if errno != 0 {
		return fmt.Errorf("%s on %s failed: %w", command, f.Name(), os.NewSyscallError("ioctl", errno))
	}
	return nil
}
