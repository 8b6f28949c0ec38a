// Package conn acquires the hardware lines a matrix is wired to: GPIO pins
// from the periph.io registry, lines of a Linux GPIO character device, and
// SPI ports.
package conn
