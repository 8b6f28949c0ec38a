package conn

import (
	"fmt"

	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// OpenSPI opens an SPI port by name, such as "SPI0.0" or "/dev/spidev0.0".
// An empty name opens the first available port.
//
// The port is not connected; the device driver picks its own clock and mode.
func OpenSPI(name string) (spi.PortCloser, error) {
	port, err := spireg.Open(name)
	if err != nil {
		if name == "" {
			return nil, fmt.Errorf("conn: no SPI port available: %w", err)
		}
		return nil, fmt.Errorf("conn: open SPI port %q: %w", name, err)
	}
	return port, nil
}
