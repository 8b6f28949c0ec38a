package conn

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// ErrNoPin is returned when a pin name is not known to the registry.
var ErrNoPin = errors.New("conn: GPIO pin not found")

// OpenPin looks up a GPIO pin by name, such as "GPIO17" or "P1_11".
func OpenPin(name string) (gpio.PinOut, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoPin, name)
	}
	return p, nil
}

// OpenPins looks up a list of GPIO pins by name, in order.
func OpenPins(names []string) ([]gpio.PinOut, error) {
	pins := make([]gpio.PinOut, len(names))
	for i, name := range names {
		p, err := OpenPin(name)
		if err != nil {
			return nil, err
		}
		pins[i] = p
	}
	return pins, nil
}
