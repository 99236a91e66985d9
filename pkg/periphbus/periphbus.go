// Package periphbus adapts a periph.io I2C bus to the mcp342x.Bus
// interface, for boards whose I2C controller shows up through the kernel
// ("/dev/i2c-1", "I2C1", "1").
package periphbus

import (
	"fmt"

	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
)

// Bus wraps an open periph.io I2C bus handle.
type Bus struct {
	name string
	bus  i2c.BusCloser
}

// Open initializes the periph host and opens the named I2C bus. An empty
// name selects the first available bus.
func Open(name string) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periphbus: could not initialize host: %w", err)
	}

	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("periphbus: could not open I2C bus: %w", err)
	}

	return &Bus{name: name, bus: bus}, nil
}

// Init is a no-op; Open already brought the host up.
func (b *Bus) Init() error {
	return nil
}

// Read fetches count bytes from the slave at addr.
func (b *Bus) Read(addr uint8, count uint) ([]byte, error) {
	buf := make([]byte, count)
	if err := b.bus.Tx(uint16(addr), nil, buf); err != nil {
		return nil, fmt.Errorf("periphbus: read of %d bytes from %#02x failed: %w", count, addr, err)
	}
	return buf, nil
}

// Write sends data to the slave at addr.
func (b *Bus) Write(addr uint8, data []byte) (uint, error) {
	if err := b.bus.Tx(uint16(addr), data, nil); err != nil {
		return 0, fmt.Errorf("periphbus: write of %d bytes to %#02x failed: %w", len(data), addr, err)
	}
	return uint(len(data)), nil
}

// Close closes the bus handle.
func (b *Bus) Close() error {
	return b.bus.Close()
}

func (b *Bus) String() string {
	if b.name == "" {
		return "periphbus{first available}"
	}
	return fmt.Sprintf("periphbus{%s}", b.name)
}
