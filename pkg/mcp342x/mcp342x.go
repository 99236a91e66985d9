package mcp342x

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// Bus is the two-wire transport the driver talks through. Implementations
// select the slave by address per transaction; the driver never retries, I/O
// errors propagate unchanged.
type Bus interface {
	// Write sends data to the slave at addr and returns the byte count.
	Write(addr uint8, data []byte) (uint, error)

	// Read fetches count bytes from the slave at addr.
	Read(addr uint8, count uint) ([]byte, error)

	Init() error

	// Close closes the bus handle.
	Close() error
}

// conversionPoll is how long Convert sleeps between frame reads while the
// ready bit still reports a running conversion.
const conversionPoll = 250 * time.Microsecond

// MCP342x provides high-level control over an MCP3421/2/3/4 delta-sigma ADC.
//
// The device has a single register, so all control flows through one
// configuration byte and all data comes back as data bytes with that byte
// echoed at the end of every frame.
type MCP342x struct {
	mu   sync.RWMutex
	bus  Bus
	addr uint8

	// Last written and last echoed configuration (for reference or debugging)
	cfgLW Config // "Last Write"
	cfgLR Config // "Last Read" (echoed by the most recent parsed frame)

	continuousMode *atomic.Bool
}

// New constructs an MCP342x on the given bus at the given 7-bit address.
// Use Address (or DefaultAddr) to derive the address from the strap pins.
func New(bus Bus, addr uint8) *MCP342x {
	return &MCP342x{
		bus:            bus,
		addr:           addr,
		cfgLW:          DefaultConfig(),
		continuousMode: new(atomic.Bool),
	}
}

// Addr returns the 7-bit bus address the driver targets.
func (adc *MCP342x) Addr() uint8 {
	return adc.addr
}

// Init initializes the underlying bus and writes the provided config.
// Call it once at start-up.
func (adc *MCP342x) Init(cfg Config) error {
	if err := adc.bus.Init(); err != nil {
		return fmt.Errorf("bus init failed: %w", err)
	}
	return adc.Configure(cfg)
}

// Close releases the underlying bus handle.
func (adc *MCP342x) Close() error {
	return adc.bus.Close()
}

// Configure encodes cfg and writes it to the device.
func (adc *MCP342x) Configure(cfg Config) error {
	adc.mu.Lock()
	err := adc.writeConfig(cfg)
	adc.mu.Unlock()
	return err
}

// LastConfig returns the configuration most recently written to the device.
func (adc *MCP342x) LastConfig() Config {
	adc.mu.RLock()
	cfg := adc.cfgLW
	adc.mu.RUnlock()
	return cfg
}

// LastEcho returns the configuration echoed by the most recent parsed frame.
func (adc *MCP342x) LastEcho() Config {
	adc.mu.RLock()
	cfg := adc.cfgLR
	adc.mu.RUnlock()
	return cfg
}

func (adc *MCP342x) writeConfig(cfg Config) error {
	b, err := cfg.Byte()
	if err != nil {
		return err
	}

	out := get1Byte()
	out[0] = b
	_, err = adc.bus.Write(adc.addr, out)
	put1Byte(out)
	if err != nil {
		return fmt.Errorf("config write failed: %w", err)
	}

	adc.cfgLW = cfg.withDefaults()
	adc.continuousMode.Store(cfg.Mode == Continuous)
	return nil
}

// Sample reads one measurement frame sized for the last written resolution
// and parses it. The frame may be stale; check Reading.Fresh if you need a
// finished conversion.
func (adc *MCP342x) Sample() (Reading, error) {
	adc.mu.Lock()
	r, err := adc.readFrame()
	adc.mu.Unlock()
	return r, err
}

// readFrame performs one raw read transaction and runs the parse pipeline.
func (adc *MCP342x) readFrame() (Reading, error) {
	want := adc.cfgLW.Resolution.FrameSize()

	buf, err := adc.bus.Read(adc.addr, want)
	if err != nil {
		return Reading{}, fmt.Errorf("frame read failed: %w", err)
	}
	if uint(len(buf)) < want {
		return Reading{}, fmt.Errorf("%w: expected %d bytes, got %d",
			io.ErrUnexpectedEOF, want, len(buf))
	}

	r, err := ParseReading(buf)
	if err != nil {
		return Reading{}, err
	}

	adc.cfgLR = r.Config
	return r, nil
}

// Convert runs the one-shot flow: write the last configuration with the
// ready bit set and one-shot mode selected, then poll until the device
// reports a finished conversion or ctx is done.
func (adc *MCP342x) Convert(ctx context.Context) (Reading, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()

	cfg := adc.cfgLW
	cfg.Mode = OneShot
	cfg.Ready = true
	if err := adc.writeConfig(cfg); err != nil {
		return Reading{}, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return Reading{}, err
		}

		r, err := adc.readFrame()
		if err != nil {
			return Reading{}, err
		}
		if r.Fresh() {
			return r, nil
		}

		time.Sleep(conversionPoll)
	}
}
