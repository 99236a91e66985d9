package mcp342x

import "fmt"

// Config represents user-level configuration parameters. The device has a
// single register: the byte built from these fields is both the command
// written to it and the status appended to every measurement frame.
type Config struct {
	Channel    Channel
	Ready      bool // write: start a one-shot conversion; read: sample not yet ready
	Mode       Mode
	Gain       Gain
	Resolution Resolution
}

// DefaultConfig provides the power-on configuration. You can adjust as needed
func DefaultConfig() Config {
	return Config{
		Channel:    CH1,
		Ready:      true,
		Mode:       Continuous,
		Gain:       G1,
		Resolution: Res12,
	}
}

// Byte packs the configuration into the single register byte by ORing one
// flag per field. The zero value of a field falls back to the default above.
func (c Config) Byte() (byte, error) {
	c = c.withDefaults()

	var out byte

	chFlag, err := c.Channel.flag()
	if err != nil {
		return 0, err
	}
	out |= chFlag

	if c.Ready {
		out |= ReadyBit
	}

	modeFlag, err := c.Mode.flag()
	if err != nil {
		return 0, err
	}
	out |= modeFlag

	gainFlag, err := c.Gain.flag()
	if err != nil {
		return 0, err
	}
	out |= gainFlag

	resFlag, err := c.Resolution.flag()
	if err != nil {
		return 0, err
	}
	out |= resFlag

	return out, nil
}

// withDefaults fills unset fields from DefaultConfig. Mode and Ready have no
// distinguishable unset state; their zero values (OneShot, false) stand.
func (c Config) withDefaults() Config {
	if c.Channel == 0 {
		c.Channel = CH1
	}
	if c.Gain == 0 {
		c.Gain = G1
	}
	if c.Resolution == 0 {
		c.Resolution = Res12
	}
	return c
}

// DecodeConfig unpacks a register byte. Total: every one of the 256 byte
// values decodes to a valid Config, and Config.Byte inverts it exactly.
func DecodeConfig(b byte) Config {
	return Config{
		Channel:    decodeChannel(b),
		Ready:      b&ReadyBit != 0,
		Mode:       decodeMode(b),
		Gain:       decodeGain(b),
		Resolution: decodeResolution(b),
	}
}

func (c Config) String() string {
	return fmt.Sprintf("Config{%s %s %s %s ready:%t}",
		c.Channel, c.Mode, c.Gain, c.Resolution, c.Ready)
}
