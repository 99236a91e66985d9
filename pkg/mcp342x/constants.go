package mcp342x

import (
	"errors"
	"fmt"
)

// Constants from the datasheet

// DefaultAddr is the 7-bit bus address of a device with all strap pins low.
const DefaultAddr uint8 = 0x0D

// Address strap bits. Each pin tied high ORs its bit into the base address.
const (
	AddrBitA0 = 0x01
	AddrBitA1 = 0x02
	AddrBitA2 = 0x04
)

// Address derives the 7-bit bus address from the Adr0/Adr1/Adr2 strap pins.
// Address(false, false, false) == DefaultAddr.
func Address(a0, a1, a2 bool) uint8 {
	addr := DefaultAddr
	if a0 {
		addr |= AddrBitA0
	}
	if a1 {
		addr |= AddrBitA1
	}
	if a2 {
		addr |= AddrBitA2
	}
	return addr
}

// Bits of the configuration byte
const (
	// ReadyBit is overloaded by the device: written high in one-shot mode it
	// starts a conversion; read high it means the latest conversion is not
	// finished yet.
	ReadyBit = 0x80

	// ModeBit set selects continuous conversion, clear selects one-shot.
	ModeBit = 0x10

	channelMask    = 0x60
	resolutionMask = 0x0C
	gainMask       = 0x03
)

// ErrInvalidParameter is returned when a configuration field holds a value
// outside its defined set. Unreachable through the typed constants below.
var ErrInvalidParameter = errors.New("configuration parameter outside its defined value set")

type Channel int

const (
	CH1 Channel = iota + 1
	CH2
	CH3
	CH4
)

// flag returns the channel select bits (bit5 low-order, bit6 high-order).
func (c Channel) flag() (byte, error) {
	switch c {
	case CH1:
		return 0x00, nil
	case CH2:
		return 0x20, nil
	case CH3:
		return 0x40, nil
	case CH4:
		return 0x60, nil
	default:
		return 0, fmt.Errorf("%w: channel %d", ErrInvalidParameter, int(c))
	}
}

func (c Channel) String() string {
	switch c {
	case CH1:
		return "CH1"
	case CH2:
		return "CH2"
	case CH3:
		return "CH3"
	case CH4:
		return "CH4"
	default:
		return "(invalid channel)"
	}
}

// decodeChannel maps the channel bit pair back to a channel number. The bit
// pair is crossed (bit5 is the low-order bit of the pair, bit6 the
// high-order bit); that ordering is datasheet behavior, keep it as-is.
func decodeChannel(b byte) Channel {
	switch b & channelMask {
	case 0x20:
		return CH2
	case 0x40:
		return CH3
	case 0x60:
		return CH4
	default:
		return CH1
	}
}

type Mode int

const (
	OneShot Mode = iota
	Continuous
)

func (m Mode) flag() (byte, error) {
	switch m {
	case OneShot:
		return 0x00, nil
	case Continuous:
		return ModeBit, nil
	default:
		return 0, fmt.Errorf("%w: mode %d", ErrInvalidParameter, int(m))
	}
}

func (m Mode) String() string {
	switch m {
	case OneShot:
		return "one-shot"
	case Continuous:
		return "continuous"
	default:
		return "(invalid mode)"
	}
}

func decodeMode(b byte) Mode {
	if b&ModeBit != 0 {
		return Continuous
	}
	return OneShot
}

// Gain is the PGA setting applied ahead of the modulator.
type Gain int

const (
	G1 Gain = 1
	G2 Gain = 2
	G4 Gain = 4
	G8 Gain = 8
)

func (g Gain) flag() (byte, error) {
	switch g {
	case G1:
		return 0x00, nil
	case G2:
		return 0x01, nil
	case G4:
		return 0x02, nil
	case G8:
		return 0x03, nil
	default:
		return 0, fmt.Errorf("%w: gain x%d", ErrInvalidParameter, int(g))
	}
}

// Divisor is the factor the PGA multiplies the input by, divided back out
// when scaling an output code. Never zero.
func (g Gain) Divisor() int {
	switch g {
	case G2:
		return 2
	case G4:
		return 4
	case G8:
		return 8
	default:
		return 1
	}
}

func (g Gain) String() string {
	switch g {
	case G1, G2, G4, G8:
		return fmt.Sprintf("x%d", int(g))
	default:
		return "(invalid gain)"
	}
}

// decodeGain maps the gain bit pair (bit0 low-order, bit1 high-order, same
// crossed ordering as the channel pair) back to a PGA setting.
func decodeGain(b byte) Gain {
	switch b & gainMask {
	case 0x01:
		return G2
	case 0x02:
		return G4
	case 0x03:
		return G8
	default:
		return G1
	}
}

// Resolution is the sample bit depth. The numeric value is the width of the
// signed output code in bits.
type Resolution int

const (
	Res12 Resolution = 12
	Res14 Resolution = 14
	Res16 Resolution = 16
	Res18 Resolution = 18
)

func (r Resolution) flag() (byte, error) {
	switch r {
	case Res12:
		return 0x00, nil
	case Res14:
		return 0x04, nil
	case Res16:
		return 0x08, nil
	case Res18:
		return 0x0C, nil
	default:
		return 0, fmt.Errorf("%w: resolution %d bits", ErrInvalidParameter, int(r))
	}
}

// Bits returns the output code width.
func (r Resolution) Bits() int {
	return int(r)
}

// FrameSize returns the number of bytes one read transaction yields: two or
// three big-endian data bytes followed by the echoed configuration byte.
func (r Resolution) FrameSize() uint {
	if r == Res18 {
		return 4
	}
	return 3
}

// LSBMicroVolts returns the voltage of one output code increment before the
// PGA divisor is applied.
func (r Resolution) LSBMicroVolts() float64 {
	switch r {
	case Res14:
		return 250
	case Res16:
		return 62.5
	case Res18:
		return 15.625
	default:
		return 1000
	}
}

func (r Resolution) String() string {
	switch r {
	case Res12, Res14, Res16, Res18:
		return fmt.Sprintf("%d-bit", int(r))
	default:
		return "(invalid resolution)"
	}
}

// decodeResolution maps the sample rate bit pair (bit2 low-order, bit3
// high-order) back to a bit depth.
func decodeResolution(b byte) Resolution {
	switch b & resolutionMask {
	case 0x04:
		return Res14
	case 0x08:
		return Res16
	case 0x0C:
		return Res18
	default:
		return Res12
	}
}
