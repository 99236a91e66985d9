package mcp342x

import (
	"fmt"
	"io"
)

// Reading is one parsed measurement frame: the configuration the device
// echoed back plus the sample it carried.
type Reading struct {
	Config

	// OutputCode is the raw signed conversion result, Resolution.Bits() wide.
	OutputCode int32

	// MicroVolts is OutputCode scaled by the echoed resolution and gain.
	MicroVolts float64
}

// Volts returns the measurement in volts.
func (r Reading) Volts() float64 {
	return r.MicroVolts / 1e6
}

// Fresh reports whether the frame carried a finished conversion. The device
// sets the ready bit on reads while a conversion is still running.
func (r Reading) Fresh() bool {
	return !r.Ready
}

func (r Reading) String() string {
	return fmt.Sprintf("Reading{%s %s code:%d %.3fmV}",
		r.Channel, r.Resolution, r.OutputCode, r.MicroVolts/1000)
}

// ParseReading runs the full decode pipeline over a raw frame: the last byte
// is the echoed configuration byte, the bytes before it are the big-endian
// data bytes. The output code is extracted at the echoed resolution and
// scaled by the echoed resolution and gain.
//
// Only an empty frame is an error; a frame shorter than the echoed
// resolution's FrameSize extracts with the missing data bytes read as zero.
func ParseReading(buf []byte) (Reading, error) {
	if len(buf) == 0 {
		return Reading{}, fmt.Errorf("%w: empty measurement frame", io.ErrUnexpectedEOF)
	}

	cfg := DecodeConfig(buf[len(buf)-1])
	code := ExtractOutputCode(buf, cfg.Resolution)

	return Reading{
		Config:     cfg,
		OutputCode: code,
		MicroVolts: ConvertCodeToMicroVolts(code, cfg.Resolution, cfg.Gain),
	}, nil
}
