package mcp342x

// byteAt reads buf[i], treating anything past the end as zero. Short frames
// therefore extract as if the missing bytes were zero instead of panicking;
// see ExtractOutputCode.
func byteAt(buf []byte, i int) byte {
	if i >= len(buf) {
		return 0
	}
	return buf[i]
}

// ExtractOutputCode interprets the leading data bytes of a raw measurement
// frame as the device's signed output code at the given resolution. The data
// bytes are MSB first; the sign bit sits at position Bits()-1 of the masked
// field, and a set sign bit negates the whole masked magnitude (matches the
// device's two's complement framing, since the mask keeps the sign bit in
// the magnitude).
//
// Frames shorter than FrameSize are zero-filled at the missing positions,
// never an error.
func ExtractOutputCode(buf []byte, res Resolution) int32 {
	var (
		u    uint32
		sign uint32
	)

	switch res {
	case Res14:
		u = uint32(byteAt(buf, 1)) | uint32(byteAt(buf, 0)&0x3F)<<8
		sign = 1 << 13
	case Res16:
		u = uint32(byteAt(buf, 1)) | uint32(byteAt(buf, 0))<<8
		sign = 1 << 15
	case Res18:
		u = uint32(byteAt(buf, 2)) | uint32(byteAt(buf, 1))<<8 | uint32(byteAt(buf, 0)&0x03)<<16
		sign = 1 << 17
	default: // Res12
		u = uint32(byteAt(buf, 1)) | uint32(byteAt(buf, 0)&0x0F)<<8
		sign = 1 << 11
	}

	if u&sign != 0 {
		return -int32(u)
	}
	return int32(u)
}

// ConvertCodeToMicroVolts scales a signed output code to microvolts: one LSB
// is worth LSBMicroVolts at the frame's resolution, and the PGA divisor
// removes the analog gain applied before conversion. Finite for every
// defined Resolution/Gain pair.
func ConvertCodeToMicroVolts(code int32, res Resolution, gain Gain) float64 {
	return float64(code) * res.LSBMicroVolts() / float64(gain.Divisor())
}
