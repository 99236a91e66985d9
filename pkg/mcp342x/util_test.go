package mcp342x

import (
	"math"
	"testing"
)

func TestAddress(t *testing.T) {
	t.Run("NoStraps", func(t *testing.T) {
		if addr := Address(false, false, false); addr != 0x0D {
			t.Errorf("expected 0x0D, got %#02x", addr)
		}
	})
	t.Run("AllStraps", func(t *testing.T) {
		if addr := Address(true, true, true); addr != 0x0F {
			t.Errorf("expected 0x0F, got %#02x", addr)
		}
	})
	t.Run("A1Only", func(t *testing.T) {
		if addr := Address(false, true, false); addr != 0x0F {
			t.Errorf("expected 0x0F, got %#02x", addr)
		}
	})
	t.Run("Default", func(t *testing.T) {
		if DefaultAddr != 0x0D {
			t.Errorf("expected 0x0D, got %#02x", DefaultAddr)
		}
	})
}

func TestFrameSize(t *testing.T) {
	for res, want := range map[Resolution]uint{Res12: 3, Res14: 3, Res16: 3, Res18: 4} {
		if got := res.FrameSize(); got != want {
			t.Errorf("%s: expected %d bytes, got %d", res, want, got)
		}
	}
}

func TestExtractOutputCode(t *testing.T) {
	t.Run("Positive16Bit", func(t *testing.T) {
		code := ExtractOutputCode([]byte{0x03, 0x91}, Res16)
		if code != 913 {
			t.Errorf("expected 913, got %d", code)
		}
	})

	t.Run("Negative12Bit", func(t *testing.T) {
		// masked data is 0xFFF with bit 11 set
		code := ExtractOutputCode([]byte{0x8F, 0xFF}, Res12)
		if code != -4095 {
			t.Errorf("expected -4095, got %d", code)
		}
	})

	t.Run("Negative14Bit", func(t *testing.T) {
		code := ExtractOutputCode([]byte{0x20, 0x00}, Res14)
		if code != -8192 {
			t.Errorf("expected -8192, got %d", code)
		}
	})

	t.Run("Negative16Bit", func(t *testing.T) {
		code := ExtractOutputCode([]byte{0x80, 0x00}, Res16)
		if code != -32768 {
			t.Errorf("expected -32768, got %d", code)
		}
	})

	t.Run("Positive18Bit", func(t *testing.T) {
		code := ExtractOutputCode([]byte{0x01, 0xFF, 0xFF}, Res18)
		if code != 131071 {
			t.Errorf("expected 131071, got %d", code)
		}
	})

	t.Run("Negative18Bit", func(t *testing.T) {
		code := ExtractOutputCode([]byte{0x02, 0x00, 0x00}, Res18)
		if code != -131072 {
			t.Errorf("expected -131072, got %d", code)
		}
	})

	t.Run("UpperBitsMaskedOff", func(t *testing.T) {
		// bits above the data field (device echo noise) must not leak in
		if code := ExtractOutputCode([]byte{0xF0, 0x01}, Res12); code != 1 {
			t.Errorf("expected 1, got %d", code)
		}
		if code := ExtractOutputCode([]byte{0xC0, 0x00, 0x01}, Res18); code != 1 {
			t.Errorf("expected 1, got %d", code)
		}
	})

	t.Run("ShortFrameZeroFills", func(t *testing.T) {
		if code := ExtractOutputCode([]byte{0x8F}, Res12); code != -3840 {
			t.Errorf("expected -3840, got %d", code)
		}
		if code := ExtractOutputCode(nil, Res16); code != 0 {
			t.Errorf("expected 0, got %d", code)
		}
	})

	t.Run("ZeroValue", func(t *testing.T) {
		if code := ExtractOutputCode([]byte{0x00, 0x00}, Res16); code != 0 {
			t.Errorf("expected 0, got %d", code)
		}
	})
}

func TestConvertCodeToMicroVolts(t *testing.T) {
	almost := func(t *testing.T, got, want float64) {
		t.Helper()
		// tolerance allowed to account for lack of floating point precision.
		if got < want-0.000001 || got > want+0.000001 {
			t.Errorf("expected %f, got %f", want, got)
		}
	}

	t.Run("Scenario16BitGain1", func(t *testing.T) {
		almost(t, ConvertCodeToMicroVolts(913, Res16, G1), 57062.5)
	})

	t.Run("LSBPerResolution", func(t *testing.T) {
		almost(t, ConvertCodeToMicroVolts(1, Res12, G1), 1000)
		almost(t, ConvertCodeToMicroVolts(1, Res14, G1), 250)
		almost(t, ConvertCodeToMicroVolts(1, Res16, G1), 62.5)
		almost(t, ConvertCodeToMicroVolts(1, Res18, G1), 15.625)
	})

	t.Run("GainDividesOut", func(t *testing.T) {
		almost(t, ConvertCodeToMicroVolts(800, Res12, G2), 400000)
		almost(t, ConvertCodeToMicroVolts(800, Res12, G4), 200000)
		almost(t, ConvertCodeToMicroVolts(800, Res12, G8), 100000)
	})

	t.Run("NegativeCode", func(t *testing.T) {
		almost(t, ConvertCodeToMicroVolts(-4095, Res12, G1), -4095000)
	})

	t.Run("AlwaysFinite", func(t *testing.T) {
		codes := []int32{-131072, -1, 0, 1, 131071}
		for _, res := range []Resolution{Res12, Res14, Res16, Res18} {
			for _, gain := range []Gain{G1, G2, G4, G8} {
				for _, code := range codes {
					uv := ConvertCodeToMicroVolts(code, res, gain)
					if math.IsInf(uv, 0) || math.IsNaN(uv) {
						t.Errorf("%s %s code %d: non-finite result %f", res, gain, code, uv)
					}
				}
			}
		}
	})
}
