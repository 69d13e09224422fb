package sample

import (
	"fmt"

	"github.com/chewxy/math32"
)

const (
	// DefaultVRef is the converter reference voltage (V).
	DefaultVRef = 3.3
	// DefaultFullScale is the raw-count divisor of a 12-bit converter.
	DefaultFullScale = 4096
)

// Scale maps raw converter counts to volts with a fixed linear scale.
type Scale struct {
	VRef      float32 // reference voltage (V)
	FullScale float32 // raw divisor, 4096 for a 12-bit converter
}

// DefaultScale returns the reference 12-bit, 3.3 V scale.
func DefaultScale() Scale {
	return Scale{VRef: DefaultVRef, FullScale: DefaultFullScale}
}

// Volts converts a raw reading to volts: raw * vref / full_scale.
func (s Scale) Volts(raw uint16) float32 {
	return float32(raw) * s.VRef / s.FullScale
}

// Line renders a raw reading as a reporting line.
func (s Scale) Line(raw uint16) string {
	return FormatVolts(s.Volts(raw))
}

// FormatVolts renders a voltage with exactly three fractional digits,
// rounding half away from zero: 1.65 -> "1.650".
func FormatVolts(v float32) string {
	mv := int32(math32.Round(v * 1000))

	sign := ""
	if mv < 0 {
		sign = "-"
		mv = -mv
	}

	return fmt.Sprintf("%s%d.%03d", sign, mv/1000, mv%1000)
}
