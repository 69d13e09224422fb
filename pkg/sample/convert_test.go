package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScale_Volts(t *testing.T) {
	tests := []struct {
		name  string
		raw   uint16
		scale Scale
		want  float32
	}{
		{
			name:  "zero reading",
			raw:   0,
			scale: DefaultScale(),
			want:  0.0,
		},
		{
			name:  "mid scale",
			raw:   2048,
			scale: DefaultScale(),
			want:  1.65,
		},
		{
			name:  "full reading",
			raw:   4095,
			scale: DefaultScale(),
			want:  3.2992, // 4095/4096 of 3.3V, just under the reference
		},
		{
			name:  "quarter scale",
			raw:   1024,
			scale: DefaultScale(),
			want:  0.825,
		},
		{
			name:  "different reference",
			raw:   2048,
			scale: Scale{VRef: 5.0, FullScale: 4096},
			want:  2.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.scale.Volts(tt.raw)
			assert.InDelta(t, tt.want, got, 0.0001, "Volts(%d) = %f, want %f", tt.raw, got, tt.want)
		})
	}
}

func TestFormatVolts(t *testing.T) {
	tests := []struct {
		name string
		v    float32
		want string
	}{
		{
			name: "zero",
			v:    0.0,
			want: "0.000",
		},
		{
			name: "exact millivolts",
			v:    1.65,
			want: "1.650",
		},
		{
			name: "rounds down",
			v:    3.2991943,
			want: "3.299",
		},
		{
			name: "rounds half up",
			v:    0.0005,
			want: "0.001",
		},
		{
			name: "carries into units",
			v:    0.9996,
			want: "1.000",
		},
		{
			name: "negative",
			v:    -1.65,
			want: "-1.650",
		},
		{
			name: "pads fraction",
			v:    2.05,
			want: "2.050",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatVolts(tt.v))
		})
	}
}

// TestScale_Line_ReferenceReadings pins the line format end to end for
// the readings the reference hardware produces.
func TestScale_Line_ReferenceReadings(t *testing.T) {
	scale := DefaultScale()

	tests := []struct {
		raw  uint16
		want string
	}{
		{raw: 2048, want: "1.650"},
		{raw: 4095, want: "3.299"},
		{raw: 0, want: "0.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, scale.Line(tt.raw), "Line(%d)", tt.raw)
	}
}
