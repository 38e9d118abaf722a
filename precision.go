package instvert

import (
	"fmt"

	"github.com/x448/float16"
)

// Precision selects how the interpolated color attribute is stored when it
// leaves the stage. Reduced precision trades accuracy for bandwidth on the
// channel that feeds the rasterizer.
type Precision uint8

const (
	// PrecisionHalf rounds each component through IEEE 754 binary16, the
	// equivalent of a mediump varying. This is the default.
	PrecisionHalf Precision = iota

	// PrecisionFull passes the color through as float32.
	PrecisionFull

	// PrecisionLow quantizes each component to 8-bit unorm. Components are
	// clamped to [0, 1] first.
	PrecisionLow
)

// String returns the name of the precision level.
func (p Precision) String() string {
	switch p {
	case PrecisionHalf:
		return "half"
	case PrecisionFull:
		return "full"
	case PrecisionLow:
		return "low"
	default:
		return fmt.Sprintf("Precision(%d)", uint8(p))
	}
}

// ParsePrecision returns the precision level named by s ("half", "full"
// or "low").
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "half":
		return PrecisionHalf, nil
	case "full":
		return PrecisionFull, nil
	case "low":
		return PrecisionLow, nil
	}
	return 0, fmt.Errorf("instvert: unknown precision %q", s)
}

// Quantize reduces c to the precision level. Quantize is idempotent:
// quantizing an already quantized color returns it unchanged.
func (p Precision) Quantize(c Vec4) Vec4 {
	switch p {
	case PrecisionFull:
		return c
	case PrecisionLow:
		return Vec4{X: unorm8(c.X), Y: unorm8(c.Y), Z: unorm8(c.Z), W: unorm8(c.W)}
	default:
		return Vec4{X: half(c.X), Y: half(c.Y), Z: half(c.Z), W: half(c.W)}
	}
}

func half(v float32) float32 {
	return float16.Fromfloat32(v).Float32()
}

func unorm8(v float32) float32 {
	switch {
	case v <= 0 || v != v:
		return 0
	case v >= 1:
		return 1
	}
	return float32(uint8(v*255+0.5)) / 255
}
