package core

import "math"

// Clamp returns value limited to [lo, hi]. The bounds may be given in
// either order. NaN maps to the lower bound.
func Clamp(value, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}

	switch {
	case !(value >= lo):
		return lo
	case value > hi:
		return hi
	default:
		return value
	}
}

// IsFinitePositive reports whether v is finite and greater than zero.
func IsFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// LinearToDB converts an amplitude to dB. Zero gives -Inf, negative
// amplitudes give NaN.
func LinearToDB(amplitude float64) float64 {
	switch {
	case amplitude < 0:
		return math.NaN()
	case amplitude == 0:
		return math.Inf(-1)
	default:
		return 20 * math.Log10(amplitude)
	}
}
