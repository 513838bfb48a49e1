//go:build !fastmath

package fastmath

import "math"

// Pow2 returns 2^x. Pow2(0) is exactly 1.
func Pow2(x float64) float64 {
	return math.Exp2(x)
}
